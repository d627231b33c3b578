package filters

import (
	"context"

	"github.com/hurxxxx/open-webui-pilelines/shared"
	"github.com/mszlu521/thunder/logs"
)

// Filter 在请求进入对话模型之前对请求体做加工
// 实现方不能让请求失败 出错时原样放行并通过emitter上报
type Filter interface {
	Name() string
	Inlet(ctx context.Context, body *shared.ChatRequest, emitter shared.EventEmitter, user *shared.UserInfo) *shared.ChatRequest
}

// Chain 按顺序执行过滤器 最后固定插入一条system消息
// 插入动作放在链上做 保证无论过滤器成功失败都只插入一次
type Chain struct {
	filters []Filter
}

func NewChain(filters ...Filter) *Chain {
	return &Chain{filters: filters}
}

func (c *Chain) Inlet(ctx context.Context, body *shared.ChatRequest, emitter shared.EventEmitter, user *shared.UserInfo) *shared.ChatRequest {
	for _, f := range c.filters {
		next := f.Inlet(ctx, body, emitter, user)
		if next == nil {
			logs.Warnf("filter %s returned nil body", f.Name())
			continue
		}
		body = next
	}
	body.PrependSystemMessage(contextMessage)
	return body
}

func emitStatus(emitter shared.EventEmitter, description string, done bool) {
	if emitter == nil {
		return
	}
	emitter(shared.NewStatusEvent(description, done))
}
