package filters

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"
	"github.com/hurxxxx/open-webui-pilelines/common/utils"
	"github.com/hurxxxx/open-webui-pilelines/core/ai"
	"github.com/hurxxxx/open-webui-pilelines/shared"
	"github.com/mszlu521/thunder/event"
	"github.com/mszlu521/thunder/logs"
)

// WebSearchFilter 让大模型判断是否需要联网 需要时委托给搜索工具
// 搜索结果以web_search附件挂到请求上 自己不实现检索
type WebSearchFilter struct {
	Status     bool
	buildModel buildModelFunc
}

func NewWebSearchFilter() *WebSearchFilter {
	return &WebSearchFilter{
		Status:     true,
		buildModel: ai.BuildChatModel,
	}
}

func (f *WebSearchFilter) Name() string {
	return "web_search"
}

func (f *WebSearchFilter) Inlet(ctx context.Context, body *shared.ChatRequest, emitter shared.EventEmitter, user *shared.UserInfo) *shared.ChatRequest {
	if !f.Status {
		emitter = nil
	}
	query := body.LastUserMessage()
	if user == nil || query == "" {
		return body
	}
	need, err := f.needWebSearch(ctx, body, user)
	if err != nil {
		logs.Errorf("web search decision error: %v", err)
		emitStatus(emitter, fmt.Sprintf("Error occurred while processing the request: %v", err), true)
		return body
	}
	if !need {
		return body
	}
	emitStatus(emitter, "Searching the web...", false)
	results, err := f.search(user, query)
	if err != nil {
		logs.Errorf("web search error: %v", err)
		emitStatus(emitter, fmt.Sprintf("Error occurred while processing the request: %v", err), true)
		return body
	}
	if len(results) == 0 {
		emitStatus(emitter, "No web results found.", true)
		return body
	}
	body.Files = append(body.Files, &shared.Attachment{
		Type:    shared.AttachmentTypeWebSearch,
		Id:      "web-search",
		Name:    "Web Search",
		Results: results,
	})
	emitStatus(emitter, fmt.Sprintf("Web search complete: %d results", len(results)), true)
	return body
}

func (f *WebSearchFilter) needWebSearch(ctx context.Context, body *shared.ChatRequest, user *shared.UserInfo) (bool, error) {
	chatModel, err := resolveChatModel(ctx, f.buildModel, body.Model, user.Id)
	if err != nil {
		return false, err
	}
	message, err := chatModel.Generate(ctx, []*schema.Message{
		schema.SystemMessage(webSearchSystemPrompt),
		schema.UserMessage(buildHistoryPrompt(body)),
	})
	if err != nil {
		return false, err
	}
	//模型回yes/true/1都算要搜 解析不出来当不需要
	return utils.ExtractLooseBool(message.Content), nil
}

func (f *WebSearchFilter) search(user *shared.UserInfo, query string) ([]*shared.WebSearchResult, error) {
	trigger, err := event.Trigger("webSearch", &shared.WebSearchRequest{
		UserId: user.Id,
		Query:  query,
	})
	if err != nil {
		return nil, err
	}
	resp, ok := trigger.(*shared.WebSearchResponse)
	if !ok || resp == nil {
		return nil, nil
	}
	return resp.Results, nil
}
