package filters

import (
	"context"
	"errors"
	"sync"

	aiModel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	"github.com/hurxxxx/open-webui-pilelines/model"
	"github.com/hurxxxx/open-webui-pilelines/shared"
	"github.com/mszlu521/thunder/event"
)

// fakeChatModel 固定返回预设内容 免去真实模型调用
type fakeChatModel struct {
	content string
	err     error
}

func (f *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...aiModel.Option) (*schema.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.content, nil), nil
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...aiModel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not supported")
}

func (f *fakeChatModel) WithTools(tools []*schema.ToolInfo) (aiModel.ToolCallingChatModel, error) {
	return f, nil
}

func fakeBuildModel(content string, err error) buildModelFunc {
	return func(ctx context.Context, modelName string, config *model.ProviderConfig) (aiModel.ToolCallingChatModel, error) {
		if err != nil {
			return nil, err
		}
		return &fakeChatModel{content: content}, nil
	}
}

// 事件总线是进程级的 同名事件只能注册一次 用包级状态喂不同用例
var (
	stubOnce       sync.Once
	stubMu         sync.Mutex
	stubKbs        []*shared.KnowledgeBaseInfo
	stubKbsErr     error
	stubFileResp   *shared.GetFileMetasResponse
	stubSearchResp *shared.WebSearchResponse
	stubSearchErr  error
)

func registerStubEvents() {
	stubOnce.Do(func() {
		event.Register("listKnowledgeBases", func(e event.Event) (any, error) {
			stubMu.Lock()
			defer stubMu.Unlock()
			if stubKbsErr != nil {
				return nil, stubKbsErr
			}
			return stubKbs, nil
		})
		event.Register("getFileMetasByIds", func(e event.Event) (any, error) {
			stubMu.Lock()
			defer stubMu.Unlock()
			return stubFileResp, nil
		})
		event.Register("getChatConfig", func(e event.Event) (any, error) {
			return &shared.ChatConfigResponse{
				Model: &model.LLM{
					ModelName:      "gpt-4o-mini",
					ProviderConfig: &model.ProviderConfig{Provider: model.OpenAIProvider},
				},
			}, nil
		})
		event.Register("webSearch", func(e event.Event) (any, error) {
			stubMu.Lock()
			defer stubMu.Unlock()
			if stubSearchErr != nil {
				return nil, stubSearchErr
			}
			return stubSearchResp, nil
		})
	})
}

func setStubs(kbs []*shared.KnowledgeBaseInfo, files *shared.GetFileMetasResponse) {
	stubMu.Lock()
	defer stubMu.Unlock()
	stubKbs = kbs
	stubKbsErr = nil
	stubFileResp = files
	stubSearchResp = nil
	stubSearchErr = nil
}

// statusRecorder 收集过滤器发出的进度事件
type statusRecorder struct {
	events []*shared.StatusEvent
}

func (r *statusRecorder) emitter() shared.EventEmitter {
	return func(event *shared.StatusEvent) {
		r.events = append(r.events, event)
	}
}

func (r *statusRecorder) last() *shared.StatusEvent {
	if len(r.events) == 0 {
		return nil
	}
	return r.events[len(r.events)-1]
}

func testUser() *shared.UserInfo {
	return &shared.UserInfo{
		Id:       uuid.New(),
		Username: "tester",
	}
}

func testBody(query string) *shared.ChatRequest {
	return &shared.ChatRequest{
		Model: "gpt-4o-mini",
		Messages: []shared.ChatMessage{
			{Role: shared.RoleUser, Content: "你好"},
			{Role: shared.RoleAssistant, Content: "你好，有什么可以帮你？"},
			{Role: shared.RoleUser, Content: query},
		},
	}
}
