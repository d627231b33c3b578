package chats

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	aiModel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	"github.com/hurxxxx/open-webui-pilelines/common/biz"
	"github.com/hurxxxx/open-webui-pilelines/core/ai"
	"github.com/hurxxxx/open-webui-pilelines/internal/filters"
	"github.com/hurxxxx/open-webui-pilelines/shared"
	"github.com/mszlu521/thunder/event"
	"github.com/mszlu521/thunder/logs"
)

type service struct {
	chain *filters.Chain
}

// chatMessage 一次对话 过滤器链先加工请求 再把附带的资料拼进上下文 最后流式生成
func (s *service) chatMessage(ctx context.Context, userID uuid.UUID, req ChatMessageReq) (<-chan string, <-chan error) {
	dataChan := make(chan string)
	errChan := make(chan error)
	go func() {
		defer func() {
			if err := recover(); err != nil {
				logs.Errorf("处理对话消息失败: %v", err)
				select {
				case errChan <- errors.New("internal server error"):
				case <-ctx.Done():
					logs.Warnf("发送取消 context Done")
				}
			}
			close(dataChan)
			close(errChan)
		}()
		user, err := s.getUser(userID)
		if err != nil {
			logs.Errorf("获取用户失败: %v", err)
			s.sendError(ctx, errChan, err)
			return
		}
		body := &shared.ChatRequest{
			Model:    req.Model,
			Messages: req.Messages,
			Stream:   true,
		}
		//过滤器的进度事件和回答复用同一条sse通道
		emitter := func(statusEvent *shared.StatusEvent) {
			s.sendData(ctx, dataChan, ai.BuildStatusMessage(statusEvent))
		}
		body = s.chain.Inlet(ctx, body, emitter, user)
		//把过滤器挂上的附件检索出来 拼成参考上下文
		ragContext := s.buildRagContext(ctx, userID, body)
		chatModel, err := s.buildChatModel(ctx, userID, body.Model)
		if err != nil {
			logs.Errorf("构建chatmodel失败: %v", err)
			s.sendError(ctx, errChan, err)
			return
		}
		messages := s.buildModelMessages(body, ragContext)
		reader, err := chatModel.Stream(ctx, messages)
		if err != nil {
			logs.Errorf("模型流式调用失败: %v", err)
			s.sendError(ctx, errChan, err)
			return
		}
		defer reader.Close()
		for {
			chunk, err := reader.Recv()
			if err == io.EOF {
				break
			}
			if err != nil {
				logs.Errorf("读取模型返回内容失败: %v", err)
				s.sendData(ctx, dataChan, ai.BuildErrMessage(err.Error()))
				return
			}
			select {
			case <-ctx.Done():
				logs.Warnf("客户端取消了请求")
				return
			default:
			}
			if chunk.Content == "" {
				continue
			}
			s.sendData(ctx, dataChan, ai.BuildAnswerMessage(chunk.Content))
		}
	}()
	return dataChan, errChan
}

func (s *service) getUser(userID uuid.UUID) (*shared.UserInfo, error) {
	trigger, err := event.Trigger("getUserById", &shared.GetUserRequest{
		UserId: userID,
	})
	if err != nil {
		return nil, err
	}
	user, ok := trigger.(*shared.UserInfo)
	if !ok || user == nil {
		return nil, biz.ErrUserNotFound
	}
	return user, nil
}

// buildRagContext 知识库附件做向量检索 联网附件直接取结果摘要
func (s *service) buildRagContext(ctx context.Context, userID uuid.UUID, body *shared.ChatRequest) string {
	query := body.LastUserMessage()
	var builder strings.Builder
	for _, attachment := range body.Files {
		switch attachment.Type {
		case shared.AttachmentTypeCollection:
			kbId, err := uuid.Parse(attachment.Id)
			if err != nil {
				continue
			}
			//客户端可能带过期的附件 检索前先确认知识库仍然可读
			if s.resolveKnowledgeBase(userID, kbId) == nil {
				continue
			}
			results, err := s.searchKnowledgeBase(ctx, userID, query, kbId)
			if err != nil {
				logs.Errorf("搜索知识库失败: %v", err)
				continue
			}
			for i, r := range results {
				//防止内容过长 只取前几位的结果
				if i >= 3 {
					break
				}
				builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, r.Content))
			}
		case shared.AttachmentTypeWebSearch:
			for _, r := range attachment.Results {
				builder.WriteString(fmt.Sprintf("- %s (%s): %s\n", r.Title, r.Url, r.Snippet))
			}
		}
	}
	if builder.Len() == 0 {
		return ""
	}
	return "【 参考以下资料回答问题 】\n" + builder.String()
}

func (s *service) resolveKnowledgeBase(userId uuid.UUID, kbId uuid.UUID) *shared.KnowledgeBaseInfo {
	trigger, err := event.Trigger("getKnowledgeBase", &shared.GetKnowledgeBaseRequest{
		UserId:          userId,
		KnowledgeBaseId: kbId,
	})
	if err != nil {
		logs.Errorf("获取知识库失败: %v", err)
		return nil
	}
	kb, ok := trigger.(*shared.KnowledgeBaseInfo)
	if !ok || kb == nil {
		return nil
	}
	return kb
}

func (s *service) searchKnowledgeBase(ctx context.Context, userId uuid.UUID, query string, kbId uuid.UUID) ([]*shared.SearchKnowledgeBaseResult, error) {
	trigger, err := event.Trigger("searchKnowledgeBase", &shared.SearchKnowledgeBaseRequest{
		UserId:          userId,
		KnowledgeBaseId: kbId,
		Query:           query,
	})
	if err != nil {
		return nil, err
	}
	response, ok := trigger.(*shared.SearchKnowledgeBaseResponse)
	if !ok || response == nil {
		return nil, nil
	}
	return response.Results, nil
}

func (s *service) buildChatModel(ctx context.Context, userId uuid.UUID, modelName string) (aiModel.ToolCallingChatModel, error) {
	trigger, err := event.Trigger("getChatConfig", &shared.GetChatConfigRequest{
		UserId:    userId,
		ModelName: modelName,
	})
	if err != nil {
		return nil, err
	}
	resp, ok := trigger.(*shared.ChatConfigResponse)
	if !ok || resp == nil || resp.Model == nil || resp.Model.ProviderConfig == nil {
		return nil, biz.ErrChatModelNotFound
	}
	return ai.BuildChatModel(ctx, resp.Model.ModelName, resp.Model.ProviderConfig)
}

func (s *service) buildModelMessages(body *shared.ChatRequest, ragContext string) []*schema.Message {
	var messages []*schema.Message
	for _, msg := range body.Messages {
		switch msg.Role {
		case shared.RoleSystem:
			messages = append(messages, schema.SystemMessage(msg.Content))
		case shared.RoleAssistant:
			messages = append(messages, schema.AssistantMessage(msg.Content, nil))
		default:
			messages = append(messages, schema.UserMessage(msg.Content))
		}
	}
	if ragContext != "" {
		//资料上下文紧跟在固定system消息之后
		ragMessage := schema.SystemMessage(ragContext)
		messages = append(messages[:1], append([]*schema.Message{ragMessage}, messages[1:]...)...)
	}
	return messages
}

func (s *service) sendData(ctx context.Context, dataChan chan string, data string) {
	select {
	case dataChan <- data:
	case <-ctx.Done():
		logs.Warnf("sendData 发送取消 context Done")
	}
}

func (s *service) sendError(ctx context.Context, errChan chan error, err error) {
	select {
	case errChan <- err:
	case <-ctx.Done():
		logs.Warnf("发送取消 context Done")
	}
}

func newService() *service {
	return &service{
		chain: filters.NewChain(
			filters.NewKnowledgeSelectionFilter(),
			filters.NewWebSearchFilter(),
		),
	}
}
