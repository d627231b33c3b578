package filters

import (
	"context"
	"fmt"
	"strings"

	aiModel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	"github.com/hurxxxx/open-webui-pilelines/common/biz"
	"github.com/hurxxxx/open-webui-pilelines/common/utils"
	"github.com/hurxxxx/open-webui-pilelines/core/ai"
	"github.com/hurxxxx/open-webui-pilelines/model"
	"github.com/hurxxxx/open-webui-pilelines/shared"
	"github.com/mszlu521/thunder/event"
	"github.com/mszlu521/thunder/logs"
)

type buildModelFunc func(ctx context.Context, modelName string, config *model.ProviderConfig) (aiModel.ToolCallingChatModel, error)

// KnowledgeSelectionFilter 让大模型从用户可读的知识库里挑出相关的几个
// 挑中的以collection附件挂到请求上 任何一步失败都放行原请求
type KnowledgeSelectionFilter struct {
	Status     bool //是否推送进度事件
	buildModel buildModelFunc
}

func NewKnowledgeSelectionFilter() *KnowledgeSelectionFilter {
	return &KnowledgeSelectionFilter{
		Status:     true,
		buildModel: ai.BuildChatModel,
	}
}

func (f *KnowledgeSelectionFilter) Name() string {
	return "knowledge_selection"
}

func (f *KnowledgeSelectionFilter) Inlet(ctx context.Context, body *shared.ChatRequest, emitter shared.EventEmitter, user *shared.UserInfo) *shared.ChatRequest {
	if !f.Status {
		emitter = nil
	}
	if user == nil || body.LastUserMessage() == "" {
		return body
	}
	emitStatus(emitter, "Searching for appropriate tools...", false)
	selected, err := f.selectKnowledgeBases(ctx, body, user)
	if err != nil {
		logs.Errorf("select knowledge bases error: %v", err)
		emitStatus(emitter, fmt.Sprintf("Error occurred while processing the request: %v", err), true)
		return body
	}
	if len(selected) == 0 {
		emitStatus(emitter, "No matching knowledge base found.", true)
		return body
	}
	var names []string
	for _, kb := range selected {
		attachment := &shared.Attachment{
			Type:        shared.AttachmentTypeCollection,
			Id:          kb.Id.String(),
			Name:        kb.Name,
			Description: kb.Description,
			FileIds:     kb.FileIds,
		}
		//文件元数据查不到不算失败 附件里只是少了files明细
		if files, err := f.resolveFileMetas(kb.FileIds); err != nil {
			logs.Warnf("resolve file metas error: %v", err)
		} else {
			attachment.Files = files
		}
		body.Files = append(body.Files, attachment)
		names = append(names, kb.Name)
	}
	emitStatus(emitter, fmt.Sprintf("Matching knowledge base found: %s", strings.Join(names, ", ")), true)
	return body
}

func (f *KnowledgeSelectionFilter) selectKnowledgeBases(ctx context.Context, body *shared.ChatRequest, user *shared.UserInfo) ([]*shared.KnowledgeBaseInfo, error) {
	trigger, err := event.Trigger("listKnowledgeBases", &shared.ListKnowledgeBasesRequest{
		UserId: user.Id,
	})
	if err != nil {
		return nil, err
	}
	kbList, _ := trigger.([]*shared.KnowledgeBaseInfo)
	if len(kbList) == 0 {
		return nil, nil
	}
	content, err := f.generate(ctx, body, user,
		buildSelectionSystemPrompt(kbList),
		buildHistoryPrompt(body))
	if err != nil {
		return nil, err
	}
	parsed, ok := utils.ExtractLooseJSON(content)
	if !ok {
		//模型回了None或者纯文本 当作没有选择
		return nil, nil
	}
	kbMap := make(map[string]*shared.KnowledgeBaseInfo, len(kbList))
	for _, kb := range kbList {
		kbMap[kb.Id.String()] = kb
	}
	var selected []*shared.KnowledgeBaseInfo
	seen := make(map[string]struct{})
	for _, id := range parseSelectedIds(parsed) {
		if len(selected) >= maxSelections {
			break
		}
		kb, exists := kbMap[id]
		if !exists {
			//模型幻觉出的id 跳过
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		selected = append(selected, kb)
	}
	return selected, nil
}

// parseSelectedIds 兼容模型的几种返回形态
// {"selected_knowledge_bases":[{"id":..},..]} 单个{"id":..} 或裸数组
func parseSelectedIds(parsed any) []string {
	var items []any
	switch v := parsed.(type) {
	case map[string]any:
		if list, ok := v["selected_knowledge_bases"].([]any); ok {
			items = list
		} else {
			items = []any{v}
		}
	case []any:
		items = v
	default:
		return nil
	}
	var ids []string
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if id, ok := obj["id"].(string); ok && id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func (f *KnowledgeSelectionFilter) resolveFileMetas(fileIds []string) ([]*model.FileMeta, error) {
	if len(fileIds) == 0 {
		return nil, nil
	}
	trigger, err := event.Trigger("getFileMetasByIds", &shared.GetFileMetasRequest{
		FileIds: fileIds,
	})
	if err != nil {
		return nil, err
	}
	//事件可能返回有类型但值为nil的指针 必须判nil再取字段
	resp, ok := trigger.(*shared.GetFileMetasResponse)
	if !ok || resp == nil {
		return nil, nil
	}
	return resp.Files, nil
}

func (f *KnowledgeSelectionFilter) generate(ctx context.Context, body *shared.ChatRequest, user *shared.UserInfo, systemPrompt string, userPrompt string) (string, error) {
	chatModel, err := resolveChatModel(ctx, f.buildModel, body.Model, user.Id)
	if err != nil {
		return "", err
	}
	message, err := chatModel.Generate(ctx, []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(userPrompt),
	})
	if err != nil {
		return "", err
	}
	return message.Content, nil
}

func resolveChatModel(ctx context.Context, build buildModelFunc, modelName string, userId uuid.UUID) (aiModel.ToolCallingChatModel, error) {
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
	return build(ctx, resp.Model.ModelName, resp.Model.ProviderConfig)
}
