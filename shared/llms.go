package shared

import (
	"github.com/google/uuid"
	"github.com/hurxxxx/open-webui-pilelines/model"
)

type GetProviderConfigsRequest struct {
	LLMType   model.LLMType
	Provider  string
	ModelName string
}

type LLMParams struct {
	Provider  string
	Model     string
	ModelType model.LLMType
	UserId    uuid.UUID
}

type EmbeddingConfigResponse struct {
	Model *model.LLM
}

// GetChatConfigRequest 按模型名找可用的对话模型配置 名字为空取默认
type GetChatConfigRequest struct {
	UserId    uuid.UUID
	ModelName string
}

type ChatConfigResponse struct {
	Model *model.LLM
}
