package llms

import (
	"github.com/google/uuid"
	"github.com/hurxxxx/open-webui-pilelines/model"
)

type CreateProviderConfigReq struct {
	Name        string             `json:"name"`
	Provider    string             `json:"provider"`
	Description string             `json:"description"`
	APIKey      string             `json:"apiKey"`
	APIBase     string             `json:"apiBase"`
	Status      model.ConfigStatus `json:"status"`
}

type CreateLLMReq struct {
	Name             string             `json:"name"`
	Description      string             `json:"description"`
	ProviderConfigID uuid.UUID          `json:"providerConfigId"`
	ModelName        string             `json:"modelName"`
	ModelType        model.LLMType      `json:"modelType"`
	Config           model.JSON         `json:"config"`
	Status           model.ConfigStatus `json:"status"`
}

type ListLLMsReq struct {
	ModelType model.LLMType `json:"modelType" form:"modelType"`
}
