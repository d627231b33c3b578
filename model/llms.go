package model

import (
	"github.com/cloudwego/eino-ext/components/embedding/ollama"
	"github.com/cloudwego/eino-ext/components/embedding/openai"
	"github.com/google/uuid"
	"github.com/mszlu521/thunder/ai/einos"
)

type LLMType string

const (
	LLMTypeChat      LLMType = "chat"
	LLMTypeEmbedding LLMType = "embedding"
)

const (
	OpenAIProvider = "openai"
	OllamaProvider = "ollama"
	QwenProvider   = "qwen"
)

type ConfigStatus string

const (
	Enabled  ConfigStatus = "enabled"
	Disabled ConfigStatus = "disabled"
)

// ProviderConfig 大模型厂商的接入配置
type ProviderConfig struct {
	BaseModel
	UserID      uuid.UUID    `json:"userId" gorm:"column:user_id;type:uuid;not null;index"`
	Name        string       `json:"name" gorm:"column:name;type:varchar(255);not null"`
	Description string       `json:"description" gorm:"column:description;type:text"`
	Provider    string       `json:"provider" gorm:"column:provider;type:varchar(50);not null;index"`
	APIKey      string       `json:"-" gorm:"column:api_key;type:varchar(512)"`
	APIBase     string       `json:"apiBase" gorm:"column:api_base;type:varchar(512)"`
	Status      ConfigStatus `json:"status" gorm:"column:status;type:varchar(20);not null;default:'enabled'"`
}

func (*ProviderConfig) TableName() string {
	return "provider_configs"
}

// LLM 注册到系统中的一个具体模型 通过 ProviderConfig 指定厂商接入信息
type LLM struct {
	BaseModel
	UserID           uuid.UUID    `json:"userId" gorm:"column:user_id;type:uuid;not null;index"`
	Name             string       `json:"name" gorm:"column:name;type:varchar(255);not null"`
	Description      string       `json:"description" gorm:"column:description;type:text"`
	ProviderConfigID uuid.UUID    `json:"providerConfigId" gorm:"column:provider_config_id;type:uuid;not null;index"`
	ModelName        string       `json:"modelName" gorm:"column:model_name;type:varchar(255);not null;index"`
	ModelType        LLMType      `json:"modelType" gorm:"column:model_type;type:varchar(20);not null;index"`
	Config           JSON         `json:"config" gorm:"column:config;type:jsonb"`
	Status           ConfigStatus `json:"status" gorm:"column:status;type:varchar(20);not null;default:'enabled'"`

	ProviderConfig *ProviderConfig `json:"providerConfig" gorm:"foreignKey:ProviderConfigID"`
}

func (*LLM) TableName() string {
	return "llms"
}

// ToEmbeddingConfig 组装 einos.LoadEmbedding 需要的配置 按厂商填对应的配置项
// qwen走openai兼容接口 所以除ollama外都给OpenaiConfig 默认分支也用它
func (l *LLM) ToEmbeddingConfig() *einos.EmbeddingModelConfig {
	var apiKey, apiBase, provider string
	if l.ProviderConfig != nil {
		apiKey = l.ProviderConfig.APIKey
		apiBase = l.ProviderConfig.APIBase
		provider = l.ProviderConfig.Provider
	}
	cfg := &einos.EmbeddingModelConfig{}
	switch provider {
	case OllamaProvider:
		cfg.OllamaConfig = &ollama.EmbeddingConfig{
			BaseURL: apiBase,
			Model:   l.ModelName,
		}
	default:
		cfg.OpenaiConfig = &openai.EmbeddingConfig{
			APIKey:  apiKey,
			BaseURL: apiBase,
			Model:   l.ModelName,
		}
	}
	return cfg
}
