package llms

import (
	"context"

	"github.com/google/uuid"
	"github.com/hurxxxx/open-webui-pilelines/model"
)

type repository interface {
	createProviderConfig(ctx context.Context, m *model.ProviderConfig) error
	listProviderConfigs(ctx context.Context, userId uuid.UUID) ([]*model.ProviderConfig, int64, error)
	createLLM(ctx context.Context, llm *model.LLM) error
	listLLMs(ctx context.Context, userID uuid.UUID, filter LLMFilter) ([]*model.LLM, int64, error)
	getProviderConfig(ctx context.Context, provider string) (*model.ProviderConfig, error)
	getProviderConfigById(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*model.ProviderConfig, error)
	getByModelName(ctx context.Context, userId uuid.UUID, modelName string, modelType model.LLMType) (*model.LLM, error)
	getDefaultLLM(ctx context.Context, userId uuid.UUID, modelType model.LLMType) (*model.LLM, error)
}
