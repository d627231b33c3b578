package ai

import (
	"context"

	"github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino-ext/components/model/qwen"
	aiModel "github.com/cloudwego/eino/components/model"
	"github.com/hurxxxx/open-webui-pilelines/model"
)

// BuildChatModel 根据提供商配置构建对话模型
func BuildChatModel(ctx context.Context, modelName string, config *model.ProviderConfig) (aiModel.ToolCallingChatModel, error) {
	var chatModel aiModel.ToolCallingChatModel
	var err error
	if config.Provider == model.OllamaProvider {
		chatModel, err = ollama.NewChatModel(ctx, &ollama.ChatModelConfig{
			Model:   modelName,
			BaseURL: config.APIBase,
		})
	} else if config.Provider == model.QwenProvider {
		chatModel, err = qwen.NewChatModel(ctx, &qwen.ChatModelConfig{
			Model:   modelName,
			BaseURL: config.APIBase,
			APIKey:  config.APIKey,
		})
	} else {
		//默认openai 大部分厂商都兼容openai的方式
		chatModel, err = openai.NewChatModel(ctx, &openai.ChatModelConfig{
			Model:   modelName,
			BaseURL: config.APIBase,
			APIKey:  config.APIKey,
		})
	}
	return chatModel, err
}
