package model

import "testing"

func TestToEmbeddingConfig(t *testing.T) {
	llm := &LLM{
		ModelName: "text-embedding-3-small",
		ProviderConfig: &ProviderConfig{
			Provider: OpenAIProvider,
			APIKey:   "sk-test",
			APIBase:  "https://api.openai.com/v1",
		},
	}
	cfg := llm.ToEmbeddingConfig()
	if cfg.OpenaiConfig == nil || cfg.OllamaConfig != nil {
		t.Fatalf("cfg = %+v, want openai only", cfg)
	}
	if cfg.OpenaiConfig.Model != "text-embedding-3-small" || cfg.OpenaiConfig.APIKey != "sk-test" {
		t.Errorf("openai config = %+v", cfg.OpenaiConfig)
	}
}

func TestToEmbeddingConfigOllama(t *testing.T) {
	llm := &LLM{
		ModelName: "nomic-embed-text",
		ProviderConfig: &ProviderConfig{
			Provider: OllamaProvider,
			APIBase:  "http://localhost:11434",
		},
	}
	cfg := llm.ToEmbeddingConfig()
	if cfg.OllamaConfig == nil || cfg.OpenaiConfig != nil {
		t.Fatalf("cfg = %+v, want ollama only", cfg)
	}
	if cfg.OllamaConfig.BaseURL != "http://localhost:11434" || cfg.OllamaConfig.Model != "nomic-embed-text" {
		t.Errorf("ollama config = %+v", cfg.OllamaConfig)
	}
}

func TestToEmbeddingConfigNoProvider(t *testing.T) {
	//没有厂商配置时退回openai兼容配置 只有模型名
	llm := &LLM{ModelName: "text-embedding-3-small"}
	cfg := llm.ToEmbeddingConfig()
	if cfg.OpenaiConfig == nil || cfg.OpenaiConfig.Model != "text-embedding-3-small" {
		t.Fatalf("cfg = %+v, want openai fallback", cfg)
	}
}
