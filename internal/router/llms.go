package router

import (
	"github.com/hurxxxx/open-webui-pilelines/internal/llms"

	"github.com/gin-gonic/gin"
)

type LLMRouter struct {
}

func (u *LLMRouter) Register(engine *gin.Engine) {
	llmsGroup := engine.Group("/api/v1/llms")
	{
		llmsHandler := llms.NewHandler()
		llmsGroup.POST("/provider-configs", llmsHandler.CreateProviderConfig)
		llmsGroup.POST("/provider-configs/list", llmsHandler.ListProviderConfigs)
		llmsGroup.POST("/", llmsHandler.CreateLLM)
		llmsGroup.POST("/list", llmsHandler.ListLLMs)
	}
}
