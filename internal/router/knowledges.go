package router

import (
	"github.com/hurxxxx/open-webui-pilelines/internal/knowledges"

	"github.com/gin-gonic/gin"
)

type KnowledgeBaseRouter struct {
}

func (u *KnowledgeBaseRouter) Register(engine *gin.Engine) {
	knowledgesGroup := engine.Group("/api/v1/knowledge")
	{
		knowledgesHandler := knowledges.NewHandler()
		knowledgesGroup.POST("/", knowledgesHandler.CreateKnowledgeBase)
		knowledgesGroup.POST("/list", knowledgesHandler.ListKnowledgeBases)
		knowledgesGroup.GET("/:id", knowledgesHandler.GetKnowledgeBase)
		knowledgesGroup.PUT("/:id", knowledgesHandler.UpdateKnowledgeBase)
		knowledgesGroup.DELETE("/:id", knowledgesHandler.DeleteKnowledgeBase)
		knowledgesGroup.POST("/:id/search", knowledgesHandler.SearchKnowledgeBase)
		knowledgesGroup.POST("/:id/files", knowledgesHandler.UploadFile)
		knowledgesGroup.DELETE("/:id/files/:fileId", knowledgesHandler.RemoveFile)
	}
}
