package router

import (
	"github.com/hurxxxx/open-webui-pilelines/internal/tools"

	"github.com/gin-gonic/gin"
)

type ToolRouter struct {
}

func (u *ToolRouter) Register(engine *gin.Engine) {
	toolsGroup := engine.Group("/api/v1/tools")
	{
		toolsHandler := tools.NewHandler()
		toolsGroup.POST("/", toolsHandler.CreateTool)
		toolsGroup.POST("/list", toolsHandler.ListTools)
		toolsGroup.PUT("/:id", toolsHandler.UpdateTool)
		toolsGroup.DELETE("/:id", toolsHandler.DeleteTool)
		toolsGroup.POST("/test", toolsHandler.TestTool)
	}
}
