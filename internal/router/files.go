package router

import (
	"github.com/hurxxxx/open-webui-pilelines/internal/files"

	"github.com/gin-gonic/gin"
)

type FileRouter struct {
}

func (u *FileRouter) Register(engine *gin.Engine) {
	filesGroup := engine.Group("/api/v1/files")
	{
		filesHandler := files.NewHandler()
		filesGroup.POST("/list", filesHandler.ListFiles)
		filesGroup.GET("/:id", filesHandler.GetFile)
		filesGroup.DELETE("/:id", filesHandler.DeleteFile)
	}
}
