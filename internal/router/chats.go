package router

import (
	"github.com/hurxxxx/open-webui-pilelines/internal/chats"

	"github.com/gin-gonic/gin"
)

type ChatRouter struct {
}

func (u *ChatRouter) Register(engine *gin.Engine) {
	chatsGroup := engine.Group("/api/v1/chats")
	{
		chatsHandler := chats.NewHandler()
		chatsGroup.POST("/completions", chatsHandler.ChatMessage)
	}
}
