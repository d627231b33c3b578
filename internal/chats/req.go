package chats

import (
	"github.com/hurxxxx/open-webui-pilelines/shared"
)

type ChatMessageReq struct {
	Model    string               `json:"model"`
	Messages []shared.ChatMessage `json:"messages" binding:"required"`
}
