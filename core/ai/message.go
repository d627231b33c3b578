package ai

import (
	"encoding/json"

	"github.com/hurxxxx/open-webui-pilelines/shared"
)

// ChatEvent 这个是返回客户端的json消息
type ChatEvent struct {
	Action  string             `json:"action"`
	IsErr   bool               `json:"isErr"`
	Content string             `json:"content"`
	Status  *shared.StatusData `json:"status,omitempty"`
}

func BuildErrMessage(errMsg string) string {
	msg := ChatEvent{
		Action:  "chat_answer", //前端会监听这个action 根据这个action进行消息处理
		IsErr:   true,
		Content: errMsg,
	}
	bytes, _ := json.Marshal(msg)
	return string(bytes)
}

func BuildAnswerMessage(content string) string {
	msg := ChatEvent{
		Action:  "chat_answer",
		Content: content,
	}
	bytes, _ := json.Marshal(msg)
	return string(bytes)
}

// BuildStatusMessage 过滤器的进度事件也走同一条sse通道
func BuildStatusMessage(event *shared.StatusEvent) string {
	msg := ChatEvent{
		Action: "chat_status",
		Status: &event.Data,
	}
	bytes, _ := json.Marshal(msg)
	return string(bytes)
}
