package shared

import "github.com/hurxxxx/open-webui-pilelines/model"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// 附件类型 知识库挂collection 联网结果挂web_search
const (
	AttachmentTypeCollection = "collection"
	AttachmentTypeWebSearch  = "web_search"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest 对话请求体 过滤器链在这个结构上原地加工
type ChatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
	Files    []*Attachment `json:"files,omitempty"`
	Stream   bool          `json:"stream,omitempty"`
}

// Attachment 挂在请求上的资料引用
type Attachment struct {
	Type        string             `json:"type"`
	Id          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	FileIds     []string           `json:"fileIds,omitempty"`
	Files       []*model.FileMeta  `json:"files,omitempty"`
	Results     []*WebSearchResult `json:"results,omitempty"`
}

// LastUserMessage 取最后一条用户消息
func (r *ChatRequest) LastUserMessage() string {
	for i := len(r.Messages) - 1; i >= 0; i-- {
		if r.Messages[i].Role == RoleUser {
			return r.Messages[i].Content
		}
	}
	return ""
}

// PrependSystemMessage 在消息列表头部插入system消息
func (r *ChatRequest) PrependSystemMessage(content string) {
	msg := ChatMessage{Role: RoleSystem, Content: content}
	r.Messages = append([]ChatMessage{msg}, r.Messages...)
}

type StatusData struct {
	Description string `json:"description"`
	Done        bool   `json:"done"`
}

// StatusEvent 过滤器处理过程中推给前端的进度事件
type StatusEvent struct {
	Type string     `json:"type"`
	Data StatusData `json:"data"`
}

// EventEmitter 推送进度事件 传nil时过滤器内部跳过
type EventEmitter func(event *StatusEvent)

func NewStatusEvent(description string, done bool) *StatusEvent {
	return &StatusEvent{
		Type: "status",
		Data: StatusData{Description: description, Done: done},
	}
}
