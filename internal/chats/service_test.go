package chats

import (
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/hurxxxx/open-webui-pilelines/shared"
)

func TestBuildModelMessages(t *testing.T) {
	s := &service{}
	body := &shared.ChatRequest{
		Messages: []shared.ChatMessage{
			{Role: shared.RoleSystem, Content: "你是个助手"},
			{Role: shared.RoleUser, Content: "你好"},
			{Role: shared.RoleAssistant, Content: "你好，有什么可以帮你？"},
			{Role: shared.RoleUser, Content: "Go的切片怎么扩容"},
		},
	}
	messages := s.buildModelMessages(body, "【 参考以下资料回答问题 】\n1. 切片扩容规则")

	if len(messages) != 5 {
		t.Fatalf("messages = %d, want 5", len(messages))
	}
	if messages[0].Role != schema.System || messages[0].Content != "你是个助手" {
		t.Errorf("messages[0] = %+v", messages[0])
	}
	//资料上下文插在固定system消息之后
	if messages[1].Role != schema.System || !strings.Contains(messages[1].Content, "切片扩容规则") {
		t.Errorf("messages[1] = %+v", messages[1])
	}
	if messages[4].Role != schema.User {
		t.Errorf("messages[4].role = %s, want user", messages[4].Role)
	}
}

func TestBuildModelMessagesNoContext(t *testing.T) {
	s := &service{}
	body := &shared.ChatRequest{
		Messages: []shared.ChatMessage{
			{Role: shared.RoleUser, Content: "你好"},
		},
	}
	messages := s.buildModelMessages(body, "")
	if len(messages) != 1 || messages[0].Role != schema.User {
		t.Fatalf("messages = %+v", messages)
	}
}
