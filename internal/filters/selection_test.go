package filters

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/hurxxxx/open-webui-pilelines/model"
	"github.com/hurxxxx/open-webui-pilelines/shared"
)

func testKbs() []*shared.KnowledgeBaseInfo {
	return []*shared.KnowledgeBaseInfo{
		{
			Id:          uuid.New(),
			Name:        "Go语言文档",
			Description: "Go标准库和语言规范",
			FileIds:     []string{"f1", "f2"},
		},
		{
			Id:          uuid.New(),
			Name:        "菜谱大全",
			Description: "家常菜做法",
			FileIds:     []string{"f3"},
		},
	}
}

func newSelectionFilter(content string, err error) *KnowledgeSelectionFilter {
	f := NewKnowledgeSelectionFilter()
	f.buildModel = fakeBuildModel(content, err)
	return f
}

func TestKnowledgeSelection(t *testing.T) {
	registerStubEvents()
	kbs := testKbs()
	fileMeta := &model.FileMeta{Name: "guide.pdf"}
	setStubs(kbs, &shared.GetFileMetasResponse{Files: []*model.FileMeta{fileMeta}})

	content := fmt.Sprintf(`{"selected_knowledge_bases":[{"id":"%s","name":"%s"}]}`, kbs[0].Id, kbs[0].Name)
	f := newSelectionFilter(content, nil)
	rec := &statusRecorder{}
	body := f.Inlet(context.Background(), testBody("Go的切片扩容规则是什么"), rec.emitter(), testUser())

	if len(body.Files) != 1 {
		t.Fatalf("files = %d, want 1", len(body.Files))
	}
	attachment := body.Files[0]
	if attachment.Type != shared.AttachmentTypeCollection {
		t.Errorf("type = %s, want collection", attachment.Type)
	}
	if attachment.Id != kbs[0].Id.String() {
		t.Errorf("id = %s, want %s", attachment.Id, kbs[0].Id)
	}
	if len(attachment.FileIds) != 2 || attachment.FileIds[0] != "f1" {
		t.Errorf("fileIds = %v, want [f1 f2]", attachment.FileIds)
	}
	if len(attachment.Files) != 1 || attachment.Files[0].Name != "guide.pdf" {
		t.Errorf("files = %v, want guide.pdf", attachment.Files)
	}
	last := rec.last()
	if last == nil || !last.Data.Done {
		t.Fatalf("last status = %v, want done", last)
	}
	if !strings.Contains(last.Data.Description, kbs[0].Name) {
		t.Errorf("description = %s, want contains %s", last.Data.Description, kbs[0].Name)
	}
}

func TestKnowledgeSelectionNone(t *testing.T) {
	registerStubEvents()
	setStubs(testKbs(), nil)

	f := newSelectionFilter("None", nil)
	rec := &statusRecorder{}
	body := f.Inlet(context.Background(), testBody("今天心情不错"), rec.emitter(), testUser())

	if len(body.Files) != 0 {
		t.Errorf("files = %d, want 0", len(body.Files))
	}
	last := rec.last()
	if last == nil || last.Data.Description != "No matching knowledge base found." || !last.Data.Done {
		t.Errorf("last status = %+v", last)
	}
}

func TestKnowledgeSelectionLooseJSON(t *testing.T) {
	registerStubEvents()
	kbs := testKbs()
	setStubs(kbs, nil)

	//带代码块围栏 单引号 裸key的脏输出也要能解析出来
	content := fmt.Sprintf("Sure! Here is my selection:\n```json\n{selected_knowledge_bases: [{'id': '%s', 'name': '%s'}]}\n```", kbs[1].Id, kbs[1].Name)
	f := newSelectionFilter(content, nil)
	rec := &statusRecorder{}
	body := f.Inlet(context.Background(), testBody("红烧肉怎么做"), rec.emitter(), testUser())

	if len(body.Files) != 1 {
		t.Fatalf("files = %d, want 1", len(body.Files))
	}
	if body.Files[0].Name != kbs[1].Name {
		t.Errorf("name = %s, want %s", body.Files[0].Name, kbs[1].Name)
	}
}

func TestKnowledgeSelectionSingleObject(t *testing.T) {
	registerStubEvents()
	kbs := testKbs()
	setStubs(kbs, nil)

	content := fmt.Sprintf(`{"id":"%s","name":"%s"}`, kbs[0].Id, kbs[0].Name)
	f := newSelectionFilter(content, nil)
	body := f.Inlet(context.Background(), testBody("slice和array的区别"), nil, testUser())

	if len(body.Files) != 1 {
		t.Fatalf("files = %d, want 1", len(body.Files))
	}
}

func TestKnowledgeSelectionCap(t *testing.T) {
	registerStubEvents()
	var kbs []*shared.KnowledgeBaseInfo
	for i := 0; i < 5; i++ {
		kbs = append(kbs, &shared.KnowledgeBaseInfo{
			Id:   uuid.New(),
			Name: fmt.Sprintf("kb-%d", i),
		})
	}
	setStubs(kbs, nil)

	var items []string
	for _, kb := range kbs {
		items = append(items, fmt.Sprintf(`{"id":"%s","name":"%s"}`, kb.Id, kb.Name))
	}
	content := fmt.Sprintf(`{"selected_knowledge_bases":[%s]}`, strings.Join(items, ","))
	f := newSelectionFilter(content, nil)
	body := f.Inlet(context.Background(), testBody("全都要"), nil, testUser())

	if len(body.Files) != maxSelections {
		t.Errorf("files = %d, want %d", len(body.Files), maxSelections)
	}
}

func TestKnowledgeSelectionUnknownId(t *testing.T) {
	registerStubEvents()
	setStubs(testKbs(), nil)

	//模型幻觉出的id 跳过而不是报错
	f := newSelectionFilter(`{"selected_knowledge_bases":[{"id":"not-a-real-id","name":"ghost"}]}`, nil)
	rec := &statusRecorder{}
	body := f.Inlet(context.Background(), testBody("随便问问"), rec.emitter(), testUser())

	if len(body.Files) != 0 {
		t.Errorf("files = %d, want 0", len(body.Files))
	}
	last := rec.last()
	if last == nil || last.Data.Description != "No matching knowledge base found." {
		t.Errorf("last status = %+v", last)
	}
}

func TestKnowledgeSelectionModelError(t *testing.T) {
	registerStubEvents()
	setStubs(testKbs(), nil)

	f := newSelectionFilter("", errors.New("model unavailable"))
	rec := &statusRecorder{}
	in := testBody("Go的GC机制")
	body := f.Inlet(context.Background(), in, rec.emitter(), testUser())

	//失败也要放行原请求
	if body != in {
		t.Fatalf("body not passed through on error")
	}
	if len(body.Files) != 0 {
		t.Errorf("files = %d, want 0", len(body.Files))
	}
	last := rec.last()
	if last == nil || !strings.HasPrefix(last.Data.Description, "Error occurred while processing the request") || !last.Data.Done {
		t.Errorf("last status = %+v", last)
	}
}

func TestKnowledgeSelectionNilFileMetaResponse(t *testing.T) {
	registerStubEvents()
	kbs := testKbs()
	//事件处理器返回nil指针时 接口值带类型不等于nil 直接取字段会崩
	setStubs(kbs, nil)

	content := fmt.Sprintf(`{"selected_knowledge_bases":[{"id":"%s","name":"%s"}]}`, kbs[0].Id, kbs[0].Name)
	f := newSelectionFilter(content, nil)
	rec := &statusRecorder{}
	body := f.Inlet(context.Background(), testBody("Go的接口怎么用"), rec.emitter(), testUser())

	if len(body.Files) != 1 {
		t.Fatalf("files = %d, want 1", len(body.Files))
	}
	attachment := body.Files[0]
	if len(attachment.Files) != 0 {
		t.Errorf("files detail = %v, want empty", attachment.Files)
	}
	if len(attachment.FileIds) != 2 {
		t.Errorf("fileIds = %v, want [f1 f2]", attachment.FileIds)
	}
	last := rec.last()
	if last == nil || !last.Data.Done || !strings.Contains(last.Data.Description, kbs[0].Name) {
		t.Errorf("last status = %+v", last)
	}
}

func TestKnowledgeSelectionNilUser(t *testing.T) {
	registerStubEvents()
	setStubs(testKbs(), nil)

	f := newSelectionFilter("None", nil)
	rec := &statusRecorder{}
	body := f.Inlet(context.Background(), testBody("你好"), rec.emitter(), nil)

	if len(body.Files) != 0 || len(rec.events) != 0 {
		t.Errorf("nil user should be a no-op, files=%d events=%d", len(body.Files), len(rec.events))
	}
}

func TestChainPrependsSystemMessage(t *testing.T) {
	registerStubEvents()
	setStubs(nil, nil)

	chain := NewChain(newSelectionFilter("", errors.New("model unavailable")))
	body := chain.Inlet(context.Background(), testBody("hello"), nil, testUser())

	if body.Messages[0].Role != shared.RoleSystem {
		t.Fatalf("messages[0].role = %s, want system", body.Messages[0].Role)
	}
	if body.Messages[0].Content != contextMessage {
		t.Errorf("messages[0].content mismatch")
	}
	count := 0
	for _, msg := range body.Messages {
		if msg.Role == shared.RoleSystem && msg.Content == contextMessage {
			count++
		}
	}
	//成功失败都只插一条
	if count != 1 {
		t.Errorf("context message count = %d, want 1", count)
	}
}
