package knowledges

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/hurxxxx/open-webui-pilelines/core/ai/kbs"
	"github.com/hurxxxx/open-webui-pilelines/model"
)

func testFileMeta() *model.FileMeta {
	return &model.FileMeta{
		BaseModel: model.BaseModel{ID: uuid.New()},
		Name:      "Go入门指南.md",
		FileType:  ".md",
	}
}

func testKb() *model.KnowledgeBase {
	return &model.KnowledgeBase{
		BaseModel: model.BaseModel{ID: uuid.New()},
	}
}

func TestProcessMarkdown(t *testing.T) {
	content := `# Go入门指南

## 变量

### 声明
var和:=两种方式。

### 零值
未初始化的变量是零值。

## 函数

### 多返回值
函数可以返回多个值。
`
	s := &service{}
	fm := testFileMeta()
	kb := testKb()
	parents, children := s.processMarkdown(content, fm, kb)

	//h1标题前导块单独成段 加上两个h2段
	if len(parents) != 3 {
		t.Fatalf("parents = %d, want 3", len(parents))
	}
	if len(children) < 3 {
		t.Fatalf("children = %d, want >= 3", len(children))
	}
	for _, p := range parents {
		if p.FileID != fm.ID || p.KnowledgeBaseID != kb.ID {
			t.Errorf("parent chunk ids mismatch: %+v", p)
		}
		if p.TokenCount <= 0 {
			t.Errorf("token count = %d, want > 0", p.TokenCount)
		}
	}
	//子块带层级前缀 并且元数据能回溯到父块
	child := children[0]
	if !strings.Contains(child.Content, "【文档:Go入门指南】") {
		t.Errorf("child content missing breadcrumb: %s", child.Content)
	}
	parentId, _ := child.MetaData[kbs.MetaKeyParentId].(string)
	if parentId != parents[0].ID.String() {
		t.Errorf("parent_id = %s, want %s", parentId, parents[0].ID)
	}
	if fileId, _ := child.MetaData[kbs.MetaKeyFileId].(string); fileId != fm.ID.String() {
		t.Errorf("file_id = %s, want %s", fileId, fm.ID)
	}
	if kbId, _ := child.MetaData[kbs.MetaKeyKbId].(string); kbId != kb.ID.String() {
		t.Errorf("kb_id = %s, want %s", kbId, kb.ID)
	}
}

func TestCleanPDFText(t *testing.T) {
	content := strings.Repeat("这是一段足够长的正文内容，用来凑出分段需要的长度，避免被过滤。", 30) + "。\n\n" +
		"短行\n\n" +
		strings.Repeat("另一段同样足够长的正文内容，和上一段的内容并不相同，保证不会被去重。", 30) + "。\n"
	parents := cleanPDFText(content)
	if len(parents) < 2 {
		t.Fatalf("parents = %d, want >= 2", len(parents))
	}
	//重复段落要去掉
	dup := parents[0] + "\n\n" + parents[0]
	deduped := cleanPDFText(dup)
	if len(deduped) != 1 {
		t.Errorf("deduped = %d, want 1", len(deduped))
	}
}

func TestBuildIndex(t *testing.T) {
	s := &service{}
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	index := s.buildIndex(id)
	if index != "kb_6ba7b810_9dad_11d1_80b4_00c04fd430c8" {
		t.Errorf("index = %s", index)
	}
}
