package kbs

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// 向量库元数据里固定带这几个key 检索过滤和父子块回溯都靠它们
const (
	MetaKeyFileId   = "file_id"
	MetaKeyParentId = "parent_id"
	MetaKeyKbId     = "kb_id"
)

type SearchFilter map[string]any

type VectorStore interface {
	Store(ctx context.Context, docs []*schema.Document) error
	Search(ctx context.Context, query string, topK int, filters SearchFilter) ([]*schema.Document, error)
}
