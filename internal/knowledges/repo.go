package knowledges

import (
	"context"

	"github.com/google/uuid"
	"github.com/hurxxxx/open-webui-pilelines/model"
	"gorm.io/gorm"
)

type repository interface {
	createKnowledgeBase(ctx context.Context, m *model.KnowledgeBase) error
	listKnowledgeBases(ctx context.Context, userId uuid.UUID, filter KnowledgeBaseFilter) ([]*model.KnowledgeBase, int64, error)
	listReadableKnowledgeBases(ctx context.Context, userId uuid.UUID) ([]*model.KnowledgeBase, error)
	getKnowledgeBase(ctx context.Context, id uuid.UUID) (*model.KnowledgeBase, error)
	updateKnowledgeBase(ctx context.Context, tx *gorm.DB, kb *model.KnowledgeBase) error
	deleteKnowledgeBase(ctx context.Context, id uuid.UUID) error
	createFileChunks(ctx context.Context, chunks []*model.FileChunk) error
	getFileChunksByIds(ctx context.Context, ids []string) ([]*model.FileChunk, error)
	deleteFileChunks(ctx context.Context, tx *gorm.DB, kbId uuid.UUID, fileId uuid.UUID) error
	countKnowledgeBaseChunks(ctx context.Context, id uuid.UUID) (int64, error)
	transaction(ctx context.Context, f func(tx *gorm.DB) error) error
}
