package knowledges

import (
	"context"

	"github.com/google/uuid"
	"github.com/hurxxxx/open-webui-pilelines/model"
	"github.com/mszlu521/thunder/gorms"
	"gorm.io/gorm"
)

type models struct {
	db *gorm.DB
}

type KnowledgeBaseFilter struct {
	Limit  int
	Offset int
	Search string
}

func (m *models) createKnowledgeBase(ctx context.Context, kb *model.KnowledgeBase) error {
	return m.db.WithContext(ctx).Create(kb).Error
}

func (m *models) listKnowledgeBases(ctx context.Context, userId uuid.UUID, filter KnowledgeBaseFilter) ([]*model.KnowledgeBase, int64, error) {
	var kbs []*model.KnowledgeBase
	var count int64
	query := m.db.WithContext(ctx).Model(&model.KnowledgeBase{})
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	query = query.Where("creator_id = ?", userId)
	query = query.Count(&count)
	query = query.Limit(filter.Limit).Offset(filter.Offset)
	return kbs, count, query.Find(&kbs).Error
}

// listReadableKnowledgeBases 自己创建的加上公开的 给过滤器做候选目录
func (m *models) listReadableKnowledgeBases(ctx context.Context, userId uuid.UUID) ([]*model.KnowledgeBase, error) {
	var kbs []*model.KnowledgeBase
	err := m.db.WithContext(ctx).
		Where("status = ?", model.KnowledgeBaseStatusActive).
		Where("creator_id = ? or visibility = ?", userId, model.VisibilityPublic).
		Order("created_at asc").
		Find(&kbs).Error
	return kbs, err
}

func (m *models) getKnowledgeBase(ctx context.Context, id uuid.UUID) (*model.KnowledgeBase, error) {
	var kb model.KnowledgeBase
	err := m.db.WithContext(ctx).Where("id = ?", id).First(&kb).Error
	if gorms.IsRecordNotFoundError(err) {
		return nil, nil
	}
	return &kb, err
}

func (m *models) updateKnowledgeBase(ctx context.Context, tx *gorm.DB, kb *model.KnowledgeBase) error {
	if tx == nil {
		tx = m.db
	}
	return tx.WithContext(ctx).Updates(kb).Error
}

func (m *models) deleteKnowledgeBase(ctx context.Context, id uuid.UUID) error {
	return m.db.WithContext(ctx).Delete(&model.KnowledgeBase{}, id).Error
}

func (m *models) createFileChunks(ctx context.Context, chunks []*model.FileChunk) error {
	return m.db.WithContext(ctx).CreateInBatches(chunks, len(chunks)).Error
}

func (m *models) getFileChunksByIds(ctx context.Context, ids []string) ([]*model.FileChunk, error) {
	var fileChunks []*model.FileChunk
	err := m.db.WithContext(ctx).Where("id in ?", ids).Find(&fileChunks).Error
	if err != nil {
		return nil, err
	}
	//手动排序 保证查询结果和ids的顺序一致
	chunkMap := make(map[string]*model.FileChunk)
	for _, chunk := range fileChunks {
		chunkMap[chunk.ID.String()] = chunk
	}
	orderChunks := make([]*model.FileChunk, 0, len(ids))
	for _, id := range ids {
		if chunk, ok := chunkMap[id]; ok {
			orderChunks = append(orderChunks, chunk)
		}
	}
	return orderChunks, nil
}

func (m *models) deleteFileChunks(ctx context.Context, tx *gorm.DB, kbId uuid.UUID, fileId uuid.UUID) error {
	if tx == nil {
		tx = m.db
	}
	//不走软删除 直接清掉
	return tx.WithContext(ctx).Where("file_id = ? and kb_id = ?", fileId, kbId).Unscoped().Delete(&model.FileChunk{}).Error
}

func (m *models) countKnowledgeBaseChunks(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := m.db.WithContext(ctx).Model(&model.FileChunk{}).Where("kb_id = ?", id).Count(&count).Error
	return count, err
}

func (m *models) transaction(ctx context.Context, f func(tx *gorm.DB) error) error {
	return m.db.WithContext(ctx).Transaction(f)
}

func newModels(db *gorm.DB) *models {
	return &models{
		db: db,
	}
}
