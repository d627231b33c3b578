package files

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

func (m *models) create(ctx context.Context, fm *model.FileMeta) error {
	return m.db.WithContext(ctx).Create(fm).Error
}

func (m *models) getById(ctx context.Context, id uuid.UUID) (*model.FileMeta, error) {
	var fm model.FileMeta
	err := m.db.WithContext(ctx).Where("id = ?", id).First(&fm).Error
	if gorms.IsRecordNotFoundError(err) {
		return nil, nil
	}
	return &fm, err
}

// getByIds 按id批量查 查不到的id直接丢弃 调用方按返回结果为准
func (m *models) getByIds(ctx context.Context, ids []string) ([]*model.FileMeta, error) {
	var list []*model.FileMeta
	if len(ids) == 0 {
		return list, nil
	}
	err := m.db.WithContext(ctx).Where("id in ?", ids).Find(&list).Error
	return list, err
}

func (m *models) list(ctx context.Context, userId uuid.UUID) ([]*model.FileMeta, int64, error) {
	var list []*model.FileMeta
	var count int64
	query := m.db.WithContext(ctx).Model(&model.FileMeta{}).Where("creator_id = ?", userId)
	return list, count, query.Order("created_at desc").Find(&list).Count(&count).Error
}

func (m *models) updateStatus(ctx context.Context, id uuid.UUID, status model.FileStatus, errMsg string) error {
	updates := map[string]any{
		"status": status,
	}
	if errMsg != "" {
		updates["error_message"] = errMsg
	}
	return m.db.WithContext(ctx).Model(&model.FileMeta{}).Where("id = ?", id).Updates(updates).Error
}

func (m *models) delete(ctx context.Context, id uuid.UUID) error {
	return m.db.WithContext(ctx).Where("id = ?", id).Delete(&model.FileMeta{}).Error
}

func newModels(db *gorm.DB) *models {
	return &models{
		db: db,
	}
}
