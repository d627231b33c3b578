package files

import (
	"context"

	"github.com/google/uuid"
	"github.com/hurxxxx/open-webui-pilelines/model"
)

type repository interface {
	create(ctx context.Context, fm *model.FileMeta) error
	getById(ctx context.Context, id uuid.UUID) (*model.FileMeta, error)
	getByIds(ctx context.Context, ids []string) ([]*model.FileMeta, error)
	list(ctx context.Context, userId uuid.UUID) ([]*model.FileMeta, int64, error)
	updateStatus(ctx context.Context, id uuid.UUID, status model.FileStatus, errMsg string) error
	delete(ctx context.Context, id uuid.UUID) error
}
