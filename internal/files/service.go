package files

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hurxxxx/open-webui-pilelines/common/biz"
	"github.com/mszlu521/thunder/database"
	"github.com/mszlu521/thunder/errs"
	"github.com/mszlu521/thunder/logs"
)

type service struct {
	repo repository
}

func (s *service) listFiles(ctx context.Context, userId uuid.UUID) (*ListFilesResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()
	list, total, err := s.repo.list(ctx, userId)
	if err != nil {
		logs.Errorf("list files error: %v", err)
		return nil, errs.DBError
	}
	return &ListFilesResponse{
		Files: list,
		Total: total,
	}, nil
}

func (s *service) getFile(ctx context.Context, id uuid.UUID) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()
	fm, err := s.repo.getById(ctx, id)
	if err != nil {
		logs.Errorf("get file error: %v", err)
		return nil, errs.DBError
	}
	if fm == nil {
		return nil, biz.ErrFileNotFound
	}
	return fm, nil
}

func (s *service) deleteFile(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()
	fm, err := s.repo.getById(ctx, id)
	if err != nil {
		logs.Errorf("get file error: %v", err)
		return errs.DBError
	}
	if fm == nil || fm.CreatorID != userId {
		return biz.ErrFileNotFound
	}
	if err := s.repo.delete(ctx, id); err != nil {
		logs.Errorf("delete file error: %v", err)
		return errs.DBError
	}
	return nil
}

func newService() *service {
	return &service{
		repo: newModels(database.GetPostgresDB().GormDB),
	}
}
