package files

import (
	"context"
	"time"

	"github.com/hurxxxx/open-webui-pilelines/model"
	"github.com/hurxxxx/open-webui-pilelines/shared"
	"github.com/mszlu521/thunder/database"
	"github.com/mszlu521/thunder/event"
	"github.com/mszlu521/thunder/logs"
)

type PublicService struct {
	repo repository
}

// GetFileMetasByIds 按id批量取文件元数据 给知识库附件用
func (s *PublicService) GetFileMetasByIds(e event.Event) (any, error) {
	request := e.Data.(*shared.GetFileMetasRequest)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	list, err := s.repo.getByIds(ctx, request.FileIds)
	if err != nil {
		logs.Errorf("get file metas error: %v", err)
		return nil, err
	}
	return &shared.GetFileMetasResponse{
		Files: list,
	}, nil
}

func (s *PublicService) CreateFileMeta(e event.Event) (any, error) {
	fm := e.Data.(*model.FileMeta)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	if err := s.repo.create(ctx, fm); err != nil {
		logs.Errorf("create file meta error: %v", err)
		return nil, err
	}
	return fm, nil
}

func (s *PublicService) UpdateFileStatus(e event.Event) (any, error) {
	fm := e.Data.(*model.FileMeta)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	if err := s.repo.updateStatus(ctx, fm.ID, fm.Status, fm.ErrorMessage); err != nil {
		logs.Errorf("update file status error: %v", err)
		return nil, err
	}
	return nil, nil
}

func NewPublicService() *PublicService {
	return &PublicService{
		repo: newModels(database.GetPostgresDB().GormDB),
	}
}
