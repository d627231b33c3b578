package auths

import (
	"context"
	"time"

	"github.com/hurxxxx/open-webui-pilelines/common/biz"
	"github.com/hurxxxx/open-webui-pilelines/shared"
	"github.com/mszlu521/thunder/database"
	"github.com/mszlu521/thunder/event"
	"github.com/mszlu521/thunder/logs"
)

type PublicService struct {
	repo repository
}

// GetUserById 其他模块通过事件总线获取用户信息
func (s *PublicService) GetUserById(e event.Event) (any, error) {
	request := e.Data.(*shared.GetUserRequest)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	u, err := s.repo.findById(ctx, request.UserId)
	if err != nil {
		logs.Errorf("get user error: %v", err)
		return nil, err
	}
	if u == nil {
		return nil, biz.ErrUserNotFound
	}
	return &shared.UserInfo{
		Id:       u.Id,
		Username: u.Username,
		Email:    u.Email,
	}, nil
}

func NewPublicService() *PublicService {
	return &PublicService{
		repo: newModel(database.GetPostgresDB().GormDB),
	}
}
