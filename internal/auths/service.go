package auths

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/smtp"
	"time"

	"github.com/google/uuid"
	"github.com/hurxxxx/open-webui-pilelines/common/biz"
	"github.com/hurxxxx/open-webui-pilelines/model"
	"github.com/mszlu521/thunder/cache"
	"github.com/mszlu521/thunder/config"
	"github.com/mszlu521/thunder/database"
	"github.com/mszlu521/thunder/errs"
	"github.com/mszlu521/thunder/logs"
	"github.com/mszlu521/thunder/tools/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type service struct {
	repo  repository
	cache *cache.RedisCache
}

func (s *service) register(req RegisterReq) (*RegisterResp, error) {
	//先检查用户名邮箱是否已经注册
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	u, err := s.repo.findByUsername(ctx, req.Username)
	if err != nil {
		logs.Errorf("register findByUsername error: %v", err)
		return nil, errs.DBError
	}
	if u != nil {
		return nil, biz.ErrUserNameExisted
	}
	u, err = s.repo.findByEmail(ctx, req.Email)
	if err != nil {
		logs.Errorf("register findByEmail error: %v", err)
		return nil, errs.DBError
	}
	if u != nil {
		return nil, biz.ErrEmailExisted
	}
	password, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logs.Errorf("register GenerateFromPassword error: %v", err)
		return nil, biz.ErrPasswordFormat
	}
	//生成邮件激活用的token 存redis 验证邮件时取出来比对
	tokenBytes := make([]byte, 16)
	if _, err := rand.Read(tokenBytes); err != nil {
		return nil, errs.DBError
	}
	token := hex.EncodeToString(tokenBytes)
	userId := uuid.New()
	tokenKey := fmt.Sprintf("verify_token:%s", token)
	err = s.cache.Set(tokenKey, userId.String(), 24*60*60)
	if err != nil {
		logs.Errorf("register Set error: %v", err)
		return nil, errs.DBError
	}
	user := model.User{
		Id:            userId,
		Username:      req.Username,
		Password:      string(password),
		Email:         req.Email,
		EmailVerified: false,
		LastLoginTime: time.Now(),
		CurrentPlan:   model.FreePlan,
		Status:        model.UserStatusPending,
		Avatar:        "default",
	}
	err = s.repo.transaction(ctx, func(tx *gorm.DB) error {
		err := s.repo.saveUser(ctx, tx, &user)
		if err != nil {
			logs.Errorf("register saveUser error: %v", err)
			return err
		}
		err = s.sendVerifyEmail(user.Email, user.Username, token)
		if err != nil {
			logs.Errorf("register sendVerifyEmail error: %v", err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, errs.DBError
	}
	return &RegisterResp{
		Message: "注册成功，请前往邮箱进行验证",
	}, nil
}

func (s *service) sendVerifyEmail(email string, username string, token string) error {
	emailConfig := config.GetConfig().Email
	addr := fmt.Sprintf("%s:%d", emailConfig.GetHost(), emailConfig.GetPort())
	auth := smtp.PlainAuth("", emailConfig.GetUsername(), emailConfig.GetPassword(), emailConfig.GetHost())
	to := []string{email}
	subject := "请验证您的邮箱地址"
	verifyURL := fmt.Sprintf("%s/api/v1/auth/verify-email?token=%s", emailConfig.GetBaseURL(), token)
	body := fmt.Sprintf("尊敬的 %s，\n\n感谢您注册我们的服务！\n\n请点击以下链接验证您的邮箱地址：\n%s\n\n如果链接无法点击，请复制并粘贴到浏览器地址栏中。\n\n谢谢！\n", username, verifyURL)
	msg := []byte("To: " + email + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" +
		body + "\r\n")
	return smtp.SendMail(addr, auth, emailConfig.GetFrom(), to, msg)
}

func (s *service) verifyEmail(token string) (any, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	tokenKey := fmt.Sprintf("verify_token:%s", token)
	userIdStr, err := s.cache.Get(tokenKey)
	if err != nil {
		logs.Errorf("verifyEmail Get error: %v", err)
		return nil, biz.ErrTokenInvalid
	}
	//用过的token设置1秒过期 等同删除
	defer s.cache.Set(tokenKey, "", 1)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		logs.Errorf("verifyEmail Parse error: %v", err)
		return nil, biz.ErrTokenInvalid
	}
	u, err := s.repo.findById(ctx, userId)
	if err != nil {
		logs.Errorf("verifyEmail findById error: %v", err)
		return nil, errs.DBError
	}
	if u == nil {
		return nil, biz.ErrUserNotFound
	}
	if u.EmailVerified {
		return nil, nil
	}
	u.EmailVerified = true
	u.Status = model.UserStatusNormal
	err = s.repo.transaction(ctx, func(tx *gorm.DB) error {
		return s.repo.updateUser(ctx, tx, u)
	})
	if err != nil {
		logs.Errorf("verifyEmail updateUser error: %v", err)
		return nil, errs.DBError
	}
	return nil, nil
}

func (s *service) login(req LoginReq) (*LoginResp, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	u, err := s.repo.findByUsernameOrEmail(ctx, req.Username)
	if err != nil {
		logs.Errorf("login findByUsernameOrEmail error: %v", err)
		return nil, errs.DBError
	}
	if u == nil {
		return nil, biz.ErrUserNotFound
	}
	if !u.EmailVerified {
		return nil, biz.ErrEmailNotVerified
	}
	err = bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password))
	if err != nil {
		return nil, biz.ErrPasswordInvalid
	}
	return s.token(u)
}

func (s *service) token(u *model.User) (*LoginResp, error) {
	expire := config.GetConfig().Jwt.GetExpire()
	refreshExpire := config.GetConfig().Jwt.GetRefresh()
	token, err := jwt.GenToken(u.Id.String(), u.Username, expire)
	if err != nil {
		logs.Errorf("token GenToken error: %v", err)
		return nil, biz.ErrTokenGen
	}
	refreshToken, err := jwt.GenToken(u.Id.String(), u.Username, refreshExpire)
	if err != nil {
		logs.Errorf("token GenToken error: %v", err)
		return nil, biz.ErrTokenGen
	}
	return &LoginResp{
		Expire:        time.Now().Add(expire).UnixMilli(),
		Token:         token,
		RefreshExpire: time.Now().Add(refreshExpire).UnixMilli(),
		RefreshToken:  refreshToken,
		UserInfo: &model.UserDTO{
			Id:          u.Id,
			Username:    u.Username,
			Avatar:      u.Avatar,
			Status:      u.Status,
			CurrentPlan: u.CurrentPlan,
		},
	}, nil
}

func (s *service) refreshToken(refreshToken string) (*LoginResp, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	claims, err := jwt.ParseToken(refreshToken)
	if err != nil {
		return nil, biz.ErrTokenInvalid
	}
	userId, err := uuid.Parse(claims.UserId)
	if err != nil {
		return nil, biz.ErrTokenInvalid
	}
	u, err := s.repo.findById(ctx, userId)
	if err != nil {
		logs.Errorf("refreshToken findById error: %v", err)
		return nil, errs.DBError
	}
	if u == nil {
		return nil, biz.ErrUserNotFound
	}
	return s.token(u)
}

func newService() *service {
	return &service{
		repo:  newModel(database.GetPostgresDB().GormDB),
		cache: cache.NewRedisCache(),
	}
}
