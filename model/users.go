package model

import (
	"time"

	"github.com/google/uuid"
)

type UserPlan string

const (
	FreePlan UserPlan = "free"
	ProPlan  UserPlan = "pro"
)

type UserStatus string

const (
	UserStatusPending UserStatus = "pending"
	UserStatusNormal  UserStatus = "normal"
	UserStatusBanned  UserStatus = "banned"
)

type User struct {
	Id            uuid.UUID  `json:"id" gorm:"column:id;type:uuid;primaryKey"`
	Username      string     `json:"username" gorm:"column:username;type:varchar(100);not null;uniqueIndex"`
	Password      string     `json:"-" gorm:"column:password;type:varchar(255);not null"`
	Email         string     `json:"email" gorm:"column:email;type:varchar(255);not null;uniqueIndex"`
	EmailVerified bool       `json:"emailVerified" gorm:"column:email_verified;type:boolean;not null;default:false"`
	Avatar        string     `json:"avatar" gorm:"column:avatar;type:varchar(255)"`
	CurrentPlan   UserPlan   `json:"currentPlan" gorm:"column:current_plan;type:varchar(20);not null;default:'free'"`
	Status        UserStatus `json:"status" gorm:"column:status;type:varchar(20);not null;default:'pending'"`
	LastLoginTime time.Time  `json:"lastLoginTime" gorm:"column:last_login_time"`
	CreatedAt     time.Time  `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" gorm:"column:updated_at"`
}

func (*User) TableName() string {
	return "users"
}

// UserDTO 返回给客户端的用户信息 不包含密码等敏感字段
type UserDTO struct {
	Id          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Avatar      string     `json:"avatar"`
	Status      UserStatus `json:"status"`
	CurrentPlan UserPlan   `json:"currentPlan"`
}
