package shared

import "github.com/google/uuid"

type GetUserRequest struct {
	UserId uuid.UUID `json:"userId"`
}

type UserInfo struct {
	Id       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}
