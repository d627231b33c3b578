package router

import (
	"github.com/hurxxxx/open-webui-pilelines/internal/auths"

	"github.com/gin-gonic/gin"
)

type AuthRouter struct {
}

func (u *AuthRouter) Register(engine *gin.Engine) {
	userGroup := engine.Group("/api/v1/auth")
	{
		userHandler := auths.NewHandler()
		userGroup.POST("/register", userHandler.Register)
		userGroup.GET("/verify-email", userHandler.VerifyEmail)
		userGroup.POST("/login", userHandler.Login)
		userGroup.POST("/refresh-token", userHandler.RefreshToken)
	}
}
