package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NTElissa/Tech-Enthusiast/internal/container"
	"github.com/NTElissa/Tech-Enthusiast/internal/domain/repository"
	handlers "github.com/NTElissa/Tech-Enthusiast/internal/interface/http"
	"github.com/NTElissa/Tech-Enthusiast/internal/interface/middleware"
)

// AuthModule wires the signup, login, verification and password-reset routes.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Users   repository.UserRepository
}

func NewAuthModule(h *handlers.AuthHandler, users repository.UserRepository) *AuthModule {
	return &AuthModule{Handler: h, Users: users}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	jwtm := container.GetJWT()

	signupLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIP(), nil)
	verifyLimiter := middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByIPAndPath(), nil)
	refreshLimiter := middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByIP(), nil)
	resetInitLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetConfirmLimiter := middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	// Signup is public, but a signed-in super admin may grant a role.
	rg.POST("/auth/signup", signupLimiter, middleware.OptionalAuth(jwtm, m.Users), m.Handler.Signup)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.GET("/auth/verify-email", verifyLimiter, m.Handler.VerifyEmail)
	rg.POST("/auth/refresh", refreshLimiter, m.Handler.Refresh)
	rg.POST("/auth/reset/init", resetInitLimiter, m.Handler.ResetInit)
	rg.POST("/auth/reset/confirm", resetConfirmLimiter, m.Handler.ResetConfirm)

	// Development convenience; the service refuses it outside development.
	rg.POST("/auth/dev/verify", m.Handler.DevVerify)
}
