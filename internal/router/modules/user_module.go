package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NTElissa/Tech-Enthusiast/internal/container"
	"github.com/NTElissa/Tech-Enthusiast/internal/domain/entity"
	"github.com/NTElissa/Tech-Enthusiast/internal/domain/repository"
	handlers "github.com/NTElissa/Tech-Enthusiast/internal/interface/http"
	"github.com/NTElissa/Tech-Enthusiast/internal/interface/middleware"
)

// UserModule wires the profile and user-administration routes.
// Profile routes need a session; administration is role-gated.
type UserModule struct {
	Handler *handlers.UserHandler
	Users   repository.UserRepository
}

func NewUserModule(h *handlers.UserHandler, users repository.UserRepository) *UserModule {
	return &UserModule{Handler: h, Users: users}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	jwtm := container.GetJWT()

	auth := rg.Group("/users")
	auth.Use(middleware.Auth(jwtm, m.Users))
	auth.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUser(), nil))
	{
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
		auth.POST("/profile/picture", m.Handler.UploadProfilePicture)

		admin := auth.Group("/")
		admin.Use(middleware.RequireRole(entity.RoleAdmin))
		{
			admin.GET("/all", m.Handler.ListUsers)
			admin.DELETE("/:userId", m.Handler.DeleteUser)
		}

		super := auth.Group("/")
		super.Use(middleware.RequireRole(entity.RoleSuperAdmin))
		{
			super.PUT("/:userId/role", m.Handler.UpdateUserRole)
		}
	}
}
