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

// BlogModule wires the post routes.
// Public: list, detail, search. Protected: update, delete, like.
// Creation additionally requires the admin role.
type BlogModule struct {
	Handler *handlers.PostHandler
	Users   repository.UserRepository
}

func NewBlogModule(h *handlers.PostHandler, users repository.UserRepository) *BlogModule {
	return &BlogModule{Handler: h, Users: users}
}

func (m *BlogModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	jwtm := container.GetJWT()

	readLimiter := middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	searchLimiter := middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByIPAndPath(), nil)

	// Listing honors status filters for admins only.
	rg.GET("/posts", readLimiter, middleware.OptionalAuth(jwtm, m.Users), m.Handler.List)
	rg.GET("/posts/search", searchLimiter, m.Handler.Search)
	rg.GET("/posts/:id", readLimiter, m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(jwtm, m.Users))
	auth.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUser(), nil))
	{
		auth.POST("/posts", middleware.RequireRole(entity.RoleAdmin), m.Handler.Create)
		auth.PUT("/posts/:id", m.Handler.Update)
		auth.DELETE("/posts/:id", m.Handler.Delete)
		auth.POST("/posts/like/:postId", m.Handler.ToggleLike)
	}
}
