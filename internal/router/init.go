package router

import (
	"github.com/NTElissa/Tech-Enthusiast/internal/application"
	"github.com/NTElissa/Tech-Enthusiast/internal/container"
	pginfra "github.com/NTElissa/Tech-Enthusiast/internal/infrastructure/postgres"
	handlers "github.com/NTElissa/Tech-Enthusiast/internal/interface/http"
	"github.com/NTElissa/Tech-Enthusiast/internal/router/modules"
)

// InitModules constructs every feature module from the container singletons
// and registers it. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	posts := pginfra.NewPostRepository(pool)

	authSvc := application.NewAuthService(users, container.GetJWT(), container.GetRabbitPub(), logger, cfg)
	postSvc := application.NewPostService(posts, users, container.GetES(), cfg.ESPostsIndex, logger)
	userSvc := application.NewUserService(users, container.GetGCS(), cfg.GCSBucket, logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger, cfg), users))
	r.Add(modules.NewBlogModule(handlers.NewPostHandler(postSvc, logger), users))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), users))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
