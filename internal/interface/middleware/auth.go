package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/NTElissa/Tech-Enthusiast/internal/application"
	"github.com/NTElissa/Tech-Enthusiast/internal/domain/entity"
	"github.com/NTElissa/Tech-Enthusiast/internal/domain/repository"
	"github.com/NTElissa/Tech-Enthusiast/pkg/helpers"
	"github.com/NTElissa/Tech-Enthusiast/pkg/response"
)

const CtxIdentityKey = "identity"

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Auth validates the bearer access token and re-resolves the account, so a
// token for a deleted user is rejected even before its expiry. It sets the
// caller's identity in the Gin context on success.
func Auth(jwtm *helpers.JWTManager, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "no token provided", nil)
			return
		}
		claims, err := jwtm.ParseAccessToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.Error[any](c, http.StatusUnauthorized, "token expired", nil)
				return
			}
			response.Error[any](c, http.StatusUnauthorized, "invalid token", nil)
			return
		}
		u, err := users.GetByID(c.Request.Context(), claims.Subject)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "user not found", nil)
			return
		}
		c.Set(CtxIdentityKey, application.Identity{
			UserID:   u.ID,
			Email:    u.Email,
			Username: u.Username,
			Role:     u.Role,
		})
		c.Next()
	}
}

// OptionalAuth resolves the caller's identity when a valid token is present
// and continues anonymously otherwise. It never rejects the request.
func OptionalAuth(jwtm *helpers.JWTManager, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}
		claims, err := jwtm.ParseAccessToken(token)
		if err != nil {
			c.Next()
			return
		}
		if u, err := users.GetByID(c.Request.Context(), claims.Subject); err == nil {
			c.Set(CtxIdentityKey, application.Identity{
				UserID:   u.ID,
				Email:    u.Email,
				Username: u.Username,
				Role:     u.Role,
			})
		}
		c.Next()
	}
}

// RequireRole gates a route to callers whose role is at least min. It must
// run after Auth.
func RequireRole(min entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			response.Error[any](c, http.StatusUnauthorized, "no token provided", nil)
			return
		}
		if !id.Role.AtLeast(min) {
			response.Error[any](c, http.StatusForbidden, "insufficient permissions", nil)
			return
		}
		c.Next()
	}
}

// IdentityFrom returns the authenticated caller, if any.
func IdentityFrom(c *gin.Context) (application.Identity, bool) {
	v, ok := c.Get(CtxIdentityKey)
	if !ok {
		return application.Identity{}, false
	}
	id, ok := v.(application.Identity)
	return id, ok
}
