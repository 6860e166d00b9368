package router

import "github.com/gin-gonic/gin"

// Module is a feature area (auth, blog, users) that registers its own routes
// under the shared /api group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
