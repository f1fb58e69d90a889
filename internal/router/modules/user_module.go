package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/javnievic/comparte-tu-tiempo/internal/container"
	handlers "github.com/javnievic/comparte-tu-tiempo/internal/interface/http"
	"github.com/javnievic/comparte-tu-tiempo/internal/interface/middleware"
	"github.com/javnievic/comparte-tu-tiempo/pkg/helpers"
)

// UserModule wires registration, login and profile routes.
// Public: POST /api/users/, POST /api/login/, POST /api/refresh/,
// GET /api/users/, GET /api/users/:id
// Protected: PATCH/DELETE /api/users/:id

type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil) // 10 req/min per IP
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/users", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/refresh", refreshLimiter, m.Handler.Refresh)

	rg.GET("/users", m.Handler.List)
	rg.GET("/users/:id", m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.BearerAuth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.PATCH("/users/:id", m.Handler.Update)
		auth.DELETE("/users/:id", m.Handler.Delete)
	}
}
