package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/javnievic/comparte-tu-tiempo/internal/container"
	handlers "github.com/javnievic/comparte-tu-tiempo/internal/interface/http"
	"github.com/javnievic/comparte-tu-tiempo/internal/interface/middleware"
	"github.com/javnievic/comparte-tu-tiempo/pkg/helpers"
)

// OfferModule wires the offer listing and CRUD routes.
// Listing and retrieval are public; mutation requires authentication and
// ownership is enforced in the service layer.

type OfferModule struct {
	Handler *handlers.OfferHandler
	JWT     *helpers.JWTManager
}

func NewOfferModule(h *handlers.OfferHandler, jwt *helpers.JWTManager) *OfferModule {
	return &OfferModule{Handler: h, JWT: jwt}
}

func (m *OfferModule) Register(rg *gin.RouterGroup) {
	listLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/offers", listLimiter, m.Handler.List)
	rg.GET("/offers/:id", listLimiter, m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.BearerAuth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/offers", m.Handler.Create)
		auth.PATCH("/offers/:id", m.Handler.Update)
		auth.DELETE("/offers/:id", m.Handler.Delete)
	}
}
