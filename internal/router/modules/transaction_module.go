package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/javnievic/comparte-tu-tiempo/internal/container"
	handlers "github.com/javnievic/comparte-tu-tiempo/internal/interface/http"
	"github.com/javnievic/comparte-tu-tiempo/internal/interface/middleware"
	"github.com/javnievic/comparte-tu-tiempo/pkg/helpers"
)

// TransactionModule wires the time ledger routes. Everything requires
// authentication; the plain list and the update are restricted further to
// superusers in the service layer.

type TransactionModule struct {
	Handler *handlers.TransactionHandler
	JWT     *helpers.JWTManager
}

func NewTransactionModule(h *handlers.TransactionHandler, jwt *helpers.JWTManager) *TransactionModule {
	return &TransactionModule{Handler: h, JWT: jwt}
}

func (m *TransactionModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.BearerAuth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/transactions", m.Handler.Create)
		auth.GET("/transactions", m.Handler.List)
		auth.GET("/transactions/my-transactions", m.Handler.ListMine)
		auth.GET("/transactions/:id", m.Handler.Get)
		auth.PATCH("/transactions/:id", m.Handler.Update)
	}
}
