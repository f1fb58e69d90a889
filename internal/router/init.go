package router

import (
	"github.com/javnievic/comparte-tu-tiempo/internal/application"
	"github.com/javnievic/comparte-tu-tiempo/internal/container"
	pginfra "github.com/javnievic/comparte-tu-tiempo/internal/infrastructure/postgres"
	handlers "github.com/javnievic/comparte-tu-tiempo/internal/interface/http"
	"github.com/javnievic/comparte-tu-tiempo/internal/router/modules"
)

// InitModules builds repositories, services and handlers from the container
// singletons and registers every feature module with the router registry.
// Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	userRepo := pginfra.NewUserRepository(pool)
	offerRepo := pginfra.NewOfferRepository(pool)
	txRepo := pginfra.NewTransactionRepository(pool)

	userSvc := application.NewUserService(userRepo, container.GetJWT(), container.GetRedis(), logger, container.GetRabbitPub(), cfg.MailSendEnabled)
	offerSvc := application.NewOfferService(offerRepo, logger)
	txSvc := application.NewTransactionService(txRepo, userRepo, offerRepo, logger, container.GetRabbitPub(), cfg.MailSendEnabled)

	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), container.GetJWT()))
	r.Add(modules.NewOfferModule(handlers.NewOfferHandler(offerSvc, logger), container.GetJWT()))
	r.Add(modules.NewTransactionModule(handlers.NewTransactionHandler(txSvc, logger), container.GetJWT()))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
