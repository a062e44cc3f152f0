package router

import (
	"github.com/pawkeeper/notices-api/internal/application"
	"github.com/pawkeeper/notices-api/internal/container"
	pginfra "github.com/pawkeeper/notices-api/internal/infrastructure/postgres"
	handlers "github.com/pawkeeper/notices-api/internal/interface/http"
	"github.com/pawkeeper/notices-api/internal/router/modules"
)

// InitModules builds all application modules from the container singletons and
// registers them with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	users := pginfra.NewUserRepository(container.GetPGPool())
	notices := pginfra.NewNoticeRepository(container.GetPGPool())

	userSvc := application.NewUserService(
		users,
		container.GetTokens(),
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetRabbitPub(),
		logger,
		cfg.MailSendEnabled,
	)
	favoriteSvc := application.NewFavoriteService(users, notices, logger)
	noticeSvc := application.NewNoticeService(notices, logger, container.GetES(), cfg.ESNoticesIndex)

	userHandler := handlers.NewUserHandler(userSvc, logger)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteSvc, logger)
	noticeHandler := handlers.NewNoticeHandler(noticeSvc, favoriteSvc, logger)

	r.Add(modules.NewUserModule(userHandler, favoriteHandler, userSvc))
	r.Add(modules.NewNoticeModule(noticeHandler, userSvc))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
