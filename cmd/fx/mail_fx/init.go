package mail_fx

import (
	"go.uber.org/fx"

	"nps/internal/config"
	"nps/internal/services"
)

var Module = fx.Provide(provideMailService)

func provideMailService(cfg config.Config) services.IMailService {
	return services.NewMailService(cfg)
}
