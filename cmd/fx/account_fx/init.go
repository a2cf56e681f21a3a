package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"nps/internal/config"
	"nps/internal/repositories"
	"nps/internal/services"
	"nps/pkg/middleware"
	mem "nps/pkg/memcache"
	"nps/pkg/utils"
)

var Module = fx.Provide(
	provideAccountService, provideAccountRepo, provideJWTManager, provideAccountChecker)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideJWTManager(cfg config.Config) *utils.JWTManager {
	return utils.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
}

func provideAccountService(
	accountRepo repositories.AccountRepository,
	companyRepo repositories.CompanyRepository,
	jwt *utils.JWTManager,
	revoked mem.RevokedTokenStore,
) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, companyRepo, jwt, revoked)
}

func provideAccountChecker(accountService services.AccountServiceInterface) middleware.AccountChecker {
	return accountService
}
