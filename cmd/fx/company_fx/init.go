package company_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"nps/internal/repositories"
	"nps/internal/services"
)

var Module = fx.Provide(
	provideCompanyRepo, provideCompanyService,
)

func provideCompanyRepo(db *gorm.DB) repositories.CompanyRepository {
	return repositories.NewCompanyRepository(db)
}

func provideCompanyService(companyRepo repositories.CompanyRepository, accountRepo repositories.AccountRepository) services.CompanyServiceInterface {
	return services.NewCompanyService(companyRepo, accountRepo)
}
