package evaluation_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"nps/internal/repositories"
	"nps/internal/services"
)

var Module = fx.Provide(
	provideEvaluationRepo, provideEvaluationService,
)

func provideEvaluationRepo(db *gorm.DB) repositories.EvaluationRepositoryInterface {
	return repositories.NewEvaluationRepository(db)
}

func provideEvaluationService(
	evaluationRepo repositories.EvaluationRepositoryInterface,
	companyRepo repositories.CompanyRepository,
	accountRepo repositories.AccountRepository,
	mail services.IMailService,
) services.EvaluationServiceInterface {
	return services.NewEvaluationService(evaluationRepo, companyRepo, accountRepo, mail)
}
