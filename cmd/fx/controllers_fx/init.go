package controllers_fx

import (
	"go.uber.org/fx"

	"nps/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewUserController),
	fx.Provide(controllers.NewCompanyController),
	fx.Provide(controllers.NewEvaluationController),
	fx.Provide(controllers.NewDashboardController))
