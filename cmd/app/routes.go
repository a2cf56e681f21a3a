package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nps/internal/models/db_models"
	"nps/pkg/middleware"
	"nps/pkg/utils"
)

func RegisterRoutes(r *gin.Engine, p RouterParams) {
	r.GET("/health", healthHandler(p))

	api := r.Group("/api")
	authRequired := middleware.JWTAuthMiddleware(p.JWT, p.Revoked, p.Accounts)
	rateLimited := p.RateLimiter.Middleware()
	operational := middleware.RoleMiddleware(string(db_models.RoleOperational), string(db_models.RoleAdmin))
	adminOnly := middleware.RoleMiddleware(string(db_models.RoleAdmin))

	authGroup := api.Group("/auth")
	authGroup.POST("/login", rateLimited, p.AccountController.Login)
	authGroup.POST("/logout", authRequired, p.AccountController.Logout)
	authGroup.GET("/me", authRequired, p.AccountController.Me)

	publicGroup := api.Group("/public")
	publicGroup.POST("/feedback", rateLimited, p.EvaluationController.Submit)
	publicGroup.GET("/companies/:id", p.CompanyController.PublicInfo)
	publicGroup.GET("/companies/:id/employees", p.CompanyController.PublicEmployees)

	evaluationGroup := api.Group("/evaluations", authRequired, operational)
	evaluationGroup.GET("", p.EvaluationController.List)
	evaluationGroup.GET("/:id", p.EvaluationController.Get)
	evaluationGroup.PUT("/:id/resolution", p.EvaluationController.Resolve)

	api.GET("/statistics", authRequired, p.DashboardController.GetStatistics)

	adminGroup := api.Group("/admin", authRequired, adminOnly)
	adminGroup.PUT("/evaluations/:id/approve", p.EvaluationController.Approve)
	adminGroup.PUT("/evaluations/:id/reject", p.EvaluationController.Reject)
	adminGroup.GET("/reports", p.DashboardController.GetReports)

	adminGroup.GET("/users", p.UserController.ListUsers)
	adminGroup.POST("/users", p.UserController.CreateUser)
	adminGroup.PUT("/users/:id", p.UserController.UpdateUser)
	adminGroup.DELETE("/users/:id", p.UserController.DeleteUser)
	adminGroup.PUT("/users/:id/status", p.UserController.SetUserStatus)

	adminGroup.GET("/companies", p.CompanyController.ListCompanies)
	adminGroup.POST("/companies", p.CompanyController.CreateCompany)
	adminGroup.PUT("/companies/:id/status", p.CompanyController.SetCompanyStatus)
	adminGroup.DELETE("/companies/:id", p.CompanyController.DeleteCompany)
}

func healthHandler(p RouterParams) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := p.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			utils.RespondError(c, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		utils.RespondSuccess(c, gin.H{"status": "ok"}, "")
	}
}
