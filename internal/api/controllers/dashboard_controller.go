package controllers

import (
	"github.com/gin-gonic/gin"

	"nps/internal/services"
	"nps/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardService
}

func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetStatistics godoc
// @Summary NPS statistics
// @Description Totals, NPS, class counts, workflow status counts and the company ranking
// @Tags Dashboard
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Security BearerAuth
// @Router /statistics [get]
func (p *DashboardController) GetStatistics(c *gin.Context) {
	stats, err := p.dashboardService.Statistics(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, stats, "Statistics fetched successfully")
}

// GetReports godoc
// @Summary Admin report
// @Description Summary, employee ranking, companies by volume and daily counters
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/reports [get]
func (p *DashboardController) GetReports(c *gin.Context) {
	report, err := p.dashboardService.Reports(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, "Report fetched successfully")
}
