package controllers

import (
	"github.com/gin-gonic/gin"

	"nps/internal/models/request_models"
	"nps/internal/services"
	"nps/pkg/utils"
)

type CompanyController struct {
	companyService services.CompanyServiceInterface
}

func NewCompanyController(companyService services.CompanyServiceInterface) *CompanyController {
	return &CompanyController{companyService: companyService}
}

// ListCompanies godoc
// @Summary List companies
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/companies [get]
func (co *CompanyController) ListCompanies(c *gin.Context) {
	companies, err := co.companyService.List(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, companies, "Companies fetched successfully")
}

// CreateCompany godoc
// @Summary Create a company
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request_models.CreateCompanyRequest true "Company payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/companies [post]
func (co *CompanyController) CreateCompany(c *gin.Context) {
	var req request_models.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	company, err := co.companyService.Create(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, company, "Company created successfully")
}

func (co *CompanyController) SetCompanyStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req request_models.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	company, err := co.companyService.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, company, "Company status updated successfully")
}

// DeleteCompany godoc
// @Summary Delete a company
// @Description Soft delete by default. hard=true removes a company without evaluations.
// @Tags Admin
// @Param id path int true "Company id"
// @Param hard query bool false "Remove the row"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/companies/{id} [delete]
func (co *CompanyController) DeleteCompany(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var query request_models.DeleteCompanyQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	if err := co.companyService.Delete(c.Request.Context(), id, query.Hard); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Company deleted successfully")
}

// PublicInfo godoc
// @Summary Company shown on the feedback form
// @Tags Public
// @Produce json
// @Param id path int true "Company id"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /public/companies/{id} [get]
func (co *CompanyController) PublicInfo(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	company, err := co.companyService.PublicInfo(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, company, "Company fetched successfully")
}

func (co *CompanyController) PublicEmployees(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	employees, err := co.companyService.PublicEmployees(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, employees, "Employees fetched successfully")
}
