package controllers

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"nps/internal/models/request_models"
	"nps/internal/services"
	"nps/pkg/utils"
)

type EvaluationController struct {
	evaluationService services.EvaluationServiceInterface
}

func NewEvaluationController(evaluationService services.EvaluationServiceInterface) *EvaluationController {
	return &EvaluationController{evaluationService: evaluationService}
}

// Submit godoc
// @Summary Submit a customer evaluation
// @Description Public endpoint used by the feedback form. The evaluation is auto-assigned when no employee is given.
// @Tags Public
// @Accept json
// @Produce json
// @Param request body request_models.SubmitEvaluationRequest true "Evaluation payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /public/feedback [post]
func (e *EvaluationController) Submit(c *gin.Context) {
	var req request_models.SubmitEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	evaluation, err := e.evaluationService.Submit(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, evaluation, "Evaluation submitted successfully")
}

// List godoc
// @Summary List evaluations
// @Description Operational users only see their own evaluations. Admins can filter freely.
// @Tags Evaluations
// @Produce json
// @Param status query string false "pending | resolved | approved | rejected"
// @Param company_id query int false "Company id"
// @Param employee_id query int false "Employee id"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20) minimum(1) maximum(100)
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /evaluations [get]
func (e *EvaluationController) List(c *gin.Context) {
	var query request_models.ListEvaluationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	page, err := e.evaluationService.List(c.Request.Context(), currentActor(c), query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, page, "Evaluations fetched successfully")
}

func (e *EvaluationController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	evaluation, err := e.evaluationService.Get(c.Request.Context(), currentActor(c), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, evaluation, "Evaluation fetched successfully")
}

// Resolve godoc
// @Summary Resolve an evaluation
// @Description Records the operational answer. Operational users can only resolve evaluations assigned to them.
// @Tags Evaluations
// @Accept json
// @Produce json
// @Param id path int true "Evaluation id"
// @Param request body request_models.ResolveEvaluationRequest true "Resolution payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /evaluations/{id}/resolution [put]
func (e *EvaluationController) Resolve(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req request_models.ResolveEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	evaluation, err := e.evaluationService.Resolve(c.Request.Context(), currentActor(c), id, req.Text)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, evaluation, "Evaluation resolved successfully")
}

// Approve godoc
// @Summary Approve a resolution
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "Evaluation id"
// @Param request body request_models.ApproveEvaluationRequest false "Optional comment"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/evaluations/{id}/approve [put]
func (e *EvaluationController) Approve(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	// The body is optional.
	var req request_models.ApproveEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondBindingError(c, err)
		return
	}

	comment := ""
	if req.Comment != nil {
		comment = *req.Comment
	}

	evaluation, err := e.evaluationService.Approve(c.Request.Context(), currentActor(c), id, comment)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, evaluation, "Evaluation approved successfully")
}

// Reject godoc
// @Summary Reject a resolution
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "Evaluation id"
// @Param request body request_models.RejectEvaluationRequest true "Rejection reason"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/evaluations/{id}/reject [put]
func (e *EvaluationController) Reject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req request_models.RejectEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	evaluation, err := e.evaluationService.Reject(c.Request.Context(), currentActor(c), id, req.Reason)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, evaluation, "Evaluation rejected successfully")
}
