package request_models

import "nps/pkg/id"

type SubmitEvaluationRequest struct {
	CompanyID     id.ID   `json:"company_id" binding:"required"`
	EmployeeID    *id.ID  `json:"employee_id"`
	Score         *int    `json:"score" binding:"required,gte=0,lte=10"`
	Comment       *string `json:"comment" binding:"omitempty,max=2000"`
	CustomerName  *string `json:"customer_name" binding:"omitempty,max=255"`
	CustomerEmail *string `json:"customer_email" binding:"omitempty,email,max=255"`
}

type ResolveEvaluationRequest struct {
	Text string `json:"text" binding:"required,trimmedmin=5,max=5000"`
}

type ApproveEvaluationRequest struct {
	Comment *string `json:"comment" binding:"omitempty,max=2000"`
}

type RejectEvaluationRequest struct {
	Reason string `json:"reason" binding:"required,trimmedmin=5,max=2000"`
}

type ListEvaluationsQuery struct {
	Status     string `form:"status" binding:"omitempty,oneof=pending resolved approved rejected"`
	CompanyID  int64  `form:"company_id"`
	EmployeeID int64  `form:"employee_id"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=100"`
}
