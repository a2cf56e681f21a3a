package response_models

import "time"

type EvaluationResponse struct {
	ID              int64     `json:"id,string"`
	CompanyID       int64     `json:"company_id,string"`
	CompanyName     string    `json:"company_name,omitempty"`
	EmployeeID      *int64    `json:"employee_id,string,omitempty"`
	EmployeeName    string    `json:"employee_name,omitempty"`
	Score           int       `json:"score"`
	Classification  string    `json:"classification"`
	CustomerComment *string   `json:"customer_comment,omitempty"`
	CustomerName    *string   `json:"customer_name,omitempty"`
	CustomerEmail   *string   `json:"customer_email,omitempty"`
	ResolutionText  string    `json:"resolution_text,omitempty"`
	ResolutionState string    `json:"resolution_state"`
	ApprovalState   string    `json:"approval_state"`
	ApprovalComment *string   `json:"approval_comment,omitempty"`
	RejectionReason *string   `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

type EvaluationPage struct {
	Items      []EvaluationResponse `json:"items"`
	Pagination Pagination           `json:"pagination"`
}
