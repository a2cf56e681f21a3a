package services

import (
	"nps/internal/models/db_models"
	"nps/internal/models/response_models"
	"nps/pkg/id"
)

func toEvaluationResponse(e *db_models.Evaluation) response_models.EvaluationResponse {
	resp := response_models.EvaluationResponse{
		ID:              e.ID,
		CompanyID:       e.CompanyID,
		EmployeeID:      e.EmployeeID,
		Score:           e.Score,
		Classification:  string(Classify(e.Score)),
		CustomerComment: e.CustomerComment,
		CustomerName:    e.CustomerName,
		CustomerEmail:   e.CustomerEmail,
		ResolutionText:  e.ResolutionText,
		ResolutionState: string(e.ResolutionState),
		ApprovalState:   string(e.ApprovalState),
		ApprovalComment: e.ApprovalComment,
		RejectionReason: e.RejectionReason,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
	if e.Company != nil {
		resp.CompanyName = e.Company.Name
	}
	if e.Employee != nil {
		resp.EmployeeName = e.Employee.Name
	}
	return resp
}

func toUserResponse(u *db_models.User, companyIDs []int64) response_models.UserResponse {
	if companyIDs == nil {
		companyIDs = []int64{}
	}
	return response_models.UserResponse{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Role:             string(u.Role),
		Status:           string(u.Status),
		PrimaryCompanyID: u.PrimaryCompanyID,
		CompanyIDs:       id.List(companyIDs),
		CreatedAt:        u.CreatedAt,
	}
}

func toCompanyResponse(c *db_models.Company) response_models.CompanyResponse {
	return response_models.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		TaxID:     c.TaxID,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
	}
}

func toCompanyResponses(companies []db_models.Company) []response_models.CompanyResponse {
	out := make([]response_models.CompanyResponse, len(companies))
	for i := range companies {
		out[i] = toCompanyResponse(&companies[i])
	}
	return out
}
