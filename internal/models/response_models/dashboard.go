package response_models

import "time"

type NPSSummary struct {
	TotalEvaluations int64   `json:"total_evaluations"`
	AverageScore     float64 `json:"average_score"`
	Promoters        int64   `json:"promoters"`
	Neutrals         int64   `json:"neutrals"`
	Detractors       int64   `json:"detractors"`
	NPSScore         float64 `json:"nps_score"`
}

type StatusCounts struct {
	PendingResolution int64 `json:"pending_resolution"`
	Resolved          int64 `json:"resolved"`
	Approved          int64 `json:"approved"`
	Rejected          int64 `json:"rejected"`
}

type CompanyRanking struct {
	Rank             int     `json:"rank"`
	Medal            string  `json:"medal"`
	CompanyID        int64   `json:"company_id,string"`
	CompanyName      string  `json:"company_name"`
	TotalEvaluations int64   `json:"total_evaluations"`
	AverageScore     float64 `json:"average_score"`
}

type EmployeeRanking struct {
	Rank             int     `json:"rank"`
	Medal            string  `json:"medal"`
	EmployeeID       int64   `json:"employee_id,string"`
	EmployeeName     string  `json:"employee_name"`
	TotalEvaluations int64   `json:"total_evaluations"`
	AverageScore     float64 `json:"average_score"`
	NPSScore         float64 `json:"nps_score"`
}

type CompanyVolume struct {
	CompanyID        int64   `json:"company_id,string"`
	CompanyName      string  `json:"company_name"`
	TotalEvaluations int64   `json:"total_evaluations"`
	AverageScore     float64 `json:"average_score"`
}

type Statistics struct {
	Summary      NPSSummary       `json:"summary"`
	Status       StatusCounts     `json:"status"`
	TopCompanies []CompanyRanking `json:"top_companies"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

type AdminReport struct {
	Summary              NPSSummary        `json:"summary"`
	TopEmployees         []EmployeeRanking `json:"top_employees"`
	TopCompaniesByVolume []CompanyVolume   `json:"top_companies_by_volume"`
	EvaluationsToday     int64             `json:"evaluations_today"`
	OperationalUsers     int64             `json:"operational_users"`
	ActiveCompanies      int64             `json:"active_companies"`
	GeneratedAt          time.Time         `json:"generated_at"`
}
