package response_models

import (
	"time"

	"nps/pkg/id"
)

type UserResponse struct {
	ID               int64     `json:"id,string"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	Status           string    `json:"status"`
	PrimaryCompanyID *int64    `json:"primary_company_id,string,omitempty"`
	CompanyIDs       id.List   `json:"company_ids"`
	CreatedAt        time.Time `json:"created_at"`
}

type AccountLoginResponse struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expires_at"`
	User      UserResponse      `json:"user"`
	Companies []CompanyResponse `json:"companies"`
}
