package request_models

import "nps/pkg/id"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateUserRequest struct {
	Name             string  `json:"name" binding:"required,trimmedmin=2,max=255"`
	Email            string  `json:"email" binding:"required,email,max=255"`
	Password         string  `json:"password" binding:"required,min=6,max=72"`
	Role             string  `json:"role" binding:"omitempty,oneof=operational admin"`
	PrimaryCompanyID *id.ID  `json:"primary_company_id"`
	CompanyIDs       id.List `json:"company_ids"`
}

// UpdateUserRequest replaces the profile. A nil CompanyIDs keeps the current
// links, an empty list removes them all.
type UpdateUserRequest struct {
	Name             string   `json:"name" binding:"required,trimmedmin=2,max=255"`
	Email            string   `json:"email" binding:"required,email,max=255"`
	Role             string   `json:"role" binding:"required,oneof=operational admin"`
	Password         *string  `json:"password" binding:"omitempty,min=6,max=72"`
	PrimaryCompanyID *id.ID   `json:"primary_company_id"`
	CompanyIDs       *id.List `json:"company_ids"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive"`
}
