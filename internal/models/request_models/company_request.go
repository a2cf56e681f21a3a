package request_models

type CreateCompanyRequest struct {
	Name  string  `json:"name" binding:"required,trimmedmin=2,max=255"`
	TaxID *string `json:"tax_id" binding:"omitempty,max=32"`
}

type DeleteCompanyQuery struct {
	Hard bool `form:"hard"`
}
