package response_models

import "time"

type CompanyResponse struct {
	ID        int64     `json:"id,string"`
	Name      string    `json:"name"`
	TaxID     *string   `json:"tax_id,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// PublicCompanyResponse is what the feedback form may see.
type PublicCompanyResponse struct {
	ID   int64  `json:"id,string"`
	Name string `json:"name"`
}

type PublicEmployeeResponse struct {
	ID   int64  `json:"id,string"`
	Name string `json:"name"`
}
