package db_models

type CompanyStatus string

const (
	CompanyActive   CompanyStatus = "active"
	CompanyInactive CompanyStatus = "inactive"
	CompanyDeleted  CompanyStatus = "deleted"
)

// Company receives evaluations only while active. Deletion is a status by
// default so that historical evaluations keep their company.
type Company struct {
	BaseModel
	Name   string        `gorm:"size:255;not null;uniqueIndex:idx_companies_name_lower,expression:lower(name)"`
	TaxID  *string       `gorm:"size:32"`
	Status CompanyStatus `gorm:"size:16;not null;default:'active';index;check:chk_companies_status,status IN ('active','inactive','deleted')"`
}

func (c *Company) IsActive() bool {
	return c.Status == CompanyActive
}
