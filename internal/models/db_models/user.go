package db_models

import "time"

type Role string

const (
	RoleOperational Role = "operational"
	RoleAdmin       Role = "admin"
)

type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)

type User struct {
	BaseModel
	Name         string     `gorm:"size:255;not null"`
	Email        string     `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string     `gorm:"not null"`
	Role         Role       `gorm:"size:16;not null;default:'operational';index;check:chk_users_role,role IN ('operational','admin')"`
	Status       UserStatus `gorm:"size:16;not null;default:'active';check:chk_users_status,status IN ('active','inactive')"`

	// PrimaryCompanyID is the company the user mainly serves. Auto-assignment
	// falls back to it when no explicit link exists.
	PrimaryCompanyID *int64   `gorm:"index"`
	PrimaryCompany   *Company `gorm:"foreignKey:PrimaryCompanyID;constraint:OnDelete:SET NULL"`
}

func (u *User) IsActive() bool {
	return u.Status == UserActive
}

func (u *User) IsOperational() bool {
	return u.Role == RoleOperational
}

// UserCompany links an operational user to a company they answer for.
type UserCompany struct {
	UserID    int64 `gorm:"primaryKey;autoIncrement:false"`
	CompanyID int64 `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time

	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Company *Company `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
}
