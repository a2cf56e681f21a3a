package db_models

import (
	"time"

	"gorm.io/gorm"

	"nps/pkg/id"
)

type BaseModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// BeforeCreate assigns a snowflake id, so id order is creation order.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == 0 {
		b.ID = id.New()
	}
	return nil
}
