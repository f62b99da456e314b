package models

import (
	"time"

	"gorm.io/gorm"
)

// Área do salão (varanda, interno...). Apenas dado de referência.
type Zone struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PublicID string `gorm:"size:36;uniqueIndex;not null" json:"public_id"`
	Name     string `gorm:"size:100;not null" json:"name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (z *Zone) BeforeCreate(tx *gorm.DB) error {
	if z.PublicID == "" {
		z.PublicID = NewPublicID()
	}
	return nil
}
