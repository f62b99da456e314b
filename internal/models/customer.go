package models

import (
	"time"

	"gorm.io/gorm"
)

// Cliente simples, sem login. Email e telefone são as chaves de deduplicação.
type Customer struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PublicID string `gorm:"size:36;uniqueIndex;not null" json:"public_id"`

	FirstName string     `gorm:"size:100;not null" json:"first_name"`
	LastName  string     `gorm:"size:100;not null" json:"last_name"`
	Email     *string    `gorm:"size:150;index" json:"email"`
	Phone     *string    `gorm:"size:30;index" json:"phone"`
	BirthDate *time.Time `json:"birth_date"`

	LoyaltyPoints int `gorm:"not null;default:0" json:"loyalty_points"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.PublicID == "" {
		c.PublicID = NewPublicID()
	}
	return nil
}
