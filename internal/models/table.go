package models

import (
	"time"

	"gorm.io/gorm"
)

type Table struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PublicID string `gorm:"size:36;uniqueIndex;not null" json:"public_id"`

	Number   int `gorm:"not null;uniqueIndex" json:"table_number"`
	Capacity int `gorm:"not null" json:"capacity"`

	ZoneID *uint `json:"zone_id"`
	Zone   *Zone `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"zone,omitempty"`

	// No reservation may start before this instant.
	BlockedUntil *time.Time `json:"blocked_until"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Table) TableName() string {
	return "restaurant_tables"
}

func (t *Table) BeforeCreate(tx *gorm.DB) error {
	if t.PublicID == "" {
		t.PublicID = NewPublicID()
	}
	return nil
}

// BlocksStartAt reports whether the block prevents a reservation starting at start.
// Equality with the block expiry is allowed.
func (t *Table) BlocksStartAt(start time.Time) bool {
	return t.BlockedUntil != nil && start.Before(*t.BlockedUntil)
}
