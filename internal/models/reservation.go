package models

import (
	"time"

	"gorm.io/gorm"
)

type Reservation struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PublicID string `gorm:"size:36;uniqueIndex;not null" json:"public_id"`

	CustomerID uint      `gorm:"not null;index" json:"customer_id"`
	Customer   *Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"customer,omitempty"`

	TableID uint   `gorm:"not null;index:idx_reservation_table_window,priority:1" json:"table_id"`
	Table   *Table `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"table,omitempty"`

	StatusID uint               `gorm:"not null" json:"status_id"`
	Status   *ReservationStatus `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"status,omitempty"`

	StartAt time.Time `gorm:"not null;index:idx_reservation_table_window,priority:2" json:"start_at"`
	EndAt   time.Time `gorm:"not null;index:idx_reservation_table_window,priority:3" json:"end_at"`

	PartySize int     `gorm:"not null" json:"party_size"`
	Notes     *string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.PublicID == "" {
		r.PublicID = NewPublicID()
	}
	return nil
}
