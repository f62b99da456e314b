package models

import "time"

// Open reference data: legal transitions are owned by the status-change procedure.
type ReservationStatus struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Label string `gorm:"size:50;uniqueIndex;not null" json:"label"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ReservationStatus) TableName() string {
	return "reservation_statuses"
}
