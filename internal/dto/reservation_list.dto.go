package dto

import "time"

type ReservationListDTO struct {
	PublicID     string    `json:"public_id"`
	StartAt      time.Time `json:"start_at"`
	EndAt        time.Time `json:"end_at"`
	PartySize    int       `json:"party_size"`
	TableNumber  int       `json:"table_number"`
	Status       string    `json:"status"`
	CustomerName string    `json:"customer_name"`
	Notes        *string   `json:"notes,omitempty"`
}
