package models

import "github.com/google/uuid"

// NewPublicID issues the externally visible identifier of a record.
// It is assigned once at creation and never reused.
func NewPublicID() string {
	return uuid.NewString()
}
