package audit

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/table-booking/internal/models"
)

// Logger persists events in the audit_logs table.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

// Write stores ev. Metadata that cannot be encoded is stored empty rather
// than losing the row.
func (l *Logger) Write(ctx context.Context, ev Event) error {
	return l.db.WithContext(ctx).Create(toRow(ev)).Error
}

func toRow(ev Event) *models.AuditLog {
	row := &models.AuditLog{
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		CreatedAt: ev.At,
	}
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			row.Metadata = string(b)
		}
	}
	return row
}

var _ Sink = (*Logger)(nil)
