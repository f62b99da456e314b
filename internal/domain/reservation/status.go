package reservation

import (
	"strings"

	"github.com/BruksfildServices01/table-booking/internal/httperr"
	"github.com/BruksfildServices01/table-booking/internal/models"
)

// ===============================
// Reservation Status
// ===============================

// Labels seeded on an empty database. Status stays an open foreign key:
// any label created later is valid.
const (
	LabelPending   = "pending"
	LabelConfirmed = "confirmed"
	LabelCancelled = "cancelled"
	LabelCompleted = "completed"
)

func DefaultLabels() []string {
	return []string{LabelPending, LabelConfirmed, LabelCancelled, LabelCompleted}
}

var pendingLabels = []string{LabelPending, "pendiente", "pendente"}

func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

func HasLabel(s models.ReservationStatus, label string) bool {
	return normalizeLabel(s.Label) == normalizeLabel(label)
}

// InitialStatus picks the status new reservations start in: the one labelled
// pending, or the lowest id when no such label exists.
func InitialStatus(statuses []models.ReservationStatus) (*models.ReservationStatus, error) {
	if len(statuses) == 0 {
		return nil, httperr.NotFoundErr("status_not_configured")
	}

	for _, label := range pendingLabels {
		for i := range statuses {
			if HasLabel(statuses[i], label) {
				return &statuses[i], nil
			}
		}
	}

	lowest := &statuses[0]
	for i := range statuses {
		if statuses[i].ID < lowest.ID {
			lowest = &statuses[i]
		}
	}
	return lowest, nil
}

// StatusIDsWithLabels maps the given labels to the ids present in statuses.
func StatusIDsWithLabels(statuses []models.ReservationStatus, labels []string) map[uint]bool {
	ids := make(map[uint]bool)
	for _, s := range statuses {
		for _, l := range labels {
			if HasLabel(s, l) {
				ids[s.ID] = true
			}
		}
	}
	return ids
}

// WithoutStatuses drops reservations whose status id is in ids.
func WithoutStatuses(reservations []models.Reservation, ids map[uint]bool) []models.Reservation {
	if len(ids) == 0 {
		return reservations
	}

	out := make([]models.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if !ids[r.StatusID] {
			out = append(out, r)
		}
	}
	return out
}
