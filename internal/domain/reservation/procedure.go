package reservation

import (
	"github.com/BruksfildServices01/table-booking/internal/httperr"
	"github.com/BruksfildServices01/table-booking/internal/models"
)

// Rules applied by the create-reservation procedure once the table row is
// locked. Both gateway implementations call these so they refuse the same
// bookings.

func CheckTableAccepts(t models.Table, p CreateReservationParams) error {
	if t.Capacity < p.PartySize {
		return httperr.Rejected("capacity_exceeded")
	}
	if t.BlocksStartAt(p.Window.Start) {
		return httperr.Rejected("table_blocked")
	}
	return nil
}

// HasConflict reports whether any reservation on tableID overlaps w.
// Reservations whose status id is in ignored do not hold the table.
func HasConflict(
	existing []models.Reservation,
	tableID uint,
	w Window,
	ignored map[uint]bool,
) bool {
	for _, r := range existing {
		if r.TableID != tableID || ignored[r.StatusID] {
			continue
		}
		if w.Overlaps(WindowOf(r.StartAt, r.EndAt)) {
			return true
		}
	}
	return false
}

// LoyaltyPointsFor is the accrual owned by the status-change procedure:
// a reservation entering the loyalty status credits one point per guest.
func LoyaltyPointsFor(
	prev models.ReservationStatus,
	next models.ReservationStatus,
	partySize int,
	loyaltyLabel string,
) int {
	if loyaltyLabel == "" || prev.ID == next.ID {
		return 0
	}
	if HasLabel(prev, loyaltyLabel) || !HasLabel(next, loyaltyLabel) {
		return 0
	}
	return partySize
}

// ProcedureOptions tunes the two atomic procedures.
type ProcedureOptions struct {
	// Reservations in these statuses do not hold their table.
	InactiveStatusLabels []string
	// Entering this status credits loyalty points to the customer.
	LoyaltyStatusLabel string
}

// CheckReactivation refuses moving a reservation from a status that frees its
// table back to one that holds it when the window was taken meanwhile.
func CheckReactivation(
	res models.Reservation,
	prev models.ReservationStatus,
	next models.ReservationStatus,
	sameTable []models.Reservation,
	ignored map[uint]bool,
) error {
	if !ignored[prev.ID] || ignored[next.ID] {
		return nil
	}

	others := make([]models.Reservation, 0, len(sameTable))
	for _, r := range sameTable {
		if r.ID != res.ID {
			others = append(others, r)
		}
	}

	if HasConflict(others, res.TableID, WindowOf(res.StartAt, res.EndAt), ignored) {
		return httperr.Rejected("time_conflict")
	}
	return nil
}
