package reservation

import (
	"cmp"
	"slices"

	"github.com/BruksfildServices01/table-booking/internal/httperr"
	"github.com/BruksfildServices01/table-booking/internal/models"
)

type AvailabilityInput struct {
	PartySize int
	Window    Window
}

func (in AvailabilityInput) Validate() error {
	if in.PartySize < 1 {
		return httperr.InvalidInput("invalid_party_size")
	}
	return in.Window.Validate()
}

type Availability struct {
	Tables []models.Table `json:"tables"`
	Best   *models.Table  `json:"best"`
}

// EvaluateAvailability returns the tables that can seat the party for the whole
// window, smallest adequate capacity first and then by table number.
//
// Reservations are not filtered by status here: callers that want cancelled
// bookings to free a table must drop them before calling.
func EvaluateAvailability(
	tables []models.Table,
	reservations []models.Reservation,
	in AvailabilityInput,
) Availability {

	busy := make(map[uint]bool)
	for _, r := range reservations {
		if in.Window.Overlaps(WindowOf(r.StartAt, r.EndAt)) {
			busy[r.TableID] = true
		}
	}

	eligible := make([]models.Table, 0, len(tables))
	for _, t := range tables {
		if t.Capacity < in.PartySize {
			continue
		}
		if t.BlocksStartAt(in.Window.Start) {
			continue
		}
		if busy[t.ID] {
			continue
		}
		eligible = append(eligible, t)
	}

	slices.SortStableFunc(eligible, func(a, b models.Table) int {
		if c := cmp.Compare(a.Capacity, b.Capacity); c != 0 {
			return c
		}
		return cmp.Compare(a.Number, b.Number)
	})

	out := Availability{Tables: eligible}
	if len(eligible) > 0 {
		best := eligible[0]
		out.Best = &best
	}
	return out
}
