package reservation

import (
	"time"

	"github.com/BruksfildServices01/table-booking/internal/httperr"
)

// Window is a half-open interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Validate() error {
	if w.Start.IsZero() || w.End.IsZero() {
		return httperr.InvalidInput("missing_window")
	}
	if !w.Start.Before(w.End) {
		return httperr.InvalidInput("invalid_window")
	}
	return nil
}

// Overlaps uses the strict test, so windows that only touch do not overlap.
func (w Window) Overlaps(o Window) bool {
	return w.Start.Before(o.End) && w.End.After(o.Start)
}

func WindowOf(startAt, endAt time.Time) Window {
	return Window{Start: startAt, End: endAt}
}
