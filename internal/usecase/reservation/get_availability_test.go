package reservation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/table-booking/internal/httperr"
	"github.com/BruksfildServices01/table-booking/internal/infra/memory"
	"github.com/BruksfildServices01/table-booking/internal/models"
)

func numbers(tables []models.Table) []int {
	out := make([]int, 0, len(tables))
	for _, t := range tables {
		out = append(out, t.Number)
	}
	return out
}

func TestGetAvailability(t *testing.T) {
	ctx := context.Background()

	t.Run("smallest adequate table first", func(t *testing.T) {
		s, _ := restaurant(domain.ProcedureOptions{})
		uc := NewGetAvailability(s, nil, nil)

		got, err := uc.Execute(ctx, domain.AvailabilityInput{PartySize: 3, Window: window(2, 4)})

		require.NoError(t, err)
		assert.Equal(t, []int{3, 2}, numbers(got.Tables))
		require.NotNil(t, got.Best)
		assert.Equal(t, 3, got.Best.Number)
	})

	t.Run("booked table drops out", func(t *testing.T) {
		s, tables := restaurant(domain.ProcedureOptions{})
		s.AddReservation(models.Reservation{
			TableID: tables["C"].ID, StatusID: 1,
			StartAt: window(1, 3).Start, EndAt: window(1, 3).End, PartySize: 4,
		})
		uc := NewGetAvailability(s, nil, nil)

		got, err := uc.Execute(ctx, domain.AvailabilityInput{PartySize: 3, Window: window(2, 4)})

		require.NoError(t, err)
		assert.Equal(t, []int{2}, numbers(got.Tables))
	})

	t.Run("inactive statuses release the table", func(t *testing.T) {
		s, tables := restaurant(domain.ProcedureOptions{})
		s.AddReservation(models.Reservation{
			TableID: tables["C"].ID, StatusID: statusID(t, s, domain.LabelCancelled),
			StartAt: window(2, 4).Start, EndAt: window(2, 4).End, PartySize: 4,
		})

		strict := NewGetAvailability(s, nil, nil)
		got, err := strict.Execute(ctx, domain.AvailabilityInput{PartySize: 3, Window: window(2, 4)})
		require.NoError(t, err)
		assert.Equal(t, []int{2}, numbers(got.Tables))

		lenient := NewGetAvailability(s, nil, []string{domain.LabelCancelled})
		got, err = lenient.Execute(ctx, domain.AvailabilityInput{PartySize: 3, Window: window(2, 4)})
		require.NoError(t, err)
		assert.Equal(t, []int{3, 2}, numbers(got.Tables))
	})

	t.Run("empty result is not an error", func(t *testing.T) {
		s, _ := restaurant(domain.ProcedureOptions{})
		uc := NewGetAvailability(s, nil, nil)

		got, err := uc.Execute(ctx, domain.AvailabilityInput{PartySize: 12, Window: window(2, 4)})

		require.NoError(t, err)
		assert.Empty(t, got.Tables)
		assert.Nil(t, got.Best)
	})

	t.Run("invalid input", func(t *testing.T) {
		s, _ := restaurant(domain.ProcedureOptions{})
		uc := NewGetAvailability(s, nil, nil)

		_, err := uc.Execute(ctx, domain.AvailabilityInput{PartySize: 0, Window: window(2, 4)})
		assert.True(t, httperr.IsBusiness(err, "invalid_party_size"))

		_, err = uc.Execute(ctx, domain.AvailabilityInput{PartySize: 2, Window: window(4, 2)})
		assert.True(t, httperr.IsBusiness(err, "invalid_window"))
	})

	t.Run("served from cache until invalidated", func(t *testing.T) {
		s, tables := restaurant(domain.ProcedureOptions{})
		cache := newFakeCache()
		uc := NewGetAvailability(s, cache, nil)
		in := domain.AvailabilityInput{PartySize: 3, Window: window(2, 4)}

		_, err := uc.Execute(ctx, in)
		require.NoError(t, err)

		s.AddReservation(models.Reservation{
			TableID: tables["C"].ID, StatusID: 1,
			StartAt: in.Window.Start, EndAt: in.Window.End, PartySize: 3,
		})

		cached, err := uc.Execute(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, []int{3, 2}, numbers(cached.Tables))

		cache.Invalidate(ctx)
		fresh, err := uc.Execute(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, []int{2}, numbers(fresh.Tables))
	})
	t.Run("result read before an invalidation is not cached", func(t *testing.T) {
		s, tables := restaurant(domain.ProcedureOptions{})
		cache := newFakeCache()
		in := domain.AvailabilityInput{PartySize: 3, Window: window(2, 4)}

		// a booking commits between the reads and the cache write
		racing := &bookingDuringRead{Store: s, cache: cache, booking: models.Reservation{
			TableID: tables["C"].ID, StatusID: 1,
			StartAt: in.Window.Start, EndAt: in.Window.End, PartySize: 3,
		}}
		uc := NewGetAvailability(racing, cache, nil)

		stale, err := uc.Execute(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, []int{3, 2}, numbers(stale.Tables))

		fresh, err := uc.Execute(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, []int{2}, numbers(fresh.Tables))
	})
}

// bookingDuringRead stores a reservation and invalidates the cache right
// after the first ListReservations call has read its snapshot.
type bookingDuringRead struct {
	*memory.Store
	cache   AvailabilityCache
	booking models.Reservation
	done    bool
}

func (g *bookingDuringRead) ListReservations(ctx context.Context, w domain.Window) ([]models.Reservation, error) {
	out, err := g.Store.ListReservations(ctx, w)
	if !g.done {
		g.done = true
		g.Store.AddReservation(g.booking)
		g.cache.Invalidate(ctx)
	}
	return out, err
}
