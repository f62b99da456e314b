package reservation

import (
	"context"

	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/table-booking/internal/models"
)

// AvailabilityCache holds advisory availability results. Implementations
// swallow their own failures.
//
// Get reports the generation it read; a miss is stored with Set under that
// same generation so results computed across an Invalidate are discarded.
type AvailabilityCache interface {
	Get(ctx context.Context, in domain.AvailabilityInput) (tables []models.Table, gen int64, hit bool)
	Set(ctx context.Context, gen int64, in domain.AvailabilityInput, tables []models.Table)
	Invalidate(ctx context.Context)
}

type noCache struct{}

func (noCache) Get(context.Context, domain.AvailabilityInput) ([]models.Table, int64, bool) {
	return nil, 0, false
}
func (noCache) Set(context.Context, int64, domain.AvailabilityInput, []models.Table) {}
func (noCache) Invalidate(context.Context)                                          {}

func cacheOrNoop(c AvailabilityCache) AvailabilityCache {
	if c == nil {
		return noCache{}
	}
	return c
}

type GetAvailability struct {
	repo           domain.Gateway
	cache          AvailabilityCache
	inactiveLabels []string
}

func NewGetAvailability(
	repo domain.Gateway,
	cache AvailabilityCache,
	inactiveLabels []string,
) *GetAvailability {
	return &GetAvailability{
		repo:           repo,
		cache:          cacheOrNoop(cache),
		inactiveLabels: inactiveLabels,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (*domain.Availability, error) {

	if err := in.Validate(); err != nil {
		return nil, err
	}

	cached, gen, hit := uc.cache.Get(ctx, in)
	if hit {
		return withBest(cached), nil
	}

	tables, err := uc.repo.ListTables(ctx)
	if err != nil {
		return nil, err
	}

	reservations, err := uc.repo.ListReservations(ctx, in.Window)
	if err != nil {
		return nil, err
	}

	if len(uc.inactiveLabels) > 0 {
		statuses, err := uc.repo.ListStatuses(ctx)
		if err != nil {
			return nil, err
		}
		ignored := domain.StatusIDsWithLabels(statuses, uc.inactiveLabels)
		reservations = domain.WithoutStatuses(reservations, ignored)
	}

	out := domain.EvaluateAvailability(tables, reservations, in)
	uc.cache.Set(ctx, gen, in, out.Tables)

	return &out, nil
}

func withBest(tables []models.Table) *domain.Availability {
	out := &domain.Availability{Tables: tables}
	if len(tables) > 0 {
		best := tables[0]
		out.Best = &best
	}
	return out
}
