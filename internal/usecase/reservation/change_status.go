package reservation

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/table-booking/internal/audit"
	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/table-booking/internal/httperr"
	"github.com/BruksfildServices01/table-booking/internal/models"
)

// ChangeStatus moves a reservation to another status through the status
// procedure and returns the state read back afterwards.
type ChangeStatus struct {
	repo  domain.Gateway
	cache AvailabilityCache
	audit *audit.Dispatcher
}

func NewChangeStatus(
	repo domain.Gateway,
	cache AvailabilityCache,
	audit *audit.Dispatcher,
) *ChangeStatus {
	return &ChangeStatus{
		repo:  repo,
		cache: cacheOrNoop(cache),
		audit: audit,
	}
}

func (uc *ChangeStatus) Execute(
	ctx context.Context,
	publicID string,
	statusID uint,
) (*models.Reservation, error) {

	if statusID == 0 {
		return nil, httperr.InvalidInput("invalid_status")
	}

	res, err := uc.getReservation(ctx, publicID)
	if err != nil {
		return nil, err
	}
	prevStatusID := res.StatusID

	if err := uc.repo.ChangeReservationStatusAtomic(ctx, res.ID, statusID); err != nil {
		return nil, err
	}

	updated, err := uc.getReservation(ctx, publicID)
	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx)

	uc.audit.Dispatch(audit.Event{
		Action:   "reservation_status_changed",
		Entity:   "reservation",
		EntityID: updated.PublicID,
		Metadata: map[string]any{
			"from_status_id": prevStatusID,
			"to_status_id":   updated.StatusID,
		},
	})

	return updated, nil
}

func (uc *ChangeStatus) getReservation(ctx context.Context, publicID string) (*models.Reservation, error) {
	return reservationByPublicID(ctx, uc.repo, publicID)
}

func reservationByPublicID(ctx context.Context, repo domain.Gateway, publicID string) (*models.Reservation, error) {
	res, err := repo.GetReservationByPublicID(ctx, publicID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.NotFoundErr("reservation_not_found")
	}
	return res, err
}
