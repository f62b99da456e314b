package reservation

import (
	"context"

	"github.com/BruksfildServices01/table-booking/internal/audit"
	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
)

// DeleteReservation removes a booking and frees its window.
type DeleteReservation struct {
	repo  domain.Gateway
	cache AvailabilityCache
	audit *audit.Dispatcher
}

func NewDeleteReservation(
	repo domain.Gateway,
	cache AvailabilityCache,
	audit *audit.Dispatcher,
) *DeleteReservation {
	return &DeleteReservation{
		repo:  repo,
		cache: cacheOrNoop(cache),
		audit: audit,
	}
}

func (uc *DeleteReservation) Execute(ctx context.Context, publicID string) error {

	// --------------------------------------------------
	// 1️⃣ Reserva
	// --------------------------------------------------
	res, err := reservationByPublicID(ctx, uc.repo, publicID)
	if err != nil {
		return err
	}

	// --------------------------------------------------
	// 2️⃣ Remoção
	// --------------------------------------------------
	if err := uc.repo.DeleteReservation(ctx, res.ID); err != nil {
		return err
	}

	uc.cache.Invalidate(ctx)

	// --------------------------------------------------
	// 3️⃣ Auditoria
	// --------------------------------------------------
	meta := map[string]any{
		"party_size": res.PartySize,
		"start_at":   res.StartAt,
		"end_at":     res.EndAt,
		"status_id":  res.StatusID,
	}
	if res.Table != nil {
		meta["table_number"] = res.Table.Number
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "reservation_deleted",
		Entity:   "reservation",
		EntityID: res.PublicID,
		Metadata: meta,
	})

	return nil
}
