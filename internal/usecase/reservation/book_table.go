package reservation

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/table-booking/internal/audit"
	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/table-booking/internal/httperr"
	"github.com/BruksfildServices01/table-booking/internal/models"
	"github.com/BruksfildServices01/table-booking/internal/validators"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type BookTableInput struct {
	Customer  CustomerDetails
	TableID   uint
	Window    domain.Window
	PartySize int
	Notes     string
}

type BookTableResult struct {
	PublicID    string              `json:"public_id"`
	TableNumber int                 `json:"table_number"`
	Reservation *models.Reservation `json:"-"`
}

// ======================================================
// USE CASE
// ======================================================

type BookTable struct {
	repo      domain.Gateway
	customers *ResolveCustomer
	cache     AvailabilityCache
	audit     *audit.Dispatcher
}

func NewBookTable(
	repo domain.Gateway,
	cache AvailabilityCache,
	audit *audit.Dispatcher,
) *BookTable {
	return &BookTable{
		repo:      repo,
		customers: NewResolveCustomer(repo),
		cache:     cacheOrNoop(cache),
		audit:     audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookTable) Execute(
	ctx context.Context,
	in BookTableInput,
) (*BookTableResult, error) {

	// --------------------------------------------------
	// 1️⃣ Validação (antes de qualquer acesso ao banco)
	// --------------------------------------------------
	if in.TableID == 0 {
		return nil, httperr.InvalidInput("invalid_table")
	}
	if in.PartySize < 1 {
		return nil, httperr.InvalidInput("invalid_party_size")
	}
	if err := in.Window.Validate(); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Cliente (get or create)
	// --------------------------------------------------
	customer, err := uc.customers.Execute(ctx, in.Customer)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Procedimento atômico
	// --------------------------------------------------
	params := domain.CreateReservationParams{
		CustomerID: customer.ID,
		TableID:    in.TableID,
		Window:     in.Window,
		PartySize:  in.PartySize,
		Notes:      validators.Optional(in.Notes),
	}

	res, err := uc.repo.CreateReservationAtomic(ctx, params)
	if err != nil {
		if _, ok := httperr.KindOf(err); ok {
			uc.dispatchRejection(in, customer.ID, err)
		}
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Leitura de confirmação (só se o gateway não devolveu a linha)
	// --------------------------------------------------
	if res == nil || res.PublicID == "" {
		res, err = uc.repo.FindRecentReservation(ctx, domain.ReservationMatch{
			CustomerID: customer.ID,
			TableID:    in.TableID,
			Window:     in.Window,
			PartySize:  in.PartySize,
		})
		if errors.Is(err, domain.ErrNotFound) {
			err = httperr.Rejected("booking_not_confirmed")
			uc.dispatchRejection(in, customer.ID, err)
			return nil, err
		}
		if err != nil {
			return nil, err
		}
	}

	out := &BookTableResult{
		PublicID:    res.PublicID,
		Reservation: res,
	}
	if res.Table != nil {
		out.TableNumber = res.Table.Number
	}

	uc.cache.Invalidate(ctx)

	// --------------------------------------------------
	// 5️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		Action:   "reservation_created",
		Entity:   "reservation",
		EntityID: res.PublicID,
		Metadata: map[string]any{
			"table_number": out.TableNumber,
			"party_size":   res.PartySize,
			"start_at":     res.StartAt,
			"end_at":       res.EndAt,
		},
	})

	return out, nil
}

func (uc *BookTable) dispatchRejection(in BookTableInput, customerID uint, err error) {
	uc.audit.Dispatch(audit.Event{
		Action: "reservation_rejected",
		Entity: "reservation",
		Metadata: map[string]any{
			"reason":      httperr.CodeOf(err),
			"customer_id": customerID,
			"table_id":    in.TableID,
			"party_size":  in.PartySize,
			"start_at":    in.Window.Start,
			"end_at":      in.Window.End,
		},
	})
}
