package repository

import (
	"context"
	"time"

	"github.com/BruksfildServices01/table-booking/internal/dbretry"
	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/table-booking/internal/models"
)

// ResilientGateway retries every call of the wrapped gateway on transient
// storage failures. Results and non-transient errors pass through unchanged.
type ResilientGateway struct {
	next   domain.Gateway
	policy dbretry.Policy
}

func NewResilientGateway(next domain.Gateway, policy dbretry.Policy) *ResilientGateway {
	return &ResilientGateway{next: next, policy: policy}
}

func (g *ResilientGateway) ListTables(ctx context.Context) ([]models.Table, error) {
	return dbretry.Do(ctx, g.policy, g.next.ListTables)
}

func (g *ResilientGateway) ListStatuses(ctx context.Context) ([]models.ReservationStatus, error) {
	return dbretry.Do(ctx, g.policy, g.next.ListStatuses)
}

func (g *ResilientGateway) GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	return dbretry.Do(ctx, g.policy, func(ctx context.Context) (*models.Customer, error) {
		return g.next.GetCustomerByEmail(ctx, email)
	})
}

func (g *ResilientGateway) GetCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	return dbretry.Do(ctx, g.policy, func(ctx context.Context) (*models.Customer, error) {
		return g.next.GetCustomerByPhone(ctx, phone)
	})
}

func (g *ResilientGateway) CreateCustomer(ctx context.Context, c *models.Customer) error {
	return dbretry.Exec(ctx, g.policy, func(ctx context.Context) error {
		return g.next.CreateCustomer(ctx, c)
	})
}

func (g *ResilientGateway) ListReservations(ctx context.Context, w domain.Window) ([]models.Reservation, error) {
	return dbretry.Do(ctx, g.policy, func(ctx context.Context) ([]models.Reservation, error) {
		return g.next.ListReservations(ctx, w)
	})
}

func (g *ResilientGateway) ListReservationsForPeriod(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Reservation, error) {
	return dbretry.Do(ctx, g.policy, func(ctx context.Context) ([]models.Reservation, error) {
		return g.next.ListReservationsForPeriod(ctx, start, end)
	})
}

func (g *ResilientGateway) GetReservationByPublicID(ctx context.Context, publicID string) (*models.Reservation, error) {
	return dbretry.Do(ctx, g.policy, func(ctx context.Context) (*models.Reservation, error) {
		return g.next.GetReservationByPublicID(ctx, publicID)
	})
}

func (g *ResilientGateway) FindRecentReservation(
	ctx context.Context,
	m domain.ReservationMatch,
) (*models.Reservation, error) {
	return dbretry.Do(ctx, g.policy, func(ctx context.Context) (*models.Reservation, error) {
		return g.next.FindRecentReservation(ctx, m)
	})
}

func (g *ResilientGateway) CreateReservationAtomic(
	ctx context.Context,
	p domain.CreateReservationParams,
) (*models.Reservation, error) {
	return dbretry.Do(ctx, g.policy, func(ctx context.Context) (*models.Reservation, error) {
		return g.next.CreateReservationAtomic(ctx, p)
	})
}

func (g *ResilientGateway) ChangeReservationStatusAtomic(
	ctx context.Context,
	reservationID uint,
	statusID uint,
) error {
	return dbretry.Exec(ctx, g.policy, func(ctx context.Context) error {
		return g.next.ChangeReservationStatusAtomic(ctx, reservationID, statusID)
	})
}

func (g *ResilientGateway) DeleteReservation(ctx context.Context, reservationID uint) error {
	return dbretry.Exec(ctx, g.policy, func(ctx context.Context) error {
		return g.next.DeleteReservation(ctx, reservationID)
	})
}

var _ domain.Gateway = (*ResilientGateway)(nil)
