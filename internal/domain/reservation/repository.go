package reservation

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/table-booking/internal/models"
)

// ErrNotFound is returned by Gateway lookups that match no row.
var ErrNotFound = errors.New("record not found")

type CreateReservationParams struct {
	CustomerID uint
	TableID    uint
	Window     Window
	PartySize  int
	Notes      *string
}

// ReservationMatch identifies a booking for the best-effort read-back.
type ReservationMatch struct {
	CustomerID uint
	TableID    uint
	Window     Window
	PartySize  int
}

// Gateway is the storage contract of the booking engine.
//
// CreateReservationAtomic and ChangeReservationStatusAtomic are opaque
// procedures: they own overlap and transition rules and must be serialized
// per table by the implementation. Business refusals come back as
// httperr.Rejected / httperr.NotFoundErr errors.
type Gateway interface {
	// -------- Tables --------
	ListTables(ctx context.Context) ([]models.Table, error)

	// -------- Statuses --------
	ListStatuses(ctx context.Context) ([]models.ReservationStatus, error)

	// -------- Customer --------
	GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error)
	GetCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error)
	CreateCustomer(ctx context.Context, c *models.Customer) error

	// -------- Reservation (read) --------
	// ListReservations returns reservations overlapping w.
	ListReservations(ctx context.Context, w Window) ([]models.Reservation, error)

	ListReservationsForPeriod(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Reservation, error)

	GetReservationByPublicID(ctx context.Context, publicID string) (*models.Reservation, error)

	FindRecentReservation(ctx context.Context, m ReservationMatch) (*models.Reservation, error)

	// -------- Procedures --------
	// CreateReservationAtomic may return a nil reservation on success when
	// the backing procedure does not report the created row.
	CreateReservationAtomic(
		ctx context.Context,
		p CreateReservationParams,
	) (*models.Reservation, error)

	ChangeReservationStatusAtomic(
		ctx context.Context,
		reservationID uint,
		statusID uint,
	) error

	// DeleteReservation removes a booking outright. An unknown id is a
	// reservation_not_found refusal.
	DeleteReservation(ctx context.Context, reservationID uint) error
}
