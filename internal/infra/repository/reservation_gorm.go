package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/table-booking/internal/httperr"
	"github.com/BruksfildServices01/table-booking/internal/infra/crud"
	"github.com/BruksfildServices01/table-booking/internal/models"
)

type ReservationGormRepository struct {
	db   *gorm.DB
	opts domain.ProcedureOptions
}

func NewReservationGormRepository(db *gorm.DB, opts domain.ProcedureOptions) *ReservationGormRepository {
	return &ReservationGormRepository{db: db, opts: opts}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// --------------------------------------------------
// Tables / Statuses
// --------------------------------------------------

func (r *ReservationGormRepository) ListTables(ctx context.Context) ([]models.Table, error) {
	var tables []models.Table
	if err := r.db.WithContext(ctx).
		Order("number ASC").
		Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

func (r *ReservationGormRepository) ListStatuses(ctx context.Context) ([]models.ReservationStatus, error) {
	var statuses []models.ReservationStatus
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

func (r *ReservationGormRepository) GetCustomerByEmail(
	ctx context.Context,
	email string,
) (*models.Customer, error) {

	var customer models.Customer
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("id ASC").
		First(&customer).Error; err != nil {
		return nil, translate(err)
	}
	return &customer, nil
}

func (r *ReservationGormRepository) GetCustomerByPhone(
	ctx context.Context,
	phone string,
) (*models.Customer, error) {

	var customer models.Customer
	if err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		Order("id ASC").
		First(&customer).Error; err != nil {
		return nil, translate(err)
	}
	return &customer, nil
}

func (r *ReservationGormRepository) CreateCustomer(
	ctx context.Context,
	customer *models.Customer,
) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

// --------------------------------------------------
// Reservation (read)
// --------------------------------------------------

func (r *ReservationGormRepository) ListReservations(
	ctx context.Context,
	w domain.Window,
) ([]models.Reservation, error) {

	var reservations []models.Reservation
	if err := r.db.WithContext(ctx).
		Where("start_at < ? AND end_at > ?", w.End, w.Start).
		Order("start_at ASC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *ReservationGormRepository) ListReservationsForPeriod(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Reservation, error) {

	var reservations []models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Table").
		Preload("Status").
		Where("start_at >= ? AND start_at < ?", start, end).
		Order("start_at ASC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *ReservationGormRepository) GetReservationByPublicID(
	ctx context.Context,
	publicID string,
) (*models.Reservation, error) {

	var res models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Table").
		Preload("Status").
		Where("public_id = ?", publicID).
		First(&res).Error; err != nil {
		return nil, translate(err)
	}
	return &res, nil
}

// FindRecentReservation returns the newest row matching m. Under concurrent
// identical bookings it may return another caller's row.
func (r *ReservationGormRepository) FindRecentReservation(
	ctx context.Context,
	m domain.ReservationMatch,
) (*models.Reservation, error) {

	var res models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Table").
		Where(
			"customer_id = ? AND table_id = ? AND start_at = ? AND end_at = ? AND party_size = ?",
			m.CustomerID,
			m.TableID,
			m.Window.Start,
			m.Window.End,
			m.PartySize,
		).
		Order("id DESC").
		First(&res).Error; err != nil {
		return nil, translate(err)
	}
	return &res, nil
}

// --------------------------------------------------
// Procedures
// --------------------------------------------------

// CreateReservationAtomic serializes writers per table by locking the table
// row for the length of the transaction.
func (r *ReservationGormRepository) CreateReservationAtomic(
	ctx context.Context,
	p domain.CreateReservationParams,
) (*models.Reservation, error) {

	var created models.Reservation

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var table models.Table
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&table, p.TableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.NotFoundErr("table_not_found")
			}
			return err
		}

		if err := domain.CheckTableAccepts(table, p); err != nil {
			return err
		}

		var statuses []models.ReservationStatus
		if err := tx.Order("id ASC").Find(&statuses).Error; err != nil {
			return err
		}

		initial, err := domain.InitialStatus(statuses)
		if err != nil {
			return err
		}

		var existing []models.Reservation
		if err := tx.
			Where(
				"table_id = ? AND start_at < ? AND end_at > ?",
				p.TableID, p.Window.End, p.Window.Start,
			).
			Find(&existing).Error; err != nil {
			return err
		}

		ignored := domain.StatusIDsWithLabels(statuses, r.opts.InactiveStatusLabels)
		if domain.HasConflict(existing, p.TableID, p.Window, ignored) {
			return httperr.Rejected("time_conflict")
		}

		created = models.Reservation{
			CustomerID: p.CustomerID,
			TableID:    p.TableID,
			StatusID:   initial.ID,
			StartAt:    p.Window.Start,
			EndAt:      p.Window.End,
			PartySize:  p.PartySize,
			Notes:      p.Notes,
		}

		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		created.Table = &table
		created.Status = initial
		return nil
	})

	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *ReservationGormRepository) ChangeReservationStatusAtomic(
	ctx context.Context,
	reservationID uint,
	statusID uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var res models.Reservation
		if err := tx.First(&res, reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.NotFoundErr("reservation_not_found")
			}
			return err
		}

		// same lock order as CreateReservationAtomic: table row first
		var table models.Table
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&table, res.TableID).Error; err != nil {
			return err
		}

		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&res, reservationID).Error; err != nil {
			return err
		}

		var next models.ReservationStatus
		if err := tx.First(&next, statusID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.NotFoundErr("status_not_found")
			}
			return err
		}

		if res.StatusID == next.ID {
			return nil
		}

		var statuses []models.ReservationStatus
		if err := tx.Order("id ASC").Find(&statuses).Error; err != nil {
			return err
		}

		var prev models.ReservationStatus
		for _, st := range statuses {
			if st.ID == res.StatusID {
				prev = st
			}
		}

		var sameTable []models.Reservation
		if err := tx.
			Where(
				"table_id = ? AND start_at < ? AND end_at > ?",
				res.TableID, res.EndAt, res.StartAt,
			).
			Find(&sameTable).Error; err != nil {
			return err
		}

		ignored := domain.StatusIDsWithLabels(statuses, r.opts.InactiveStatusLabels)
		if err := domain.CheckReactivation(res, prev, next, sameTable, ignored); err != nil {
			return err
		}

		if err := tx.Model(&models.Reservation{}).
			Where("id = ?", res.ID).
			Update("status_id", next.ID).Error; err != nil {
			return err
		}

		points := domain.LoyaltyPointsFor(prev, next, res.PartySize, r.opts.LoyaltyStatusLabel)
		if points > 0 {
			if err := tx.Model(&models.Customer{}).
				Where("id = ?", res.CustomerID).
				UpdateColumn("loyalty_points", gorm.Expr("loyalty_points + ?", points)).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// DeleteReservation locks the table like the other procedures so a delete
// never interleaves with a conflict check on the same table.
func (r *ReservationGormRepository) DeleteReservation(
	ctx context.Context,
	reservationID uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var res models.Reservation
		if err := tx.First(&res, reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.NotFoundErr("reservation_not_found")
			}
			return err
		}

		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&models.Table{}, res.TableID).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Reservation{}, res.ID)
		if result.Error != nil {
			return crud.Translate(result.Error)
		}
		if result.RowsAffected == 0 {
			return httperr.NotFoundErr("reservation_not_found")
		}
		return nil
	})
}

// Compile-time check
var _ domain.Gateway = (*ReservationGormRepository)(nil)
