// Package memory is an in-process implementation of the booking gateway.
// The create-reservation procedure is serialized per table with a mutex,
// the in-process counterpart of the row lock taken by the postgres gateway.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/table-booking/internal/httperr"
	"github.com/BruksfildServices01/table-booking/internal/models"
)

type Store struct {
	mu         sync.RWMutex
	tableLocks map[uint]*sync.Mutex

	tables       map[uint]models.Table
	statuses     map[uint]models.ReservationStatus
	customers    map[uint]models.Customer
	reservations map[uint]models.Reservation

	nextID uint
	opts   domain.ProcedureOptions
	now    func() time.Time
}

func NewStore(opts domain.ProcedureOptions) *Store {
	return &Store{
		tableLocks:   make(map[uint]*sync.Mutex),
		tables:       make(map[uint]models.Table),
		statuses:     make(map[uint]models.ReservationStatus),
		customers:    make(map[uint]models.Customer),
		reservations: make(map[uint]models.Reservation),
		opts:         opts,
		now:          time.Now,
	}
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

// --------------------------------------------------
// Seeding
// --------------------------------------------------

func (s *Store) AddTable(t models.Table) models.Table {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == 0 {
		t.ID = s.id()
	}
	if t.PublicID == "" {
		t.PublicID = models.NewPublicID()
	}
	s.tables[t.ID] = t
	return t
}

func (s *Store) AddStatus(label string) models.ReservationStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := models.ReservationStatus{ID: s.id(), Label: label}
	s.statuses[st.ID] = st
	return st
}

func (s *Store) AddReservation(r models.Reservation) models.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == 0 {
		r.ID = s.id()
	}
	if r.PublicID == "" {
		r.PublicID = models.NewPublicID()
	}
	s.reservations[r.ID] = r
	return r
}

func (s *Store) Customers() []models.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b models.Customer) int { return int(a.ID) - int(b.ID) })
	return out
}

func (s *Store) Reservations() []models.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedReservations(func(models.Reservation) bool { return true })
}

func (s *Store) sortedReservations(keep func(models.Reservation) bool) []models.Reservation {
	out := make([]models.Reservation, 0, len(s.reservations))
	for _, r := range s.reservations {
		if keep(r) {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b models.Reservation) int {
		if c := a.StartAt.Compare(b.StartAt); c != 0 {
			return c
		}
		return int(a.ID) - int(b.ID)
	})
	return out
}

// --------------------------------------------------
// Gateway
// --------------------------------------------------

func (s *Store) ListTables(ctx context.Context) ([]models.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Table, 0, len(s.tables))
	for _, t := range s.tables {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b models.Table) int { return a.Number - b.Number })
	return out, nil
}

func (s *Store) ListStatuses(ctx context.Context) ([]models.ReservationStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.statusList(), nil
}

func (s *Store) statusList() []models.ReservationStatus {
	out := make([]models.ReservationStatus, 0, len(s.statuses))
	for _, st := range s.statuses {
		out = append(out, st)
	}
	slices.SortFunc(out, func(a, b models.ReservationStatus) int { return int(a.ID) - int(b.ID) })
	return out
}

func (s *Store) GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	return s.findCustomer(func(c models.Customer) bool {
		return c.Email != nil && *c.Email == email
	})
}

func (s *Store) GetCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	return s.findCustomer(func(c models.Customer) bool {
		return c.Phone != nil && *c.Phone == phone
	})
}

func (s *Store) findCustomer(match func(models.Customer) bool) (*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *models.Customer
	for _, c := range s.customers {
		if match(c) && (found == nil || c.ID < found.ID) {
			found = &c
		}
	}
	if found == nil {
		return nil, domain.ErrNotFound
	}
	return found, nil
}

func (s *Store) CreateCustomer(ctx context.Context, c *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.id()
	if c.PublicID == "" {
		c.PublicID = models.NewPublicID()
	}
	c.CreatedAt = s.now()
	c.UpdatedAt = c.CreatedAt
	s.customers[c.ID] = *c
	return nil
}

func (s *Store) ListReservations(ctx context.Context, w domain.Window) ([]models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sortedReservations(func(r models.Reservation) bool {
		return w.Overlaps(domain.WindowOf(r.StartAt, r.EndAt))
	}), nil
}

func (s *Store) ListReservationsForPeriod(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.sortedReservations(func(r models.Reservation) bool {
		return !r.StartAt.Before(start) && r.StartAt.Before(end)
	})
	for i := range out {
		s.attach(&out[i])
	}
	return out, nil
}

func (s *Store) GetReservationByPublicID(ctx context.Context, publicID string) (*models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.reservations {
		if r.PublicID == publicID {
			s.attach(&r)
			return &r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Store) FindRecentReservation(ctx context.Context, m domain.ReservationMatch) (*models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *models.Reservation
	for _, r := range s.reservations {
		if r.CustomerID != m.CustomerID || r.TableID != m.TableID || r.PartySize != m.PartySize {
			continue
		}
		if !r.StartAt.Equal(m.Window.Start) || !r.EndAt.Equal(m.Window.End) {
			continue
		}
		if found == nil || r.ID > found.ID {
			found = &r
		}
	}
	if found == nil {
		return nil, domain.ErrNotFound
	}
	s.attach(found)
	return found, nil
}

// attach fills the associations the way the gorm preloads do. Caller holds mu.
func (s *Store) attach(r *models.Reservation) {
	if t, ok := s.tables[r.TableID]; ok {
		r.Table = &t
	}
	if c, ok := s.customers[r.CustomerID]; ok {
		r.Customer = &c
	}
	if st, ok := s.statuses[r.StatusID]; ok {
		r.Status = &st
	}
}

func (s *Store) tableLock(tableID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.tableLocks[tableID]
	if !ok {
		l = &sync.Mutex{}
		s.tableLocks[tableID] = l
	}
	return l
}

func (s *Store) CreateReservationAtomic(
	ctx context.Context,
	p domain.CreateReservationParams,
) (*models.Reservation, error) {

	lock := s.tableLock(p.TableID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.RLock()
	table, ok := s.tables[p.TableID]
	statuses := s.statusList()
	existing := s.sortedReservations(func(r models.Reservation) bool { return r.TableID == p.TableID })
	s.mu.RUnlock()

	if !ok {
		return nil, httperr.NotFoundErr("table_not_found")
	}

	if err := domain.CheckTableAccepts(table, p); err != nil {
		return nil, err
	}

	initial, err := domain.InitialStatus(statuses)
	if err != nil {
		return nil, err
	}

	ignored := domain.StatusIDsWithLabels(statuses, s.opts.InactiveStatusLabels)
	if domain.HasConflict(existing, p.TableID, p.Window, ignored) {
		return nil, httperr.Rejected("time_conflict")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created := models.Reservation{
		ID:         s.id(),
		PublicID:   models.NewPublicID(),
		CustomerID: p.CustomerID,
		TableID:    p.TableID,
		StatusID:   initial.ID,
		StartAt:    p.Window.Start,
		EndAt:      p.Window.End,
		PartySize:  p.PartySize,
		Notes:      p.Notes,
		CreatedAt:  s.now(),
	}
	created.UpdatedAt = created.CreatedAt
	s.reservations[created.ID] = created

	s.attach(&created)
	return &created, nil
}

func (s *Store) ChangeReservationStatusAtomic(
	ctx context.Context,
	reservationID uint,
	statusID uint,
) error {
	s.mu.RLock()
	res, ok := s.reservations[reservationID]
	s.mu.RUnlock()
	if !ok {
		return httperr.NotFoundErr("reservation_not_found")
	}

	lock := s.tableLock(res.TableID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok = s.reservations[reservationID]
	if !ok {
		return httperr.NotFoundErr("reservation_not_found")
	}

	next, ok := s.statuses[statusID]
	if !ok {
		return httperr.NotFoundErr("status_not_found")
	}

	if res.StatusID == next.ID {
		return nil
	}

	prev := s.statuses[res.StatusID]
	sameTable := s.sortedReservations(func(r models.Reservation) bool { return r.TableID == res.TableID })
	ignored := domain.StatusIDsWithLabels(s.statusList(), s.opts.InactiveStatusLabels)
	if err := domain.CheckReactivation(res, prev, next, sameTable, ignored); err != nil {
		return err
	}

	res.StatusID = next.ID
	res.UpdatedAt = s.now()
	s.reservations[res.ID] = res

	if points := domain.LoyaltyPointsFor(prev, next, res.PartySize, s.opts.LoyaltyStatusLabel); points > 0 {
		c := s.customers[res.CustomerID]
		c.LoyaltyPoints += points
		s.customers[c.ID] = c
	}

	return nil
}

func (s *Store) DeleteReservation(ctx context.Context, reservationID uint) error {
	s.mu.RLock()
	res, ok := s.reservations[reservationID]
	s.mu.RUnlock()
	if !ok {
		return httperr.NotFoundErr("reservation_not_found")
	}

	lock := s.tableLock(res.TableID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reservations[reservationID]; !ok {
		return httperr.NotFoundErr("reservation_not_found")
	}
	delete(s.reservations, reservationID)
	return nil
}

var _ domain.Gateway = (*Store)(nil)
