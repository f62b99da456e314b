package reservation

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/table-booking/internal/audit"
	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/table-booking/internal/infra/memory"
	"github.com/BruksfildServices01/table-booking/internal/models"
)

var base = time.Date(2026, 5, 2, 18, 0, 0, 0, time.UTC)

func window(fromHour, toHour float64) domain.Window {
	return domain.Window{
		Start: base.Add(time.Duration(fromHour * float64(time.Hour))),
		End:   base.Add(time.Duration(toHour * float64(time.Hour))),
	}
}

type recordingSink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (s *recordingSink) Write(_ context.Context, ev audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func (s *recordingSink) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Action)
	}
	return out
}

// newAuditor returns a dispatcher whose events can be read after flush.
func newAuditor(t *testing.T) (*audit.Dispatcher, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	d := audit.NewDispatcher(zap.NewNop(), sink)
	t.Cleanup(d.Close)
	return d, sink
}

// restaurant seeds statuses and tables {A:2 seats, B:6, C:4}.
func restaurant(opts domain.ProcedureOptions) (*memory.Store, map[string]models.Table) {
	s := memory.NewStore(opts)
	for _, l := range domain.DefaultLabels() {
		s.AddStatus(l)
	}

	tables := map[string]models.Table{
		"A": s.AddTable(models.Table{Number: 1, Capacity: 2}),
		"B": s.AddTable(models.Table{Number: 2, Capacity: 6}),
		"C": s.AddTable(models.Table{Number: 3, Capacity: 4}),
	}
	return s, tables
}

func statusID(t *testing.T, s *memory.Store, label string) uint {
	t.Helper()
	statuses, _ := s.ListStatuses(context.Background())
	for _, st := range statuses {
		if st.Label == label {
			return st.ID
		}
	}
	t.Fatalf("status %q not seeded", label)
	return 0
}

// fakeCache scopes entries by generation like the redis cache.
type fakeCache struct {
	mu          sync.Mutex
	gen         int64
	entries     map[string][]models.Table
	invalidated int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]models.Table)}
}

func cacheKey(gen int64, in domain.AvailabilityInput) string {
	return fmt.Sprintf("%d:%d:%d:%d", gen, in.PartySize, in.Window.Start.Unix(), in.Window.End.Unix())
}

func (c *fakeCache) Get(_ context.Context, in domain.AvailabilityInput) ([]models.Table, int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.entries[cacheKey(c.gen, in)]
	return t, c.gen, ok
}

func (c *fakeCache) Set(_ context.Context, gen int64, in domain.AvailabilityInput, tables []models.Table) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(gen, in)] = tables
}

func (c *fakeCache) Invalidate(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.invalidated++
}
