package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/table-booking/internal/config"
	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/table-booking/internal/infra/memory"
	"github.com/BruksfildServices01/table-booking/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	router *gin.Engine
	store  *memory.Store
	tables map[int]models.Table
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := &config.Config{
		Timezone:           "UTC",
		PublicRatePerMin:   0,
		LoyaltyStatusLabel: domain.LabelCompleted,
	}

	store := memory.NewStore(cfg.ProcedureOptions())
	for _, l := range domain.DefaultLabels() {
		store.AddStatus(l)
	}

	tables := map[int]models.Table{}
	for _, def := range []struct{ number, capacity int }{{1, 2}, {2, 6}, {3, 4}} {
		tables[def.number] = store.AddTable(models.Table{Number: def.number, Capacity: def.capacity})
	}

	r := gin.New()
	RegisterRoutes(r, Deps{Cfg: cfg, Gateway: store})

	return &fixture{router: r, store: store, tables: tables}
}

func (f *fixture) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (f *fixture) booking(table int, start, end string) map[string]any {
	return map[string]any{
		"first_name": "Ana",
		"last_name":  "Ruiz",
		"email":      "ana@example.com",
		"table_id":   f.tables[table].ID,
		"party_size": 3,
		"start":      start,
		"end":        end,
	}
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAvailability(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/api/public/availability?party_size=3&start=2026-05-02%2020:00&end=2026-05-02%2022:00", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	tables := body["tables"].([]any)
	require.Len(t, tables, 2)
	assert.Equal(t, float64(3), tables[0].(map[string]any)["table_number"])
	assert.Equal(t, float64(2), tables[1].(map[string]any)["table_number"])
	assert.Equal(t, float64(3), body["best"].(map[string]any)["table_number"])
}

func TestAvailability_BadInput(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		query string
		code  string
	}{
		{"missing", "party_size=3", "missing_params"},
		{"party not a number", "party_size=x&start=2026-05-02T20:00:00Z&end=2026-05-02T22:00:00Z", "invalid_party_size"},
		{"party zero", "party_size=0&start=2026-05-02T20:00:00Z&end=2026-05-02T22:00:00Z", "invalid_party_size"},
		{"bad time", "party_size=2&start=tonight&end=2026-05-02T22:00:00Z", "invalid_date_or_time"},
		{"reversed", "party_size=2&start=2026-05-02T22:00:00Z&end=2026-05-02T20:00:00Z", "invalid_window"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(http.MethodGet, "/api/public/availability?"+tt.query, nil)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.code, decode(t, w)["error_code"])
		})
	}
}

func TestCreateReservation(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/public/reservations", f.booking(3, "2026-05-02T20:00:00Z", "2026-05-02T22:00:00Z"))

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, float64(3), body["table_number"])
	assert.NotEmpty(t, body["public_id"])

	conflict := f.do(http.MethodPost, "/api/public/reservations", f.booking(3, "2026-05-02 21:00", "2026-05-02 23:00"))

	assert.Equal(t, http.StatusConflict, conflict.Code)
	assert.Equal(t, "time_conflict", decode(t, conflict)["error_code"])
}

func TestCreateReservation_Errors(t *testing.T) {
	f := newFixture(t)

	tooMany := f.booking(1, "2026-05-02T20:00:00Z", "2026-05-02T22:00:00Z")
	w := f.do(http.MethodPost, "/api/public/reservations", tooMany)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "capacity_exceeded", decode(t, w)["error_code"])

	unknown := f.booking(1, "2026-05-02T20:00:00Z", "2026-05-02T22:00:00Z")
	unknown["table_id"] = 999
	w = f.do(http.MethodPost, "/api/public/reservations", unknown)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "table_not_found", decode(t, w)["error_code"])

	noName := f.booking(2, "2026-05-02T20:00:00Z", "2026-05-02T22:00:00Z")
	noName["first_name"] = " "
	w = f.do(http.MethodPost, "/api/public/reservations", noName)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "customer_name_required", decode(t, w)["error_code"])

	w = f.do(http.MethodPost, "/api/public/reservations", map[string]any{"first_name": "Ana"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", decode(t, w)["error_code"])

	assert.Empty(t, f.store.Reservations())
}

func TestReservationLifecycle(t *testing.T) {
	f := newFixture(t)

	created := decode(t, f.do(http.MethodPost, "/api/public/reservations", f.booking(2, "2026-05-02T20:00:00Z", "2026-05-02T22:00:00Z")))
	publicID := created["public_id"].(string)

	// get
	w := f.do(http.MethodGet, "/api/reservations/"+publicID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.LabelPending, decode(t, w)["status"].(map[string]any)["label"])

	// list by date
	w = f.do(http.MethodGet, "/api/reservations?date=2026-05-02", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode(t, w)
	assert.Equal(t, float64(1), list["total"])

	w = f.do(http.MethodGet, "/api/reservations?date=2026-05-03", nil)
	assert.Equal(t, float64(0), decode(t, w)["total"])

	// list by month
	w = f.do(http.MethodGet, "/api/reservations/month?year=2026&month=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["total"])

	// change status
	var completedID uint
	statuses, _ := f.store.ListStatuses(context.Background())
	for _, s := range statuses {
		if s.Label == domain.LabelCompleted {
			completedID = s.ID
		}
	}

	w = f.do(http.MethodPatch, fmt.Sprintf("/api/reservations/%s/status", publicID), map[string]any{"status_id": completedID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, domain.LabelCompleted, body["status"].(map[string]any)["label"])
	assert.Equal(t, float64(3), body["customer"].(map[string]any)["loyalty_points"])
}

func TestReservationErrors(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/api/reservations/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "reservation_not_found", decode(t, w)["error_code"])

	w = f.do(http.MethodPatch, "/api/reservations/nope/status", map[string]any{"status_id": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(http.MethodGet, "/api/reservations", nil)
	assert.Equal(t, "missing_date", decode(t, w)["error_code"])

	w = f.do(http.MethodGet, "/api/reservations?date=02-05-2026", nil)
	assert.Equal(t, "invalid_date", decode(t, w)["error_code"])

	w = f.do(http.MethodGet, "/api/reservations/month?year=2026&month=13", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_month", decode(t, w)["error_code"])
}

func TestDeleteReservation(t *testing.T) {
	f := newFixture(t)
	booking := f.booking(3, "2026-05-02T20:00:00Z", "2026-05-02T22:00:00Z")

	created := decode(t, f.do(http.MethodPost, "/api/public/reservations", booking))
	publicID := created["public_id"].(string)

	w := f.do(http.MethodDelete, "/api/reservations/"+publicID, nil)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
	assert.Empty(t, w.Body.String())

	w = f.do(http.MethodGet, "/api/reservations/"+publicID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(http.MethodDelete, "/api/reservations/"+publicID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "reservation_not_found", decode(t, w)["error_code"])

	// the window can be booked again
	w = f.do(http.MethodPost, "/api/public/reservations", booking)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestRecordManagementNeedsDatabase(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/api/tables", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
