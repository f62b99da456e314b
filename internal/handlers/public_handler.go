package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/table-booking/internal/httperr"
	"github.com/BruksfildServices01/table-booking/internal/timezone"
	"github.com/BruksfildServices01/table-booking/internal/usecase/reservation"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	availability *reservation.GetAvailability
	book         *reservation.BookTable
	loc          *time.Location
}

func NewPublicHandler(
	availability *reservation.GetAvailability,
	book *reservation.BookTable,
	loc *time.Location,
) *PublicHandler {
	return &PublicHandler{
		availability: availability,
		book:         book,
		loc:          loc,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateReservationRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD

	TableID   uint   `json:"table_id"`
	PartySize int    `json:"party_size"`
	Start     string `json:"start" binding:"required"` // RFC3339 ou YYYY-MM-DD HH:mm
	End       string `json:"end" binding:"required"`
	Notes     string `json:"notes"`
}

func (h *PublicHandler) parseWindow(startStr, endStr string) (domain.Window, bool) {
	start, err := timezone.ParseTimestamp(startStr, h.loc)
	if err != nil {
		return domain.Window{}, false
	}
	end, err := timezone.ParseTimestamp(endStr, h.loc)
	if err != nil {
		return domain.Window{}, false
	}
	return domain.Window{Start: start, End: end}, true
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	partyStr := c.Query("party_size")
	startStr := c.Query("start")
	endStr := c.Query("end")

	if partyStr == "" || startStr == "" || endStr == "" {
		httperr.BadRequest(c, "missing_params", "Número de pessoas, início e fim obrigatórios.")
		return
	}

	partySize, err := strconv.Atoi(partyStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_party_size", messageFor("invalid_party_size", ""))
		return
	}

	w, ok := h.parseWindow(startStr, endStr)
	if !ok {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	out, err := h.availability.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			PartySize: partySize,
			Window:    w,
		},
	)
	if err != nil {
		respondError(c, err, "availability_failed", "Erro ao calcular disponibilidade.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"party_size": partySize,
		"start":      w.Start,
		"end":        w.End,
		"tables":     out.Tables,
		"best":       out.Best,
	})
}

////////////////////////////////////////////////////////
// CREATE RESERVATION
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateReservation(c *gin.Context) {
	var req PublicCreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", messageFor("invalid_request", ""))
		return
	}

	w, ok := h.parseWindow(req.Start, req.End)
	if !ok {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	var birthDate *time.Time
	if s := strings.TrimSpace(req.BirthDate); s != "" {
		d, err := time.ParseInLocation(timezone.DateLayout, s, h.loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_birth_date", "Data de nascimento inválida.")
			return
		}
		birthDate = &d
	}

	out, err := h.book.Execute(
		c.Request.Context(),
		reservation.BookTableInput{
			Customer: reservation.CustomerDetails{
				FirstName: req.FirstName,
				LastName:  req.LastName,
				Email:     req.Email,
				Phone:     req.Phone,
				BirthDate: birthDate,
			},
			TableID:   req.TableID,
			Window:    w,
			PartySize: req.PartySize,
			Notes:     req.Notes,
		},
	)
	if err != nil {
		respondError(c, err, "failed_to_create_reservation", "Erro ao criar reserva.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":           true,
		"public_id":    out.PublicID,
		"table_number": out.TableNumber,
	})
}
