package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/table-booking/internal/httperr"
	"github.com/BruksfildServices01/table-booking/internal/httpresp"
	"github.com/BruksfildServices01/table-booking/internal/timezone"
	"github.com/BruksfildServices01/table-booking/internal/usecase/reservation"
)

// ======================================================
// HANDLER
// ======================================================

type ReservationHandler struct {
	repo         domain.Gateway
	listByDate   *reservation.ListReservationsByDate
	listByMonth  *reservation.ListReservationsByMonth
	changeStatus *reservation.ChangeStatus
	remove       *reservation.DeleteReservation
	loc          *time.Location
}

func NewReservationHandler(
	repo domain.Gateway,
	listByDate *reservation.ListReservationsByDate,
	listByMonth *reservation.ListReservationsByMonth,
	changeStatus *reservation.ChangeStatus,
	remove *reservation.DeleteReservation,
	loc *time.Location,
) *ReservationHandler {
	return &ReservationHandler{
		repo:         repo,
		listByDate:   listByDate,
		listByMonth:  listByMonth,
		changeStatus: changeStatus,
		remove:       remove,
		loc:          loc,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ChangeStatusRequest struct {
	StatusID uint `json:"status_id"`
}

// ======================================================
// LIST BY DATE
// ======================================================

func (h *ReservationHandler) ListByDate(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	date, _, err := timezone.DayBounds(dateStr, h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	list, err := h.listByDate.Execute(c.Request.Context(), date)
	if err != nil {
		respondError(c, err, "failed_to_list_reservations", "Erro ao listar reservas.")
		return
	}

	httpresp.List(c, list)
}

// ======================================================
// LIST BY MONTH
// ======================================================

func (h *ReservationHandler) ListByMonth(c *gin.Context) {
	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Ano e mês são obrigatórios.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	list, err := h.listByMonth.Execute(c.Request.Context(), year, month)
	if err != nil {
		respondError(c, err, "failed_to_list_reservations", "Erro ao listar reservas.")
		return
	}

	httpresp.List(c, list)
}

// ======================================================
// GET
// ======================================================

func (h *ReservationHandler) Get(c *gin.Context) {
	res, err := h.repo.GetReservationByPublicID(c.Request.Context(), c.Param("public_id"))
	if errors.Is(err, domain.ErrNotFound) {
		httperr.NotFound(c, "reservation_not_found", messageFor("reservation_not_found", ""))
		return
	}
	if err != nil {
		respondError(c, err, "failed_to_get_reservation", "Erro ao carregar reserva.")
		return
	}

	httpresp.OK(c, res)
}

// ======================================================
// CHANGE STATUS
// ======================================================

func (h *ReservationHandler) ChangeStatus(c *gin.Context) {
	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", messageFor("invalid_request", ""))
		return
	}

	res, err := h.changeStatus.Execute(
		c.Request.Context(),
		c.Param("public_id"),
		req.StatusID,
	)
	if err != nil {
		respondError(c, err, "failed_to_change_status", "Erro ao alterar estado.")
		return
	}

	httpresp.OK(c, res)
}

// ======================================================
// DELETE
// ======================================================

func (h *ReservationHandler) Delete(c *gin.Context) {
	if err := h.remove.Execute(c.Request.Context(), c.Param("public_id")); err != nil {
		respondError(c, err, "failed_to_delete_reservation", "Erro ao excluir reserva.")
		return
	}
	httpresp.NoContent(c)
}
