package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/table-booking/internal/dbretry"
	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/table-booking/internal/httperr"
	"github.com/BruksfildServices01/table-booking/internal/infra/crud"
)

var messages = map[string]string{
	"invalid_request":        "Dados inválidos.",
	"invalid_table":          "Mesa inválida.",
	"invalid_party_size":     "Número de pessoas inválido.",
	"missing_window":         "Início e fim obrigatórios.",
	"invalid_window":         "O início deve ser anterior ao fim.",
	"invalid_status":         "Estado inválido.",
	"invalid_month":          "Mês inválido.",
	"invalid_email":          "Email inválido.",
	"customer_name_required": "Nome e sobrenome obrigatórios.",
	"table_not_found":        "Mesa não encontrada.",
	"status_not_found":       "Estado não encontrado.",
	"status_not_configured":  "Nenhum estado de reserva configurado.",
	"reservation_not_found":  "Reserva não encontrada.",
	"capacity_exceeded":      "A mesa não comporta o grupo.",
	"table_blocked":          "Mesa bloqueada nesse horário.",
	"time_conflict":          "Conflito de horário.",
	"booking_not_confirmed":  "Não foi possível confirmar a reserva.",
}

func messageFor(code string, fallback string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return fallback
}

// respondError maps use case errors to HTTP statuses.
func respondError(c *gin.Context, err error, code string, message string) {
	if kind, ok := httperr.KindOf(err); ok {
		bc := httperr.CodeOf(err)
		switch kind {
		case httperr.KindNotFound:
			httperr.NotFound(c, bc, messageFor(bc, "Registro não encontrado."))
		case httperr.KindBookingRejected:
			httperr.Conflict(c, bc, messageFor(bc, "Reserva recusada."))
		default:
			httperr.BadRequest(c, bc, messageFor(bc, "Dados inválidos."))
		}
		return
	}

	switch {
	case errors.Is(err, crud.ErrNotFound), errors.Is(err, domain.ErrNotFound):
		httperr.NotFound(c, "not_found", "Registro não encontrado.")
	case errors.Is(err, crud.ErrInUse):
		httperr.Conflict(c, "in_use", "Registro em uso por outros registros.")
	case errors.Is(err, crud.ErrDuplicate):
		httperr.Conflict(c, "duplicate", "Registro duplicado.")
	case dbretry.IsTransient(err):
		zap.L().Warn("storage unavailable", zap.String("path", c.FullPath()), zap.Error(err))
		httperr.Unavailable(c, "storage_unavailable", "Serviço temporariamente indisponível.")
	default:
		zap.L().Error(code, zap.String("path", c.FullPath()), zap.Error(err))
		httperr.Internal(c, code, message)
	}
}
