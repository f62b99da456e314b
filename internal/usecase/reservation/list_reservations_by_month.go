package reservation

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/table-booking/internal/dto"
	"github.com/BruksfildServices01/table-booking/internal/httperr"
)

type ListReservationsByMonth struct {
	repo domain.Gateway
	loc  *time.Location
}

func NewListReservationsByMonth(
	repo domain.Gateway,
	loc *time.Location,
) *ListReservationsByMonth {
	return &ListReservationsByMonth{
		repo: repo,
		loc:  loc,
	}
}

func (uc *ListReservationsByMonth) Execute(
	ctx context.Context,
	year int,
	month int,
) ([]dto.ReservationListDTO, error) {

	if month < 1 || month > 12 {
		return nil, httperr.InvalidInput("invalid_month")
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, uc.loc)
	end := start.AddDate(0, 1, 0)

	reservations, err := uc.repo.ListReservationsForPeriod(
		ctx,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	return toListDTOs(reservations, uc.loc), nil
}
