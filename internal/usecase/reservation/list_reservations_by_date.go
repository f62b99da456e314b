package reservation

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/table-booking/internal/dto"
	"github.com/BruksfildServices01/table-booking/internal/models"
)

type ListReservationsByDate struct {
	repo domain.Gateway
	loc  *time.Location
}

func NewListReservationsByDate(
	repo domain.Gateway,
	loc *time.Location,
) *ListReservationsByDate {
	return &ListReservationsByDate{
		repo: repo,
		loc:  loc,
	}
}

func (uc *ListReservationsByDate) Execute(
	ctx context.Context,
	date time.Time,
) ([]dto.ReservationListDTO, error) {

	start := time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		0, 0, 0, 0,
		uc.loc,
	)
	end := start.AddDate(0, 0, 1)

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

func toListDTOs(reservations []models.Reservation, loc *time.Location) []dto.ReservationListDTO {
	out := make([]dto.ReservationListDTO, 0, len(reservations))
	for _, r := range reservations {
		item := dto.ReservationListDTO{
			PublicID:  r.PublicID,
			StartAt:   r.StartAt.In(loc),
			EndAt:     r.EndAt.In(loc),
			PartySize: r.PartySize,
			Notes:     r.Notes,
		}
		if r.Table != nil {
			item.TableNumber = r.Table.Number
		}
		if r.Status != nil {
			item.Status = r.Status.Label
		}
		if r.Customer != nil {
			item.CustomerName = r.Customer.FirstName + " " + r.Customer.LastName
		}
		out = append(out, item)
	}
	return out
}
