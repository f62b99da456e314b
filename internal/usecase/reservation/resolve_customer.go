package reservation

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/table-booking/internal/httperr"
	"github.com/BruksfildServices01/table-booking/internal/models"
	"github.com/BruksfildServices01/table-booking/internal/validators"
)

type CustomerDetails struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	BirthDate *time.Time
}

// ResolveCustomer finds a customer by email, then by phone, and creates one
// when neither matches.
type ResolveCustomer struct {
	repo domain.Gateway
}

func NewResolveCustomer(repo domain.Gateway) *ResolveCustomer {
	return &ResolveCustomer{repo: repo}
}

func (uc *ResolveCustomer) Execute(
	ctx context.Context,
	in CustomerDetails,
) (*models.Customer, error) {

	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	if first == "" || last == "" {
		return nil, httperr.InvalidInput("customer_name_required")
	}

	email := validators.NormalizeEmail(in.Email)
	if email != nil && !validators.IsEmail(*email) {
		return nil, httperr.InvalidInput("invalid_email")
	}
	phone := validators.Optional(in.Phone)

	// --------------------------------------------------
	// 1️⃣ Email
	// --------------------------------------------------
	if email != nil {
		c, err := uc.repo.GetCustomerByEmail(ctx, *email)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 2️⃣ Telefone
	// --------------------------------------------------
	if phone != nil {
		c, err := uc.repo.GetCustomerByPhone(ctx, *phone)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 3️⃣ Novo cliente
	// --------------------------------------------------
	c := &models.Customer{
		FirstName: first,
		LastName:  last,
		Email:     email,
		Phone:     phone,
		BirthDate: in.BirthDate,
	}
	if err := uc.repo.CreateCustomer(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}
