package handlers

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/table-booking/internal/httperr"
	"github.com/BruksfildServices01/table-booking/internal/models"
	"github.com/BruksfildServices01/table-booking/internal/validators"
)

// --------------------------------------------------
// Zonas
// --------------------------------------------------

func ZoneHooks() Hooks[models.Zone] {
	return Hooks[models.Zone]{
		Sanitize: func(z *models.Zone) {
			z.ID, z.PublicID = 0, ""
			z.CreatedAt, z.UpdatedAt = time.Time{}, time.Time{}
			z.Name = strings.TrimSpace(z.Name)
		},
		Validate: func(z *models.Zone) error {
			if z.Name == "" {
				return httperr.InvalidInput("zone_name_required")
			}
			return nil
		},
	}
}

// --------------------------------------------------
// Estados
// --------------------------------------------------

func StatusHooks() Hooks[models.ReservationStatus] {
	return Hooks[models.ReservationStatus]{
		Sanitize: func(s *models.ReservationStatus) {
			s.ID = 0
			s.CreatedAt, s.UpdatedAt = time.Time{}, time.Time{}
			s.Label = strings.TrimSpace(s.Label)
		},
		Validate: func(s *models.ReservationStatus) error {
			if s.Label == "" {
				return httperr.InvalidInput("status_label_required")
			}
			return nil
		},
	}
}

// --------------------------------------------------
// Mesas
// --------------------------------------------------

func TableHooks() Hooks[models.Table] {
	return Hooks[models.Table]{
		Sanitize: func(t *models.Table) {
			t.ID, t.PublicID = 0, ""
			t.CreatedAt, t.UpdatedAt = time.Time{}, time.Time{}
			t.Zone = nil
		},
		Validate: func(t *models.Table) error {
			if t.Number < 1 {
				return httperr.InvalidInput("invalid_table_number")
			}
			if t.Capacity < 1 {
				return httperr.InvalidInput("invalid_capacity")
			}
			return nil
		},
	}
}

// --------------------------------------------------
// Clientes
// --------------------------------------------------

func CustomerHooks() Hooks[models.Customer] {
	return Hooks[models.Customer]{
		Sanitize: func(c *models.Customer) {
			c.ID, c.PublicID = 0, ""
			c.CreatedAt, c.UpdatedAt = time.Time{}, time.Time{}
			c.FirstName = strings.TrimSpace(c.FirstName)
			c.LastName = strings.TrimSpace(c.LastName)
			if c.Email != nil {
				c.Email = validators.NormalizeEmail(*c.Email)
			}
			if c.Phone != nil {
				c.Phone = validators.Optional(*c.Phone)
			}
		},
		Validate: func(c *models.Customer) error {
			if c.FirstName == "" || c.LastName == "" {
				return httperr.InvalidInput("customer_name_required")
			}
			if c.Email != nil && !validators.IsEmail(*c.Email) {
				return httperr.InvalidInput("invalid_email")
			}
			if c.LoyaltyPoints < 0 {
				return httperr.InvalidInput("invalid_loyalty_points")
			}
			return nil
		},
	}
}
