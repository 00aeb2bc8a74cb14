package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/chakrahealing/admin_api/internal/listing"
	"github.com/chakrahealing/admin_api/internal/models"
)

// CustomerService backs the customers page.
type CustomerService struct {
	customers CustomerStore
}

// NewCustomerService constructs a CustomerService.
func NewCustomerService(customers CustomerStore) *CustomerService {
	return &CustomerService{customers: customers}
}

// List returns one page of customer statistics filtered by activity and search.
func (s *CustomerService) List(ctx context.Context, q listing.Query) (listing.Page[models.CustomerStats], error) {
	rows, err := s.customers.GetAll(ctx)
	if err != nil {
		return listing.Page[models.CustomerStats]{}, err
	}
	return listing.Apply(rows, q, listing.CustomerMatch(q)), nil
}

// UpdateProfile edits a customer's profile fields.
func (s *CustomerService) UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) error {
	if err := validateStruct(upd); err != nil {
		return err
	}
	return s.customers.UpdateProfile(ctx, id, upd)
}

// Delete removes the customer's profile row. The account itself is kept.
func (s *CustomerService) Delete(ctx context.Context, id string) error {
	if err := s.customers.DeleteProfile(ctx, id); err != nil {
		return err
	}
	log.Info().Str("customer_id", id).Msg("Customer profile deleted")
	return nil
}
