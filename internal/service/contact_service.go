package service

import (
	"context"

	"github.com/chakrahealing/admin_api/internal/listing"
	"github.com/chakrahealing/admin_api/internal/models"
)

// ContactService backs the contact inbox.
type ContactService struct {
	contacts ContactStore
}

// NewContactService constructs a ContactService.
func NewContactService(contacts ContactStore) *ContactService {
	return &ContactService{contacts: contacts}
}

// List returns one page of contact messages matching the search.
func (s *ContactService) List(ctx context.Context, q listing.Query) (listing.Page[models.Contact], error) {
	rows, err := s.contacts.GetAll(ctx)
	if err != nil {
		return listing.Page[models.Contact]{}, err
	}
	return listing.Apply(rows, q, listing.ContactMatch(q)), nil
}

// Get returns one contact message.
func (s *ContactService) Get(ctx context.Context, id int64) (*models.Contact, error) {
	return s.contacts.GetByID(ctx, id)
}

// Delete removes a contact message.
func (s *ContactService) Delete(ctx context.Context, id int64) error {
	return s.contacts.Delete(ctx, id)
}
