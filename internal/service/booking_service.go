package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/chakrahealing/admin_api/internal/listing"
	"github.com/chakrahealing/admin_api/internal/models"
	"github.com/chakrahealing/admin_api/internal/sse"
)

// BookingService backs the bookings page.
type BookingService struct {
	bookings BookingStore
	notifier sse.Notifier
}

// NewBookingService constructs a BookingService.
func NewBookingService(bookings BookingStore, notifier sse.Notifier) *BookingService {
	if notifier == nil {
		notifier = sse.NopNotifier{}
	}
	return &BookingService{bookings: bookings, notifier: notifier}
}

// List returns one page of bookings filtered by status, payment status and search.
func (s *BookingService) List(ctx context.Context, q listing.Query) (listing.Page[models.Booking], error) {
	bookings, err := s.bookings.GetAll(ctx)
	if err != nil {
		return listing.Page[models.Booking]{}, err
	}
	return listing.Apply(bookings, q, listing.BookingMatch(q)), nil
}

// Get returns one booking with its items, payments and cancellations.
func (s *BookingService) Get(ctx context.Context, id int64) (*models.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

// Update applies the editable fields and returns the re-read booking.
func (s *BookingService) Update(ctx context.Context, id int64, upd models.BookingUpdate, actorID string) (*models.Booking, error) {
	if err := validateStruct(upd); err != nil {
		return nil, err
	}
	if err := s.bookings.Update(ctx, id, upd); err != nil {
		return nil, err
	}

	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.IsCancelled() && booking.LatestCancellation() == nil {
		log.Warn().Int64("booking_id", id).Msg("Booking cancelled without a cancellation reason")
	}

	log.Info().Int64("booking_id", id).Str("status", booking.Status).Str("actor_id", actorID).Msg("Booking updated")
	s.notifier.NotifyBookingUpdated(booking, actorID)
	return booking, nil
}

// Delete removes a booking and announces it to connected admins.
func (s *BookingService) Delete(ctx context.Context, id int64, actorID string) error {
	if err := s.bookings.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Int64("booking_id", id).Str("actor_id", actorID).Msg("Booking deleted")
	s.notifier.NotifyBookingDeleted(id, actorID)
	return nil
}
