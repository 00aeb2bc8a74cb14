package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/chakrahealing/admin_api/internal/listing"
	"github.com/chakrahealing/admin_api/internal/models"
	"github.com/chakrahealing/admin_api/internal/sse"
	"github.com/chakrahealing/admin_api/internal/utils"
)

// OrderService backs the orders page.
type OrderService struct {
	orders   OrderStore
	notifier sse.Notifier
	limit    int
}

// NewOrderService constructs an OrderService reading at most limit orders per snapshot.
func NewOrderService(orders OrderStore, notifier sse.Notifier, limit int) *OrderService {
	if notifier == nil {
		notifier = sse.NopNotifier{}
	}
	return &OrderService{orders: orders, notifier: notifier, limit: limit}
}

// List filters the order snapshot by tab and search and returns one page.
func (s *OrderService) List(ctx context.Context, q listing.Query) (listing.Page[models.Order], error) {
	if !listing.ValidOrderTab(q.Tab) {
		return listing.Page[models.Order]{}, fmt.Errorf("%w: unknown tab %q", utils.ErrInvalidInput, q.Tab)
	}
	orders, err := s.orders.GetAllAdmin(ctx, s.limit)
	if err != nil {
		return listing.Page[models.Order]{}, err
	}
	return listing.Apply(orders, q, listing.OrderMatch(q)), nil
}

// Get returns one order with its items and cancellations.
func (s *OrderService) Get(ctx context.Context, id int64) (*models.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// UpdateShippingStatus moves a paid order to next. Cancelling records an
// approved "Cancelled by Admin" request unless a request with that reason
// already exists. The status write and the insert share one transaction.
func (s *OrderService) UpdateShippingStatus(ctx context.Context, orderID int64, next, actorID string) (*models.Order, error) {
	status, ok := models.ParseShippingStatus(next)
	if !ok {
		return nil, fmt.Errorf("%w: shipping status %q", utils.ErrInvalidStatus, next)
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.IsPaid() {
		return nil, utils.ErrOrderNotPaid
	}

	reason := ""
	if status == models.ShippingCancelled && !order.HasCancellationReason(models.AdminCancellationReason) {
		reason = models.AdminCancellationReason
	}

	if err := s.orders.ApplyShippingStatus(ctx, orderID, status, reason); err != nil {
		log.Error().Err(err).Int64("order_id", orderID).Str("status", string(status)).Msg("Failed to update shipping status")
		return nil, err
	}

	updated, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int64("order_id", orderID).
		Str("status", string(status)).
		Bool("cancellation_recorded", reason != "").
		Str("actor_id", actorID).
		Msg("Shipping status updated")

	s.notifier.NotifyShippingStatusChanged(updated, actorID)
	return updated, nil
}
