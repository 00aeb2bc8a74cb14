package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/chakrahealing/admin_api/internal/listing"
	"github.com/chakrahealing/admin_api/internal/models"
	"github.com/chakrahealing/admin_api/internal/utils"
)

// PaymentService backs the payments page, a view over paid orders.
type PaymentService struct {
	orders OrderStore
	limit  int
}

// NewPaymentService constructs a PaymentService.
func NewPaymentService(orders OrderStore, limit int) *PaymentService {
	return &PaymentService{orders: orders, limit: limit}
}

// List returns one page of paid orders matching the search.
func (s *PaymentService) List(ctx context.Context, q listing.Query) (listing.Page[models.Order], error) {
	orders, err := s.orders.ListPaid(ctx, s.limit)
	if err != nil {
		return listing.Page[models.Order]{}, err
	}
	q.Tab = listing.TabAll
	return listing.Apply(orders, q, listing.OrderMatch(q)), nil
}

// Update edits the payment fields of an order and returns the fresh row.
// payment_status is authoritative, so a "paid" order status is mirrored into
// it and a contradicting payment status is rejected.
func (s *PaymentService) Update(ctx context.Context, id int64, upd models.PaymentUpdate) (*models.Order, error) {
	if err := validateStruct(upd); err != nil {
		return nil, err
	}
	if upd.Status != nil && *upd.Status == "paid" {
		if upd.PaymentStatus != nil && *upd.PaymentStatus != "paid" {
			return nil, fmt.Errorf("%w: status paid conflicts with paymentStatus %s", utils.ErrInvalidInput, *upd.PaymentStatus)
		}
		paid := "paid"
		upd.PaymentStatus = &paid
	}
	if err := s.orders.UpdatePayment(ctx, id, upd); err != nil {
		return nil, err
	}
	return s.orders.GetByID(ctx, id)
}

// Delete removes the order behind a payment row.
func (s *PaymentService) Delete(ctx context.Context, id int64) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Int64("order_id", id).Msg("Order deleted from payments")
	return nil
}
