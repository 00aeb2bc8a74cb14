package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/chakrahealing/admin_api/internal/database"
	"github.com/chakrahealing/admin_api/internal/models"
)

const orderColumns = `
	id, user_id, email, phone, contact_email, contact_phone, status, payment_status,
	payment_method, shipping_method, shipping_status, address, shipping_address,
	currency, total_paise, razorpay_order_id, razorpay_payment_id, notes, created_at, updated_at`

// OrderRepository reads and writes orders with their items and cancellations.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// GetAllAdmin returns the newest orders with profile, items and cancellations.
func (r *OrderRepository) GetAllAdmin(ctx context.Context, limit int) ([]models.Order, error) {
	var orders []models.Order
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC LIMIT $1`
	if err := r.db.SelectContext(ctx, &orders, query, limit); err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	if err := r.loadRelations(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListPaid returns the newest paid orders for the payments page.
func (r *OrderRepository) ListPaid(ctx context.Context, limit int) ([]models.Order, error) {
	var orders []models.Order
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE LOWER(COALESCE(payment_status, '')) = 'paid' OR LOWER(status) = 'paid'
		ORDER BY created_at DESC LIMIT $1`
	if err := r.db.SelectContext(ctx, &orders, query, limit); err != nil {
		return nil, fmt.Errorf("select paid orders: %w", err)
	}
	if err := r.loadRelations(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetByID returns one order with its relations.
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	if err := r.db.GetContext(ctx, &order, query, id); err != nil {
		return nil, notFound(err)
	}
	orders := []models.Order{order}
	if err := r.loadRelations(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

// loadRelations batch-loads items, cancellations and profiles for orders.
func (r *OrderRepository) loadRelations(ctx context.Context, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int64, len(orders))
	userIDs := make([]*string, len(orders))
	index := make(map[int64]int, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		userIDs[i] = orders[i].UserID
		index[orders[i].ID] = i
		orders[i].Items = []models.OrderItem{}
		orders[i].Cancellations = []models.OrderCancellationRequest{}
	}

	var items []models.OrderItem
	if err := selectIn(ctx, r.db, &items, `
		SELECT id, order_id, product_id, variant_id, name_snapshot, unit_price_paise, quantity,
			color_snapshot, size_snapshot, image_snapshot, line_total_paise, created_at
		FROM order_items WHERE order_id IN (?) ORDER BY id`, ids); err != nil {
		return fmt.Errorf("select order items: %w", err)
	}
	for _, it := range items {
		i := index[it.OrderID]
		orders[i].Items = append(orders[i].Items, it)
	}

	var cancels []models.OrderCancellationRequest
	if err := selectIn(ctx, r.db, &cancels, `
		SELECT id, order_id, user_id, reason, status, created_at
		FROM order_cancellation_requests WHERE order_id IN (?) ORDER BY created_at DESC`, ids); err != nil {
		return fmt.Errorf("select order cancellations: %w", err)
	}
	for _, c := range cancels {
		i := index[c.OrderID]
		orders[i].Cancellations = append(orders[i].Cancellations, c)
	}

	profiles, err := loadProfileSummaries(ctx, r.db, uniqueStrings(userIDs))
	if err != nil {
		return err
	}
	for i := range orders {
		if orders[i].UserID != nil {
			if p, ok := profiles[*orders[i].UserID]; ok {
				orders[i].Profile = p
			}
		}
	}
	return nil
}

// ApplyShippingStatus writes the shipping status and, when cancelReason is
// set, records an approved cancellation with that reason unless one with the
// same reason already exists. Both writes share one transaction.
func (r *OrderRepository) ApplyShippingStatus(ctx context.Context, orderID int64, status models.ShippingStatus, cancelReason string) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE orders SET shipping_status = $1, updated_at = NOW() WHERE id = $2`,
			string(status), orderID)
		if err := expectAffected(res, err); err != nil {
			return err
		}

		if cancelReason == "" {
			return nil
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_cancellation_requests (order_id, user_id, reason, status)
			SELECT $1, NULL, $2, 'approved'
			WHERE NOT EXISTS (
				SELECT 1 FROM order_cancellation_requests
				WHERE order_id = $1 AND LOWER(TRIM(COALESCE(reason, ''))) = LOWER(TRIM($2))
			)`, orderID, cancelReason)
		if err != nil {
			return fmt.Errorf("insert cancellation: %w", err)
		}
		return nil
	})
}

// UpdatePayment applies the editable payment fields of an order.
func (r *OrderRepository) UpdatePayment(ctx context.Context, id int64, upd models.PaymentUpdate) error {
	var set setClause
	if upd.PaymentStatus != nil {
		set.add("payment_status", *upd.PaymentStatus)
	}
	if upd.PaymentMethod != nil {
		set.add("payment_method", nullString(upd.PaymentMethod))
	}
	if upd.Status != nil {
		set.add("status", *upd.Status)
	}
	if upd.ShippingMethod != nil {
		set.add("shipping_method", nullString(upd.ShippingMethod))
	}
	if upd.Notes != nil {
		set.add("notes", nullString(upd.Notes))
	}
	if set.empty() {
		return nil
	}
	query, args := set.build("orders", id, true)
	return expectAffected(r.db.ExecContext(ctx, query, args...))
}

// Delete removes an order. Items and cancellations cascade.
func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	return expectAffected(r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id))
}
