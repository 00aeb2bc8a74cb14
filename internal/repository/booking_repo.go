package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/chakrahealing/admin_api/internal/database"
	"github.com/chakrahealing/admin_api/internal/models"
)

const bookingColumns = `
	id, user_id, contact_name, contact_email, contact_phone, address, preferred_date,
	preferred_slot, timezone, preferred_location, notes, status, payment_status, currency,
	service_price_paise, payment_method, razorpay_order_id, razorpay_payment_id, paid_at,
	created_at, updated_at`

// BookingRepository reads and writes service bookings.
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository creates a new BookingRepository.
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// GetAll returns every booking, newest first, with items, payments and cancellations.
func (r *BookingRepository) GetAll(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	query := `SELECT ` + bookingColumns + ` FROM service_bookings ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &bookings, query); err != nil {
		return nil, fmt.Errorf("select bookings: %w", err)
	}
	if err := r.loadRelations(ctx, bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// GetByID returns one booking with its relations.
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	var booking models.Booking
	query := `SELECT ` + bookingColumns + ` FROM service_bookings WHERE id = $1`
	if err := r.db.GetContext(ctx, &booking, query, id); err != nil {
		return nil, notFound(err)
	}
	bookings := []models.Booking{booking}
	if err := r.loadRelations(ctx, bookings); err != nil {
		return nil, err
	}
	return &bookings[0], nil
}

// loadRelations batch-loads items (oldest first), payments and cancellations (newest first).
func (r *BookingRepository) loadRelations(ctx context.Context, bookings []models.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	ids := make([]int64, len(bookings))
	index := make(map[int64]int, len(bookings))
	for i := range bookings {
		ids[i] = bookings[i].ID
		index[bookings[i].ID] = i
		bookings[i].Items = []models.BookingItem{}
		bookings[i].Payments = []models.BookingPayment{}
		bookings[i].Cancellations = []models.BookingCancellationRequest{}
	}

	var items []models.BookingItem
	if err := selectIn(ctx, r.db, &items, `
		SELECT i.id, i.booking_id, i.service_id, i.title_snapshot, i.unit_price_paise, i.quantity,
			s.title AS service_title, i.created_at
		FROM service_booking_items i
		LEFT JOIN services s ON s.id = i.service_id
		WHERE i.booking_id IN (?) ORDER BY i.created_at ASC, i.id ASC`, ids); err != nil {
		return fmt.Errorf("select booking items: %w", err)
	}
	for _, it := range items {
		i := index[it.BookingID]
		bookings[i].Items = append(bookings[i].Items, it)
	}

	var payments []models.BookingPayment
	if err := selectIn(ctx, r.db, &payments, `
		SELECT id, booking_id, amount_paise, currency, provider, razorpay_order_id,
			razorpay_payment_id, status, created_at, updated_at
		FROM service_booking_payments WHERE booking_id IN (?) ORDER BY created_at DESC`, ids); err != nil {
		return fmt.Errorf("select booking payments: %w", err)
	}
	for _, p := range payments {
		i := index[p.BookingID]
		bookings[i].Payments = append(bookings[i].Payments, p)
	}

	var cancels []models.BookingCancellationRequest
	if err := selectIn(ctx, r.db, &cancels, `
		SELECT id, booking_id, user_id, reason, status, created_at
		FROM booking_cancellation_requests WHERE booking_id IN (?) ORDER BY created_at DESC`, ids); err != nil {
		return fmt.Errorf("select booking cancellations: %w", err)
	}
	for _, c := range cancels {
		i := index[c.BookingID]
		bookings[i].Cancellations = append(bookings[i].Cancellations, c)
	}
	return nil
}

// Update applies the editable booking fields.
func (r *BookingRepository) Update(ctx context.Context, id int64, upd models.BookingUpdate) error {
	var set setClause
	if upd.Status != nil {
		set.add("status", *upd.Status)
	}
	if upd.PaymentStatus != nil {
		set.add("payment_status", *upd.PaymentStatus)
	}
	if upd.PreferredDate != nil {
		set.add("preferred_date", upd.PreferredDate.Format("2006-01-02"))
	}
	if upd.PreferredSlot != nil {
		set.add("preferred_slot", nullString(upd.PreferredSlot))
	}
	if upd.PreferredLocation != nil {
		set.add("preferred_location", nullString(upd.PreferredLocation))
	}
	if set.empty() {
		return nil
	}
	query, args := set.build("service_bookings", id, true)
	return expectAffected(r.db.ExecContext(ctx, query, args...))
}

// Delete removes a booking. Items, payments and cancellations cascade.
func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	return expectAffected(r.db.ExecContext(ctx, `DELETE FROM service_bookings WHERE id = $1`, id))
}

// ListStalePayments returns Razorpay attempts still created/pending after staleAfter.
func (r *BookingRepository) ListStalePayments(ctx context.Context, staleAfter time.Duration, limit int) ([]models.BookingStaleAttempt, error) {
	var attempts []models.BookingStaleAttempt
	err := r.db.SelectContext(ctx, &attempts, `
		SELECT id, booking_id, razorpay_payment_id, status, created_at
		FROM service_booking_payments
		WHERE status IN ('created', 'pending')
			AND provider = 'razorpay'
			AND razorpay_payment_id IS NOT NULL AND razorpay_payment_id <> ''
			AND created_at < $1
		ORDER BY created_at ASC
		LIMIT $2`, time.Now().Add(-staleAfter), limit)
	if err != nil {
		return nil, fmt.Errorf("select stale payments: %w", err)
	}
	return attempts, nil
}

// MarkPaymentPaid marks an attempt paid and flips its booking to paid.
func (r *BookingRepository) MarkPaymentPaid(ctx context.Context, paymentID, bookingID int64, razorpayPaymentID string, paidAt time.Time) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE service_booking_payments SET status = 'paid', updated_at = NOW() WHERE id = $1`, paymentID)
		if err := expectAffected(res, err); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			UPDATE service_bookings
			SET payment_status = 'paid', razorpay_payment_id = $2, paid_at = $3, updated_at = NOW()
			WHERE id = $1`, bookingID, razorpayPaymentID, paidAt)
		return err
	})
}

// MarkPaymentFailed marks an attempt failed. The booking itself is unchanged.
func (r *BookingRepository) MarkPaymentFailed(ctx context.Context, paymentID int64) error {
	return expectAffected(r.db.ExecContext(ctx,
		`UPDATE service_booking_payments SET status = 'failed', updated_at = NOW() WHERE id = $1`, paymentID))
}
