package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/chakrahealing/admin_api/internal/models"
	"github.com/chakrahealing/admin_api/internal/sse"
)

// Razorpay payment states the worker acts on.
const (
	razorpayCaptured = "captured"
	razorpayFailed   = "failed"
)

const reconcileBatchSize = 50

// PaymentFetcher is the part of the Razorpay payments resource used here.
type PaymentFetcher interface {
	Fetch(paymentID string, queryParams map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// PaymentAttemptStore lists and settles booking payment attempts.
type PaymentAttemptStore interface {
	ListStalePayments(ctx context.Context, staleAfter time.Duration, limit int) ([]models.BookingStaleAttempt, error)
	MarkPaymentPaid(ctx context.Context, paymentID, bookingID int64, razorpayPaymentID string, paidAt time.Time) error
	MarkPaymentFailed(ctx context.Context, paymentID int64) error
}

// PaymentReconcileWorker re-checks booking payment attempts stuck in
// created/pending against Razorpay. Captured payments mark the booking paid,
// failed ones mark the attempt failed. Anything else waits for the next tick.
type PaymentReconcileWorker struct {
	store      PaymentAttemptStore
	payments   PaymentFetcher
	notifier   sse.Notifier
	interval   time.Duration
	staleAfter time.Duration
	now        func() time.Time
}

// NewPaymentReconcileWorker constructs a PaymentReconcileWorker.
func NewPaymentReconcileWorker(
	store PaymentAttemptStore,
	payments PaymentFetcher,
	notifier sse.Notifier,
	interval time.Duration,
	staleAfter time.Duration,
) *PaymentReconcileWorker {
	if notifier == nil {
		notifier = sse.NopNotifier{}
	}
	return &PaymentReconcileWorker{
		store:      store,
		payments:   payments,
		notifier:   notifier,
		interval:   interval,
		staleAfter: staleAfter,
		now:        time.Now,
	}
}

// Start begins the periodic reconcile loop until context is canceled.
func (w *PaymentReconcileWorker) Start(ctx context.Context) {
	log.Info().
		Dur("interval", w.interval).
		Dur("stale_after", w.staleAfter).
		Msg("Starting payment reconcile worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Payment reconcile worker stopped")
			return
		}
	}
}

func (w *PaymentReconcileWorker) run(ctx context.Context) {
	stale, err := w.store.ListStalePayments(ctx, w.staleAfter, reconcileBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list stale payment attempts")
		return
	}
	if len(stale) == 0 {
		return
	}

	log.Info().Int("count", len(stale)).Msg("Re-checking stale booking payments")

	for i := range stale {
		select {
		case <-ctx.Done():
			return
		default:
			w.reconcile(ctx, &stale[i])
		}
	}
}

func (w *PaymentReconcileWorker) reconcile(ctx context.Context, attempt *models.BookingStaleAttempt) {
	rzpID := attempt.RazorpayPaymentID

	resp, err := w.payments.Fetch(rzpID, nil, nil)
	if err != nil {
		log.Warn().
			Err(err).
			Int64("payment_id", attempt.PaymentID).
			Str("razorpay_payment_id", rzpID).
			Msg("Razorpay fetch failed, will retry later")
		return
	}

	status, _ := resp["status"].(string)
	log.Debug().
		Int64("payment_id", attempt.PaymentID).
		Str("razorpay_payment_id", rzpID).
		Str("razorpay_status", status).
		Msg("Razorpay payment status")

	switch status {
	case razorpayCaptured:
		if err := w.store.MarkPaymentPaid(ctx, attempt.PaymentID, attempt.BookingID, rzpID, w.now()); err != nil {
			log.Error().Err(err).Int64("payment_id", attempt.PaymentID).Msg("Failed to mark payment paid")
			return
		}
		log.Info().Int64("booking_id", attempt.BookingID).Int64("payment_id", attempt.PaymentID).Msg("Booking payment reconciled as paid")
		w.notifier.NotifyPaymentReconciled(attempt.BookingID, models.PaymentPaid)
	case razorpayFailed:
		if err := w.store.MarkPaymentFailed(ctx, attempt.PaymentID); err != nil {
			log.Error().Err(err).Int64("payment_id", attempt.PaymentID).Msg("Failed to mark payment failed")
			return
		}
		log.Info().Int64("booking_id", attempt.BookingID).Int64("payment_id", attempt.PaymentID).Msg("Booking payment reconciled as failed")
		w.notifier.NotifyPaymentReconciled(attempt.BookingID, models.PaymentFailed)
	}
}
