package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/chakrahealing/admin_api/internal/models"
)

type mockAttemptStore struct{ mock.Mock }

func (m *mockAttemptStore) ListStalePayments(ctx context.Context, staleAfter time.Duration, limit int) ([]models.BookingStaleAttempt, error) {
	args := m.Called(ctx, staleAfter, limit)
	return args.Get(0).([]models.BookingStaleAttempt), args.Error(1)
}

func (m *mockAttemptStore) MarkPaymentPaid(ctx context.Context, paymentID, bookingID int64, razorpayPaymentID string, paidAt time.Time) error {
	return m.Called(ctx, paymentID, bookingID, razorpayPaymentID, paidAt).Error(0)
}

func (m *mockAttemptStore) MarkPaymentFailed(ctx context.Context, paymentID int64) error {
	return m.Called(ctx, paymentID).Error(0)
}

type mockFetcher struct{ mock.Mock }

func (m *mockFetcher) Fetch(paymentID string, queryParams map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error) {
	args := m.Called(paymentID)
	resp, _ := args.Get(0).(map[string]interface{})
	return resp, args.Error(1)
}

type recordingNotifier struct {
	reconciled map[int64]string
}

func (n *recordingNotifier) NotifyShippingStatusChanged(*models.Order, string) {}
func (n *recordingNotifier) NotifyBookingUpdated(*models.Booking, string)      {}
func (n *recordingNotifier) NotifyBookingDeleted(int64, string)                {}
func (n *recordingNotifier) NotifyReviewStatusChanged(int64, string, string)   {}
func (n *recordingNotifier) NotifyPaymentReconciled(bookingID int64, status string) {
	n.reconciled[bookingID] = status
}

func TestPaymentReconcileWorker_Run(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	store := &mockAttemptStore{}
	fetcher := &mockFetcher{}
	notifier := &recordingNotifier{reconciled: map[int64]string{}}

	store.On("ListStalePayments", ctx, 10*time.Minute, reconcileBatchSize).Return([]models.BookingStaleAttempt{
		{PaymentID: 1, BookingID: 11, RazorpayPaymentID: "pay_captured"},
		{PaymentID: 2, BookingID: 12, RazorpayPaymentID: "pay_failed"},
		{PaymentID: 3, BookingID: 13, RazorpayPaymentID: "pay_authorized"},
		{PaymentID: 4, BookingID: 14, RazorpayPaymentID: "pay_error"},
	}, nil)

	fetcher.On("Fetch", "pay_captured").Return(map[string]interface{}{"status": "captured"}, nil)
	fetcher.On("Fetch", "pay_failed").Return(map[string]interface{}{"status": "failed"}, nil)
	fetcher.On("Fetch", "pay_authorized").Return(map[string]interface{}{"status": "authorized"}, nil)
	fetcher.On("Fetch", "pay_error").Return(nil, errors.New("timeout"))

	store.On("MarkPaymentPaid", ctx, int64(1), int64(11), "pay_captured", fixed).Return(nil)
	store.On("MarkPaymentFailed", ctx, int64(2)).Return(nil)

	w := NewPaymentReconcileWorker(store, fetcher, notifier, time.Minute, 10*time.Minute)
	w.now = func() time.Time { return fixed }
	w.run(ctx)

	store.AssertExpectations(t)
	fetcher.AssertExpectations(t)
	store.AssertNotCalled(t, "MarkPaymentPaid", ctx, int64(3), int64(13), "pay_authorized", fixed)
	assert.Equal(t, map[int64]string{11: "paid", 12: "failed"}, notifier.reconciled)
}

func TestPaymentReconcileWorker_ListFailure(t *testing.T) {
	ctx := context.Background()
	store := &mockAttemptStore{}
	fetcher := &mockFetcher{}

	store.On("ListStalePayments", ctx, time.Minute, reconcileBatchSize).
		Return([]models.BookingStaleAttempt(nil), errors.New("db down"))

	NewPaymentReconcileWorker(store, fetcher, nil, time.Minute, time.Minute).run(ctx)

	fetcher.AssertNotCalled(t, "Fetch", mock.Anything)
}
