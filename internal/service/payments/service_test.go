package payments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovaldn/ArenaBookingService/internal/domain"
	paymentRepo "github.com/kovaldn/ArenaBookingService/internal/infra/storage/payment"
	"github.com/kovaldn/ArenaBookingService/internal/integrations/paymentgateway"
)

var testNow = time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time { return f.now }

type fakePaymentRepo struct {
	byIntent map[string]*domain.Payment
	statuses []domain.PaymentStatus
	invoices []int64
}

func (f *fakePaymentRepo) GetByIntentID(_ context.Context, intentID string) (*domain.Payment, error) {
	p, ok := f.byIntent[intentID]
	if !ok {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	return p, nil
}

func (f *fakePaymentRepo) UpdateStatus(_ context.Context, id int64, status domain.PaymentStatus) error {
	f.statuses = append(f.statuses, status)
	for _, p := range f.byIntent {
		if p.ID == id {
			p.Status = status
		}
	}
	return nil
}

func (f *fakePaymentRepo) CreateInvoice(_ context.Context, paymentID int64, now time.Time) (*domain.Invoice, error) {
	f.invoices = append(f.invoices, paymentID)
	return &domain.Invoice{ID: 1, PaymentID: paymentID, Number: domain.InvoiceNumber(now.Year(), now.Month(), 1), CreatedAt: now}, nil
}

type fakeReservationRepo struct {
	updated     []domain.ReservationStatus
	lastAllowed []domain.ReservationStatus
	err         error
}

func (f *fakeReservationRepo) UpdateStatus(_ context.Context, _ int64, status domain.ReservationStatus, allowedFrom []domain.ReservationStatus) error {
	if f.err != nil {
		return f.err
	}
	f.updated = append(f.updated, status)
	f.lastAllowed = allowedFrom
	return nil
}

// fakeTxManager выполняет функцию без транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func pendingPayment(intentID string) *domain.Payment {
	id := intentID
	return &domain.Payment{
		ID:              1,
		ReservationID:   100,
		Amount:          50,
		Currency:        domain.DefaultCurrency,
		Method:          domain.MethodCard,
		Status:          domain.PaymentPending,
		GatewayIntentID: &id,
		TransactionRef:  "ref-1",
	}
}

func newTestService(pay *fakePaymentRepo, res *fakeReservationRepo) *Service {
	return NewService(pay, res, fakeTxManager{}, &fakeTimeProvider{now: testNow}, nopLogger{})
}

func TestHandlePaymentSucceeded(t *testing.T) {
	payRepo := &fakePaymentRepo{byIntent: map[string]*domain.Payment{"pi_1": pendingPayment("pi_1")}}
	resRepo := &fakeReservationRepo{}
	svc := newTestService(payRepo, resRepo)

	require.NoError(t, svc.HandlePaymentSucceeded(context.Background(), "pi_1"))

	require.Len(t, payRepo.statuses, 1)
	assert.Equal(t, domain.PaymentSuccess, payRepo.statuses[0])

	// Бронирование подтверждается только из PENDING
	require.Len(t, resRepo.updated, 1)
	assert.Equal(t, domain.StatusConfirmed, resRepo.updated[0])
	assert.Equal(t, []domain.ReservationStatus{domain.StatusPending}, resRepo.lastAllowed)

	require.Len(t, payRepo.invoices, 1)
	assert.Equal(t, int64(1), payRepo.invoices[0])
}

func TestHandlePaymentSucceeded_DuplicateDelivery(t *testing.T) {
	paid := pendingPayment("pi_1")
	paid.Status = domain.PaymentSuccess
	payRepo := &fakePaymentRepo{byIntent: map[string]*domain.Payment{"pi_1": paid}}
	resRepo := &fakeReservationRepo{}
	svc := newTestService(payRepo, resRepo)

	require.NoError(t, svc.HandlePaymentSucceeded(context.Background(), "pi_1"))

	assert.Empty(t, payRepo.statuses)
	assert.Empty(t, resRepo.updated)
	assert.Empty(t, payRepo.invoices)
}

func TestHandlePaymentSucceeded_AfterRefundNoop(t *testing.T) {
	// Поздняя нотификация об успехе по уже возвращенному платежу
	refunded := pendingPayment("pi_1")
	refunded.Status = domain.PaymentRefunded
	payRepo := &fakePaymentRepo{byIntent: map[string]*domain.Payment{"pi_1": refunded}}
	resRepo := &fakeReservationRepo{}
	svc := newTestService(payRepo, resRepo)

	require.NoError(t, svc.HandlePaymentSucceeded(context.Background(), "pi_1"))

	assert.Empty(t, payRepo.statuses)
	assert.Empty(t, resRepo.updated)
	assert.Equal(t, domain.PaymentRefunded, refunded.Status)
}

func TestHandlePaymentSucceeded_UnknownIntent(t *testing.T) {
	svc := newTestService(&fakePaymentRepo{byIntent: map[string]*domain.Payment{}}, &fakeReservationRepo{})

	err := svc.HandlePaymentSucceeded(context.Background(), "pi_unknown")
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestHandlePaymentFailed(t *testing.T) {
	payRepo := &fakePaymentRepo{byIntent: map[string]*domain.Payment{"pi_1": pendingPayment("pi_1")}}
	resRepo := &fakeReservationRepo{}
	svc := newTestService(payRepo, resRepo)

	require.NoError(t, svc.HandlePaymentFailed(context.Background(), "pi_1"))

	require.Len(t, payRepo.statuses, 1)
	assert.Equal(t, domain.PaymentFailed, payRepo.statuses[0])

	// Бронирование остается PENDING: оплату можно повторить
	assert.Empty(t, resRepo.updated)
}

func TestHandlePaymentFailed_AfterSuccessNoop(t *testing.T) {
	paid := pendingPayment("pi_1")
	paid.Status = domain.PaymentSuccess
	payRepo := &fakePaymentRepo{byIntent: map[string]*domain.Payment{"pi_1": paid}}
	svc := newTestService(payRepo, &fakeReservationRepo{})

	require.NoError(t, svc.HandlePaymentFailed(context.Background(), "pi_1"))
	assert.Empty(t, payRepo.statuses)
}

func TestHandleRefund(t *testing.T) {
	paid := pendingPayment("pi_1")
	paid.Status = domain.PaymentSuccess
	payRepo := &fakePaymentRepo{byIntent: map[string]*domain.Payment{"pi_1": paid}}
	resRepo := &fakeReservationRepo{}
	svc := newTestService(payRepo, resRepo)

	require.NoError(t, svc.HandleRefund(context.Background(), "pi_1"))

	require.Len(t, payRepo.statuses, 1)
	assert.Equal(t, domain.PaymentRefunded, payRepo.statuses[0])

	require.Len(t, resRepo.updated, 1)
	assert.Equal(t, domain.StatusCancelled, resRepo.updated[0])
	assert.Equal(t, domain.ActiveStatuses, resRepo.lastAllowed)
}

func TestHandleRefund_PendingPaymentNoop(t *testing.T) {
	// Возврат возможен только по успешному платежу
	payRepo := &fakePaymentRepo{byIntent: map[string]*domain.Payment{"pi_1": pendingPayment("pi_1")}}
	resRepo := &fakeReservationRepo{}
	svc := newTestService(payRepo, resRepo)

	require.NoError(t, svc.HandleRefund(context.Background(), "pi_1"))
	assert.Empty(t, payRepo.statuses)
	assert.Empty(t, resRepo.updated)
}

func TestHandleEvent(t *testing.T) {
	payRepo := &fakePaymentRepo{byIntent: map[string]*domain.Payment{"pi_1": pendingPayment("pi_1")}}
	svc := newTestService(payRepo, &fakeReservationRepo{})

	err := svc.HandleEvent(context.Background(), &paymentgateway.WebhookEvent{
		Type:     paymentgateway.EventPaymentSucceeded,
		IntentID: "pi_1",
	})
	require.NoError(t, err)
	require.Len(t, payRepo.statuses, 1)

	// Нерелевантные события молча игнорируются
	err = svc.HandleEvent(context.Background(), &paymentgateway.WebhookEvent{Type: paymentgateway.EventIgnored})
	require.NoError(t, err)
	assert.Len(t, payRepo.statuses, 1)
}
