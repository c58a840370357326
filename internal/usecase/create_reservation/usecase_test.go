package create_reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovaldn/ArenaBookingService/internal/domain"
	reservationRepo "github.com/kovaldn/ArenaBookingService/internal/infra/storage/reservation"
	"github.com/kovaldn/ArenaBookingService/internal/integrations/paymentgateway"
)

var testNow = time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

func slot(startHour int, d time.Duration) (time.Time, time.Time) {
	start := time.Date(2026, time.September, 7, startHour, 0, 0, 0, time.UTC)
	return start, start.Add(d)
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time { return f.now }

type fakeReservationRepo struct {
	occupied  []*domain.Reservation
	createErr error
	created   *domain.Reservation
}

func (f *fakeReservationRepo) GetOccupied(_ context.Context, _ int64, _ domain.Interval, _ *int64) ([]*domain.Reservation, error) {
	return f.occupied, nil
}

func (f *fakeReservationRepo) Create(_ context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *r
	created.ID = 1001
	created.CreatedAt = testNow
	created.UpdatedAt = testNow
	f.created = &created
	return &created, nil
}

type fakeCourtRepo struct {
	court   *domain.Court
	blocked []*domain.BlockedPeriod
}

func (f *fakeCourtRepo) GetByID(_ context.Context, _ int64) (*domain.Court, error) {
	return f.court, nil
}

func (f *fakeCourtRepo) GetBlockedPeriods(_ context.Context, _ int64, _ domain.Interval) ([]*domain.BlockedPeriod, error) {
	return f.blocked, nil
}

type fakePaymentRepo struct {
	created  *domain.Payment
	intentID *string
}

func (f *fakePaymentRepo) Create(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	created := *p
	created.ID = 2001
	f.created = &created
	return &created, nil
}

func (f *fakePaymentRepo) SetGatewayIntent(_ context.Context, _ int64, intentID string) error {
	f.intentID = &intentID
	return nil
}

type fakeGateway struct {
	intent *paymentgateway.Intent
	err    error
}

func (f *fakeGateway) CreateIntent(_ context.Context, _ *paymentgateway.IntentRequest) (*paymentgateway.Intent, error) {
	return f.intent, f.err
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

func testCourt() *domain.Court {
	return &domain.Court{ID: 10, SiteID: 1, PricePerHour: 40, IsActive: true}
}

func newTestUseCase(res *fakeReservationRepo, crt *fakeCourtRepo, pay *fakePaymentRepo, gw *fakeGateway) *UseCase {
	return &UseCase{
		reservationRepo: res,
		courtRepo:       crt,
		paymentRepo:     pay,
		gateway:         gw,
		txManager:       fakeTxManager{},
		timeProvider:    &fakeTimeProvider{now: testNow},
		logger:          nopLogger{},
	}
}

func TestExecute_Success(t *testing.T) {
	resRepo := &fakeReservationRepo{}
	payRepo := &fakePaymentRepo{}
	gw := &fakeGateway{intent: &paymentgateway.Intent{ID: "pi_123", ClientSecret: "pi_123_secret"}}
	uc := newTestUseCase(resRepo, &fakeCourtRepo{court: testCourt()}, payRepo, gw)

	start, end := slot(10, 90*time.Minute)
	resp, err := uc.Execute(context.Background(), &Request{CourtID: 10, UserID: 100, StartAt: start, EndAt: end})
	require.NoError(t, err)

	// Цена фиксируется на момент создания: 1.5ч x 40 = 60
	require.NotNil(t, resp.Reservation)
	assert.Equal(t, int64(1001), resp.Reservation.ID)
	assert.Equal(t, domain.StatusPending, resp.Reservation.Status)
	assert.Equal(t, 40.0, resp.Reservation.PricePerHour)
	assert.Equal(t, 60.0, resp.Reservation.TotalAmount)

	require.NotNil(t, resp.Payment)
	assert.Equal(t, int64(1001), resp.Payment.ReservationID)
	assert.Equal(t, 60.0, resp.Payment.Amount)
	assert.Equal(t, domain.DefaultCurrency, resp.Payment.Currency)
	assert.Equal(t, domain.PaymentPending, resp.Payment.Status)
	assert.NotEmpty(t, resp.Payment.TransactionRef)

	assert.Equal(t, "pi_123_secret", resp.PaymentClientSecret)
	require.NotNil(t, payRepo.intentID)
	assert.Equal(t, "pi_123", *payRepo.intentID)
}

func TestExecute_SlotConflict(t *testing.T) {
	start, end := slot(10, 2*time.Hour)
	occupied := &domain.Reservation{ID: 42, CourtID: 10, StartAt: start, EndAt: end, Status: domain.StatusConfirmed}

	uc := newTestUseCase(
		&fakeReservationRepo{occupied: []*domain.Reservation{occupied}},
		&fakeCourtRepo{court: testCourt()},
		&fakePaymentRepo{},
		&fakeGateway{},
	)

	reqStart := start.Add(time.Hour)
	_, err := uc.Execute(context.Background(), &Request{CourtID: 10, UserID: 100, StartAt: reqStart, EndAt: reqStart.Add(2 * time.Hour)})

	require.ErrorIs(t, err, ErrSlotConflict)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, domain.KindReservation, conflict.Kind)
	assert.Equal(t, int64(42), conflict.RefID)
}

func TestExecute_BlockedPeriodConflict(t *testing.T) {
	start, end := slot(10, 2*time.Hour)

	uc := newTestUseCase(
		&fakeReservationRepo{},
		&fakeCourtRepo{
			court:   testCourt(),
			blocked: []*domain.BlockedPeriod{{ID: 7, CourtID: 10, StartAt: start, EndAt: end}},
		},
		&fakePaymentRepo{},
		&fakeGateway{},
	)

	_, err := uc.Execute(context.Background(), &Request{CourtID: 10, UserID: 100, StartAt: start, EndAt: end})

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, domain.KindBlockedPeriod, conflict.Kind)
	assert.Equal(t, int64(7), conflict.RefID)
}

func TestExecute_TouchingSlotAllowed(t *testing.T) {
	start, end := slot(10, 2*time.Hour)
	occupied := &domain.Reservation{ID: 42, CourtID: 10, StartAt: start, EndAt: end, Status: domain.StatusConfirmed}

	uc := newTestUseCase(
		&fakeReservationRepo{occupied: []*domain.Reservation{occupied}},
		&fakeCourtRepo{court: testCourt()},
		&fakePaymentRepo{},
		&fakeGateway{intent: &paymentgateway.Intent{ID: "pi_1", ClientSecret: "sec"}},
	)

	// Слот начинается ровно в момент окончания занятого
	resp, err := uc.Execute(context.Background(), &Request{CourtID: 10, UserID: 100, StartAt: end, EndAt: end.Add(time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, 40.0, resp.Reservation.TotalAmount)
}

func TestExecute_ConcurrentSlotTaken(t *testing.T) {
	uc := newTestUseCase(
		&fakeReservationRepo{createErr: reservationRepo.ErrSlotTaken},
		&fakeCourtRepo{court: testCourt()},
		&fakePaymentRepo{},
		&fakeGateway{},
	)

	start, end := slot(10, time.Hour)
	_, err := uc.Execute(context.Background(), &Request{CourtID: 10, UserID: 100, StartAt: start, EndAt: end})
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_StartInPast(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeCourtRepo{court: testCourt()}, &fakePaymentRepo{}, &fakeGateway{})

	start := testNow.Add(-time.Hour)
	_, err := uc.Execute(context.Background(), &Request{CourtID: 10, UserID: 100, StartAt: start, EndAt: start.Add(2 * time.Hour)})
	assert.ErrorIs(t, err, ErrStartInPast)
}

func TestExecute_InvalidInterval(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeCourtRepo{court: testCourt()}, &fakePaymentRepo{}, &fakeGateway{})

	start, _ := slot(10, time.Hour)
	_, err := uc.Execute(context.Background(), &Request{CourtID: 10, UserID: 100, StartAt: start, EndAt: start})
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestExecute_CourtInactive(t *testing.T) {
	inactive := testCourt()
	inactive.IsActive = false
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeCourtRepo{court: inactive}, &fakePaymentRepo{}, &fakeGateway{})

	start, end := slot(10, time.Hour)
	_, err := uc.Execute(context.Background(), &Request{CourtID: 10, UserID: 100, StartAt: start, EndAt: end})
	assert.ErrorIs(t, err, ErrCourtInactive)
}

func TestExecute_GatewayUnavailable(t *testing.T) {
	// Недоступность шлюза не откатывает бронирование: ответ без client secret
	resRepo := &fakeReservationRepo{}
	uc := newTestUseCase(
		resRepo,
		&fakeCourtRepo{court: testCourt()},
		&fakePaymentRepo{},
		&fakeGateway{err: errors.New("gateway timeout")},
	)

	start, end := slot(10, time.Hour)
	resp, err := uc.Execute(context.Background(), &Request{CourtID: 10, UserID: 100, StartAt: start, EndAt: end})
	require.NoError(t, err)

	require.NotNil(t, resRepo.created)
	assert.Equal(t, domain.StatusPending, resp.Reservation.Status)
	assert.Empty(t, resp.PaymentClientSecret)
}
