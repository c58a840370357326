package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovaldn/ArenaBookingService/internal/domain"
	reservationRepo "github.com/kovaldn/ArenaBookingService/internal/infra/storage/reservation"
	"github.com/kovaldn/ArenaBookingService/internal/integrations/userservice"
	"github.com/kovaldn/ArenaBookingService/internal/service/reservations/models"
)

var testNow = time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time { return f.now }

type fakeReservationRepo struct {
	byID        map[int64]*domain.Reservation
	byUser      []*domain.Reservation
	bySite      []*domain.Reservation
	updated     []domain.ReservationStatus
	updateErr   error
	lastAllowed []domain.ReservationStatus
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return r, nil
}

func (f *fakeReservationRepo) GetByUserID(_ context.Context, _ int64, _ *domain.ReservationStatus) ([]*domain.Reservation, error) {
	return f.byUser, nil
}

func (f *fakeReservationRepo) GetBySiteWithFilter(_ context.Context, _ int64, _ domain.ReservationFilter) ([]*domain.Reservation, error) {
	return f.bySite, nil
}

func (f *fakeReservationRepo) UpdateStatus(_ context.Context, _ int64, status domain.ReservationStatus, allowedFrom []domain.ReservationStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, status)
	f.lastAllowed = allowedFrom
	return nil
}

type fakeCourtRepo struct {
	court *domain.Court
}

func (f *fakeCourtRepo) GetByID(_ context.Context, _ int64) (*domain.Court, error) {
	return f.court, nil
}

type fakeSiteRepo struct {
	site *domain.Site
}

func (f *fakeSiteRepo) GetByID(_ context.Context, _ int64) (*domain.Site, error) {
	return f.site, nil
}

type fakePaymentRepo struct {
	payment *domain.Payment
	err     error
}

func (f *fakePaymentRepo) GetByReservationID(_ context.Context, _ int64) (*domain.Payment, error) {
	return f.payment, f.err
}

type fakeGateway struct {
	refunded []string
	err      error
}

func (f *fakeGateway) CreateRefund(_ context.Context, intentID string) error {
	if f.err != nil {
		return f.err
	}
	f.refunded = append(f.refunded, intentID)
	return nil
}

type fakeUserClient struct {
	users map[int64]*userservice.User
}

func (f *fakeUserClient) GetUser(_ context.Context, userID int64) (*userservice.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, userservice.ErrUserNotFound
	}
	return u, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const (
	ownerID   = int64(100)
	managerID = int64(200)
)

func testSite() *domain.Site {
	return &domain.Site{ID: 1, Name: "Arena", ManagerID: managerID, IsActive: true}
}

func testUsers() *fakeUserClient {
	return &fakeUserClient{users: map[int64]*userservice.User{
		ownerID:   {ID: ownerID, Role: "client"},
		managerID: {ID: managerID, Role: "manager"},
		300:       {ID: 300, Role: "client"},
	}}
}

func confirmedReservation(id int64, startAt time.Time) *domain.Reservation {
	return &domain.Reservation{
		ID:           id,
		CourtID:      10,
		UserID:       ownerID,
		StartAt:      startAt,
		EndAt:        startAt.Add(2 * time.Hour),
		PricePerHour: 25,
		TotalAmount:  50,
		Status:       domain.StatusConfirmed,
	}
}

func newTestService(res *fakeReservationRepo, pay *fakePaymentRepo, gw *fakeGateway) *Service {
	return NewService(
		res,
		&fakeCourtRepo{court: &domain.Court{ID: 10, SiteID: 1, IsActive: true}},
		&fakeSiteRepo{site: testSite()},
		pay,
		gw,
		testUsers(),
		&fakeTimeProvider{now: testNow},
		nopLogger{},
	)
}

func TestCancel_OwnerWithinWindow(t *testing.T) {
	// Ровно за 24 часа до начала отмена еще возможна
	r := confirmedReservation(1, testNow.Add(24*time.Hour))
	repo := &fakeReservationRepo{byID: map[int64]*domain.Reservation{1: r}}
	gw := &fakeGateway{}
	intentID := "pi_1"
	svc := newTestService(repo, &fakePaymentRepo{payment: &domain.Payment{
		ID: 1, ReservationID: 1, Status: domain.PaymentSuccess, GatewayIntentID: &intentID,
	}}, gw)

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{UserID: ownerID})
	require.NoError(t, err)

	assert.True(t, resp.Cancelled)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.Len(t, repo.updated, 1)
	assert.Equal(t, domain.StatusCancelled, repo.updated[0])
	assert.Equal(t, domain.ActiveStatuses, repo.lastAllowed)

	// Оплаченное бронирование: запрошен возврат средств
	require.Len(t, gw.refunded, 1)
	assert.Equal(t, "pi_1", gw.refunded[0])
}

func TestCancel_OwnerWindowClosed(t *testing.T) {
	// За 23ч59м до начала окно уже закрыто
	r := confirmedReservation(1, testNow.Add(24*time.Hour-time.Minute))
	repo := &fakeReservationRepo{byID: map[int64]*domain.Reservation{1: r}}
	svc := newTestService(repo, &fakePaymentRepo{}, &fakeGateway{})

	_, err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{UserID: ownerID})
	assert.ErrorIs(t, err, ErrCancellationWindow)
	assert.Empty(t, repo.updated)
}

func TestCancel_ManagerBypassesWindow(t *testing.T) {
	r := confirmedReservation(1, testNow.Add(time.Hour))
	repo := &fakeReservationRepo{byID: map[int64]*domain.Reservation{1: r}}
	svc := newTestService(repo, &fakePaymentRepo{payment: &domain.Payment{Status: domain.PaymentPending}}, &fakeGateway{})

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{UserID: managerID})
	require.NoError(t, err)
	assert.True(t, resp.Cancelled)
}

func TestCancel_StrangerDenied(t *testing.T) {
	r := confirmedReservation(1, testNow.Add(48*time.Hour))
	repo := &fakeReservationRepo{byID: map[int64]*domain.Reservation{1: r}}
	svc := newTestService(repo, &fakePaymentRepo{}, &fakeGateway{})

	_, err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{UserID: 300})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_AlreadyCancelledIdempotent(t *testing.T) {
	r := confirmedReservation(1, testNow.Add(48*time.Hour))
	r.Status = domain.StatusCancelled
	repo := &fakeReservationRepo{byID: map[int64]*domain.Reservation{1: r}}
	svc := newTestService(repo, &fakePaymentRepo{}, &fakeGateway{})

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{UserID: ownerID})
	require.NoError(t, err)

	assert.False(t, resp.Cancelled)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Empty(t, repo.updated)
}

func TestCancel_CompletedReservation(t *testing.T) {
	// Бронирование уже прошло: владелец отменить не может
	r := confirmedReservation(1, testNow.Add(-3*time.Hour))
	repo := &fakeReservationRepo{byID: map[int64]*domain.Reservation{1: r}}
	svc := newTestService(repo, &fakePaymentRepo{}, &fakeGateway{})

	_, err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{UserID: ownerID})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_PendingNoRefund(t *testing.T) {
	// Неоплаченное бронирование отменяется без обращения к шлюзу
	r := confirmedReservation(1, testNow.Add(48*time.Hour))
	r.Status = domain.StatusPending
	repo := &fakeReservationRepo{byID: map[int64]*domain.Reservation{1: r}}
	gw := &fakeGateway{}
	svc := newTestService(repo, &fakePaymentRepo{payment: &domain.Payment{Status: domain.PaymentPending}}, gw)

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{UserID: ownerID})
	require.NoError(t, err)
	assert.True(t, resp.Cancelled)
	assert.Empty(t, gw.refunded)
}

func TestCancel_RefundFailureDoesNotRollback(t *testing.T) {
	r := confirmedReservation(1, testNow.Add(48*time.Hour))
	repo := &fakeReservationRepo{byID: map[int64]*domain.Reservation{1: r}}
	intentID := "pi_1"
	svc := newTestService(repo, &fakePaymentRepo{payment: &domain.Payment{
		Status: domain.PaymentSuccess, GatewayIntentID: &intentID,
	}}, &fakeGateway{err: errors.New("gateway timeout")})

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{UserID: ownerID})
	require.NoError(t, err)
	assert.True(t, resp.Cancelled)
}

func TestCancel_ConcurrentCancellation(t *testing.T) {
	// Конкурирующая отмена успела раньше: UpdateStatus отклонил переход
	r := confirmedReservation(1, testNow.Add(48*time.Hour))
	repo := &fakeReservationRepo{
		byID:      map[int64]*domain.Reservation{1: r},
		updateErr: reservationRepo.ErrInvalidTransition,
	}
	svc := newTestService(repo, &fakePaymentRepo{err: errors.New("no payment")}, &fakeGateway{})

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{UserID: ownerID})
	require.NoError(t, err)
	assert.True(t, resp.Cancelled)
}

func TestCancel_NotFound(t *testing.T) {
	svc := newTestService(&fakeReservationRepo{byID: map[int64]*domain.Reservation{}}, &fakePaymentRepo{}, &fakeGateway{})

	_, err := svc.Cancel(context.Background(), 404, &models.CancelReservationRequest{UserID: ownerID})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestSystemCancel(t *testing.T) {
	r := confirmedReservation(1, testNow.Add(-time.Hour))
	repo := &fakeReservationRepo{byID: map[int64]*domain.Reservation{1: r}}
	svc := newTestService(repo, &fakePaymentRepo{}, &fakeGateway{})

	resp, err := svc.SystemCancel(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, resp.Cancelled)

	r.Status = domain.StatusCancelled
	resp, err = svc.SystemCancel(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, resp.Cancelled)
}

func TestGetByID_Access(t *testing.T) {
	r := confirmedReservation(1, testNow.Add(48*time.Hour))
	repo := &fakeReservationRepo{byID: map[int64]*domain.Reservation{1: r}}
	svc := newTestService(repo, &fakePaymentRepo{}, &fakeGateway{})

	// Владелец видит бронирование
	resp, err := svc.GetByID(context.Background(), 1, ownerID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	// Менеджер комплекса тоже
	_, err = svc.GetByID(context.Background(), 1, managerID)
	require.NoError(t, err)

	// Посторонний клиент - нет
	_, err = svc.GetByID(context.Background(), 1, 300)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetUserReservations_EffectiveStatusFilter(t *testing.T) {
	past := confirmedReservation(1, testNow.Add(-48*time.Hour))
	upcoming := confirmedReservation(2, testNow.Add(48*time.Hour))
	repo := &fakeReservationRepo{byUser: []*domain.Reservation{past, upcoming}}
	svc := newTestService(repo, &fakePaymentRepo{}, &fakeGateway{})

	// Прошедшее подтвержденное бронирование отдается как completed
	status := "completed"
	resp, err := svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{
		UserID: ownerID,
		Status: &status,
	})
	require.NoError(t, err)
	require.Len(t, resp.Reservations, 1)
	assert.Equal(t, int64(1), resp.Reservations[0].ID)
	assert.Equal(t, string(domain.StatusCompleted), resp.Reservations[0].Status)

	// При фильтре confirmed оно уже не попадает
	status = "confirmed"
	resp, err = svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{
		UserID: ownerID,
		Status: &status,
	})
	require.NoError(t, err)
	require.Len(t, resp.Reservations, 1)
	assert.Equal(t, int64(2), resp.Reservations[0].ID)
}

func TestGetUserReservations_InvalidStatus(t *testing.T) {
	svc := newTestService(&fakeReservationRepo{}, &fakePaymentRepo{}, &fakeGateway{})

	status := "bogus"
	_, err := svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{
		UserID: ownerID,
		Status: &status,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetSiteReservations_RevenueOnlyConfirmed(t *testing.T) {
	pending := confirmedReservation(1, testNow.Add(24*time.Hour))
	pending.Status = domain.StatusPending
	paid := confirmedReservation(2, testNow.Add(48*time.Hour))
	cancelled := confirmedReservation(3, testNow.Add(72*time.Hour))
	cancelled.Status = domain.StatusCancelled

	repo := &fakeReservationRepo{bySite: []*domain.Reservation{pending, paid, cancelled}}
	svc := newTestService(repo, &fakePaymentRepo{}, &fakeGateway{})

	resp, err := svc.GetSiteReservations(context.Background(), &models.GetSiteReservationsRequest{
		UserID: managerID,
		SiteID: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Stats.TotalCount)
	assert.Equal(t, 50.0, resp.Stats.Revenue)
}

func TestGetSiteReservations_ClientDenied(t *testing.T) {
	svc := newTestService(&fakeReservationRepo{}, &fakePaymentRepo{}, &fakeGateway{})

	_, err := svc.GetSiteReservations(context.Background(), &models.GetSiteReservationsRequest{
		UserID: ownerID,
		SiteID: 1,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
