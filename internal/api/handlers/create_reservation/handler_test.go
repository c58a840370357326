package create_reservation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovaldn/ArenaBookingService/internal/api/middleware"
	"github.com/kovaldn/ArenaBookingService/internal/domain"
	createReservation "github.com/kovaldn/ArenaBookingService/internal/usecase/create_reservation"
)

type fakeUseCase struct {
	resp *createReservation.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, _ *createReservation.Request) (*createReservation.Response, error) {
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(uc CreateReservationUseCase) *httptest.ResponseRecorder {
	h := NewHandler(uc, nopLogger{})

	body := `{"courtId":10,"startAt":"2026-09-07T10:00:00Z","endAt":"2026-09-07T12:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", bytes.NewBufferString(body))
	req.Header.Set("X-User-ID", "100")

	rec := httptest.NewRecorder()
	middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	start := time.Date(2026, time.September, 7, 10, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &createReservation.Response{
		Reservation: &domain.Reservation{
			ID: 1001, CourtID: 10, UserID: 100,
			StartAt: start, EndAt: start.Add(2 * time.Hour),
			PricePerHour: 25, TotalAmount: 50,
			Status: domain.StatusPending,
		},
		Payment: &domain.Payment{
			ID: 2001, ReservationID: 1001, Amount: 50,
			Currency: domain.DefaultCurrency, Status: domain.PaymentPending,
			TransactionRef: "ref-1",
		},
		PaymentClientSecret: "pi_secret",
	}}

	rec := doRequest(uc)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp ReservationResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(1001), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, "pi_secret", resp.Payment.ClientSecret)
}

func TestHandle_ConflictBodyCarriesSource(t *testing.T) {
	// 409 содержит вид и ID конфликтующей записи для показа пользователю
	uc := &fakeUseCase{err: &createReservation.ConflictError{
		Kind:  domain.KindReservation,
		RefID: 42,
	}}

	rec := doRequest(uc)
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp ConflictErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Error)
	require.NotNil(t, resp.Conflict)
	assert.Equal(t, string(domain.KindReservation), resp.Conflict.Kind)
	assert.Equal(t, int64(42), resp.Conflict.ID)
}

func TestHandle_ConcurrentConflictWithoutSource(t *testing.T) {
	// Конфликт, пойманный exclusion constraint на коммите: запись не известна
	uc := &fakeUseCase{err: fmt.Errorf("%w: taken by concurrent reservation", createReservation.ErrSlotConflict)}

	rec := doRequest(uc)
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp ConflictErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Nil(t, resp.Conflict)
}

func TestHandle_Unauthorized(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()
	middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
