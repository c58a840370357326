package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayment_MarkPaid(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	p := &Payment{ID: 1, ReservationID: 100, Status: PaymentPending}

	require.True(t, p.MarkPaid(now))
	assert.Equal(t, PaymentSuccess, p.Status)
	require.NotNil(t, p.PaidAt)
	assert.Equal(t, now, *p.PaidAt)

	// Повторная нотификация об успехе - no-op
	assert.False(t, p.MarkPaid(now.Add(time.Hour)))
	assert.Equal(t, now, *p.PaidAt)
}

func TestPayment_MarkPaid_AfterRefund(t *testing.T) {
	// Возвращенный платеж не может стать оплаченным задним числом
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	p := &Payment{ID: 1, Status: PaymentRefunded}

	assert.False(t, p.MarkPaid(now))
	assert.Equal(t, PaymentRefunded, p.Status)
}

func TestPayment_MarkRefunded(t *testing.T) {
	p := &Payment{ID: 1, Status: PaymentSuccess}

	require.True(t, p.MarkRefunded())
	assert.Equal(t, PaymentRefunded, p.Status)

	assert.False(t, p.MarkRefunded())
}

func TestPayment_MarkRefunded_OnlyFromSuccess(t *testing.T) {
	for _, status := range []PaymentStatus{PaymentPending, PaymentFailed} {
		p := &Payment{ID: 1, Status: status}
		assert.False(t, p.MarkRefunded(), "status %s", status)
		assert.Equal(t, status, p.Status)
	}
}
