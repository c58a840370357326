package domain

import (
	"fmt"
	"time"
)

// PaymentStatus represents the status of a payment
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentSuccess  PaymentStatus = "success"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// PaymentMethod способ оплаты
type PaymentMethod string

const (
	MethodCard     PaymentMethod = "card"
	MethodTransfer PaymentMethod = "transfer"
)

// Payment is the one-to-one payment record for a reservation.
// Amount mirrors the reservation's frozen TotalAmount.
type Payment struct {
	ID            int64
	ReservationID int64
	Amount        float64
	Currency      string
	Method        PaymentMethod
	Status        PaymentStatus

	// Идентификатор intent во внешнем платежном шлюзе
	GatewayIntentID *string
	// Внутренняя ссылка транзакции (uuid), используется для идемпотентности
	TransactionRef string

	PaidAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MarkPaid moves the payment to SUCCESS and stamps the payment time.
// Returns false if the payment is already successful or refunded, making
// a re-delivered success notification a no-op.
func (p *Payment) MarkPaid(now time.Time) bool {
	if p.Status == PaymentSuccess || p.Status == PaymentRefunded {
		return false
	}
	p.Status = PaymentSuccess
	p.PaidAt = &now
	return true
}

// MarkRefunded moves the payment to REFUNDED.
// Only successful payments can be refunded.
func (p *Payment) MarkRefunded() bool {
	if p.Status != PaymentSuccess {
		return false
	}
	p.Status = PaymentRefunded
	return true
}

// Invoice is the invoice issued for a successful payment
type Invoice struct {
	ID        int64
	PaymentID int64
	Number    string
	CreatedAt time.Time
}

// InvoiceNumber formats an invoice number: INV-YYYY-MM-NNNNN,
// where NNNNN is the sequence number within the month
func InvoiceNumber(year int, month time.Month, seq int) string {
	return fmt.Sprintf("INV-%d-%02d-%05d", year, int(month), seq)
}
