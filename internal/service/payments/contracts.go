package payments

import (
	"context"
	"time"

	"github.com/kovaldn/ArenaBookingService/internal/domain"
)

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetByIntentID(ctx context.Context, intentID string) (*domain.Payment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) error
	CreateInvoice(ctx context.Context, paymentID int64, now time.Time) (*domain.Invoice, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus, allowedFrom []domain.ReservationStatus) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
