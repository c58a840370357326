package reservations

import (
	"context"
	"time"

	"github.com/kovaldn/ArenaBookingService/internal/domain"
	"github.com/kovaldn/ArenaBookingService/internal/integrations/userservice"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	GetBySiteWithFilter(ctx context.Context, siteID int64, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus, allowedFrom []domain.ReservationStatus) error
}

// CourtRepository интерфейс репозитория площадок
type CourtRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Court, error)
}

// SiteRepository интерфейс репозитория комплексов
type SiteRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Site, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetByReservationID(ctx context.Context, reservationID int64) (*domain.Payment, error)
}

// PaymentGatewayClient интерфейс клиента платежного шлюза
type PaymentGatewayClient interface {
	CreateRefund(ctx context.Context, intentID string) error
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUser(ctx context.Context, userID int64) (*userservice.User, error)
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
