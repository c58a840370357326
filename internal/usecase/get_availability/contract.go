package get_availability

import (
	"context"

	"github.com/kovaldn/ArenaBookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetOccupied(ctx context.Context, courtID int64, interval domain.Interval, excludeID *int64) ([]*domain.Reservation, error)
}

// CourtRepository интерфейс репозитория площадок
type CourtRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Court, error)
	GetBlockedPeriods(ctx context.Context, courtID int64, interval domain.Interval) ([]*domain.BlockedPeriod, error)
}

// SiteRepository интерфейс репозитория комплексов
type SiteRepository interface {
	GetOpeningHours(ctx context.Context, siteID int64) (domain.WeeklyHours, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
