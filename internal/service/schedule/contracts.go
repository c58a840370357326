package schedule

import (
	"context"

	"github.com/kovaldn/ArenaBookingService/internal/domain"
	"github.com/kovaldn/ArenaBookingService/internal/integrations/userservice"
)

// SiteRepository интерфейс репозитория комплексов
type SiteRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Site, error)
	GetOpeningHours(ctx context.Context, siteID int64) (domain.WeeklyHours, error)
	ReplaceOpeningHours(ctx context.Context, siteID int64, hours domain.WeeklyHours) error
}

// CourtRepository интерфейс репозитория площадок
type CourtRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Court, error)
	CreateBlockedPeriod(ctx context.Context, period *domain.BlockedPeriod) (*domain.BlockedPeriod, error)
	DeleteBlockedPeriod(ctx context.Context, courtID, periodID int64) error
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUser(ctx context.Context, userID int64) (*userservice.User, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
