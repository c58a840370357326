package delete_blocked_period

import (
	"context"

	"github.com/kovaldn/ArenaBookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	RemoveBlockedPeriod(ctx context.Context, req *models.DeleteBlockedPeriodRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
