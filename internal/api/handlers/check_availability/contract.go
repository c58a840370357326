package check_availability

import (
	"context"

	getAvailability "github.com/kovaldn/ArenaBookingService/internal/usecase/get_availability"
)

type CheckAvailabilityUseCase interface {
	CheckSlot(ctx context.Context, req getAvailability.CheckRequest) (*getAvailability.CheckResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
