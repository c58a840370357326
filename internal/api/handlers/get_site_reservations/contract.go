package get_site_reservations

import (
	"context"

	"github.com/kovaldn/ArenaBookingService/internal/service/reservations/models"
)

type ReservationService interface {
	GetSiteReservations(ctx context.Context, req *models.GetSiteReservationsRequest) (*models.SiteReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
