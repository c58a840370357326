package delete_blocked_period

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kovaldn/ArenaBookingService/internal/api/handlers"
	"github.com/kovaldn/ArenaBookingService/internal/api/middleware"
	"github.com/kovaldn/ArenaBookingService/internal/service/schedule"
	"github.com/kovaldn/ArenaBookingService/internal/service/schedule/models"
)

const (
	msgInvalidCourtID  = "некорректный ID площадки"
	msgInvalidPeriodID = "некорректный ID блокировки"
	msgCourtNotFound   = "площадка не найдена"
	msgPeriodNotFound  = "блокировка не найдена"
	msgForbidden       = "доступ запрещен"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/courts/{courtId}/blocked-periods/{periodId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	courtID, err := strconv.ParseInt(vars["courtId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /courts/{id}/blocked-periods/{periodId} - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	periodID, err := strconv.ParseInt(vars["periodId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /courts/{id}/blocked-periods/{periodId} - Invalid period ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriodID)
		return
	}

	userID, _ := middleware.UserID(r.Context())

	err = h.service.RemoveBlockedPeriod(r.Context(), &models.DeleteBlockedPeriodRequest{
		UserID:   userID,
		CourtID:  courtID,
		PeriodID: periodID,
	})
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrCourtNotFound):
			h.logger.Warn("DELETE /courts/{id}/blocked-periods/{periodId} - Court not found: court_id=%d", courtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, schedule.ErrPeriodNotFound):
			h.logger.Warn("DELETE /courts/{id}/blocked-periods/{periodId} - Period not found: period_id=%d", periodID)
			handlers.RespondNotFound(w, msgPeriodNotFound)

		case errors.Is(err, schedule.ErrAccessDenied), errors.Is(err, schedule.ErrUserNotFound):
			h.logger.Warn("DELETE /courts/{id}/blocked-periods/{periodId} - Access denied: court_id=%d, user_id=%d",
				courtID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /courts/{id}/blocked-periods/{periodId} - Failed to remove period: period_id=%d, error=%v",
				periodID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /courts/{id}/blocked-periods/{periodId} - Period removed: period_id=%d, court_id=%d, user_id=%d",
		periodID, courtID, userID)
	handlers.RespondNoContent(w)
}
