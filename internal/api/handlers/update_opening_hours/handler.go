package update_opening_hours

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
	msgInvalidSiteID      = "некорректный ID комплекса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSchedule    = "некорректное расписание"
	msgSiteNotFound       = "комплекс не найден"
	msgForbidden          = "доступ запрещен"
)

// UpdateOpeningHoursRequest HTTP request model
type UpdateOpeningHoursRequest struct {
	Hours []models.OpeningHoursEntry `json:"hours"`
}

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

// Handle PUT /api/v1/sites/{siteId}/opening-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	siteID, err := strconv.ParseInt(vars["siteId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /sites/{id}/opening-hours - Invalid site ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSiteID)
		return
	}

	var req UpdateOpeningHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /sites/{id}/opening-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	userID, _ := middleware.UserID(r.Context())

	result, err := h.service.UpdateOpeningHours(r.Context(), &models.UpdateOpeningHoursRequest{
		UserID: userID,
		SiteID: siteID,
		Hours:  req.Hours,
	})
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrSiteNotFound):
			h.logger.Warn("PUT /sites/{id}/opening-hours - Site not found: site_id=%d", siteID)
			handlers.RespondNotFound(w, msgSiteNotFound)

		case errors.Is(err, schedule.ErrAccessDenied), errors.Is(err, schedule.ErrUserNotFound):
			h.logger.Warn("PUT /sites/{id}/opening-hours - Access denied: site_id=%d, user_id=%d", siteID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /sites/{id}/opening-hours - Invalid schedule: site_id=%d: %v", siteID, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		default:
			h.logger.Error("PUT /sites/{id}/opening-hours - Failed to update schedule: site_id=%d, error=%v",
				siteID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /sites/{id}/opening-hours - Schedule updated: site_id=%d, user_id=%d, %d entries",
		siteID, userID, len(result.Hours))
	handlers.RespondJSON(w, http.StatusOK, result)
}
