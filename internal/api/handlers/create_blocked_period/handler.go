package create_blocked_period

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/kovaldn/ArenaBookingService/internal/api/handlers"
	"github.com/kovaldn/ArenaBookingService/internal/api/middleware"
	"github.com/kovaldn/ArenaBookingService/internal/service/schedule"
	"github.com/kovaldn/ArenaBookingService/internal/service/schedule/models"
)

const (
	msgInvalidCourtID     = "некорректный ID площадки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339"
	msgInvalidPeriod      = "некорректный период блокировки"
	msgCourtNotFound      = "площадка не найдена"
	msgForbidden          = "доступ запрещен"
)

// CreateBlockedPeriodRequest HTTP request model
type CreateBlockedPeriodRequest struct {
	StartAt string  `json:"startAt"` // RFC 3339
	EndAt   string  `json:"endAt"`   // RFC 3339
	Reason  *string `json:"reason,omitempty"`
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

// Handle POST /api/v1/courts/{courtId}/blocked-periods
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	courtID, err := strconv.ParseInt(vars["courtId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /courts/{id}/blocked-periods - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	var req CreateBlockedPeriodRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /courts/{id}/blocked-periods - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	startAt, err := time.Parse(time.RFC3339, req.StartAt)
	if err != nil {
		h.logger.Warn("POST /courts/{id}/blocked-periods - Invalid startAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}
	endAt, err := time.Parse(time.RFC3339, req.EndAt)
	if err != nil {
		h.logger.Warn("POST /courts/{id}/blocked-periods - Invalid endAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	userID, _ := middleware.UserID(r.Context())

	result, err := h.service.BlockPeriod(r.Context(), &models.CreateBlockedPeriodRequest{
		UserID:  userID,
		CourtID: courtID,
		StartAt: startAt,
		EndAt:   endAt,
		Reason:  req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrCourtNotFound):
			h.logger.Warn("POST /courts/{id}/blocked-periods - Court not found: court_id=%d", courtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, schedule.ErrAccessDenied), errors.Is(err, schedule.ErrUserNotFound):
			h.logger.Warn("POST /courts/{id}/blocked-periods - Access denied: court_id=%d, user_id=%d",
				courtID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /courts/{id}/blocked-periods - Invalid period: court_id=%d: %v", courtID, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("POST /courts/{id}/blocked-periods - Failed to block period: court_id=%d, error=%v",
				courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /courts/{id}/blocked-periods - Period blocked: period_id=%d, court_id=%d, user_id=%d",
		result.ID, courtID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
