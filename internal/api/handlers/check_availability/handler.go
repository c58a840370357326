package check_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kovaldn/ArenaBookingService/internal/api/handlers"
	getAvailability "github.com/kovaldn/ArenaBookingService/internal/usecase/get_availability"
)

const (
	msgInvalidCourtID     = "некорректный ID площадки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339"
	msgInvalidInterval    = "некорректный временной интервал"
	msgCourtNotFound      = "площадка не найдена"
	msgCourtInactive      = "площадка недоступна для бронирования"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/courts/{courtId}/check-availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	courtID, err := strconv.ParseInt(vars["courtId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /courts/{id}/check-availability - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	var req CheckAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /courts/{id}/check-availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(courtID)
	if err != nil {
		h.logger.Warn("POST /courts/{id}/check-availability - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.CheckSlot(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrCourtNotFound):
			h.logger.Warn("POST /courts/{id}/check-availability - Court not found: court_id=%d", courtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, getAvailability.ErrCourtInactive):
			h.logger.Warn("POST /courts/{id}/check-availability - Court inactive: court_id=%d", courtID)
			handlers.RespondError(w, http.StatusConflict, msgCourtInactive)

		case errors.Is(err, getAvailability.ErrInvalidRange),
			errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("POST /courts/{id}/check-availability - Invalid interval: court_id=%d: %v", courtID, err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		default:
			h.logger.Error("POST /courts/{id}/check-availability - Failed to check slot: court_id=%d, error=%v",
				courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
