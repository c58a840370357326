package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/kovaldn/ArenaBookingService/internal/api/handlers"
	getAvailability "github.com/kovaldn/ArenaBookingService/internal/usecase/get_availability"
)

const (
	msgInvalidCourtID = "некорректный ID площадки"
	msgInvalidPeriod  = "некорректный формат периода, ожидается RFC 3339"
	msgInvalidRange   = "начало диапазона должно быть раньше конца"
	msgRangeTooWide   = "диапазон запроса шире допустимого"
	msgCourtNotFound  = "площадка не найдена"
	msgCourtInactive  = "площадка недоступна для бронирования"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/courts/{courtId}/availability?from=&to=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	courtID, err := strconv.ParseInt(vars["courtId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /courts/{id}/availability - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	q := r.URL.Query()
	from, err := time.Parse(time.RFC3339, q.Get("from"))
	if err != nil {
		h.logger.Warn("GET /courts/{id}/availability - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}
	to, err := time.Parse(time.RFC3339, q.Get("to"))
	if err != nil {
		h.logger.Warn("GET /courts/{id}/availability - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	result, err := h.useCase.Execute(r.Context(), getAvailability.Request{
		CourtID: courtID,
		From:    from,
		To:      to,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrCourtNotFound):
			h.logger.Warn("GET /courts/{id}/availability - Court not found: court_id=%d", courtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, getAvailability.ErrCourtInactive):
			h.logger.Warn("GET /courts/{id}/availability - Court inactive: court_id=%d", courtID)
			handlers.RespondError(w, http.StatusConflict, msgCourtInactive)

		case errors.Is(err, getAvailability.ErrRangeTooWide):
			h.logger.Warn("GET /courts/{id}/availability - Range too wide: court_id=%d", courtID)
			handlers.RespondBadRequest(w, msgRangeTooWide)

		case errors.Is(err, getAvailability.ErrInvalidRange),
			errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /courts/{id}/availability - Invalid range: court_id=%d: %v", courtID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /courts/{id}/availability - Failed to get availability: court_id=%d, error=%v",
				courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
