package create_reservation

import (
	"errors"
	"net/http"

	"github.com/kovaldn/ArenaBookingService/internal/api/handlers"
	"github.com/kovaldn/ArenaBookingService/internal/api/middleware"
	createReservation "github.com/kovaldn/ArenaBookingService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339"
	msgInvalidInterval    = "некорректный временной интервал"
	msgStartInPast        = "время начала уже в прошлом"
	msgSlotConflict       = "выбранный интервал пересекается с существующим бронированием или блокировкой"
	msgCourtNotFound      = "площадка не найдена"
	msgCourtInactive      = "площадка недоступна для бронирования"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgInvalidRequestBody)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSlotConflict):
			h.logger.Warn("POST /reservations - Slot conflict: user_id=%d, court_id=%d", userID, req.CourtID)
			body := &ConflictErrorResponse{Error: msgSlotConflict}
			var conflict *createReservation.ConflictError
			if errors.As(err, &conflict) {
				body.Conflict = &ConflictInfo{Kind: string(conflict.Kind), ID: conflict.RefID}
			}
			handlers.RespondJSON(w, http.StatusConflict, body)

		case errors.Is(err, createReservation.ErrCourtNotFound):
			h.logger.Warn("POST /reservations - Court not found: court_id=%d", req.CourtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, createReservation.ErrCourtInactive):
			h.logger.Warn("POST /reservations - Court inactive: court_id=%d", req.CourtID)
			handlers.RespondError(w, http.StatusConflict, msgCourtInactive)

		case errors.Is(err, createReservation.ErrStartInPast):
			h.logger.Warn("POST /reservations - Start in past: user_id=%d, court_id=%d", userID, req.CourtID)
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, createReservation.ErrInvalidInterval),
			errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: user_id=%d, court_id=%d: %v", userID, req.CourtID, err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, court_id=%d, error=%v",
				userID, req.CourtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, user_id=%d, court_id=%d",
		result.Reservation.ID, userID, req.CourtID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
