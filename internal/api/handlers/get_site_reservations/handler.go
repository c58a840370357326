package get_site_reservations

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/kovaldn/ArenaBookingService/internal/api/handlers"
	"github.com/kovaldn/ArenaBookingService/internal/api/middleware"
	"github.com/kovaldn/ArenaBookingService/internal/service/reservations"
	"github.com/kovaldn/ArenaBookingService/internal/service/reservations/models"
	"github.com/kovaldn/ArenaBookingService/pkg/ptr"
)

const (
	msgInvalidSiteID  = "некорректный ID комплекса"
	msgInvalidCourtID = "некорректный ID площадки"
	msgInvalidPeriod  = "некорректный формат периода, ожидается RFC 3339"
	msgInvalidFilter  = "некорректные параметры фильтрации"
	msgSiteNotFound   = "комплекс не найден"
	msgForbidden      = "доступ запрещен"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/sites/{siteId}/reservations?courtId=&from=&to=&status=&activeOnly=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	siteID, err := strconv.ParseInt(vars["siteId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /sites/{id}/reservations - Invalid site ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSiteID)
		return
	}

	userID, _ := middleware.UserID(r.Context())

	req, err := parseQuery(r, siteID, userID)
	if err != nil {
		h.logger.Warn("GET /sites/{id}/reservations - Invalid query: site_id=%d: %v", siteID, err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.GetSiteReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrSiteNotFound):
			h.logger.Warn("GET /sites/{id}/reservations - Site not found: site_id=%d", siteID)
			handlers.RespondNotFound(w, msgSiteNotFound)

		case errors.Is(err, reservations.ErrAccessDenied), errors.Is(err, reservations.ErrUserNotFound):
			h.logger.Warn("GET /sites/{id}/reservations - Access denied: site_id=%d, user_id=%d", siteID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /sites/{id}/reservations - Invalid filter: site_id=%d", siteID)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /sites/{id}/reservations - Failed to get reservations: site_id=%d, error=%v",
				siteID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseQuery(r *http.Request, siteID, userID int64) (*models.GetSiteReservationsRequest, error) {
	req := &models.GetSiteReservationsRequest{
		SiteID: siteID,
		UserID: userID,
	}

	q := r.URL.Query()

	if raw := q.Get("courtId"); raw != "" {
		courtID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errors.New(msgInvalidCourtID)
		}
		req.CourtID = ptr.Ptr(courtID)
	}

	if raw := q.Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, errors.New(msgInvalidPeriod)
		}
		req.From = ptr.Ptr(from)
	}

	if raw := q.Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, errors.New(msgInvalidPeriod)
		}
		req.To = ptr.Ptr(to)
	}

	if status := q.Get("status"); status != "" {
		req.Status = ptr.Ptr(status)
	}

	req.ActiveOnly = q.Get("activeOnly") == "true"

	return req, nil
}
