package models

import (
	"errors"
	"time"

	"github.com/kovaldn/ArenaBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	UserID int64 `json:"userId"`
}

// GetUserReservationsRequest запрос на получение бронирований пользователя
type GetUserReservationsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetSiteReservationsRequest запрос на получение бронирований комплекса
type GetSiteReservationsRequest struct {
	UserID     int64      `json:"userId"`
	SiteID     int64      `json:"siteId"`
	CourtID    *int64     `json:"courtId,omitempty"`    // Фильтр по площадке (опционально)
	From       *time.Time `json:"from,omitempty"`       // Начало периода (опционально)
	To         *time.Time `json:"to,omitempty"`         // Конец периода (опционально)
	Status     *string    `json:"status,omitempty"`     // Фильтр по статусу (опционально)
	ActiveOnly bool       `json:"activeOnly,omitempty"` // Только PENDING/CONFIRMED
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetSiteReservationsRequest) ToDomainFilter() (domain.ReservationFilter, error) {
	filter := domain.ReservationFilter{
		CourtID:    r.CourtID,
		ActiveOnly: r.ActiveOnly,
	}

	if r.From != nil && r.To != nil {
		if !r.From.Before(*r.To) {
			return filter, errors.New("from must be before to")
		}
		filter.OverlapWith = &domain.Interval{Start: *r.From, End: *r.To}
	}

	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID      int64 `json:"id"`
	CourtID int64 `json:"courtId"`
	UserID  int64 `json:"userId"`

	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`

	// Зафиксированная цена на момент создания
	PricePerHour float64 `json:"pricePerHour"`
	TotalAmount  float64 `json:"totalAmount"`

	// Статус с учетом прошедшего времени: активное бронирование с истекшим
	// концом отдается как completed
	Status string `json:"status"`

	Notes       *string    `json:"notes,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// SiteReservationStats сводка по выборке бронирований комплекса
type SiteReservationStats struct {
	TotalCount int `json:"totalCount"`
	// Revenue сумма зафиксированных стоимостей оплаченных бронирований
	// (confirmed, включая завершившиеся)
	Revenue float64 `json:"revenue"`
}

// SiteReservationListResponse ответ со списком бронирований комплекса
type SiteReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	Stats        SiteReservationStats  `json:"stats"`
}

// CancelReservationResponse результат отмены бронирования
type CancelReservationResponse struct {
	// Cancelled false, если бронирование уже было отменено ранее
	Cancelled bool   `json:"cancelled"`
	Status    string `json:"status"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO.
// Статус вычисляется на момент now: завершившиеся активные бронирования
// отдаются как completed, при этом хранимый статус не меняется.
func FromDomainReservation(r *domain.Reservation, now time.Time) *ReservationResponse {
	if r == nil {
		return nil
	}

	return &ReservationResponse{
		ID:           r.ID,
		CourtID:      r.CourtID,
		UserID:       r.UserID,
		StartAt:      r.StartAt,
		EndAt:        r.EndAt,
		PricePerHour: r.PricePerHour,
		TotalAmount:  r.TotalAmount,
		Status:       string(r.EffectiveStatus(now)),
		Notes:        r.Notes,
		CancelledAt:  r.CancelledAt,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(list []*domain.Reservation, now time.Time) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(list)),
	}
	for _, r := range list {
		resp.Reservations = append(resp.Reservations, *FromDomainReservation(r, now))
	}
	return resp
}

// ToDomainReservationStatus конвертирует строку в domain статус
func ToDomainReservationStatus(s string) (domain.ReservationStatus, error) {
	switch domain.ReservationStatus(s) {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCancelled, domain.StatusCompleted:
		return domain.ReservationStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}
