package create_reservation

import (
	"time"

	createReservation "github.com/kovaldn/ArenaBookingService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	CourtID int64   `json:"courtId"`
	StartAt string  `json:"startAt"` // RFC 3339
	EndAt   string  `json:"endAt"`   // RFC 3339
	Notes   *string `json:"notes,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID           int64   `json:"id"`
	CourtID      int64   `json:"courtId"`
	UserID       int64   `json:"userId"`
	StartAt      string  `json:"startAt"`
	EndAt        string  `json:"endAt"`
	PricePerHour float64 `json:"pricePerHour"`
	TotalAmount  float64 `json:"totalAmount"`
	Status       string  `json:"status"`
	Notes        *string `json:"notes,omitempty"`
	CreatedAt    string  `json:"createdAt"`

	Payment PaymentInfo `json:"payment"`
}

// ConflictInfo ссылка на конфликтующую запись для показа пользователю
type ConflictInfo struct {
	Kind string `json:"kind"` // "reservation" или "blocked_period"
	ID   int64  `json:"id"`
}

// ConflictErrorResponse тело ответа 409 с указанием источника конфликта.
// Conflict пустой, если конкурирующая бронь обнаружена только на коммите
// (exclusion constraint) и конфликтующая запись не известна.
type ConflictErrorResponse struct {
	Error    string        `json:"error"`
	Conflict *ConflictInfo `json:"conflict,omitempty"`
}

// PaymentInfo данные платежа для оплаты на стороне клиента
type PaymentInfo struct {
	ID             int64   `json:"id"`
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	Status         string  `json:"status"`
	TransactionRef string  `json:"transactionRef"`
	// ClientSecret пустой, если intent еще не создан в шлюзе
	ClientSecret string `json:"clientSecret,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID int64) (*createReservation.Request, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}
	endAt, err := time.Parse(time.RFC3339, r.EndAt)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		CourtID: r.CourtID,
		UserID:  userID,
		StartAt: startAt,
		EndAt:   endAt,
		Notes:   r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	res := resp.Reservation
	pay := resp.Payment

	return &ReservationResponse{
		ID:           res.ID,
		CourtID:      res.CourtID,
		UserID:       res.UserID,
		StartAt:      res.StartAt.Format(time.RFC3339),
		EndAt:        res.EndAt.Format(time.RFC3339),
		PricePerHour: res.PricePerHour,
		TotalAmount:  res.TotalAmount,
		Status:       string(res.Status),
		Notes:        res.Notes,
		CreatedAt:    res.CreatedAt.Format(time.RFC3339),
		Payment: PaymentInfo{
			ID:             pay.ID,
			Amount:         pay.Amount,
			Currency:       pay.Currency,
			Status:         string(pay.Status),
			TransactionRef: pay.TransactionRef,
			ClientSecret:   resp.PaymentClientSecret,
		},
	}
}
