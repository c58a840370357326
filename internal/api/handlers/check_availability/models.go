package check_availability

import (
	"time"

	getAvailability "github.com/kovaldn/ArenaBookingService/internal/usecase/get_availability"
)

// CheckAvailabilityRequest HTTP request model
type CheckAvailabilityRequest struct {
	StartAt string `json:"startAt"` // RFC 3339
	EndAt   string `json:"endAt"`   // RFC 3339
}

// ConflictResponse первое пересекающееся занятие
type ConflictResponse struct {
	Kind    string `json:"kind"` // "reservation" или "blocked_period"
	ID      int64  `json:"id"`
	StartAt string `json:"startAt"`
	EndAt   string `json:"endAt"`
}

// CheckAvailabilityResponse HTTP response model
type CheckAvailabilityResponse struct {
	CourtID        int64             `json:"courtId"`
	Available      bool              `json:"available"`
	PricePerHour   float64           `json:"pricePerHour"`
	EstimatedTotal float64           `json:"estimatedTotal,omitempty"`
	Conflict       *ConflictResponse `json:"conflict,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckAvailabilityRequest) ToUseCaseRequest(courtID int64) (getAvailability.CheckRequest, error) {
	start, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return getAvailability.CheckRequest{}, err
	}
	end, err := time.Parse(time.RFC3339, r.EndAt)
	if err != nil {
		return getAvailability.CheckRequest{}, err
	}

	return getAvailability.CheckRequest{
		CourtID: courtID,
		Start:   start,
		End:     end,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.CheckResponse) *CheckAvailabilityResponse {
	out := &CheckAvailabilityResponse{
		CourtID:        resp.CourtID,
		Available:      resp.Available,
		PricePerHour:   resp.PricePerHour,
		EstimatedTotal: resp.EstimatedTotal,
	}

	if resp.Conflict != nil {
		out.Conflict = &ConflictResponse{
			Kind:    string(resp.Conflict.Kind),
			ID:      resp.Conflict.RefID,
			StartAt: resp.Conflict.Start.Format(time.RFC3339),
			EndAt:   resp.Conflict.End.Format(time.RFC3339),
		}
	}

	return out
}
