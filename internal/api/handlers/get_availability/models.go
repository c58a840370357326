package get_availability

import (
	"time"

	getAvailability "github.com/kovaldn/ArenaBookingService/internal/usecase/get_availability"
)

// FreeIntervalResponse один свободный интервал
type FreeIntervalResponse struct {
	StartAt string `json:"startAt"` // RFC 3339
	EndAt   string `json:"endAt"`   // RFC 3339
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	CourtID      int64                  `json:"courtId"`
	PricePerHour float64                `json:"pricePerHour"`
	Free         []FreeIntervalResponse `json:"free"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		CourtID:      resp.CourtID,
		PricePerHour: resp.PricePerHour,
		Free:         make([]FreeIntervalResponse, 0, len(resp.Free)),
	}
	for _, interval := range resp.Free {
		out.Free = append(out.Free, FreeIntervalResponse{
			StartAt: interval.Start.Format(time.RFC3339),
			EndAt:   interval.End.Format(time.RFC3339),
		})
	}
	return out
}
