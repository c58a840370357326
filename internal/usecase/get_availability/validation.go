package get_availability

import (
	"fmt"
	"time"

	"github.com/kovaldn/ArenaBookingService/internal/domain"
)

func validateRequest(req Request) error {
	if req.CourtID <= 0 {
		return fmt.Errorf("%w: court_id must be positive", ErrInvalidInput)
	}
	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}
	if !req.From.Before(req.To) {
		return fmt.Errorf("%w: from must be before to", ErrInvalidRange)
	}
	if req.To.Sub(req.From) > domain.MaxAvailabilityRangeDays*24*time.Hour {
		return fmt.Errorf("%w: range exceeds %d days", ErrRangeTooWide, domain.MaxAvailabilityRangeDays)
	}
	return nil
}

func validateCheckRequest(req CheckRequest) error {
	if req.CourtID <= 0 {
		return fmt.Errorf("%w: court_id must be positive", ErrInvalidInput)
	}
	candidate := domain.Interval{Start: req.Start, End: req.End}
	if !candidate.IsValid() {
		return fmt.Errorf("%w: start_at must be before end_at", ErrInvalidRange)
	}
	return nil
}
