package create_reservation

import (
	"fmt"
	"time"

	"github.com/kovaldn/ArenaBookingService/internal/domain"
)

func validateRequest(req *Request, now time.Time) error {
	if req.CourtID <= 0 {
		return fmt.Errorf("%w: court_id must be positive", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		return fmt.Errorf("%w: user_id must be positive", ErrInvalidInput)
	}

	interval := domain.Interval{Start: req.StartAt, End: req.EndAt}
	if !interval.IsValid() {
		return fmt.Errorf("%w: start_at must be before end_at", ErrInvalidInterval)
	}

	if req.StartAt.Before(now) {
		return fmt.Errorf("%w: start_at=%s", ErrStartInPast, req.StartAt.Format(time.RFC3339))
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
