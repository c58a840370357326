package domain

import "time"

// SportType вид спорта на площадке
type SportType string

const (
	SportTennis     SportType = "tennis"
	SportFootball   SportType = "football"
	SportBasketball SportType = "basketball"
	SportBadminton  SportType = "badminton"
	SportVolleyball SportType = "volleyball"
	SportSquash     SportType = "squash"
	SportPadel      SportType = "padel"
	SportOther      SportType = "other"
)

// Court represents a single bookable court belonging to a site
type Court struct {
	ID           int64
	SiteID       int64
	Name         string
	SportType    SportType
	PricePerHour float64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BlockedPeriod is court time blocked manually by the site manager
// (maintenance, private events). Invariant: StartAt strictly before EndAt.
type BlockedPeriod struct {
	ID        int64
	CourtID   int64
	StartAt   time.Time
	EndAt     time.Time
	Reason    *string
	CreatedAt time.Time
}

// Interval returns the blocked period as a half-open interval
func (b BlockedPeriod) Interval() Interval {
	return Interval{Start: b.StartAt, End: b.EndAt}
}

// Occupied returns the blocked period as an occupied interval for the sweep
func (b BlockedPeriod) Occupied() OccupiedInterval {
	return OccupiedInterval{Interval: b.Interval(), Kind: KindBlockedPeriod, RefID: b.ID}
}
