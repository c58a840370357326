package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/kovaldn/ArenaBookingService/internal/domain"
	"github.com/kovaldn/ArenaBookingService/pkg/types"
)

// Request модели

// OpeningHoursEntry одна запись недельного расписания
type OpeningHoursEntry struct {
	DayOfWeek int    `json:"dayOfWeek"` // Понедельник=0 ... Воскресенье=6
	OpenTime  string `json:"openTime"`  // "08:00"
	CloseTime string `json:"closeTime"` // "22:00"
}

// UpdateOpeningHoursRequest запрос на замену недельного расписания комплекса.
// День, отсутствующий в списке, считается выходным.
type UpdateOpeningHoursRequest struct {
	UserID int64               `json:"userId"`
	SiteID int64               `json:"siteId"`
	Hours  []OpeningHoursEntry `json:"hours"`
}

// ToDomainHours валидирует и конвертирует записи расписания
func (r *UpdateOpeningHoursRequest) ToDomainHours() (domain.WeeklyHours, error) {
	seen := make(map[int]bool, domain.DaysPerWeek)
	hours := make(domain.WeeklyHours, 0, len(r.Hours))

	for _, e := range r.Hours {
		if seen[e.DayOfWeek] {
			return nil, fmt.Errorf("duplicate entry for day %d", e.DayOfWeek)
		}
		seen[e.DayOfWeek] = true

		open, err := types.ParseTimeOfDay(e.OpenTime)
		if err != nil {
			return nil, fmt.Errorf("day %d: %v", e.DayOfWeek, err)
		}
		close, err := types.ParseTimeOfDay(e.CloseTime)
		if err != nil {
			return nil, fmt.Errorf("day %d: %v", e.DayOfWeek, err)
		}

		entry := domain.OpeningHours{
			SiteID:    r.SiteID,
			DayOfWeek: e.DayOfWeek,
			OpenTime:  open,
			CloseTime: close,
		}
		if !entry.IsValid() {
			return nil, fmt.Errorf("day %d: open time must be before close time", e.DayOfWeek)
		}

		hours = append(hours, entry)
	}

	return hours, nil
}

// CreateBlockedPeriodRequest запрос на блокировку времени площадки
type CreateBlockedPeriodRequest struct {
	UserID  int64     `json:"userId"`
	CourtID int64     `json:"courtId"`
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
	Reason  *string   `json:"reason,omitempty"`
}

// Validate проверяет корректность запроса
func (r *CreateBlockedPeriodRequest) Validate() error {
	if !r.StartAt.Before(r.EndAt) {
		return errors.New("start_at must be before end_at")
	}
	if r.Reason != nil && len(*r.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("reason exceeds %d characters", domain.MaxReasonLength)
	}
	return nil
}

// DeleteBlockedPeriodRequest запрос на снятие блокировки
type DeleteBlockedPeriodRequest struct {
	UserID   int64 `json:"userId"`
	CourtID  int64 `json:"courtId"`
	PeriodID int64 `json:"periodId"`
}

// Response модели

// OpeningHoursResponse недельное расписание комплекса
type OpeningHoursResponse struct {
	SiteID int64               `json:"siteId"`
	Hours  []OpeningHoursEntry `json:"hours"`
}

// FromDomainHours конвертирует расписание в DTO
func FromDomainHours(siteID int64, hours domain.WeeklyHours) *OpeningHoursResponse {
	resp := &OpeningHoursResponse{
		SiteID: siteID,
		Hours:  make([]OpeningHoursEntry, 0, len(hours)),
	}
	for _, h := range hours {
		resp.Hours = append(resp.Hours, OpeningHoursEntry{
			DayOfWeek: h.DayOfWeek,
			OpenTime:  h.OpenTime.String(),
			CloseTime: h.CloseTime.String(),
		})
	}
	return resp
}

// BlockedPeriodResponse ответ с данными блокировки
type BlockedPeriodResponse struct {
	ID        int64     `json:"id"`
	CourtID   int64     `json:"courtId"`
	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromDomainBlockedPeriod конвертирует блокировку в DTO
func FromDomainBlockedPeriod(b *domain.BlockedPeriod) *BlockedPeriodResponse {
	if b == nil {
		return nil
	}
	return &BlockedPeriodResponse{
		ID:        b.ID,
		CourtID:   b.CourtID,
		StartAt:   b.StartAt,
		EndAt:     b.EndAt,
		Reason:    b.Reason,
		CreatedAt: b.CreatedAt,
	}
}
