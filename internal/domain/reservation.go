package domain

import "time"

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
)

// ActiveStatuses статусы, занимающие время площадки.
// Используются в проверке конфликтов и при построении занятых интервалов.
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}

// Reservation represents a court reservation.
// PricePerHour and TotalAmount are frozen at creation time: they are a
// historical snapshot, independent of later changes to the court's rate.
type Reservation struct {
	ID      int64
	CourtID int64
	UserID  int64

	StartAt time.Time
	EndAt   time.Time

	PricePerHour float64
	TotalAmount  float64

	Status ReservationStatus
	Notes  *string

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Interval returns the reservation slot as a half-open interval
func (r *Reservation) Interval() Interval {
	return Interval{Start: r.StartAt, End: r.EndAt}
}

// Occupied returns the reservation as an occupied interval for the sweep
func (r *Reservation) Occupied() OccupiedInterval {
	return OccupiedInterval{Interval: r.Interval(), Kind: KindReservation, RefID: r.ID}
}

// IsActive returns true if the reservation occupies court time
func (r *Reservation) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanBeCancelled reports whether the user-initiated cancellation window is
// still open: at least CancellationNotice before the start. Exactly 24h00m
// before start still passes; 23h59m does not.
func (r *Reservation) CanBeCancelled(now time.Time) bool {
	if !r.IsActive() {
		return false
	}
	return r.StartAt.Sub(now) >= CancellationNotice
}

// Cancel moves the reservation to CANCELLED and stamps the cancellation time.
// Returns false without changing anything if the reservation is already
// cancelled, making the operation idempotent.
func (r *Reservation) Cancel(now time.Time) bool {
	if r.Status == StatusCancelled {
		return false
	}
	r.Status = StatusCancelled
	r.CancelledAt = &now
	return true
}

// Confirm moves the reservation to CONFIRMED on payment success.
// No-op (returns false) when already confirmed; cancelled and completed
// reservations cannot be confirmed.
func (r *Reservation) Confirm() bool {
	if r.Status != StatusPending {
		return false
	}
	r.Status = StatusConfirmed
	return true
}

// EffectiveStatus returns the status for reporting purposes: an active
// reservation whose end has passed is reported as COMPLETED. The stored
// status is not mutated; COMPLETED is derived on read.
func (r *Reservation) EffectiveStatus(now time.Time) ReservationStatus {
	if r.IsActive() && !now.Before(r.EndAt) {
		return StatusCompleted
	}
	return r.Status
}

// ReservationFilter фильтр для выборки бронирований комплекса
type ReservationFilter struct {
	CourtID     *int64             // по площадке
	OverlapWith *Interval          // только пересекающиеся с интервалом
	Status      *ReservationStatus // по конкретному статусу
	ActiveOnly  bool               // только PENDING/CONFIRMED
}
