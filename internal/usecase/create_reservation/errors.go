package create_reservation

import (
	"errors"
	"fmt"

	"github.com/kovaldn/ArenaBookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInvalidInterval возвращается, когда начало слота не раньше конца
	ErrInvalidInterval = errors.New("create_reservation: invalid time interval")

	// ErrStartInPast возвращается, когда начало слота уже в прошлом
	ErrStartInPast = errors.New("create_reservation: start time is in the past")

	// ErrCourtNotFound возвращается, когда площадка не найдена
	ErrCourtNotFound = errors.New("create_reservation: court not found")

	// ErrCourtInactive возвращается, когда площадка выведена из эксплуатации
	ErrCourtInactive = errors.New("create_reservation: court is not active")

	// ErrSlotConflict возвращается, когда слот пересекается с активным
	// бронированием или блокировкой
	ErrSlotConflict = errors.New("create_reservation: slot conflicts with existing occupation")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)

// ConflictError несет источник конфликта: вид занятия и его ID.
// Разворачивается в ErrSlotConflict, так что errors.Is работает как обычно.
type ConflictError struct {
	Kind  domain.OccupiedKind
	RefID int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: %s id=%d", ErrSlotConflict, e.Kind, e.RefID)
}

func (e *ConflictError) Unwrap() error {
	return ErrSlotConflict
}
