package get_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInvalidRange возвращается, когда начало диапазона не раньше конца
	ErrInvalidRange = errors.New("get_availability: invalid date range")

	// ErrRangeTooWide возвращается, когда запрошенный диапазон шире допустимого
	ErrRangeTooWide = errors.New("get_availability: date range is too wide")

	// ErrCourtNotFound возвращается, когда площадка не найдена
	ErrCourtNotFound = errors.New("get_availability: court not found")

	// ErrCourtInactive возвращается, когда площадка выведена из эксплуатации
	ErrCourtInactive = errors.New("get_availability: court is not active")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
