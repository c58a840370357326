package domain

import "time"

// Business constants
const (
	// CancellationNotice минимальный срок до начала, в течение которого
	// пользователь еще может отменить бронирование
	CancellationNotice = 24 * time.Hour

	// MaxAvailabilityRangeDays максимальная ширина диапазона запроса доступности
	MaxAvailabilityRangeDays = 31

	DaysPerWeek = 7

	DefaultCurrency = "EUR"

	MaxNotesLength  = 500
	MaxReasonLength = 255
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
