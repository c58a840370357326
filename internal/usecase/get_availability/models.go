package get_availability

import (
	"time"

	"github.com/kovaldn/ArenaBookingService/internal/domain"
)

// Request модель запроса доступности площадки
type Request struct {
	CourtID int64     // ID площадки
	From    time.Time // Начало диапазона (включительно)
	To      time.Time // Конец диапазона (исключительно)
}

// Response модель ответа со свободными интервалами
type Response struct {
	CourtID      int64
	PricePerHour float64
	Free         []domain.Interval // Свободные интервалы в порядке возрастания
}

// CheckRequest модель запроса точечной проверки слота
type CheckRequest struct {
	CourtID int64
	Start   time.Time
	End     time.Time
}

// CheckResponse результат точечной проверки слота
type CheckResponse struct {
	CourtID      int64
	Available    bool
	PricePerHour float64
	// EstimatedTotal стоимость слота по текущему тарифу; при создании
	// бронирования цена фиксируется заново
	EstimatedTotal float64
	// Conflict первое пересекающееся занятие, если слот недоступен
	Conflict *domain.OccupiedInterval
}
