package create_reservation

import (
	"time"

	"github.com/kovaldn/ArenaBookingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	CourtID int64
	UserID  int64
	StartAt time.Time
	EndAt   time.Time
	Notes   *string
}

// Response модель ответа с созданным бронированием.
// Бронирование создается в статусе PENDING; подтверждение придет через
// webhook платежного шлюза после успешной оплаты.
type Response struct {
	Reservation *domain.Reservation
	Payment     *domain.Payment

	// PaymentClientSecret секрет intent для оплаты на стороне клиента.
	// Пустой, если шлюз недоступен - intent можно создать повторно.
	PaymentClientSecret string
}
