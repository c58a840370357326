package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrSlotTaken возвращается, когда вставка нарушила exclusion constraint:
	// конкурирующее бронирование успело занять пересекающийся интервал
	ErrSlotTaken = errors.New("reservation.repository: slot already taken")

	// ErrInvalidTransition возвращается, когда смена статуса недопустима
	// из текущего состояния бронирования
	ErrInvalidTransition = errors.New("reservation.repository: invalid status transition")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
