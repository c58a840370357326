package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrSiteNotFound возвращается, когда комплекс не найден
	ErrSiteNotFound = errors.New("site not found")

	// ErrUserNotFound возвращается, когда пользователь не найден в UserService
	ErrUserNotFound = errors.New("user not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrCancellationWindow возвращается, когда до начала бронирования
	// осталось меньше суток и пользователь уже не может его отменить
	ErrCancellationWindow = errors.New("cancellation window has closed")

	// ErrCannotCancel возвращается, когда бронирование не может быть отменено
	// (например, уже завершилось)
	ErrCannotCancel = errors.New("reservation cannot be cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
