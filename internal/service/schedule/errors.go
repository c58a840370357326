package schedule

import "errors"

var (
	// ErrSiteNotFound возвращается, когда комплекс не найден
	ErrSiteNotFound = errors.New("site not found")

	// ErrCourtNotFound возвращается, когда площадка не найдена
	ErrCourtNotFound = errors.New("court not found")

	// ErrPeriodNotFound возвращается, когда блокировка не найдена
	ErrPeriodNotFound = errors.New("blocked period not found")

	// ErrUserNotFound возвращается, когда пользователь не найден в UserService
	ErrUserNotFound = errors.New("user not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
