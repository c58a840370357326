package userservice

import "github.com/kovaldn/ArenaBookingService/internal/domain"

// User модель пользователя из UserService
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"` // client | manager | admin
}

// ToDomain конвертирует ответ UserService в доменную модель
func (u *User) ToDomain() domain.User {
	return domain.User{
		ID:   u.ID,
		Role: domain.Role(u.Role),
	}
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
