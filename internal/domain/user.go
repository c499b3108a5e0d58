package domain

import "github.com/google/uuid"

// Role определяет роль пользователя системы.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCashier Role = "cashier"
	RoleStaff   Role = "staff"
)

// User — учётная запись сотрудника. Пароль хранится в открытом виде:
// известная слабость исходной системы, сознательно не исправляемая здесь.
type User struct {
	ID       string
	Username string
	Password string
	Role     Role
	FullName string
}

// NewUser создаёт пользователя с сгенерированным идентификатором.
func NewUser(username, password string, role Role, fullName string) User {
	return User{
		ID:       uuid.NewString(),
		Username: username,
		Password: password,
		Role:     role,
		FullName: fullName,
	}
}
