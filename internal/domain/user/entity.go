// Package user содержит модель аккаунта преподавателя и проверку пароля.
package user

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/vocal-hub/vocal-studio-hub/internal/domain/shared"
)

// User представляет аккаунт преподавателя. Приложение однопользовательское
// по сути, но данные всегда привязаны к аккаунту.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
}

// Validate проверяет инварианты аккаунта.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return shared.NewDomainError("user", "Validate", shared.ErrEmptyValue, "username is required")
	}
	return nil
}

// SetPassword хеширует и устанавливает пароль (bcrypt).
func (u *User) SetPassword(plain string) error {
	if len(plain) < 6 {
		return shared.NewDomainError("user", "SetPassword", shared.ErrInvalidInput, "password too short")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return shared.WrapDomainError("user", "SetPassword", err, "hash password")
	}
	u.PasswordHash = string(hash)
	return nil
}

// VerifyPassword проверяет пароль против сохранённого хеша.
func (u *User) VerifyPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}

// Repository определяет операции с аккаунтами.
type Repository interface {
	// Create создаёт аккаунт и заполняет его ID.
	Create(ctx context.Context, u *User) error

	// GetByID возвращает аккаунт по ID.
	// Возвращает ErrUserNotFound, если аккаунт не найден.
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByUsername возвращает аккаунт по имени пользователя.
	// Возвращает ErrUserNotFound, если аккаунт не найден.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// UpdatePassword сохраняет новый хеш пароля.
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

// Ошибки доменной модели аккаунтов.
var (
	// ErrUserNotFound - аккаунт не найден.
	ErrUserNotFound = shared.NewDomainError("user", "Get", shared.ErrNotFound, "user not found")

	// ErrBadCredentials - неверный логин или пароль.
	ErrBadCredentials = shared.NewDomainError("user", "Authenticate", shared.ErrUnauthorized, "invalid username or password")
)
