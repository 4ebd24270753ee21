// Package student содержит доменную модель ученика вокальной студии.
// Это ядро бизнес-логики - здесь нет внешних зависимостей.
package student

import (
	"strings"

	"github.com/vocal-hub/vocal-studio-hub/internal/domain/shared"
)

// Student представляет ученика студии.
// Баланс оставшихся занятий списывается при проведении занятия и
// пополняется при покупке абонемента - оба правила живут на сервере,
// календарь это поле только читает.
type Student struct {
	// ID - внутренний идентификатор ученика.
	ID int64

	// UserID - владелец аккаунта (преподаватель).
	UserID int64

	// Name - отображаемое имя ученика.
	Name string

	// Email - электронная почта (опционально).
	Email string

	// Phone - телефон (опционально).
	Phone string

	// Notes - произвольные заметки.
	Notes string

	// RemainingLessons - остаток оплаченных занятий.
	RemainingLessons int
}

// Validate проверяет инварианты ученика.
func (s *Student) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return shared.NewDomainError("student", "Validate", shared.ErrEmptyValue, "name is required")
	}
	if s.RemainingLessons < 0 {
		return shared.NewDomainError("student", "Validate", shared.ErrNegativeValue, "remaining lessons cannot be negative")
	}
	return nil
}

// ConsumeLesson списывает одно занятие с баланса. Баланс может уйти
// в ноль, но не ниже - разовые занятия сверх абонемента не учитываются
// как долг.
func (s *Student) ConsumeLesson() {
	if s.RemainingLessons > 0 {
		s.RemainingLessons--
	}
}

// CreditLessons пополняет баланс занятий (покупка абонемента).
func (s *Student) CreditLessons(n int) {
	if n > 0 {
		s.RemainingLessons += n
	}
}

// Ошибки доменной модели учеников.
var (
	// ErrStudentNotFound - ученик не найден.
	ErrStudentNotFound = shared.NewDomainError("student", "Get", shared.ErrNotFound, "student not found")
)
