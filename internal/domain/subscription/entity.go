// Package subscription содержит доменную модель абонемента -
// предоплаченного пакета из N занятий.
package subscription

import (
	"time"

	"github.com/vocal-hub/vocal-studio-hub/internal/domain/shared"
)

// Subscription представляет абонемент ученика: пакет занятий,
// купленный на определённый период.
type Subscription struct {
	// ID - внутренний идентификатор абонемента.
	ID int64

	// UserID - владелец аккаунта (преподаватель).
	UserID int64

	// StudentID - ученик, купивший абонемент.
	StudentID int64

	// StartDate - начало действия.
	StartDate time.Time

	// EndDate - конец действия.
	EndDate time.Time

	// LessonsCount - количество занятий в пакете.
	LessonsCount int

	// Price - стоимость пакета в рублях.
	Price int64

	// Notes - произвольные заметки.
	Notes string
}

// Validate проверяет инварианты абонемента.
func (s *Subscription) Validate() error {
	if s.StudentID <= 0 {
		return shared.NewDomainError("subscription", "Validate", shared.ErrInvalidID, "student is required")
	}
	if s.LessonsCount <= 0 {
		return shared.NewDomainError("subscription", "Validate", shared.ErrNegativeValue, "lessons count must be positive")
	}
	if s.Price < 0 {
		return shared.NewDomainError("subscription", "Validate", shared.ErrNegativeValue, "price cannot be negative")
	}
	if s.EndDate.Before(s.StartDate) {
		return shared.NewDomainError("subscription", "Validate", shared.ErrInvalidInput, "end date before start date")
	}
	return nil
}

// IsActive проверяет, действует ли абонемент в момент t.
func (s *Subscription) IsActive(t time.Time) bool {
	return !t.Before(s.StartDate) && !t.After(s.EndDate)
}

// Ошибки доменной модели абонементов.
var (
	// ErrSubscriptionNotFound - абонемент не найден.
	ErrSubscriptionNotFound = shared.NewDomainError("subscription", "Get", shared.ErrNotFound, "subscription not found")
)
