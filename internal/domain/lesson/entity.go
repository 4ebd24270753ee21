// Package lesson содержит доменную модель занятия вокальной студии.
// Это ядро бизнес-логики - здесь нет внешних зависимостей.
package lesson

import (
	"time"

	"github.com/vocal-hub/vocal-studio-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENTITY
// ══════════════════════════════════════════════════════════════════════════════

// Lesson представляет запланированное занятие с учеником.
// Занятие принадлежит ровно одному ученику; момент начала - фиксированная
// точка во времени и не пересчитывается из состояния представления.
type Lesson struct {
	// ID - внутренний идентификатор занятия.
	ID int64

	// UserID - владелец аккаунта (преподаватель).
	UserID int64

	// StudentID - ученик, к которому относится занятие.
	StudentID int64

	// Date - момент начала занятия.
	Date time.Time

	// DurationMinutes - длительность в минутах. Всегда > 0.
	DurationMinutes int

	// IsCompleted - занятие проведено.
	IsCompleted bool

	// IsCancelled - занятие отменено.
	IsCancelled bool

	// Notes - произвольные заметки.
	Notes string
}

// End возвращает момент окончания занятия (начало + длительность).
func (l *Lesson) End() time.Time {
	return l.Date.Add(time.Duration(l.DurationMinutes) * time.Minute)
}

// Duration возвращает длительность занятия.
func (l *Lesson) Duration() time.Duration {
	return time.Duration(l.DurationMinutes) * time.Minute
}

// Validate проверяет инварианты занятия.
func (l *Lesson) Validate() error {
	if l.StudentID <= 0 {
		return shared.NewDomainError("lesson", "Validate", shared.ErrInvalidID, "student is required")
	}
	if l.DurationMinutes <= 0 {
		return shared.NewDomainError("lesson", "Validate", shared.ErrNegativeValue, "duration must be positive")
	}
	if l.Date.IsZero() {
		return shared.NewDomainError("lesson", "Validate", shared.ErrEmptyValue, "date is required")
	}
	return nil
}

// Complete отмечает занятие проведённым. Возвращает false, если занятие
// уже было проведено (повторный вызов ничего не меняет).
func (l *Lesson) Complete() bool {
	if l.IsCompleted {
		return false
	}
	l.IsCompleted = true
	return true
}

// Cancel отмечает занятие отменённым. Возвращает false, если занятие
// уже было отменено.
func (l *Lesson) Cancel() bool {
	if l.IsCancelled {
		return false
	}
	l.IsCancelled = true
	return true
}

// Overlaps проверяет, пересекается ли интервал занятия [Date, End)
// с полуоткрытым интервалом [from, to).
func (l *Lesson) Overlaps(from, to time.Time) bool {
	return l.Date.Before(to) && from.Before(l.End())
}

// Patch описывает частичное обновление занятия. Нулевые указатели
// означают "поле не менять" - так же, как exclude_unset в API.
type Patch struct {
	Date            *time.Time
	DurationMinutes *int
	Notes           *string
	StudentID       *int64
	IsCompleted     *bool
	IsCancelled     *bool
}

// Apply применяет частичное обновление к занятию.
func (p Patch) Apply(l *Lesson) {
	if p.Date != nil {
		l.Date = *p.Date
	}
	if p.DurationMinutes != nil {
		l.DurationMinutes = *p.DurationMinutes
	}
	if p.Notes != nil {
		l.Notes = *p.Notes
	}
	if p.StudentID != nil {
		l.StudentID = *p.StudentID
	}
	if p.IsCompleted != nil {
		l.IsCompleted = *p.IsCompleted
	}
	if p.IsCancelled != nil {
		l.IsCancelled = *p.IsCancelled
	}
}

// Ошибки доменной модели занятий.
var (
	// ErrLessonNotFound - занятие не найдено.
	ErrLessonNotFound = shared.NewDomainError("lesson", "Get", shared.ErrNotFound, "lesson not found")

	// ErrLessonCancelled - операция невозможна для отменённого занятия.
	ErrLessonCancelled = shared.NewDomainError("lesson", "Complete", shared.ErrInvalidState, "lesson is cancelled")
)
