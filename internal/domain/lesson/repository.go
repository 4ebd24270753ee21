package lesson

import (
	"context"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACE
// Контракт для работы с хранилищем занятий.
// Реализация находится в infrastructure/persistence/postgres.
// ══════════════════════════════════════════════════════════════════════════════

// Repository определяет операции CRUD для занятий.
type Repository interface {
	// Create создаёт занятие и заполняет его ID.
	Create(ctx context.Context, l *Lesson) error

	// GetByID возвращает занятие по ID в рамках аккаунта.
	// Возвращает ErrLessonNotFound, если занятие не найдено.
	GetByID(ctx context.Context, userID, id int64) (*Lesson, error)

	// Update сохраняет изменённое занятие.
	// Возвращает ErrLessonNotFound, если занятие не найдено.
	Update(ctx context.Context, l *Lesson) error

	// Delete удаляет занятие.
	// Возвращает ErrLessonNotFound, если занятие не найдено.
	Delete(ctx context.Context, userID, id int64) error

	// List возвращает все занятия аккаунта с пагинацией,
	// отсортированные по моменту начала.
	List(ctx context.Context, userID int64, opts ListOptions) ([]*Lesson, error)

	// ListByStudent возвращает занятия конкретного ученика.
	ListByStudent(ctx context.Context, userID, studentID int64, opts ListOptions) ([]*Lesson, error)

	// ListInRange возвращает занятия, начинающиеся в [from, to).
	// Используется воркером для напоминаний о предстоящих занятиях.
	ListInRange(ctx context.Context, userID int64, from, to time.Time) ([]*Lesson, error)
}

// ListOptions содержит параметры пагинации.
type ListOptions struct {
	// Offset - смещение (для пагинации).
	Offset int

	// Limit - максимальное количество записей.
	Limit int
}

// DefaultListOptions возвращает параметры по умолчанию.
func DefaultListOptions() ListOptions {
	return ListOptions{Offset: 0, Limit: 100}
}
