package subscription

import "context"

// Repository определяет операции CRUD для абонементов.
// Реализация находится в infrastructure/persistence/postgres.
type Repository interface {
	// Create создаёт абонемент и заполняет его ID.
	Create(ctx context.Context, s *Subscription) error

	// GetByID возвращает абонемент по ID в рамках аккаунта.
	// Возвращает ErrSubscriptionNotFound, если абонемент не найден.
	GetByID(ctx context.Context, userID, id int64) (*Subscription, error)

	// Update сохраняет изменённый абонемент.
	// Возвращает ErrSubscriptionNotFound, если абонемент не найден.
	Update(ctx context.Context, s *Subscription) error

	// Delete удаляет абонемент.
	// Возвращает ErrSubscriptionNotFound, если абонемент не найден.
	Delete(ctx context.Context, userID, id int64) error

	// List возвращает все абонементы аккаунта, новые первыми.
	List(ctx context.Context, userID int64, offset, limit int) ([]*Subscription, error)

	// ListByStudent возвращает абонементы конкретного ученика.
	ListByStudent(ctx context.Context, userID, studentID int64) ([]*Subscription, error)
}
