package student

import "context"

// Repository определяет операции CRUD для учеников.
// Реализация находится в infrastructure/persistence/postgres.
type Repository interface {
	// Create создаёт ученика и заполняет его ID.
	Create(ctx context.Context, s *Student) error

	// GetByID возвращает ученика по ID в рамках аккаунта.
	// Возвращает ErrStudentNotFound, если ученик не найден.
	GetByID(ctx context.Context, userID, id int64) (*Student, error)

	// Update сохраняет изменённого ученика.
	// Возвращает ErrStudentNotFound, если ученик не найден.
	Update(ctx context.Context, s *Student) error

	// Delete удаляет ученика.
	// Возвращает ErrStudentNotFound, если ученик не найден.
	Delete(ctx context.Context, userID, id int64) error

	// List возвращает всех учеников аккаунта, отсортированных по имени.
	List(ctx context.Context, userID int64, offset, limit int) ([]*Student, error)
}
