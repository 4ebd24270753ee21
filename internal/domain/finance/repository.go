package finance

import (
	"context"
	"time"
)

// Filter задаёт выборку финансовых записей.
type Filter struct {
	// From/To ограничивают даты записей (включительно/исключительно).
	// Нулевые значения - без ограничения.
	From time.Time
	To   time.Time

	// Category ограничивает выборку одной категорией.
	Category string

	Offset int
	Limit  int
}

// ExpenseRepository определяет операции CRUD для расходов.
type ExpenseRepository interface {
	Create(ctx context.Context, e *Expense) error
	GetByID(ctx context.Context, userID, id int64) (*Expense, error)
	Update(ctx context.Context, e *Expense) error
	Delete(ctx context.Context, userID, id int64) error

	// List возвращает расходы по фильтру, новые первыми.
	List(ctx context.Context, userID int64, f Filter) ([]*Expense, error)

	// ExistsInMonth проверяет наличие расхода категории category в месяце,
	// содержащем момент t. Используется, чтобы аренда проводилась не
	// чаще раза в месяц.
	ExistsInMonth(ctx context.Context, userID int64, category string, t time.Time) (bool, error)
}

// IncomeRepository определяет операции CRUD для доходов.
type IncomeRepository interface {
	Create(ctx context.Context, i *Income) error
	GetByID(ctx context.Context, userID, id int64) (*Income, error)
	Update(ctx context.Context, i *Income) error
	Delete(ctx context.Context, userID, id int64) error

	// List возвращает доходы по фильтру, новые первыми.
	List(ctx context.Context, userID int64, f Filter) ([]*Income, error)
}

// RentRepository определяет операции с настройками аренды.
// У аккаунта либо нет настроек, либо ровно одна запись.
type RentRepository interface {
	// Get возвращает настройки аренды аккаунта.
	// Возвращает ErrRentSettingsNotFound, если настроек ещё нет.
	Get(ctx context.Context, userID int64) (*RentSettings, error)

	// Upsert создаёт или обновляет настройки аренды аккаунта.
	Upsert(ctx context.Context, r *RentSettings) error

	// ListAll возвращает настройки аренды всех аккаунтов.
	// Используется воркером для ежемесячного проведения аренды.
	ListAll(ctx context.Context) ([]*RentSettings, error)
}

// SummaryCache кеширует месячные сводки (обычно реализуется через Redis).
type SummaryCache interface {
	// Get возвращает сводку из кеша или ошибку промаха.
	Get(ctx context.Context, userID int64, year int, month time.Month) (*Summary, error)

	// Set сохраняет сводку с TTL.
	Set(ctx context.Context, userID int64, s *Summary, ttl time.Duration) error

	// Invalidate сбрасывает сводку месяца после записи в леджер.
	Invalidate(ctx context.Context, userID int64, year int, month time.Month) error
}
