// Package finance содержит доменные модели учёта доходов и расходов
// студии: записи о движении денег, настройки аренды и месячная сводка.
package finance

import (
	"strings"
	"time"

	"github.com/vocal-hub/vocal-studio-hub/internal/domain/shared"
	"github.com/vocal-hub/vocal-studio-hub/pkg/timeutil"
)

// Выделенные категории. Аренда выносится в сводке отдельной строкой
// из расходов, абонементы - отдельной строкой из доходов.
const (
	CategoryRent         = "rent"
	CategorySubscription = "subscription"
)

// ══════════════════════════════════════════════════════════════════════════════
// RECORDS
// ══════════════════════════════════════════════════════════════════════════════

// Expense представляет запись о расходе.
type Expense struct {
	ID          int64
	UserID      int64
	Date        time.Time
	Amount      int64
	Category    string
	Description string
}

// Validate проверяет инварианты расхода.
func (e *Expense) Validate() error {
	if e.Amount <= 0 {
		return shared.NewDomainError("finance", "Validate", shared.ErrNegativeValue, "amount must be positive")
	}
	if len(strings.TrimSpace(e.Category)) < 2 {
		return shared.NewDomainError("finance", "Validate", shared.ErrEmptyValue, "category is required")
	}
	return nil
}

// Income представляет запись о доходе.
type Income struct {
	ID          int64
	UserID      int64
	Date        time.Time
	Amount      int64
	Category    string
	Description string
}

// Validate проверяет инварианты дохода.
func (i *Income) Validate() error {
	if i.Amount <= 0 {
		return shared.NewDomainError("finance", "Validate", shared.ErrNegativeValue, "amount must be positive")
	}
	if len(strings.TrimSpace(i.Category)) < 2 {
		return shared.NewDomainError("finance", "Validate", shared.ErrEmptyValue, "category is required")
	}
	return nil
}

// RentSettings хранит параметры ежемесячной аренды зала.
type RentSettings struct {
	ID     int64
	UserID int64

	// Amount - сумма аренды в рублях.
	Amount int64

	// PaymentDay - день месяца (1..28), когда проводится расход.
	PaymentDay int
}

// Validate проверяет настройки аренды.
func (r *RentSettings) Validate() error {
	if r.Amount < 0 {
		return shared.NewDomainError("finance", "Validate", shared.ErrNegativeValue, "rent amount cannot be negative")
	}
	if r.PaymentDay < 1 || r.PaymentDay > 28 {
		return shared.NewDomainError("finance", "Validate", shared.ErrInvalidInput, "payment day must be in 1..28")
	}
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// MONTHLY SUMMARY
// ══════════════════════════════════════════════════════════════════════════════

// Summary - агрегированная сводка за календарный месяц.
// Аренда и абонементы выделяются из общих сумм отдельными строками.
type Summary struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`

	TotalIncome   int64 `json:"total_income"`
	TotalExpenses int64 `json:"total_expenses"`
	Profit        int64 `json:"profit"`

	SubscriptionIncome int64 `json:"subscription_income"`
	OtherIncome        int64 `json:"other_income"`
	RentExpense        int64 `json:"rent_expense"`
	OtherExpenses      int64 `json:"other_expenses"`

	ExpensesByCategory map[string]int64 `json:"expenses_by_category"`
	IncomesByCategory  map[string]int64 `json:"incomes_by_category"`
}

// BuildSummary строит месячную сводку из записей. Записи вне месяца
// игнорируются, поэтому функцию можно кормить полным списком. Месяц
// записи определяется в часовом поясе студии: запись, сохранённая в
// UTC поздним вечером последнего дня месяца, относится уже к
// следующему месяцу.
func BuildSummary(year int, month time.Month, expenses []*Expense, incomes []*Income) Summary {
	s := Summary{
		Year:               year,
		Month:              month,
		ExpensesByCategory: make(map[string]int64),
		IncomesByCategory:  make(map[string]int64),
	}

	for _, e := range expenses {
		d := timeutil.ToStudio(e.Date)
		if d.Year() != year || d.Month() != month {
			continue
		}
		s.ExpensesByCategory[e.Category] += e.Amount
		if e.Category == CategoryRent {
			s.RentExpense += e.Amount
		} else {
			s.OtherExpenses += e.Amount
		}
	}

	for _, i := range incomes {
		d := timeutil.ToStudio(i.Date)
		if d.Year() != year || d.Month() != month {
			continue
		}
		s.IncomesByCategory[i.Category] += i.Amount
		if i.Category == CategorySubscription {
			s.SubscriptionIncome += i.Amount
		} else {
			s.OtherIncome += i.Amount
		}
	}

	s.TotalExpenses = s.RentExpense + s.OtherExpenses
	s.TotalIncome = s.SubscriptionIncome + s.OtherIncome
	s.Profit = s.TotalIncome - s.TotalExpenses
	return s
}

// Ошибки доменной модели финансов.
var (
	// ErrExpenseNotFound - расход не найден.
	ErrExpenseNotFound = shared.NewDomainError("finance", "GetExpense", shared.ErrNotFound, "expense not found")

	// ErrIncomeNotFound - доход не найден.
	ErrIncomeNotFound = shared.NewDomainError("finance", "GetIncome", shared.ErrNotFound, "income not found")

	// ErrRentSettingsNotFound - настройки аренды ещё не созданы.
	ErrRentSettingsNotFound = shared.NewDomainError("finance", "GetRent", shared.ErrNotFound, "rent settings not found")
)
