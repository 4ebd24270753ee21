package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vocal-hub/vocal-studio-hub/pkg/timeutil"
)

func TestBuildSummarySeparatesRentAndSubscriptions(t *testing.T) {
	expenses := []*Expense{
		{Date: timeutil.Date(2026, 9, 5), Amount: 30000, Category: CategoryRent},
		{Date: timeutil.Date(2026, 9, 12), Amount: 1500, Category: "supplies"},
		{Date: timeutil.Date(2026, 8, 5), Amount: 30000, Category: CategoryRent}, // прошлый месяц
	}
	incomes := []*Income{
		{Date: timeutil.Date(2026, 9, 1), Amount: 16000, Category: CategorySubscription},
		{Date: timeutil.Date(2026, 9, 20), Amount: 2000, Category: "single_lesson"},
	}

	s := BuildSummary(2026, time.September, expenses, incomes)

	assert.EqualValues(t, 30000, s.RentExpense)
	assert.EqualValues(t, 1500, s.OtherExpenses)
	assert.EqualValues(t, 31500, s.TotalExpenses)
	assert.EqualValues(t, 16000, s.SubscriptionIncome)
	assert.EqualValues(t, 2000, s.OtherIncome)
	assert.EqualValues(t, -13500, s.Profit)
	assert.EqualValues(t, 30000, s.ExpensesByCategory[CategoryRent])
}

func TestBuildSummaryUsesStudioTimezoneForMonthBounds(t *testing.T) {
	// 31 августа 22:00 UTC - это уже 1 сентября 01:00 по студии.
	boundary := time.Date(2026, 8, 31, 22, 0, 0, 0, time.UTC)
	incomes := []*Income{{Date: boundary, Amount: 2000, Category: "single_lesson"}}

	sept := BuildSummary(2026, time.September, nil, incomes)
	assert.EqualValues(t, 2000, sept.TotalIncome)

	aug := BuildSummary(2026, time.August, nil, incomes)
	assert.Zero(t, aug.TotalIncome)
}
