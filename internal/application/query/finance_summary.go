// Package query contains read operations (CQRS - Queries).
package query

import (
	"context"
	"fmt"
	"time"

	"github.com/vocal-hub/vocal-studio-hub/internal/domain/finance"
	"github.com/vocal-hub/vocal-studio-hub/pkg/logger"
	"github.com/vocal-hub/vocal-studio-hub/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// MONTHLY FINANCE SUMMARY
// Summaries are expensive to build from the ledger, so the result is
// cached per account and month. Writes to the ledger invalidate the
// cache for the affected month.
// ══════════════════════════════════════════════════════════════════════════════

// FinanceSummaryQuery asks for the summary of one calendar month.
type FinanceSummaryQuery struct {
	UserID int64
	Year   int
	Month  time.Month
}

// FinanceSummaryHandler handles the FinanceSummaryQuery.
type FinanceSummaryHandler struct {
	expenseRepo finance.ExpenseRepository
	incomeRepo  finance.IncomeRepository
	cache       finance.SummaryCache
	log         *logger.Logger
}

// NewFinanceSummaryHandler creates a FinanceSummaryHandler.
// The cache is optional; without it every query hits the ledger.
func NewFinanceSummaryHandler(
	expenseRepo finance.ExpenseRepository,
	incomeRepo finance.IncomeRepository,
	cache finance.SummaryCache,
	log *logger.Logger,
) *FinanceSummaryHandler {
	if log == nil {
		log = logger.Default()
	}
	return &FinanceSummaryHandler{
		expenseRepo: expenseRepo,
		incomeRepo:  incomeRepo,
		cache:       cache,
		log:         log.With(logger.Component("finance_summary")),
	}
}

// Handle returns the monthly summary, from cache when possible.
func (h *FinanceSummaryHandler) Handle(ctx context.Context, q FinanceSummaryQuery) (*finance.Summary, error) {
	if h.cache != nil {
		if cached, err := h.cache.Get(ctx, q.UserID, q.Year, q.Month); err == nil {
			return cached, nil
		}
	}

	summary, err := h.build(ctx, q)
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, q.UserID, summary, 0); err != nil {
			h.log.Warn("summary cache write failed", logger.Err(err))
		}
	}

	return summary, nil
}

// Invalidate drops the cached summary for one month. Ledger writes
// call this so the next query sees fresh numbers.
func (h *FinanceSummaryHandler) Invalidate(ctx context.Context, userID int64, year int, month time.Month) error {
	if h.cache == nil {
		return nil
	}
	return h.cache.Invalidate(ctx, userID, year, month)
}

func (h *FinanceSummaryHandler) build(ctx context.Context, q FinanceSummaryQuery) (*finance.Summary, error) {
	from := timeutil.Date(q.Year, int(q.Month), 1)
	to := from.AddDate(0, 1, 0)
	filter := finance.Filter{From: from, To: to, Limit: 10000}

	expenses, err := h.expenseRepo.List(ctx, q.UserID, filter)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	incomes, err := h.incomeRepo.List(ctx, q.UserID, filter)
	if err != nil {
		return nil, fmt.Errorf("list incomes: %w", err)
	}

	summary := finance.BuildSummary(q.Year, q.Month, expenses, incomes)
	return &summary, nil
}
