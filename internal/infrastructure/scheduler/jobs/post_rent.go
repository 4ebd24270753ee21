// Package jobs contains the scheduled jobs of the studio worker.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vocal-hub/vocal-studio-hub/internal/domain/finance"
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/shared"
	"github.com/vocal-hub/vocal-studio-hub/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// MONTHLY RENT JOB
// ══════════════════════════════════════════════════════════════════════════════

// PostRentJob posts the recurring rent expense for every account that
// has rent settings. The expense lands on the configured payment day of
// the month; ExistsInMonth keeps the posting idempotent, so running the
// job every day is safe.
type PostRentJob struct {
	rentRepo    finance.RentRepository
	expenseRepo finance.ExpenseRepository
	cache       finance.SummaryCache
	publisher   shared.EventPublisher
	logger      *slog.Logger
}

// NewPostRentJob creates the job. The cache and publisher are optional.
func NewPostRentJob(
	rentRepo finance.RentRepository,
	expenseRepo finance.ExpenseRepository,
	cache finance.SummaryCache,
	publisher shared.EventPublisher,
	logger *slog.Logger,
) *PostRentJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostRentJob{
		rentRepo:    rentRepo,
		expenseRepo: expenseRepo,
		cache:       cache,
		publisher:   publisher,
		logger:      logger,
	}
}

// Name returns the job name.
func (j *PostRentJob) Name() string {
	return "post_rent"
}

// Description returns a human-readable description.
func (j *PostRentJob) Description() string {
	return "Posts the monthly rent expense for accounts with rent settings"
}

// Run executes the rent posting for all accounts.
func (j *PostRentJob) Run(ctx context.Context) error {
	settings, err := j.rentRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list rent settings: %w", err)
	}

	now := timeutil.Now()
	var posted, skipped, failed int

	for _, rs := range settings {
		ok, err := j.postForAccount(ctx, rs, now)
		switch {
		case err != nil:
			failed++
			j.logger.Error("rent posting failed", "user_id", rs.UserID, "error", err)
		case ok:
			posted++
		default:
			skipped++
		}
	}

	j.logger.Info("rent job finished",
		"accounts", len(settings), "posted", posted, "skipped", skipped, "failed", failed)

	if failed > 0 {
		return fmt.Errorf("rent posting failed for %d of %d accounts", failed, len(settings))
	}
	return nil
}

// postForAccount posts the rent for one account if it is due.
// Returns true when an expense was created.
func (j *PostRentJob) postForAccount(ctx context.Context, rs *finance.RentSettings, now time.Time) (bool, error) {
	if rs.Amount <= 0 {
		return false, nil
	}
	// Not due yet this month.
	if now.Day() < rs.PaymentDay {
		return false, nil
	}

	exists, err := j.expenseRepo.ExistsInMonth(ctx, rs.UserID, finance.CategoryRent, now)
	if err != nil {
		return false, fmt.Errorf("check existing rent: %w", err)
	}
	if exists {
		return false, nil
	}

	expense := &finance.Expense{
		UserID:      rs.UserID,
		Date:        timeutil.Date(now.Year(), int(now.Month()), rs.PaymentDay),
		Amount:      rs.Amount,
		Category:    finance.CategoryRent,
		Description: fmt.Sprintf("Аренда зала за %s", timeutil.MonthNameRu(now.Month())),
	}
	if err := j.expenseRepo.Create(ctx, expense); err != nil {
		return false, fmt.Errorf("create rent expense: %w", err)
	}

	j.logger.Info("rent posted",
		"user_id", rs.UserID, "expense_id", expense.ID, "amount", rs.Amount)

	if j.cache != nil {
		if err := j.cache.Invalidate(ctx, rs.UserID, now.Year(), now.Month()); err != nil {
			j.logger.Warn("summary cache invalidation failed", "user_id", rs.UserID, "error", err)
		}
	}
	if j.publisher != nil {
		event := shared.NewRentPostedEvent(expense.ID, expense.Amount, timeutil.StartOfMonth(now))
		if err := j.publisher.Publish(ctx, event); err != nil {
			j.logger.Warn("rent event publish failed", "user_id", rs.UserID, "error", err)
		}
	}

	return true, nil
}
