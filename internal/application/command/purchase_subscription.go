package command

import (
	"context"
	"fmt"
	"time"

	"github.com/vocal-hub/vocal-studio-hub/internal/domain/finance"
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/shared"
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/student"
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/subscription"
	"github.com/vocal-hub/vocal-studio-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// PURCHASE SUBSCRIPTION COMMAND
// A purchase does three things at once: records the subscription,
// credits the student's lesson balance, and books the price as income
// in the "subscription" category.
// ══════════════════════════════════════════════════════════════════════════════

// PurchaseSubscriptionCommand contains the data of the purchase.
type PurchaseSubscriptionCommand struct {
	UserID       int64
	StudentID    int64
	StartDate    time.Time
	EndDate      time.Time
	LessonsCount int
	Price        int64
	Notes        string
}

// PurchaseSubscriptionResult contains the created records.
type PurchaseSubscriptionResult struct {
	Subscription *subscription.Subscription
	Income       *finance.Income

	// RemainingLessons is the student's balance after crediting.
	RemainingLessons int
}

// PurchaseStore persists the whole purchase atomically: the
// subscription row, the student's credited balance and, for paid
// subscriptions, the income record. A partial write would either give
// out lessons nobody paid for or book money for lessons the student
// never received.
type PurchaseStore interface {
	SavePurchase(ctx context.Context, sub *subscription.Subscription, st *student.Student, income *finance.Income) error
}

// PurchaseSubscriptionHandler handles the PurchaseSubscriptionCommand.
type PurchaseSubscriptionHandler struct {
	store       PurchaseStore
	studentRepo student.Repository
	cache       finance.SummaryCache
	publisher   shared.EventPublisher
	log         *logger.Logger
}

// NewPurchaseSubscriptionHandler creates a PurchaseSubscriptionHandler.
// The cache and publisher are optional.
func NewPurchaseSubscriptionHandler(
	store PurchaseStore,
	studentRepo student.Repository,
	cache finance.SummaryCache,
	publisher shared.EventPublisher,
	log *logger.Logger,
) *PurchaseSubscriptionHandler {
	if log == nil {
		log = logger.Default()
	}
	return &PurchaseSubscriptionHandler{
		store:       store,
		studentRepo: studentRepo,
		cache:       cache,
		publisher:   publisher,
		log:         log.With(logger.Component("purchase_subscription")),
	}
}

// Handle executes the command.
func (h *PurchaseSubscriptionHandler) Handle(ctx context.Context, cmd PurchaseSubscriptionCommand) (*PurchaseSubscriptionResult, error) {
	sub := &subscription.Subscription{
		UserID:       cmd.UserID,
		StudentID:    cmd.StudentID,
		StartDate:    cmd.StartDate,
		EndDate:      cmd.EndDate,
		LessonsCount: cmd.LessonsCount,
		Price:        cmd.Price,
		Notes:        cmd.Notes,
	}
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	st, err := h.studentRepo.GetByID(ctx, cmd.UserID, cmd.StudentID)
	if err != nil {
		return nil, fmt.Errorf("resolve student %d: %w", cmd.StudentID, err)
	}

	st.CreditLessons(sub.LessonsCount)

	var income *finance.Income
	if sub.Price > 0 {
		income = &finance.Income{
			UserID:      cmd.UserID,
			Date:        sub.StartDate,
			Amount:      sub.Price,
			Category:    finance.CategorySubscription,
			Description: fmt.Sprintf("Абонемент: %s, %d занятий", st.Name, sub.LessonsCount),
		}
	}

	if err := h.store.SavePurchase(ctx, sub, st, income); err != nil {
		return nil, fmt.Errorf("save purchase: %w", err)
	}

	if income != nil && h.cache != nil {
		if err := h.cache.Invalidate(ctx, cmd.UserID, sub.StartDate.Year(), sub.StartDate.Month()); err != nil {
			h.log.Warn("summary cache invalidation failed", logger.Err(err))
		}
	}

	h.log.Info("subscription purchased",
		logger.SubscriptionID(sub.ID),
		logger.StudentID(st.ID),
		logger.Int("lessons", sub.LessonsCount),
		logger.Amount(sub.Price))

	if h.publisher != nil {
		event := shared.NewSubscriptionPurchasedEvent(sub.ID, st.ID, sub.LessonsCount, sub.Price)
		if err := h.publisher.Publish(ctx, event); err != nil {
			h.log.Warn("event publish failed", logger.Err(err))
		}
	}

	return &PurchaseSubscriptionResult{
		Subscription:     sub,
		Income:           income,
		RemainingLessons: st.RemainingLessons,
	}, nil
}
