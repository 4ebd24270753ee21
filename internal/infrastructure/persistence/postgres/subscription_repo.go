package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vocal-hub/vocal-studio-hub/internal/domain/finance"
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/student"
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/subscription"
)

// ══════════════════════════════════════════════════════════════════════════════
// SUBSCRIPTION REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

const subscriptionColumns = `id, user_id, student_id, start_date, end_date, lessons_count, price, notes`

// SubscriptionRepository implements subscription.Repository for PostgreSQL.
type SubscriptionRepository struct {
	conn *Connection
}

// NewSubscriptionRepository creates a new SubscriptionRepository.
func NewSubscriptionRepository(conn *Connection) *SubscriptionRepository {
	return &SubscriptionRepository{conn: conn}
}

// Create inserts a subscription and fills in its generated ID.
func (r *SubscriptionRepository) Create(ctx context.Context, s *subscription.Subscription) error {
	query := `
		INSERT INTO subscriptions (user_id, student_id, start_date, end_date, lessons_count, price, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.conn.QueryRow(ctx, query,
		s.UserID,
		s.StudentID,
		s.StartDate,
		s.EndDate,
		s.LessonsCount,
		s.Price,
		s.Notes,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	return nil
}

// SavePurchase persists a purchase in one transaction: the
// subscription row, the student's credited balance and, when income is
// not nil, the payment record. Money and balance never go out of sync
// because the writes commit or roll back together.
func (r *SubscriptionRepository) SavePurchase(ctx context.Context, s *subscription.Subscription, st *student.Student, income *finance.Income) error {
	return r.conn.WithTx(ctx, DefaultTxOptions(), func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO subscriptions (user_id, student_id, start_date, end_date, lessons_count, price, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`, s.UserID, s.StudentID, s.StartDate, s.EndDate, s.LessonsCount, s.Price, s.Notes).Scan(&s.ID)
		if err != nil {
			if IsForeignKeyViolation(err) {
				return student.ErrStudentNotFound
			}
			return fmt.Errorf("failed to create subscription: %w", err)
		}

		result, err := tx.Exec(ctx, `
			UPDATE students SET remaining_lessons = $1
			WHERE user_id = $2 AND id = $3
		`, st.RemainingLessons, st.UserID, st.ID)
		if err != nil {
			return fmt.Errorf("failed to update student balance: %w", err)
		}
		if result.RowsAffected() == 0 {
			return student.ErrStudentNotFound
		}

		if income != nil {
			err := tx.QueryRow(ctx, `
				INSERT INTO incomes (user_id, date, amount, category, description)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id
			`, income.UserID, income.Date, income.Amount, income.Category, income.Description).Scan(&income.ID)
			if err != nil {
				return fmt.Errorf("failed to record subscription income: %w", err)
			}
		}

		return nil
	})
}

// GetByID returns a subscription scoped to the account.
func (r *SubscriptionRepository) GetByID(ctx context.Context, userID, id int64) (*subscription.Subscription, error) {
	query := fmt.Sprintf(`SELECT %s FROM subscriptions WHERE user_id = $1 AND id = $2`, subscriptionColumns)

	row := r.conn.QueryRow(ctx, query, userID, id)
	return r.scanSubscription(row)
}

// Update saves a modified subscription.
func (r *SubscriptionRepository) Update(ctx context.Context, s *subscription.Subscription) error {
	query := `
		UPDATE subscriptions SET
			student_id = $1,
			start_date = $2,
			end_date = $3,
			lessons_count = $4,
			price = $5,
			notes = $6
		WHERE user_id = $7 AND id = $8
	`

	result, err := r.conn.Exec(ctx, query,
		s.StudentID,
		s.StartDate,
		s.EndDate,
		s.LessonsCount,
		s.Price,
		s.Notes,
		s.UserID,
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}

	if result.RowsAffected() == 0 {
		return subscription.ErrSubscriptionNotFound
	}

	return nil
}

// Delete removes a subscription.
func (r *SubscriptionRepository) Delete(ctx context.Context, userID, id int64) error {
	result, err := r.conn.Exec(ctx, `DELETE FROM subscriptions WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}

	if result.RowsAffected() == 0 {
		return subscription.ErrSubscriptionNotFound
	}

	return nil
}

// List returns the account's subscriptions, newest first.
func (r *SubscriptionRepository) List(ctx context.Context, userID int64, offset, limit int) ([]*subscription.Subscription, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM subscriptions
		WHERE user_id = $1
		ORDER BY start_date DESC, id DESC
		LIMIT $2 OFFSET $3
	`, subscriptionColumns)

	rows, err := r.conn.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer rows.Close()

	return r.scanSubscriptions(rows)
}

// ListByStudent returns a student's subscriptions, newest first.
func (r *SubscriptionRepository) ListByStudent(ctx context.Context, userID, studentID int64) ([]*subscription.Subscription, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM subscriptions
		WHERE user_id = $1 AND student_id = $2
		ORDER BY start_date DESC, id DESC
	`, subscriptionColumns)

	rows, err := r.conn.Query(ctx, query, userID, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions by student: %w", err)
	}
	defer rows.Close()

	return r.scanSubscriptions(rows)
}

func (r *SubscriptionRepository) scanSubscription(row pgx.Row) (*subscription.Subscription, error) {
	var s subscription.Subscription

	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.StudentID,
		&s.StartDate,
		&s.EndDate,
		&s.LessonsCount,
		&s.Price,
		&s.Notes,
	)

	if IsNoRows(err) {
		return nil, subscription.ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan subscription: %w", err)
	}

	return &s, nil
}

func (r *SubscriptionRepository) scanSubscriptions(rows pgx.Rows) ([]*subscription.Subscription, error) {
	var subs []*subscription.Subscription

	for rows.Next() {
		var s subscription.Subscription
		err := rows.Scan(
			&s.ID,
			&s.UserID,
			&s.StudentID,
			&s.StartDate,
			&s.EndDate,
			&s.LessonsCount,
			&s.Price,
			&s.Notes,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return subs, nil
}
