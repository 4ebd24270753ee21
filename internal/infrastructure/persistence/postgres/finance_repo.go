package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vocal-hub/vocal-studio-hub/internal/domain/finance"
	"github.com/vocal-hub/vocal-studio-hub/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// EXPENSE REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// ExpenseRepository implements finance.ExpenseRepository for PostgreSQL.
type ExpenseRepository struct {
	conn *Connection
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(conn *Connection) *ExpenseRepository {
	return &ExpenseRepository{conn: conn}
}

// Create inserts an expense record and fills in its generated ID.
func (r *ExpenseRepository) Create(ctx context.Context, e *finance.Expense) error {
	query := `
		INSERT INTO expenses (user_id, date, amount, category, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.conn.QueryRow(ctx, query, e.UserID, e.Date, e.Amount, e.Category, e.Description).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	return nil
}

// GetByID returns an expense record scoped to the account.
func (r *ExpenseRepository) GetByID(ctx context.Context, userID, id int64) (*finance.Expense, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT id, user_id, date, amount, category, description FROM expenses WHERE user_id = $1 AND id = $2`,
		userID, id)

	var e finance.Expense
	err := row.Scan(&e.ID, &e.UserID, &e.Date, &e.Amount, &e.Category, &e.Description)
	if IsNoRows(err) {
		return nil, finance.ErrExpenseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan expense: %w", err)
	}

	return &e, nil
}

// Update saves a modified expense record.
func (r *ExpenseRepository) Update(ctx context.Context, e *finance.Expense) error {
	query := `
		UPDATE expenses SET date = $1, amount = $2, category = $3, description = $4
		WHERE user_id = $5 AND id = $6
	`

	result, err := r.conn.Exec(ctx, query, e.Date, e.Amount, e.Category, e.Description, e.UserID, e.ID)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}

	if result.RowsAffected() == 0 {
		return finance.ErrExpenseNotFound
	}

	return nil
}

// Delete removes an expense record.
func (r *ExpenseRepository) Delete(ctx context.Context, userID, id int64) error {
	result, err := r.conn.Exec(ctx, `DELETE FROM expenses WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	if result.RowsAffected() == 0 {
		return finance.ErrExpenseNotFound
	}

	return nil
}

// List returns expense records matching the filter, newest first.
func (r *ExpenseRepository) List(ctx context.Context, userID int64, f finance.Filter) ([]*finance.Expense, error) {
	query, args := buildLedgerQuery("expenses", userID, f)

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*finance.Expense
	for rows.Next() {
		var e finance.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.Amount, &e.Category, &e.Description); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, &e)
	}

	return expenses, rows.Err()
}

// ExistsInMonth reports whether the account already has an expense of
// the given category in the month containing t. Keeps the monthly rent
// posting idempotent.
func (r *ExpenseRepository) ExistsInMonth(ctx context.Context, userID int64, category string, t time.Time) (bool, error) {
	monthStart := timeutil.StartOfMonth(t)
	monthEnd := monthStart.AddDate(0, 1, 0)

	var exists bool
	err := r.conn.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM expenses
			WHERE user_id = $1 AND category = $2 AND date >= $3 AND date < $4
		)
	`, userID, category, monthStart, monthEnd).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check expense existence: %w", err)
	}

	return exists, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// INCOME REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// IncomeRepository implements finance.IncomeRepository for PostgreSQL.
type IncomeRepository struct {
	conn *Connection
}

// NewIncomeRepository creates a new IncomeRepository.
func NewIncomeRepository(conn *Connection) *IncomeRepository {
	return &IncomeRepository{conn: conn}
}

// Create inserts an income record and fills in its generated ID.
func (r *IncomeRepository) Create(ctx context.Context, i *finance.Income) error {
	query := `
		INSERT INTO incomes (user_id, date, amount, category, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.conn.QueryRow(ctx, query, i.UserID, i.Date, i.Amount, i.Category, i.Description).Scan(&i.ID)
	if err != nil {
		return fmt.Errorf("failed to create income: %w", err)
	}

	return nil
}

// GetByID returns an income record scoped to the account.
func (r *IncomeRepository) GetByID(ctx context.Context, userID, id int64) (*finance.Income, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT id, user_id, date, amount, category, description FROM incomes WHERE user_id = $1 AND id = $2`,
		userID, id)

	var i finance.Income
	err := row.Scan(&i.ID, &i.UserID, &i.Date, &i.Amount, &i.Category, &i.Description)
	if IsNoRows(err) {
		return nil, finance.ErrIncomeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan income: %w", err)
	}

	return &i, nil
}

// Update saves a modified income record.
func (r *IncomeRepository) Update(ctx context.Context, i *finance.Income) error {
	query := `
		UPDATE incomes SET date = $1, amount = $2, category = $3, description = $4
		WHERE user_id = $5 AND id = $6
	`

	result, err := r.conn.Exec(ctx, query, i.Date, i.Amount, i.Category, i.Description, i.UserID, i.ID)
	if err != nil {
		return fmt.Errorf("failed to update income: %w", err)
	}

	if result.RowsAffected() == 0 {
		return finance.ErrIncomeNotFound
	}

	return nil
}

// Delete removes an income record.
func (r *IncomeRepository) Delete(ctx context.Context, userID, id int64) error {
	result, err := r.conn.Exec(ctx, `DELETE FROM incomes WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete income: %w", err)
	}

	if result.RowsAffected() == 0 {
		return finance.ErrIncomeNotFound
	}

	return nil
}

// List returns income records matching the filter, newest first.
func (r *IncomeRepository) List(ctx context.Context, userID int64, f finance.Filter) ([]*finance.Income, error) {
	query, args := buildLedgerQuery("incomes", userID, f)

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}
	defer rows.Close()

	var incomes []*finance.Income
	for rows.Next() {
		var i finance.Income
		if err := rows.Scan(&i.ID, &i.UserID, &i.Date, &i.Amount, &i.Category, &i.Description); err != nil {
			return nil, fmt.Errorf("failed to scan income: %w", err)
		}
		incomes = append(incomes, &i)
	}

	return incomes, rows.Err()
}

// ══════════════════════════════════════════════════════════════════════════════
// RENT REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// RentRepository implements finance.RentRepository for PostgreSQL.
type RentRepository struct {
	conn *Connection
}

// NewRentRepository creates a new RentRepository.
func NewRentRepository(conn *Connection) *RentRepository {
	return &RentRepository{conn: conn}
}

// Get returns the account's rent settings.
func (r *RentRepository) Get(ctx context.Context, userID int64) (*finance.RentSettings, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT id, user_id, amount, payment_day FROM rent_settings WHERE user_id = $1`, userID)

	var rs finance.RentSettings
	err := row.Scan(&rs.ID, &rs.UserID, &rs.Amount, &rs.PaymentDay)
	if IsNoRows(err) {
		return nil, finance.ErrRentSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan rent settings: %w", err)
	}

	return &rs, nil
}

// Upsert creates or replaces the account's rent settings. One row per
// account, enforced by the unique constraint on user_id.
func (r *RentRepository) Upsert(ctx context.Context, rs *finance.RentSettings) error {
	query := `
		INSERT INTO rent_settings (user_id, amount, payment_day)
		VALUES ($1, $2, $3)
		ON CONFLICT(user_id) DO UPDATE SET
			amount = EXCLUDED.amount,
			payment_day = EXCLUDED.payment_day
		RETURNING id
	`

	err := r.conn.QueryRow(ctx, query, rs.UserID, rs.Amount, rs.PaymentDay).Scan(&rs.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert rent settings: %w", err)
	}

	return nil
}

// ListAll returns rent settings for every account. Used by the worker
// for the monthly rent posting.
func (r *RentRepository) ListAll(ctx context.Context) ([]*finance.RentSettings, error) {
	rows, err := r.conn.Query(ctx, `SELECT id, user_id, amount, payment_day FROM rent_settings ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list rent settings: %w", err)
	}
	defer rows.Close()

	var all []*finance.RentSettings
	for rows.Next() {
		var rs finance.RentSettings
		if err := rows.Scan(&rs.ID, &rs.UserID, &rs.Amount, &rs.PaymentDay); err != nil {
			return nil, fmt.Errorf("failed to scan rent settings: %w", err)
		}
		all = append(all, &rs)
	}

	return all, rows.Err()
}

// ─────────────────────────────────────────────────────────────────────────────
// Query building
// ─────────────────────────────────────────────────────────────────────────────

// buildLedgerQuery builds a filtered SELECT over a ledger table.
// Expenses and incomes share the same shape.
func buildLedgerQuery(table string, userID int64, f finance.Filter) (string, []interface{}) {
	conditions := []string{"user_id = $1"}
	args := []interface{}{userID}

	if !f.From.IsZero() {
		args = append(args, f.From)
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)))
	}
	if !f.To.IsZero() {
		args = append(args, f.To)
		conditions = append(conditions, fmt.Sprintf("date < $%d", len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	limitPos := len(args)
	args = append(args, f.Offset)
	offsetPos := len(args)

	query := fmt.Sprintf(`
		SELECT id, user_id, date, amount, category, description FROM %s
		WHERE %s
		ORDER BY date DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, table, strings.Join(conditions, " AND "), limitPos, offsetPos)

	return query, args
}
