package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vocal-hub/vocal-studio-hub/internal/domain/lesson"
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// LESSON REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

const lessonColumns = `id, user_id, student_id, date, duration_minutes, is_completed, is_cancelled, notes`

// LessonRepository implements lesson.Repository for PostgreSQL.
type LessonRepository struct {
	conn *Connection
}

// NewLessonRepository creates a new LessonRepository.
func NewLessonRepository(conn *Connection) *LessonRepository {
	return &LessonRepository{conn: conn}
}

// Create inserts a lesson and fills in its generated ID.
func (r *LessonRepository) Create(ctx context.Context, l *lesson.Lesson) error {
	query := `
		INSERT INTO lessons (user_id, student_id, date, duration_minutes, is_completed, is_cancelled, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.conn.QueryRow(ctx, query,
		l.UserID,
		l.StudentID,
		l.Date,
		l.DurationMinutes,
		l.IsCompleted,
		l.IsCancelled,
		l.Notes,
	).Scan(&l.ID)
	if err != nil {
		return createLessonError(err)
	}

	return nil
}

// createLessonError translates insert failures. The only foreign key
// the caller controls here is student_id, so a violation means the
// referenced student is gone.
func createLessonError(err error) error {
	if IsForeignKeyViolation(err) {
		return student.ErrStudentNotFound
	}
	return fmt.Errorf("failed to create lesson: %w", err)
}

// GetByID returns a lesson scoped to the account.
func (r *LessonRepository) GetByID(ctx context.Context, userID, id int64) (*lesson.Lesson, error) {
	query := fmt.Sprintf(`SELECT %s FROM lessons WHERE user_id = $1 AND id = $2`, lessonColumns)

	row := r.conn.QueryRow(ctx, query, userID, id)
	return r.scanLesson(row)
}

// Update saves a modified lesson.
func (r *LessonRepository) Update(ctx context.Context, l *lesson.Lesson) error {
	query := `
		UPDATE lessons SET
			student_id = $1,
			date = $2,
			duration_minutes = $3,
			is_completed = $4,
			is_cancelled = $5,
			notes = $6
		WHERE user_id = $7 AND id = $8
	`

	result, err := r.conn.Exec(ctx, query,
		l.StudentID,
		l.Date,
		l.DurationMinutes,
		l.IsCompleted,
		l.IsCancelled,
		l.Notes,
		l.UserID,
		l.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update lesson: %w", err)
	}

	if result.RowsAffected() == 0 {
		return lesson.ErrLessonNotFound
	}

	return nil
}

// SaveCompletion marks the lesson held and charges the student's
// balance in one transaction. Completing consumes a paid lesson, so
// the two rows must change together: a lesson marked held without the
// charge would never be charged again.
func (r *LessonRepository) SaveCompletion(ctx context.Context, l *lesson.Lesson, st *student.Student) error {
	return r.conn.WithTx(ctx, DefaultTxOptions(), func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx, `
			UPDATE lessons SET
				is_completed = $1,
				is_cancelled = $2
			WHERE user_id = $3 AND id = $4
		`, l.IsCompleted, l.IsCancelled, l.UserID, l.ID)
		if err != nil {
			return fmt.Errorf("failed to update lesson: %w", err)
		}
		if result.RowsAffected() == 0 {
			return lesson.ErrLessonNotFound
		}

		result, err = tx.Exec(ctx, `
			UPDATE students SET remaining_lessons = $1
			WHERE user_id = $2 AND id = $3
		`, st.RemainingLessons, st.UserID, st.ID)
		if err != nil {
			return fmt.Errorf("failed to update student balance: %w", err)
		}
		if result.RowsAffected() == 0 {
			return student.ErrStudentNotFound
		}

		return nil
	})
}

// Delete removes a lesson.
func (r *LessonRepository) Delete(ctx context.Context, userID, id int64) error {
	result, err := r.conn.Exec(ctx, `DELETE FROM lessons WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}

	if result.RowsAffected() == 0 {
		return lesson.ErrLessonNotFound
	}

	return nil
}

// List returns the account's lessons ordered by start time.
func (r *LessonRepository) List(ctx context.Context, userID int64, opts lesson.ListOptions) ([]*lesson.Lesson, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM lessons
		WHERE user_id = $1
		ORDER BY date ASC, id ASC
		LIMIT $2 OFFSET $3
	`, lessonColumns)

	rows, err := r.conn.Query(ctx, query, userID, opts.Limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}
	defer rows.Close()

	return r.scanLessons(rows)
}

// ListByStudent returns a student's lessons ordered by start time.
func (r *LessonRepository) ListByStudent(ctx context.Context, userID, studentID int64, opts lesson.ListOptions) ([]*lesson.Lesson, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM lessons
		WHERE user_id = $1 AND student_id = $2
		ORDER BY date ASC, id ASC
		LIMIT $3 OFFSET $4
	`, lessonColumns)

	rows, err := r.conn.Query(ctx, query, userID, studentID, opts.Limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons by student: %w", err)
	}
	defer rows.Close()

	return r.scanLessons(rows)
}

// ListInRange returns lessons starting in [from, to).
func (r *LessonRepository) ListInRange(ctx context.Context, userID int64, from, to time.Time) ([]*lesson.Lesson, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM lessons
		WHERE user_id = $1 AND date >= $2 AND date < $3
		ORDER BY date ASC, id ASC
	`, lessonColumns)

	rows, err := r.conn.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons in range: %w", err)
	}
	defer rows.Close()

	return r.scanLessons(rows)
}

// ─────────────────────────────────────────────────────────────────────────────
// Scan helpers
// ─────────────────────────────────────────────────────────────────────────────

func (r *LessonRepository) scanLesson(row pgx.Row) (*lesson.Lesson, error) {
	var l lesson.Lesson

	err := row.Scan(
		&l.ID,
		&l.UserID,
		&l.StudentID,
		&l.Date,
		&l.DurationMinutes,
		&l.IsCompleted,
		&l.IsCancelled,
		&l.Notes,
	)

	if IsNoRows(err) {
		return nil, lesson.ErrLessonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan lesson: %w", err)
	}

	return &l, nil
}

func (r *LessonRepository) scanLessons(rows pgx.Rows) ([]*lesson.Lesson, error) {
	var lessons []*lesson.Lesson

	for rows.Next() {
		var l lesson.Lesson
		err := rows.Scan(
			&l.ID,
			&l.UserID,
			&l.StudentID,
			&l.Date,
			&l.DurationMinutes,
			&l.IsCompleted,
			&l.IsCancelled,
			&l.Notes,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return lessons, nil
}
