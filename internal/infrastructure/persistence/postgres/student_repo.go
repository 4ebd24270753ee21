package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vocal-hub/vocal-studio-hub/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// STUDENT REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

const studentColumns = `id, user_id, name, email, phone, notes, remaining_lessons`

// StudentRepository implements student.Repository for PostgreSQL.
type StudentRepository struct {
	conn *Connection
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(conn *Connection) *StudentRepository {
	return &StudentRepository{conn: conn}
}

// Create inserts a student and fills in its generated ID.
func (r *StudentRepository) Create(ctx context.Context, s *student.Student) error {
	query := `
		INSERT INTO students (user_id, name, email, phone, notes, remaining_lessons)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.conn.QueryRow(ctx, query,
		s.UserID,
		s.Name,
		s.Email,
		s.Phone,
		s.Notes,
		s.RemainingLessons,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}

	return nil
}

// GetByID returns a student scoped to the account.
func (r *StudentRepository) GetByID(ctx context.Context, userID, id int64) (*student.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE user_id = $1 AND id = $2`, studentColumns)

	row := r.conn.QueryRow(ctx, query, userID, id)
	return r.scanStudent(row)
}

// Update saves a modified student.
func (r *StudentRepository) Update(ctx context.Context, s *student.Student) error {
	query := `
		UPDATE students SET
			name = $1,
			email = $2,
			phone = $3,
			notes = $4,
			remaining_lessons = $5
		WHERE user_id = $6 AND id = $7
	`

	result, err := r.conn.Exec(ctx, query,
		s.Name,
		s.Email,
		s.Phone,
		s.Notes,
		s.RemainingLessons,
		s.UserID,
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update student: %w", err)
	}

	if result.RowsAffected() == 0 {
		return student.ErrStudentNotFound
	}

	return nil
}

// Delete removes a student. Lessons and subscriptions cascade.
func (r *StudentRepository) Delete(ctx context.Context, userID, id int64) error {
	result, err := r.conn.Exec(ctx, `DELETE FROM students WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}

	if result.RowsAffected() == 0 {
		return student.ErrStudentNotFound
	}

	return nil
}

// List returns the account's students sorted by name.
func (r *StudentRepository) List(ctx context.Context, userID int64, offset, limit int) ([]*student.Student, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM students
		WHERE user_id = $1
		ORDER BY name ASC, id ASC
		LIMIT $2 OFFSET $3
	`, studentColumns)

	rows, err := r.conn.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	var students []*student.Student
	for rows.Next() {
		var s student.Student
		err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Email, &s.Phone, &s.Notes, &s.RemainingLessons)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return students, nil
}

func (r *StudentRepository) scanStudent(row pgx.Row) (*student.Student, error) {
	var s student.Student

	err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.Email, &s.Phone, &s.Notes, &s.RemainingLessons)

	if IsNoRows(err) {
		return nil, student.ErrStudentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan student: %w", err)
	}

	return &s, nil
}
