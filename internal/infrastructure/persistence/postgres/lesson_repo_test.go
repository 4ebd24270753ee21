package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/vocal-hub/vocal-studio-hub/internal/domain/shared"
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/student"
)

func TestCreateLessonErrorMapsMissingStudent(t *testing.T) {
	fkErr := &pgconn.PgError{
		Code:           "23503",
		ConstraintName: "lessons_student_id_fkey",
	}

	got := createLessonError(fmt.Errorf("insert: %w", fkErr))

	// The missing entity is the student, so the caller gets a 404
	// naming the student, not the lesson being created.
	assert.ErrorIs(t, got, student.ErrStudentNotFound)
	assert.ErrorIs(t, got, shared.ErrNotFound)
}

func TestCreateLessonErrorWrapsOtherFailures(t *testing.T) {
	cause := errors.New("connection reset")

	got := createLessonError(cause)

	assert.ErrorIs(t, got, cause)
	assert.NotErrorIs(t, got, shared.ErrNotFound)
}
