package calendar

import (
	"context"
	"time"

	"github.com/vocal-hub/vocal-studio-hub/internal/domain/lesson"
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/student"
)

// Client is the backend surface the calendar needs. The production
// implementation lives in infrastructure/external/studio; tests supply
// a fake.
//
// Implementations must classify transport failures with retry.Retryable
// and terminal responses (4xx) with retry.Permanent, so the store's
// load retrier can tell them apart.
type Client interface {
	// ListLessons returns lessons starting in [from, to).
	ListLessons(ctx context.Context, from, to time.Time) ([]*lesson.Lesson, error)

	// ListStudents returns the account's students for name lookups
	// and the student picker in the lesson dialog.
	ListStudents(ctx context.Context) ([]*student.Student, error)

	// CreateLesson schedules a lesson and returns it with the
	// backend-assigned ID.
	CreateLesson(ctx context.Context, l *lesson.Lesson) (*lesson.Lesson, error)

	// UpdateLesson applies a partial update and returns the new state.
	UpdateLesson(ctx context.Context, id int64, p lesson.Patch) (*lesson.Lesson, error)

	// CompleteLesson marks the lesson completed. The backend also
	// decrements the student's remaining lesson balance.
	CompleteLesson(ctx context.Context, id int64) (*lesson.Lesson, error)

	// CancelLesson marks the lesson cancelled without deleting it.
	CancelLesson(ctx context.Context, id int64) (*lesson.Lesson, error)

	// DeleteLesson removes the lesson entirely.
	DeleteLesson(ctx context.Context, id int64) error
}
