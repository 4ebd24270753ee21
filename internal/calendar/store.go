package calendar

import (
	"context"
	"sync"
	"time"

	"github.com/vocal-hub/vocal-studio-hub/internal/domain/lesson"
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/student"
	"github.com/vocal-hub/vocal-studio-hub/pkg/logger"
	"github.com/vocal-hub/vocal-studio-hub/pkg/retry"
)

// DefaultLoadBaseDelay is the base delay for the bulk load retry ramp.
const DefaultLoadBaseDelay = 500 * time.Millisecond

// Store holds the in-memory lesson collection backing the calendar.
//
// The store is the single source of truth for rendering: grids are
// always built from its snapshot, never from ad-hoc backend responses.
// Bulk loads retry on transport failures (3 attempts, linear ramp);
// single-record mutations go through exactly one backend call and the
// local collection is patched only after that call succeeds, so the
// store never shows state the backend has not acknowledged.
type Store struct {
	client  Client
	session *Session
	retrier *retry.Retrier
	log     *logger.Logger

	mu       sync.RWMutex
	lessons  []*lesson.Lesson
	students []*student.Student
	loadErr  error
	loaded   bool
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLoadRetrier overrides the bulk load retrier (tests use a zero
// base delay).
func WithLoadRetrier(r *retry.Retrier) StoreOption {
	return func(s *Store) { s.retrier = r }
}

// WithLogger sets the store logger.
func WithLogger(log *logger.Logger) StoreOption {
	return func(s *Store) { s.log = log.With(logger.Component("calendar.store")) }
}

// NewStore creates a Store over the given backend client and session.
func NewStore(client Client, session *Session, opts ...StoreOption) *Store {
	s := &Store{
		client:  client,
		session: session,
		retrier: retry.ListLoadRetrier(DefaultLoadBaseDelay),
		log:     logger.Default().With(logger.Component("calendar.store")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ══════════════════════════════════════════════════════════════════════════════
// BULK LOAD
// ══════════════════════════════════════════════════════════════════════════════

// Load replaces the lesson collection with the backend's lessons for
// [from, to). Transport failures are retried up to three times with a
// linearly growing delay; if all attempts fail the collection is
// emptied, the error marker is set, and the last error is returned.
// Cancelling ctx aborts the wait between attempts and leaves the
// previous snapshot and markers untouched.
func (s *Store) Load(ctx context.Context, from, to time.Time) error {
	var lessons []*lesson.Lesson
	err := s.retrier.Do(ctx, func(ctx context.Context) error {
		var opErr error
		lessons, opErr = s.client.ListLessons(ctx, from, to)
		return opErr
	})

	// The retrier reports the last attempt's error when ctx fires
	// during the backoff wait, so cancellation is detected through ctx
	// itself. An aborted load is the caller giving up, not the backend
	// failing: whatever was on screen stays valid.
	if err != nil && ctx.Err() != nil {
		s.log.Warn("lesson load aborted",
			logger.Err(err),
			logger.Time("from", from),
			logger.Time("to", to))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.lessons = nil
		s.loaded = false
		s.loadErr = err
		s.log.Error("lesson load failed",
			logger.Err(err),
			logger.Time("from", from),
			logger.Time("to", to))
		return err
	}

	s.lessons = lessons
	s.loaded = true
	s.loadErr = nil
	s.log.Debug("lessons loaded",
		logger.Int("count", len(lessons)),
		logger.Time("from", from),
		logger.Time("to", to))
	return nil
}

// LoadStudents refreshes the student list used for name lookups and
// the dialog picker. Uses the same retry ramp as the lesson load.
func (s *Store) LoadStudents(ctx context.Context) error {
	var students []*student.Student
	err := s.retrier.Do(ctx, func(ctx context.Context) error {
		var opErr error
		students, opErr = s.client.ListStudents(ctx)
		return opErr
	})
	if err != nil {
		s.log.Error("student load failed", logger.Err(err))
		return err
	}

	s.mu.Lock()
	s.students = students
	s.mu.Unlock()
	return nil
}

// Err returns the load error marker, nil when the last load succeeded.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// Loaded reports whether the store holds a successfully loaded snapshot.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// ══════════════════════════════════════════════════════════════════════════════
// SNAPSHOTS
// ══════════════════════════════════════════════════════════════════════════════

// Lessons returns a copy of the current lesson collection. Callers may
// sort or filter the returned slice freely.
func (s *Store) Lessons() []*lesson.Lesson {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*lesson.Lesson, len(s.lessons))
	copy(out, s.lessons)
	return out
}

// Students returns a copy of the cached student list.
func (s *Store) Students() []*student.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*student.Student, len(s.students))
	copy(out, s.students)
	return out
}

// StudentName resolves a student's display name, empty when unknown.
func (s *Store) StudentName(id int64) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, st := range s.students {
		if st.ID == id {
			return st.Name
		}
	}
	return ""
}

// Lesson returns the lesson with the given id from the snapshot.
func (s *Store) Lesson(id int64) (*lesson.Lesson, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.lessons {
		if l.ID == id {
			return l, true
		}
	}
	return nil, false
}

// ══════════════════════════════════════════════════════════════════════════════
// MUTATIONS
// One backend call each, no retries. The local collection changes only
// after the backend acknowledges.
// ══════════════════════════════════════════════════════════════════════════════

// Create schedules a lesson on the backend and inserts the returned
// record into the collection.
func (s *Store) Create(ctx context.Context, l *lesson.Lesson) (*lesson.Lesson, error) {
	created, err := s.client.CreateLesson(ctx, l)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.lessons = append(s.lessons, created)
	s.mu.Unlock()

	s.log.Info("lesson created", logger.LessonID(created.ID), logger.StudentID(created.StudentID))
	return created, nil
}

// Update applies a partial update on the backend and replaces the local
// record with the returned state.
func (s *Store) Update(ctx context.Context, id int64, p lesson.Patch) (*lesson.Lesson, error) {
	updated, err := s.client.UpdateLesson(ctx, id, p)
	if err != nil {
		return nil, err
	}

	s.replace(updated)
	s.log.Info("lesson updated", logger.LessonID(id))
	return updated, nil
}

// Complete marks the lesson completed on the backend and patches the
// local record. Repeating the call for an already completed lesson is
// harmless: the backend treats it as a no-op.
func (s *Store) Complete(ctx context.Context, id int64) (*lesson.Lesson, error) {
	updated, err := s.client.CompleteLesson(ctx, id)
	if err != nil {
		return nil, err
	}

	s.replace(updated)
	s.log.Info("lesson completed", logger.LessonID(id))
	return updated, nil
}

// Cancel marks the lesson cancelled on the backend and patches the
// local record. The lesson stays in the collection so the renderer can
// strike it through.
func (s *Store) Cancel(ctx context.Context, id int64) (*lesson.Lesson, error) {
	updated, err := s.client.CancelLesson(ctx, id)
	if err != nil {
		return nil, err
	}

	s.replace(updated)
	s.log.Info("lesson cancelled", logger.LessonID(id))
	return updated, nil
}

// Remove deletes the lesson on the backend and drops it from the
// collection.
func (s *Store) Remove(ctx context.Context, id int64) error {
	if err := s.client.DeleteLesson(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	for i, l := range s.lessons {
		if l.ID == id {
			s.lessons = append(s.lessons[:i], s.lessons[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.log.Info("lesson deleted", logger.LessonID(id))
	return nil
}

// replace swaps the stored record with the same id; appends when the
// record is not in the current window.
func (s *Store) replace(updated *lesson.Lesson) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.lessons {
		if l.ID == updated.ID {
			s.lessons[i] = updated
			return
		}
	}
	s.lessons = append(s.lessons, updated)
}
