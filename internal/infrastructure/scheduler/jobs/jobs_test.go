package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocal-hub/vocal-studio-hub/internal/domain/finance"
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/lesson"
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/student"
	"github.com/vocal-hub/vocal-studio-hub/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// FAKES
// ══════════════════════════════════════════════════════════════════════════════

type fakeRentRepo struct {
	settings []*finance.RentSettings
}

func (f *fakeRentRepo) Get(ctx context.Context, userID int64) (*finance.RentSettings, error) {
	for _, rs := range f.settings {
		if rs.UserID == userID {
			return rs, nil
		}
	}
	return nil, finance.ErrRentSettingsNotFound
}

func (f *fakeRentRepo) Upsert(ctx context.Context, r *finance.RentSettings) error { return nil }

func (f *fakeRentRepo) ListAll(ctx context.Context) ([]*finance.RentSettings, error) {
	return f.settings, nil
}

type fakeExpenseRepo struct {
	mu       sync.Mutex
	expenses []*finance.Expense
	nextID   int64

	createErr error
}

func (f *fakeExpenseRepo) Create(ctx context.Context, e *finance.Expense) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	e.ID = f.nextID
	cp := *e
	f.expenses = append(f.expenses, &cp)
	return nil
}

func (f *fakeExpenseRepo) GetByID(ctx context.Context, userID, id int64) (*finance.Expense, error) {
	return nil, finance.ErrExpenseNotFound
}
func (f *fakeExpenseRepo) Update(ctx context.Context, e *finance.Expense) error { return nil }
func (f *fakeExpenseRepo) Delete(ctx context.Context, userID, id int64) error   { return nil }

func (f *fakeExpenseRepo) List(ctx context.Context, userID int64, flt finance.Filter) ([]*finance.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.expenses, nil
}

func (f *fakeExpenseRepo) ExistsInMonth(ctx context.Context, userID int64, category string, t time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.expenses {
		if e.UserID == userID && e.Category == category &&
			e.Date.Year() == t.Year() && e.Date.Month() == t.Month() {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeExpenseRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.expenses)
}

type fakeNotifier struct {
	mu       sync.Mutex
	enabled  bool
	sendErr  error
	messages []string
}

func (f *fakeNotifier) Enabled() bool { return f.enabled }

func (f *fakeNotifier) SendMessage(ctx context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.messages = append(f.messages, text)
	return nil
}

type fakeLessonRepo struct {
	lessons []*lesson.Lesson
	listErr error
}

func (f *fakeLessonRepo) Create(ctx context.Context, l *lesson.Lesson) error { return nil }
func (f *fakeLessonRepo) GetByID(ctx context.Context, userID, id int64) (*lesson.Lesson, error) {
	return nil, lesson.ErrLessonNotFound
}
func (f *fakeLessonRepo) Update(ctx context.Context, l *lesson.Lesson) error { return nil }
func (f *fakeLessonRepo) Delete(ctx context.Context, userID, id int64) error { return nil }
func (f *fakeLessonRepo) List(ctx context.Context, userID int64, opts lesson.ListOptions) ([]*lesson.Lesson, error) {
	return f.lessons, nil
}
func (f *fakeLessonRepo) ListByStudent(ctx context.Context, userID, studentID int64, opts lesson.ListOptions) ([]*lesson.Lesson, error) {
	return f.lessons, nil
}

func (f *fakeLessonRepo) ListInRange(ctx context.Context, userID int64, from, to time.Time) ([]*lesson.Lesson, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*lesson.Lesson
	for _, l := range f.lessons {
		if !l.Date.Before(from) && l.Date.Before(to) {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeStudentRepo struct {
	students map[int64]*student.Student
}

func (f *fakeStudentRepo) Create(ctx context.Context, s *student.Student) error { return nil }
func (f *fakeStudentRepo) Update(ctx context.Context, s *student.Student) error { return nil }
func (f *fakeStudentRepo) Delete(ctx context.Context, userID, id int64) error   { return nil }
func (f *fakeStudentRepo) List(ctx context.Context, userID int64, offset, limit int) ([]*student.Student, error) {
	return nil, nil
}

func (f *fakeStudentRepo) GetByID(ctx context.Context, userID, id int64) (*student.Student, error) {
	if s, ok := f.students[id]; ok {
		return s, nil
	}
	return nil, student.ErrStudentNotFound
}

// ══════════════════════════════════════════════════════════════════════════════
// RENT POSTING
// ══════════════════════════════════════════════════════════════════════════════

func TestPostRentCreatesExpenseOnce(t *testing.T) {
	rents := &fakeRentRepo{settings: []*finance.RentSettings{
		{ID: 1, UserID: 1, Amount: 30000, PaymentDay: 1},
	}}
	expenses := &fakeExpenseRepo{}
	job := NewPostRentJob(rents, expenses, nil, nil, nil)

	require.NoError(t, job.Run(context.Background()))
	require.Equal(t, 1, expenses.count())

	e := expenses.expenses[0]
	assert.Equal(t, finance.CategoryRent, e.Category)
	assert.EqualValues(t, 30000, e.Amount)
	assert.EqualValues(t, 1, e.UserID)

	// A second run in the same month must not post again.
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 1, expenses.count())
}

func TestPostRentNotDueYet(t *testing.T) {
	expenses := &fakeExpenseRepo{}
	job := NewPostRentJob(&fakeRentRepo{}, expenses, nil, nil, nil)

	now := timeutil.Date(2026, 9, 5)
	posted, err := job.postForAccount(context.Background(),
		&finance.RentSettings{UserID: 1, Amount: 30000, PaymentDay: 20}, now)
	require.NoError(t, err)
	assert.False(t, posted)
	assert.Equal(t, 0, expenses.count())
}

func TestPostRentOnPaymentDay(t *testing.T) {
	expenses := &fakeExpenseRepo{}
	job := NewPostRentJob(&fakeRentRepo{}, expenses, nil, nil, nil)

	now := timeutil.Date(2026, 9, 20)
	posted, err := job.postForAccount(context.Background(),
		&finance.RentSettings{UserID: 1, Amount: 30000, PaymentDay: 20}, now)
	require.NoError(t, err)
	assert.True(t, posted)

	// The expense lands on the payment day, not the run day.
	e := expenses.expenses[0]
	assert.Equal(t, timeutil.Date(2026, 9, 20), e.Date)
}

func TestPostRentZeroAmountSkipped(t *testing.T) {
	expenses := &fakeExpenseRepo{}
	job := NewPostRentJob(&fakeRentRepo{}, expenses, nil, nil, nil)

	posted, err := job.postForAccount(context.Background(),
		&finance.RentSettings{UserID: 1, Amount: 0, PaymentDay: 1}, timeutil.Date(2026, 9, 15))
	require.NoError(t, err)
	assert.False(t, posted)
}

func TestPostRentAggregatesFailures(t *testing.T) {
	rents := &fakeRentRepo{settings: []*finance.RentSettings{
		{ID: 1, UserID: 1, Amount: 30000, PaymentDay: 1},
	}}
	expenses := &fakeExpenseRepo{createErr: errors.New("disk full")}
	job := NewPostRentJob(rents, expenses, nil, nil, nil)

	err := job.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1")
}

// ══════════════════════════════════════════════════════════════════════════════
// LESSON REMINDERS
// ══════════════════════════════════════════════════════════════════════════════

func TestRemindersSkipDisabledNotifier(t *testing.T) {
	job := NewLessonRemindersJob(&fakeLessonRepo{}, &fakeStudentRepo{}, &fakeNotifier{enabled: false},
		nil, DefaultLessonRemindersConfig(1))

	assert.NoError(t, job.Run(context.Background()))
}

func TestFilterPendingDropsCancelledAndCompleted(t *testing.T) {
	job := NewLessonRemindersJob(&fakeLessonRepo{}, &fakeStudentRepo{}, &fakeNotifier{enabled: true},
		nil, DefaultLessonRemindersConfig(1))

	now := timeutil.Date(2026, 9, 3).Add(12 * time.Hour)
	lessons := []*lesson.Lesson{
		{ID: 1, StudentID: 1, Date: now.Add(2 * time.Hour), DurationMinutes: 60},
		{ID: 2, StudentID: 1, Date: now.Add(3 * time.Hour), DurationMinutes: 60, IsCancelled: true},
		{ID: 3, StudentID: 1, Date: now.Add(4 * time.Hour), DurationMinutes: 60, IsCompleted: true},
	}

	pending := job.filterPending(lessons, now)
	require.Len(t, pending, 1)
	assert.EqualValues(t, 1, pending[0].ID)
}

func TestFilterPendingDeduplicates(t *testing.T) {
	job := NewLessonRemindersJob(&fakeLessonRepo{}, &fakeStudentRepo{}, &fakeNotifier{enabled: true},
		nil, DefaultLessonRemindersConfig(1))

	now := timeutil.Date(2026, 9, 3).Add(12 * time.Hour)
	lessons := []*lesson.Lesson{
		{ID: 1, StudentID: 1, Date: now.Add(2 * time.Hour), DurationMinutes: 60},
	}

	pending := job.filterPending(lessons, now)
	require.Len(t, pending, 1)
	job.markSent(pending)

	// The same lesson on the next hourly run is not reminded about again.
	assert.Empty(t, job.filterPending(lessons, now.Add(time.Hour)))
}

func TestFilterPendingPrunesPastLessons(t *testing.T) {
	job := NewLessonRemindersJob(&fakeLessonRepo{}, &fakeStudentRepo{}, &fakeNotifier{enabled: true},
		nil, DefaultLessonRemindersConfig(1))

	now := timeutil.Date(2026, 9, 3).Add(12 * time.Hour)
	past := []*lesson.Lesson{
		{ID: 1, StudentID: 1, Date: now.Add(time.Hour), DurationMinutes: 60},
	}

	job.markSent(past)
	require.Len(t, job.sent, 1)

	// Once the lesson start is behind us the sent marker is dropped.
	job.filterPending(nil, now.Add(2*time.Hour))
	assert.Empty(t, job.sent)
}

func TestBuildDigest(t *testing.T) {
	students := &fakeStudentRepo{students: map[int64]*student.Student{
		7: {ID: 7, UserID: 1, Name: "Анна"},
	}}
	job := NewLessonRemindersJob(&fakeLessonRepo{}, students, &fakeNotifier{enabled: true},
		nil, DefaultLessonRemindersConfig(1))

	start := time.Date(2026, 9, 3, 15, 0, 0, 0, timeutil.StudioTZ)
	digest := job.buildDigest(context.Background(), []*lesson.Lesson{
		{ID: 1, StudentID: 7, Date: start, DurationMinutes: 60, Notes: "распевка"},
		{ID: 2, StudentID: 99, Date: start.Add(2 * time.Hour), DurationMinutes: 45},
	})

	assert.Contains(t, digest, "<b>Ближайшие занятия</b>")
	assert.Contains(t, digest, "03.09 15:00-16:00  Анна (распевка)")
	assert.Contains(t, digest, "Ученик #99")
}
