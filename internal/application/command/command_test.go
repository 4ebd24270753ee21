package command

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
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/shared"
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/student"
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/subscription"
	"github.com/vocal-hub/vocal-studio-hub/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// IN-MEMORY FAKES
// ══════════════════════════════════════════════════════════════════════════════

type fakeLessonRepo struct {
	mu      sync.Mutex
	lessons map[int64]*lesson.Lesson
	nextID  int64
}

func newFakeLessonRepo() *fakeLessonRepo {
	return &fakeLessonRepo{lessons: make(map[int64]*lesson.Lesson), nextID: 1}
}

func (f *fakeLessonRepo) Create(ctx context.Context, l *lesson.Lesson) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	l.ID = f.nextID
	f.nextID++
	cp := *l
	f.lessons[l.ID] = &cp
	return nil
}

func (f *fakeLessonRepo) GetByID(ctx context.Context, userID, id int64) (*lesson.Lesson, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.lessons[id]
	if !ok || l.UserID != userID {
		return nil, lesson.ErrLessonNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeLessonRepo) Update(ctx context.Context, l *lesson.Lesson) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.lessons[l.ID]; !ok {
		return lesson.ErrLessonNotFound
	}
	cp := *l
	f.lessons[l.ID] = &cp
	return nil
}

func (f *fakeLessonRepo) Delete(ctx context.Context, userID, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.lessons[id]; !ok {
		return lesson.ErrLessonNotFound
	}
	delete(f.lessons, id)
	return nil
}

func (f *fakeLessonRepo) List(ctx context.Context, userID int64, opts lesson.ListOptions) ([]*lesson.Lesson, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*lesson.Lesson
	for _, l := range f.lessons {
		if l.UserID == userID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeLessonRepo) ListByStudent(ctx context.Context, userID, studentID int64, opts lesson.ListOptions) ([]*lesson.Lesson, error) {
	all, _ := f.List(ctx, userID, opts)
	var out []*lesson.Lesson
	for _, l := range all {
		if l.StudentID == studentID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLessonRepo) ListInRange(ctx context.Context, userID int64, from, to time.Time) ([]*lesson.Lesson, error) {
	all, _ := f.List(ctx, userID, lesson.ListOptions{})
	var out []*lesson.Lesson
	for _, l := range all {
		if !l.Date.Before(from) && l.Date.Before(to) {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeStudentRepo struct {
	mu       sync.Mutex
	students map[int64]*student.Student
	nextID   int64
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: make(map[int64]*student.Student), nextID: 1}
}

func (f *fakeStudentRepo) Create(ctx context.Context, s *student.Student) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s.ID = f.nextID
	f.nextID++
	cp := *s
	f.students[s.ID] = &cp
	return nil
}

func (f *fakeStudentRepo) GetByID(ctx context.Context, userID, id int64) (*student.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.students[id]
	if !ok || s.UserID != userID {
		return nil, student.ErrStudentNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStudentRepo) Update(ctx context.Context, s *student.Student) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.students[s.ID]; !ok {
		return student.ErrStudentNotFound
	}
	cp := *s
	f.students[s.ID] = &cp
	return nil
}

func (f *fakeStudentRepo) Delete(ctx context.Context, userID, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.students[id]; !ok {
		return student.ErrStudentNotFound
	}
	delete(f.students, id)
	return nil
}

func (f *fakeStudentRepo) List(ctx context.Context, userID int64, offset, limit int) ([]*student.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*student.Student
	for _, s := range f.students {
		if s.UserID == userID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeSubscriptionRepo struct {
	mu     sync.Mutex
	subs   map[int64]*subscription.Subscription
	nextID int64
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: make(map[int64]*subscription.Subscription), nextID: 1}
}

func (f *fakeSubscriptionRepo) Create(ctx context.Context, s *subscription.Subscription) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s.ID = f.nextID
	f.nextID++
	cp := *s
	f.subs[s.ID] = &cp
	return nil
}

func (f *fakeSubscriptionRepo) GetByID(ctx context.Context, userID, id int64) (*subscription.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.subs[id]
	if !ok || s.UserID != userID {
		return nil, subscription.ErrSubscriptionNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSubscriptionRepo) Update(ctx context.Context, s *subscription.Subscription) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.subs[s.ID]; !ok {
		return subscription.ErrSubscriptionNotFound
	}
	cp := *s
	f.subs[s.ID] = &cp
	return nil
}

func (f *fakeSubscriptionRepo) Delete(ctx context.Context, userID, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.subs[id]; !ok {
		return subscription.ErrSubscriptionNotFound
	}
	delete(f.subs, id)
	return nil
}

func (f *fakeSubscriptionRepo) List(ctx context.Context, userID int64, offset, limit int) ([]*subscription.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*subscription.Subscription
	for _, s := range f.subs {
		if s.UserID == userID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeSubscriptionRepo) ListByStudent(ctx context.Context, userID, studentID int64) ([]*subscription.Subscription, error) {
	all, _ := f.List(ctx, userID, 0, 0)
	var out []*subscription.Subscription
	for _, s := range all {
		if s.StudentID == studentID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeIncomeRepo struct {
	mu      sync.Mutex
	incomes []*finance.Income
	nextID  int64
}

func newFakeIncomeRepo() *fakeIncomeRepo { return &fakeIncomeRepo{nextID: 1} }

func (f *fakeIncomeRepo) Create(ctx context.Context, i *finance.Income) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i.ID = f.nextID
	f.nextID++
	cp := *i
	f.incomes = append(f.incomes, &cp)
	return nil
}

func (f *fakeIncomeRepo) GetByID(ctx context.Context, userID, id int64) (*finance.Income, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, i := range f.incomes {
		if i.ID == id && i.UserID == userID {
			cp := *i
			return &cp, nil
		}
	}
	return nil, finance.ErrIncomeNotFound
}

func (f *fakeIncomeRepo) Update(ctx context.Context, i *finance.Income) error { return nil }

func (f *fakeIncomeRepo) Delete(ctx context.Context, userID, id int64) error { return nil }

func (f *fakeIncomeRepo) List(ctx context.Context, userID int64, flt finance.Filter) ([]*finance.Income, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*finance.Income
	for _, i := range f.incomes {
		if i.UserID == userID {
			cp := *i
			out = append(out, &cp)
		}
	}
	return out, nil
}

// fakeCompletionStore applies both completion writes, or neither when
// failErr is set. The injected error fires once, like a transaction
// that rolled back and succeeds on retry.
type fakeCompletionStore struct {
	lessons  *fakeLessonRepo
	students *fakeStudentRepo
	failErr  error
}

func (f *fakeCompletionStore) SaveCompletion(ctx context.Context, l *lesson.Lesson, st *student.Student) error {
	if f.failErr != nil {
		err := f.failErr
		f.failErr = nil
		return err
	}
	if err := f.lessons.Update(ctx, l); err != nil {
		return err
	}
	return f.students.Update(ctx, st)
}

// fakePurchaseStore applies all purchase writes, or none when failErr
// is set.
type fakePurchaseStore struct {
	subs     *fakeSubscriptionRepo
	students *fakeStudentRepo
	incomes  *fakeIncomeRepo
	failErr  error
}

func (f *fakePurchaseStore) SavePurchase(ctx context.Context, sub *subscription.Subscription, st *student.Student, income *finance.Income) error {
	if f.failErr != nil {
		return f.failErr
	}
	if err := f.subs.Create(ctx, sub); err != nil {
		return err
	}
	if err := f.students.Update(ctx, st); err != nil {
		return err
	}
	if income != nil {
		return f.incomes.Create(ctx, income)
	}
	return nil
}

// fakeSummaryCache records invalidations.
type fakeSummaryCache struct {
	mu           sync.Mutex
	invalidated  []string
	storedMonths []string
}

func (f *fakeSummaryCache) Get(ctx context.Context, userID int64, year int, month time.Month) (*finance.Summary, error) {
	return nil, finance.ErrExpenseNotFound
}

func (f *fakeSummaryCache) Set(ctx context.Context, userID int64, s *finance.Summary, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.storedMonths = append(f.storedMonths, timeutil.MonthKey(s.Year, s.Month))
	return nil
}

func (f *fakeSummaryCache) Invalidate(ctx context.Context, userID int64, year int, month time.Month) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, timeutil.MonthKey(year, month))
	return nil
}

// capturePublisher collects published events.
type capturePublisher struct {
	mu     sync.Mutex
	events []shared.Event
}

func (p *capturePublisher) Publish(ctx context.Context, event shared.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *capturePublisher) types() []shared.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]shared.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

// ══════════════════════════════════════════════════════════════════════════════
// SCHEDULE LESSON
// ══════════════════════════════════════════════════════════════════════════════

func seedStudent(t *testing.T, repo *fakeStudentRepo, userID int64, name string, balance int) *student.Student {
	t.Helper()
	st := &student.Student{UserID: userID, Name: name, RemainingLessons: balance}
	require.NoError(t, repo.Create(context.Background(), st))
	return st
}

func TestScheduleLesson(t *testing.T) {
	lessons := newFakeLessonRepo()
	students := newFakeStudentRepo()
	pub := &capturePublisher{}
	h := NewScheduleLessonHandler(lessons, students, pub, nil)

	st := seedStudent(t, students, 1, "Анна", 0)

	res, err := h.Handle(context.Background(), ScheduleLessonCommand{
		UserID:          1,
		StudentID:       st.ID,
		Date:            timeutil.Date(2026, 9, 3).Add(15 * time.Hour),
		DurationMinutes: 60,
		Notes:           "распевка",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Lesson)
	assert.NotZero(t, res.Lesson.ID)
	assert.Equal(t, []shared.EventType{shared.EventLessonScheduled}, pub.types())
}

func TestScheduleLessonUnknownStudent(t *testing.T) {
	h := NewScheduleLessonHandler(newFakeLessonRepo(), newFakeStudentRepo(), nil, nil)

	_, err := h.Handle(context.Background(), ScheduleLessonCommand{
		UserID:          1,
		StudentID:       42,
		Date:            timeutil.Date(2026, 9, 3),
		DurationMinutes: 45,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestScheduleLessonInvalid(t *testing.T) {
	h := NewScheduleLessonHandler(newFakeLessonRepo(), newFakeStudentRepo(), nil, nil)

	_, err := h.Handle(context.Background(), ScheduleLessonCommand{
		UserID:    1,
		StudentID: 1,
		Date:      timeutil.Date(2026, 9, 3),
		// нулевая длительность недопустима
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrNegativeValue)
}

// ══════════════════════════════════════════════════════════════════════════════
// COMPLETE / CANCEL LESSON
// ══════════════════════════════════════════════════════════════════════════════

func TestCompleteLessonConsumesBalance(t *testing.T) {
	lessons := newFakeLessonRepo()
	students := newFakeStudentRepo()
	pub := &capturePublisher{}
	store := &fakeCompletionStore{lessons: lessons, students: students}
	h := NewFinishLessonHandler(lessons, students, store, pub, nil)

	st := seedStudent(t, students, 1, "Борис", 3)
	l := &lesson.Lesson{UserID: 1, StudentID: st.ID, Date: timeutil.Date(2026, 9, 3), DurationMinutes: 60}
	require.NoError(t, lessons.Create(context.Background(), l))

	res, err := h.HandleComplete(context.Background(), CompleteLessonCommand{UserID: 1, LessonID: l.ID})
	require.NoError(t, err)
	assert.True(t, res.Lesson.IsCompleted)
	assert.False(t, res.AlreadyCompleted)
	assert.Equal(t, 2, res.RemainingLessons)

	stored, err := students.GetByID(context.Background(), 1, st.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.RemainingLessons)
	assert.Equal(t, []shared.EventType{shared.EventLessonCompleted}, pub.types())
}

func TestCompleteLessonIdempotent(t *testing.T) {
	lessons := newFakeLessonRepo()
	students := newFakeStudentRepo()
	h := NewFinishLessonHandler(lessons, students,
		&fakeCompletionStore{lessons: lessons, students: students}, nil, nil)

	st := seedStudent(t, students, 1, "Вера", 2)
	l := &lesson.Lesson{UserID: 1, StudentID: st.ID, Date: timeutil.Date(2026, 9, 3), DurationMinutes: 60}
	require.NoError(t, lessons.Create(context.Background(), l))

	_, err := h.HandleComplete(context.Background(), CompleteLessonCommand{UserID: 1, LessonID: l.ID})
	require.NoError(t, err)

	// Second completion must not consume another lesson.
	res, err := h.HandleComplete(context.Background(), CompleteLessonCommand{UserID: 1, LessonID: l.ID})
	require.NoError(t, err)
	assert.True(t, res.AlreadyCompleted)
	assert.Equal(t, 1, res.RemainingLessons)
}

func TestCompleteLessonZeroBalanceStaysZero(t *testing.T) {
	lessons := newFakeLessonRepo()
	students := newFakeStudentRepo()
	h := NewFinishLessonHandler(lessons, students,
		&fakeCompletionStore{lessons: lessons, students: students}, nil, nil)

	st := seedStudent(t, students, 1, "Глеб", 0)
	l := &lesson.Lesson{UserID: 1, StudentID: st.ID, Date: timeutil.Date(2026, 9, 3), DurationMinutes: 60}
	require.NoError(t, lessons.Create(context.Background(), l))

	res, err := h.HandleComplete(context.Background(), CompleteLessonCommand{UserID: 1, LessonID: l.ID})
	require.NoError(t, err)
	assert.Equal(t, 0, res.RemainingLessons)
}

func TestCompleteCancelledLesson(t *testing.T) {
	lessons := newFakeLessonRepo()
	students := newFakeStudentRepo()
	h := NewFinishLessonHandler(lessons, students,
		&fakeCompletionStore{lessons: lessons, students: students}, nil, nil)

	st := seedStudent(t, students, 1, "Дина", 1)
	l := &lesson.Lesson{UserID: 1, StudentID: st.ID, Date: timeutil.Date(2026, 9, 3), DurationMinutes: 60, IsCancelled: true}
	require.NoError(t, lessons.Create(context.Background(), l))

	_, err := h.HandleComplete(context.Background(), CompleteLessonCommand{UserID: 1, LessonID: l.ID})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestCompleteLessonFailedWriteLeavesStateIntact(t *testing.T) {
	lessons := newFakeLessonRepo()
	students := newFakeStudentRepo()
	store := &fakeCompletionStore{
		lessons:  lessons,
		students: students,
		failErr:  errors.New("connection reset"),
	}
	h := NewFinishLessonHandler(lessons, students, store, nil, nil)

	st := seedStudent(t, students, 1, "Инга", 2)
	l := &lesson.Lesson{UserID: 1, StudentID: st.ID, Date: timeutil.Date(2026, 9, 3), DurationMinutes: 60}
	require.NoError(t, lessons.Create(context.Background(), l))

	_, err := h.HandleComplete(context.Background(), CompleteLessonCommand{UserID: 1, LessonID: l.ID})
	require.Error(t, err)

	// Neither half of the write landed: the lesson is still open and
	// the balance untouched.
	stored, err := lessons.GetByID(context.Background(), 1, l.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsCompleted)

	balance, err := students.GetByID(context.Background(), 1, st.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, balance.RemainingLessons)

	// The retry therefore completes normally and charges exactly once.
	res, err := h.HandleComplete(context.Background(), CompleteLessonCommand{UserID: 1, LessonID: l.ID})
	require.NoError(t, err)
	assert.False(t, res.AlreadyCompleted)
	assert.Equal(t, 1, res.RemainingLessons)
}

func TestCancelLesson(t *testing.T) {
	lessons := newFakeLessonRepo()
	students := newFakeStudentRepo()
	h := NewFinishLessonHandler(lessons, students,
		&fakeCompletionStore{lessons: lessons, students: students}, nil, nil)

	st := seedStudent(t, students, 1, "Ева", 1)
	l := &lesson.Lesson{UserID: 1, StudentID: st.ID, Date: timeutil.Date(2026, 9, 3), DurationMinutes: 60}
	require.NoError(t, lessons.Create(context.Background(), l))

	got, err := h.HandleCancel(context.Background(), CancelLessonCommand{UserID: 1, LessonID: l.ID})
	require.NoError(t, err)
	assert.True(t, got.IsCancelled)

	// Cancelling again is a no-op.
	got, err = h.HandleCancel(context.Background(), CancelLessonCommand{UserID: 1, LessonID: l.ID})
	require.NoError(t, err)
	assert.True(t, got.IsCancelled)
}

// ══════════════════════════════════════════════════════════════════════════════
// PURCHASE SUBSCRIPTION
// ══════════════════════════════════════════════════════════════════════════════

func TestPurchaseSubscription(t *testing.T) {
	subs := newFakeSubscriptionRepo()
	students := newFakeStudentRepo()
	incomes := newFakeIncomeRepo()
	cache := &fakeSummaryCache{}
	pub := &capturePublisher{}
	store := &fakePurchaseStore{subs: subs, students: students, incomes: incomes}
	h := NewPurchaseSubscriptionHandler(store, students, cache, pub, nil)

	st := seedStudent(t, students, 1, "Жанна", 1)
	start := timeutil.Date(2026, 9, 1)

	res, err := h.Handle(context.Background(), PurchaseSubscriptionCommand{
		UserID:       1,
		StudentID:    st.ID,
		StartDate:    start,
		EndDate:      start.AddDate(0, 1, 0),
		LessonsCount: 8,
		Price:        16000,
	})
	require.NoError(t, err)
	assert.Equal(t, 9, res.RemainingLessons)
	require.NotNil(t, res.Income)
	assert.Equal(t, finance.CategorySubscription, res.Income.Category)
	assert.EqualValues(t, 16000, res.Income.Amount)

	// The income lands in the month of the start date, so that month's
	// cached summary is stale.
	assert.Equal(t, []string{"2026-09"}, cache.invalidated)
	assert.Equal(t, []shared.EventType{shared.EventSubscriptionPurchased}, pub.types())
}

func TestPurchaseSubscriptionFree(t *testing.T) {
	subs := newFakeSubscriptionRepo()
	students := newFakeStudentRepo()
	incomes := newFakeIncomeRepo()
	cache := &fakeSummaryCache{}
	store := &fakePurchaseStore{subs: subs, students: students, incomes: incomes}
	h := NewPurchaseSubscriptionHandler(store, students, cache, nil, nil)

	st := seedStudent(t, students, 1, "Зоя", 0)
	start := timeutil.Date(2026, 9, 1)

	res, err := h.Handle(context.Background(), PurchaseSubscriptionCommand{
		UserID:       1,
		StudentID:    st.ID,
		StartDate:    start,
		EndDate:      start.AddDate(0, 1, 0),
		LessonsCount: 4,
		Price:        0,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, res.RemainingLessons)
	assert.Nil(t, res.Income)
	assert.Empty(t, cache.invalidated)

	all, err := incomes.List(context.Background(), 1, finance.Filter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestPurchaseSubscriptionFailedWriteKeepsBalance(t *testing.T) {
	subs := newFakeSubscriptionRepo()
	students := newFakeStudentRepo()
	incomes := newFakeIncomeRepo()
	cache := &fakeSummaryCache{}
	store := &fakePurchaseStore{
		subs:     subs,
		students: students,
		incomes:  incomes,
		failErr:  errors.New("connection reset"),
	}
	h := NewPurchaseSubscriptionHandler(store, students, cache, nil, nil)

	st := seedStudent(t, students, 1, "Кира", 1)
	start := timeutil.Date(2026, 9, 1)

	_, err := h.Handle(context.Background(), PurchaseSubscriptionCommand{
		UserID:       1,
		StudentID:    st.ID,
		StartDate:    start,
		EndDate:      start.AddDate(0, 1, 0),
		LessonsCount: 8,
		Price:        16000,
	})
	require.Error(t, err)

	// The failed purchase leaves no trace: balance, ledger and cache
	// all stay as they were.
	stored, err := students.GetByID(context.Background(), 1, st.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.RemainingLessons)

	all, err := incomes.List(context.Background(), 1, finance.Filter{})
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Empty(t, cache.invalidated)
}

func TestPurchaseSubscriptionInvalidPeriod(t *testing.T) {
	subs := newFakeSubscriptionRepo()
	students := newFakeStudentRepo()
	store := &fakePurchaseStore{subs: subs, students: students, incomes: newFakeIncomeRepo()}
	h := NewPurchaseSubscriptionHandler(store, students, nil, nil, nil)

	start := timeutil.Date(2026, 9, 10)
	_, err := h.Handle(context.Background(), PurchaseSubscriptionCommand{
		UserID:       1,
		StudentID:    1,
		StartDate:    start,
		EndDate:      start.AddDate(0, 0, -5),
		LessonsCount: 8,
		Price:        1000,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}
