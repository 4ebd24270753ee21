package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocal-hub/vocal-studio-hub/internal/domain/lesson"
	"github.com/vocal-hub/vocal-studio-hub/pkg/timeutil"
)

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func namesFrom(m map[int64]string) func(int64) string {
	return func(id int64) string { return m[id] }
}

func TestRenderDay_TimeRangeAndTitle(t *testing.T) {
	r := NewRenderer(namesFrom(map[int64]string{3: "Анна Петрова"}))
	r.Now = fixedNow(timeutil.DateTime(2024, 6, 10, 12, 0))

	l := mkLesson(1, 2024, 6, 10, 9, 30, 60)
	l.StudentID = 3
	view := r.RenderDay(BuildDayGrid(timeutil.Date(2024, 6, 10), []*lesson.Lesson{l}))

	assert.Equal(t, "Понедельник, 10.06.2024", view.Title)
	assert.True(t, view.IsToday)
	assert.Equal(t, "09:00", view.Hours[9].Label)

	require.Len(t, view.Hours[9].Lessons, 1)
	lv := view.Hours[9].Lessons[0]
	assert.Equal(t, "Анна Петрова", lv.StudentName)
	assert.Equal(t, "09:30-10:30", lv.TimeRange)
	assert.False(t, lv.Strikethrough)

	// Overlap membership carries into the rendered 10:00 row too.
	require.Len(t, view.Hours[10].Lessons, 1)
	assert.Equal(t, "09:30-10:30", view.Hours[10].Lessons[0].TimeRange)
}

func TestRenderDay_UnknownStudentFallback(t *testing.T) {
	r := NewRenderer(namesFrom(nil))
	r.Now = fixedNow(timeutil.DateTime(2024, 6, 10, 12, 0))

	l := mkLesson(1, 2024, 6, 10, 9, 0, 60)
	l.StudentID = 42
	view := r.RenderDay(BuildDayGrid(timeutil.Date(2024, 6, 10), []*lesson.Lesson{l}))

	require.Len(t, view.Hours[9].Lessons, 1)
	assert.Equal(t, "Ученик #42", view.Hours[9].Lessons[0].StudentName)
}

func TestRenderDay_CancelledLessonStruckThrough(t *testing.T) {
	r := NewRenderer(namesFrom(map[int64]string{1: "Иван"}))
	r.Now = fixedNow(timeutil.DateTime(2024, 6, 10, 12, 0))

	l := mkLesson(1, 2024, 6, 10, 9, 0, 60)
	l.IsCancelled = true
	view := r.RenderDay(BuildDayGrid(timeutil.Date(2024, 6, 10), []*lesson.Lesson{l}))

	require.Len(t, view.Hours[9].Lessons, 1, "cancelled lessons stay visible")
	assert.True(t, view.Hours[9].Lessons[0].Strikethrough)
}

func TestRenderWeek_TitleAndTodayColumn(t *testing.T) {
	r := NewRenderer(namesFrom(nil))
	r.Now = fixedNow(timeutil.DateTime(2024, 6, 12, 12, 0)) // Wednesday

	view := r.RenderWeek(BuildWeekGrid(timeutil.Date(2024, 6, 10), nil))

	assert.Equal(t, "10.06 - 16.06", view.Title)
	assert.False(t, view.Days[0].IsToday)
	assert.True(t, view.Days[2].IsToday)
}

func TestRenderMonth_DimmedFillerAndToday(t *testing.T) {
	r := NewRenderer(namesFrom(nil))
	r.Now = fixedNow(timeutil.DateTime(2024, 6, 15, 12, 0)) // Saturday

	l := mkLesson(1, 2024, 5, 31, 12, 0, 60)
	view := r.RenderMonth(BuildMonthGrid(timeutil.Date(2024, 6, 1), []*lesson.Lesson{l}))

	assert.Equal(t, "Июнь 2024", view.Title)
	require.Len(t, view.Weeks, 5)

	// May 31 is a filler cell: dimmed, lesson still rendered.
	filler := view.Weeks[0][4]
	assert.True(t, filler.Dimmed)
	assert.Equal(t, 31, filler.DayNumber)
	require.Len(t, filler.Lessons, 1)

	// June 15 falls in week 3 (Jun 10-16), Saturday column.
	today := view.Weeks[2][5]
	assert.True(t, today.IsToday)
	assert.False(t, today.Dimmed)
	assert.Equal(t, 15, today.DayNumber)
}

func TestRenderer_CompletedBadge(t *testing.T) {
	r := NewRenderer(namesFrom(nil))

	l := mkLesson(1, 2024, 6, 10, 9, 0, 60)
	l.IsCompleted = true
	view := r.RenderDay(BuildDayGrid(timeutil.Date(2024, 6, 10), []*lesson.Lesson{l}))

	require.Len(t, view.Hours[9].Lessons, 1)
	assert.True(t, view.Hours[9].Lessons[0].Completed)
}
