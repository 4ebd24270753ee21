package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocal-hub/vocal-studio-hub/internal/domain/lesson"
	"github.com/vocal-hub/vocal-studio-hub/pkg/timeutil"
)

func mkLesson(id int64, year, month, day, hour, min, durationMin int) *lesson.Lesson {
	return &lesson.Lesson{
		ID:              id,
		StudentID:       1,
		Date:            timeutil.DateTime(year, month, day, hour, min),
		DurationMinutes: durationMin,
	}
}

func TestBuildDayGrid_OverlapMembership(t *testing.T) {
	// 9:30-10:30 spans the hour boundary and must appear in both buckets.
	l := mkLesson(1, 2024, 6, 10, 9, 30, 60)
	grid := BuildDayGrid(timeutil.Date(2024, 6, 10), []*lesson.Lesson{l})

	require.Len(t, grid.Hours[9].Lessons, 1)
	require.Len(t, grid.Hours[10].Lessons, 1)
	assert.Empty(t, grid.Hours[8].Lessons)
	assert.Empty(t, grid.Hours[11].Lessons)
	assert.Same(t, l, grid.Hours[9].Lessons[0])
	assert.Same(t, l, grid.Hours[10].Lessons[0])
}

func TestBuildDayGrid_ExactHourStaysInOneBucket(t *testing.T) {
	// 14:00-15:00 ends exactly on the boundary; the interval is
	// half-open so the 15:00 bucket stays empty.
	l := mkLesson(1, 2024, 6, 10, 14, 0, 60)
	grid := BuildDayGrid(timeutil.Date(2024, 6, 10), []*lesson.Lesson{l})

	require.Len(t, grid.Hours[14].Lessons, 1)
	assert.Empty(t, grid.Hours[15].Lessons)
}

func TestBuildDayGrid_OrderingByStartThenID(t *testing.T) {
	a := mkLesson(7, 2024, 6, 10, 9, 0, 30)
	b := mkLesson(3, 2024, 6, 10, 9, 0, 30) // same start, lower id
	c := mkLesson(1, 2024, 6, 10, 9, 15, 30)

	grid := BuildDayGrid(timeutil.Date(2024, 6, 10), []*lesson.Lesson{a, c, b})

	require.Len(t, grid.Hours[9].Lessons, 3)
	assert.Equal(t, int64(3), grid.Hours[9].Lessons[0].ID)
	assert.Equal(t, int64(7), grid.Hours[9].Lessons[1].ID)
	assert.Equal(t, int64(1), grid.Hours[9].Lessons[2].ID)
}

func TestBuildDayGrid_Deterministic(t *testing.T) {
	lessons := []*lesson.Lesson{
		mkLesson(2, 2024, 6, 10, 11, 0, 60),
		mkLesson(1, 2024, 6, 10, 9, 30, 90),
		mkLesson(3, 2024, 6, 10, 9, 30, 90),
	}

	first := BuildDayGrid(timeutil.Date(2024, 6, 10), lessons)
	second := BuildDayGrid(timeutil.Date(2024, 6, 10), lessons)
	assert.Equal(t, first, second)
}

func TestBuildWeekGrid_MondayStart(t *testing.T) {
	// 2024-06-13 is a Thursday; the week starts Monday 2024-06-10.
	grid := BuildWeekGrid(timeutil.Date(2024, 6, 13), nil)

	assert.Equal(t, timeutil.Date(2024, 6, 10), grid.Start)
	assert.Equal(t, timeutil.Date(2024, 6, 10), grid.Days[0].Day)
	assert.Equal(t, timeutil.Date(2024, 6, 16), grid.Days[6].Day)
}

func TestBuildWeekGrid_LessonLandsInRightColumn(t *testing.T) {
	l := mkLesson(1, 2024, 6, 12, 15, 0, 60) // Wednesday
	grid := BuildWeekGrid(timeutil.Date(2024, 6, 10), []*lesson.Lesson{l})

	require.Len(t, grid.Days[2].Hours[15].Lessons, 1)
	for d := 0; d < 7; d++ {
		if d == 2 {
			continue
		}
		for h := 0; h < 24; h++ {
			assert.Empty(t, grid.Days[d].Hours[h].Lessons)
		}
	}
}

func TestBuildMonthGrid_June2024Shape(t *testing.T) {
	// June 2024: the 1st is a Saturday, the 30th is a Sunday. The
	// Monday-aligned grid runs May 27 through June 30, five weeks.
	grid := BuildMonthGrid(timeutil.Date(2024, 6, 15), nil)

	require.Len(t, grid.Weeks, 5)
	assert.Equal(t, timeutil.Date(2024, 5, 27), grid.Weeks[0][0].Day)
	assert.Equal(t, timeutil.Date(2024, 6, 30), grid.Weeks[4][6].Day)

	assert.False(t, grid.Weeks[0][0].IsCurrentMonth) // May 27
	assert.False(t, grid.Weeks[0][4].IsCurrentMonth) // May 31
	assert.True(t, grid.Weeks[0][5].IsCurrentMonth)  // June 1
	assert.True(t, grid.Weeks[4][6].IsCurrentMonth)  // June 30
}

func TestBuildMonthGrid_LessonOnFillerDayKept(t *testing.T) {
	// A lesson on May 31 still shows in June's grid, in a dimmed cell.
	l := mkLesson(1, 2024, 5, 31, 12, 0, 60)
	grid := BuildMonthGrid(timeutil.Date(2024, 6, 1), []*lesson.Lesson{l})

	cell := grid.Weeks[0][4]
	assert.False(t, cell.IsCurrentMonth)
	require.Len(t, cell.Lessons, 1)
	assert.Equal(t, int64(1), cell.Lessons[0].ID)
}

func TestViewMode_IsValid(t *testing.T) {
	assert.True(t, ViewDay.IsValid())
	assert.True(t, ViewWeek.IsValid())
	assert.True(t, ViewMonth.IsValid())
	assert.False(t, ViewMode("year").IsValid())
}
