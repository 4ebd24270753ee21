package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfWeekIsMonday(t *testing.T) {
	// 2026-09-03 is a Thursday.
	thursday := DateTime(2026, 9, 3, 15, 30)
	monday := StartOfWeek(thursday)

	assert.Equal(t, Date(2026, 8, 31), monday)
	assert.Equal(t, time.Monday, monday.Weekday())

	// Sunday belongs to the week that started the previous Monday.
	sunday := Date(2026, 9, 6)
	assert.Equal(t, Date(2026, 8, 31), StartOfWeek(sunday))

	// Monday is its own week start.
	assert.Equal(t, Date(2026, 8, 31), StartOfWeek(Date(2026, 8, 31)))
}

func TestMonthBoundaries(t *testing.T) {
	mid := DateTime(2026, 9, 15, 12, 0)

	assert.Equal(t, Date(2026, 9, 1), StartOfMonth(mid))
	assert.Equal(t, Date(2026, 9, 30), EndOfMonth(mid))

	// February of a non-leap year.
	assert.Equal(t, Date(2026, 2, 28), EndOfMonth(Date(2026, 2, 10)))
}

func TestMonthGridRange(t *testing.T) {
	// September 2026: the 1st is a Tuesday, the 30th is a Wednesday.
	// The grid runs from Monday Aug 31 to Monday Oct 5 (exclusive).
	start, end := MonthGridRange(Date(2026, 9, 15))

	assert.Equal(t, Date(2026, 8, 31), start)
	assert.Equal(t, Date(2026, 10, 5), end)
	assert.Equal(t, time.Monday, start.Weekday())
	assert.Equal(t, time.Monday, end.Weekday())

	// The grid always covers whole weeks.
	days := int(end.Sub(start).Hours() / 24)
	assert.Zero(t, days%7)
}

func TestStartOfDayUsesStudioTimezone(t *testing.T) {
	// 22:30 UTC is already past midnight in the studio.
	utcEvening := time.Date(2026, 9, 3, 22, 30, 0, 0, time.UTC)
	assert.Equal(t, Date(2026, 9, 4), StartOfDay(utcEvening))
}

func TestIsSameDayAcrossTimezones(t *testing.T) {
	a := time.Date(2026, 9, 3, 21, 30, 0, 0, time.UTC) // 00:30 Sep 4 studio time
	b := Date(2026, 9, 4)

	assert.True(t, IsSameDay(a, b))
	assert.False(t, IsSameDay(Date(2026, 9, 3), b))
}

func TestOverlaps(t *testing.T) {
	base := DateTime(2026, 9, 3, 15, 0)

	// Half-open intervals: touching lessons do not overlap.
	assert.False(t, Overlaps(base, base.Add(time.Hour), base.Add(time.Hour), base.Add(2*time.Hour)))
	assert.True(t, Overlaps(base, base.Add(time.Hour), base.Add(30*time.Minute), base.Add(90*time.Minute)))
	assert.True(t, Overlaps(base, base.Add(2*time.Hour), base.Add(time.Hour), base.Add(90*time.Minute)))
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2026-09", MonthKey(2026, time.September))
	assert.Equal(t, "2026-12", MonthKey(2026, time.December))
}

func TestParseDateStudio(t *testing.T) {
	got, err := ParseDateStudio("2026-09-03")
	assert.NoError(t, err)
	assert.Equal(t, Date(2026, 9, 3), got)

	_, err = ParseDateStudio("03.09.2026")
	assert.Error(t, err)
}

func TestIsSafeNotificationTime(t *testing.T) {
	assert.True(t, IsSafeNotificationTime(DateTime(2026, 9, 3, 9, 0)))
	assert.True(t, IsSafeNotificationTime(DateTime(2026, 9, 3, 21, 59)))
	assert.False(t, IsSafeNotificationTime(DateTime(2026, 9, 3, 22, 0)))
	assert.False(t, IsSafeNotificationTime(DateTime(2026, 9, 3, 8, 59)))

	// The hour is judged in studio time, not the caller's zone.
	lateUTC := time.Date(2026, 9, 3, 20, 0, 0, 0, time.UTC) // 23:00 studio time
	assert.False(t, IsSafeNotificationTime(lateUTC))
}

func TestRussianNames(t *testing.T) {
	assert.Equal(t, "Четверг", WeekdayNameRu(Date(2026, 9, 3)))
	assert.Equal(t, "Воскресенье", WeekdayNameRu(Date(2026, 9, 6)))
	assert.Equal(t, "Сентябрь", MonthNameRu(time.September))
	assert.Equal(t, "", MonthNameRu(time.Month(13)))
}

func TestFormatTimeStr(t *testing.T) {
	assert.Equal(t, "15:05", FormatTimeStr(DateTime(2026, 9, 3, 15, 5)))
}
