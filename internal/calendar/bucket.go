// Package calendar implements the schedule view-model: projecting the
// flat lesson list into day/week/month grids and translating user
// actions (slot click, edit, complete, cancel, delete) into store
// mutations and backend calls.
//
// Data flows one way: backend -> Store -> bucketing -> rendering.
// User actions flow the other way through the Dispatcher.
package calendar

import (
	"sort"
	"time"

	"github.com/vocal-hub/vocal-studio-hub/internal/domain/lesson"
	"github.com/vocal-hub/vocal-studio-hub/pkg/timeutil"
)

// ViewMode selects which calendar grid is shown.
type ViewMode string

const (
	ViewDay   ViewMode = "day"
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

// IsValid reports whether the view mode is one of day/week/month.
func (m ViewMode) IsValid() bool {
	switch m {
	case ViewDay, ViewWeek, ViewMonth:
		return true
	default:
		return false
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// GRID TYPES
// All grids are derived, ephemeral values: recomputed on every render
// from the store snapshot plus the anchor date, never stored.
// ══════════════════════════════════════════════════════════════════════════════

// HourBucket is one hour row of a day column. A lesson belongs to the
// bucket if its interval [start, start+duration) intersects the bucket
// hour - overlap membership, so a lesson spanning an hour boundary
// appears in both buckets.
type HourBucket struct {
	// Start is the top of the hour in studio time.
	Start time.Time

	// Lessons in this bucket, ordered by start ascending (id as tiebreak).
	Lessons []*lesson.Lesson
}

// End returns the exclusive end of the bucket interval.
func (b HourBucket) End() time.Time {
	return b.Start.Add(time.Hour)
}

// DayGrid is 24 one-hour buckets covering one calendar day.
type DayGrid struct {
	// Day is 00:00 of the day in studio time.
	Day time.Time

	Hours [24]HourBucket
}

// WeekGrid is 7 day columns (Monday first) of 24 hour rows each.
type WeekGrid struct {
	// Start is Monday 00:00 of the week.
	Start time.Time

	Days [7]DayGrid
}

// MonthDayCell is one day cell of the month overview. Cells from
// adjacent months are kept for grid completeness and flagged so the
// renderer can dim them instead of dropping them.
type MonthDayCell struct {
	Day            time.Time
	IsCurrentMonth bool

	// Lessons starting on this day (same-day containment, not overlap -
	// month view is a density overview, not a precise schedule).
	Lessons []*lesson.Lesson
}

// MonthGrid is the set of Monday-aligned weeks covering the anchor's month.
type MonthGrid struct {
	// Anchor is the first day of the month.
	Anchor time.Time

	Weeks [][7]MonthDayCell
}

// ══════════════════════════════════════════════════════════════════════════════
// BUCKETING
// Pure functions: for a fixed lesson snapshot and anchor, identical
// input always yields identical bucket contents and ordering.
// ══════════════════════════════════════════════════════════════════════════════

// sortLessons orders lessons by start ascending, id ascending. The input
// slice is not modified; bucketing works on its own copy.
func sortLessons(lessons []*lesson.Lesson) []*lesson.Lesson {
	sorted := make([]*lesson.Lesson, len(lessons))
	copy(sorted, lessons)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// BuildDayGrid buckets lessons into the 24 hours of the anchor's day.
func BuildDayGrid(anchor time.Time, lessons []*lesson.Lesson) DayGrid {
	day := timeutil.StartOfDay(anchor)
	grid := DayGrid{Day: day}

	sorted := sortLessons(lessons)
	for h := 0; h < 24; h++ {
		bucketStart := day.Add(time.Duration(h) * time.Hour)
		grid.Hours[h].Start = bucketStart
		bucketEnd := bucketStart.Add(time.Hour)

		for _, l := range sorted {
			if l.Overlaps(bucketStart, bucketEnd) {
				grid.Hours[h].Lessons = append(grid.Hours[h].Lessons, l)
			}
		}
	}
	return grid
}

// BuildWeekGrid buckets lessons into a Monday-start week of day columns.
func BuildWeekGrid(anchor time.Time, lessons []*lesson.Lesson) WeekGrid {
	start := timeutil.StartOfWeek(anchor)
	grid := WeekGrid{Start: start}

	for d := 0; d < 7; d++ {
		grid.Days[d] = BuildDayGrid(start.AddDate(0, 0, d), lessons)
	}
	return grid
}

// BuildMonthGrid builds the Monday-aligned month overview. Leading and
// trailing days from adjacent months are included and flagged.
func BuildMonthGrid(anchor time.Time, lessons []*lesson.Lesson) MonthGrid {
	monthStart := timeutil.StartOfMonth(anchor)
	gridStart, gridEnd := timeutil.MonthGridRange(anchor)

	sorted := sortLessons(lessons)
	grid := MonthGrid{Anchor: monthStart}

	for weekStart := gridStart; weekStart.Before(gridEnd); weekStart = weekStart.AddDate(0, 0, 7) {
		var week [7]MonthDayCell
		for d := 0; d < 7; d++ {
			day := weekStart.AddDate(0, 0, d)
			cell := MonthDayCell{
				Day:            day,
				IsCurrentMonth: timeutil.IsSameMonth(day, monthStart),
			}
			for _, l := range sorted {
				if timeutil.IsSameDay(l.Date, day) {
					cell.Lessons = append(cell.Lessons, l)
				}
			}
			week[d] = cell
		}
		grid.Weeks = append(grid.Weeks, week)
	}
	return grid
}
