package calendar

import (
	"fmt"
	"time"

	"github.com/vocal-hub/vocal-studio-hub/internal/domain/lesson"
	"github.com/vocal-hub/vocal-studio-hub/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// VIEW TYPES
// Presentation-ready values: labels and display flags only, no time
// arithmetic left for the UI layer.
// ══════════════════════════════════════════════════════════════════════════════

// LessonView is a lesson ready for display.
type LessonView struct {
	ID          int64
	StudentName string

	// TimeRange is "15:00-16:00" in studio time.
	TimeRange string

	// Strikethrough marks cancelled lessons, which stay visible.
	Strikethrough bool

	// Completed marks finished lessons for the checkmark badge.
	Completed bool

	Notes string
}

// HourRow is one hour row of the day or week column.
type HourRow struct {
	// Label is "09:00".
	Label   string
	Lessons []LessonView
}

// DayView is the rendered single-day grid.
type DayView struct {
	// Title is the day heading, e.g. "Понедельник, 10.06.2024".
	Title   string
	IsToday bool
	Hours   [24]HourRow
}

// WeekView is the rendered Monday-start week.
type WeekView struct {
	// Title is the range heading, e.g. "10.06 - 16.06".
	Title string
	Days  [7]DayView
}

// MonthCellView is one day cell of the rendered month.
type MonthCellView struct {
	// DayNumber is the day of month, 1..31.
	DayNumber int
	IsToday   bool

	// Dimmed marks filler days from adjacent months.
	Dimmed bool

	Lessons []LessonView
}

// MonthView is the rendered month overview.
type MonthView struct {
	// Title is e.g. "июнь 2024".
	Title string
	Weeks [][7]MonthCellView
}

// ══════════════════════════════════════════════════════════════════════════════
// RENDERER
// ══════════════════════════════════════════════════════════════════════════════

// Renderer turns bucketed grids into view values. Student names come
// from a lookup so the renderer stays free of store internals.
type Renderer struct {
	// StudentName resolves a student's display name. Unknown ids render
	// as "Ученик #<id>" rather than blank.
	StudentName func(id int64) string

	// Now supplies the current time for the today highlight.
	// Defaults to timeutil.Now.
	Now func() time.Time
}

// NewRenderer creates a Renderer over the given name lookup.
func NewRenderer(studentName func(id int64) string) *Renderer {
	return &Renderer{StudentName: studentName, Now: timeutil.Now}
}

func (r *Renderer) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return timeutil.Now()
}

func (r *Renderer) lessonView(l *lesson.Lesson) LessonView {
	name := ""
	if r.StudentName != nil {
		name = r.StudentName(l.StudentID)
	}
	if name == "" {
		name = fmt.Sprintf("Ученик #%d", l.StudentID)
	}
	start := timeutil.ToStudio(l.Date)
	return LessonView{
		ID:            l.ID,
		StudentName:   name,
		TimeRange:     start.Format("15:04") + "-" + timeutil.ToStudio(l.End()).Format("15:04"),
		Strikethrough: l.IsCancelled,
		Completed:     l.IsCompleted,
		Notes:         l.Notes,
	}
}

// RenderDay renders a bucketed day grid.
func (r *Renderer) RenderDay(grid DayGrid) DayView {
	view := DayView{
		Title: fmt.Sprintf("%s, %s",
			timeutil.WeekdayNameRu(grid.Day),
			timeutil.FormatStudio(grid.Day, timeutil.FormatRussianDate)),
		IsToday: timeutil.IsSameDay(grid.Day, r.now()),
	}
	for h, bucket := range grid.Hours {
		view.Hours[h].Label = bucket.Start.Format("15:04")
		for _, l := range bucket.Lessons {
			view.Hours[h].Lessons = append(view.Hours[h].Lessons, r.lessonView(l))
		}
	}
	return view
}

// RenderWeek renders a bucketed week grid.
func (r *Renderer) RenderWeek(grid WeekGrid) WeekView {
	last := grid.Start.AddDate(0, 0, 6)
	view := WeekView{
		Title: fmt.Sprintf("%s - %s",
			timeutil.FormatStudio(grid.Start, "02.01"),
			timeutil.FormatStudio(last, "02.01")),
	}
	for d, day := range grid.Days {
		view.Days[d] = r.RenderDay(day)
	}
	return view
}

// RenderMonth renders a bucketed month grid. Filler days from adjacent
// months come out dimmed, not dropped.
func (r *Renderer) RenderMonth(grid MonthGrid) MonthView {
	now := r.now()
	view := MonthView{
		Title: fmt.Sprintf("%s %d",
			timeutil.MonthNameRu(grid.Anchor.Month()), grid.Anchor.Year()),
	}
	for _, week := range grid.Weeks {
		var row [7]MonthCellView
		for d, cell := range week {
			row[d] = MonthCellView{
				DayNumber: cell.Day.Day(),
				IsToday:   timeutil.IsSameDay(cell.Day, now),
				Dimmed:    !cell.IsCurrentMonth,
			}
			for _, l := range cell.Lessons {
				row[d].Lessons = append(row[d].Lessons, r.lessonView(l))
			}
		}
		view.Weeks = append(view.Weeks, row)
	}
	return view
}
