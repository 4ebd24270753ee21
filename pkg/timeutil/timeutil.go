// Package timeutil provides timezone and calendar-grid utilities for the
// vocal studio. All scheduling is done in the studio's local timezone
// (Moscow, UTC+3). Handles day/week/month boundaries with Monday-start
// weeks, which the calendar views are built on.
// No external dependencies - uses only standard library.
package timeutil

import (
	"fmt"
	"time"
)

// StudioTZ is the studio timezone (UTC+3, no DST).
// Russia abolished seasonal clock changes in 2014, so this is constant.
var StudioTZ = time.FixedZone("Europe/Moscow", 3*60*60)

// Now returns the current time in the studio timezone.
func Now() time.Time {
	return time.Now().In(StudioTZ)
}

// ToStudio converts a time to the studio timezone.
func ToStudio(t time.Time) time.Time {
	return t.In(StudioTZ)
}

// Date creates a time in the studio timezone with the given date.
func Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, StudioTZ)
}

// DateTime creates a time in the studio timezone with the given date and time.
func DateTime(year, month, day, hour, min int) time.Time {
	return time.Date(year, time.Month(month), day, hour, min, 0, 0, StudioTZ)
}

// StartOfDay returns 00:00:00 of t's day in the studio timezone.
func StartOfDay(t time.Time) time.Time {
	local := ToStudio(t)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, StudioTZ)
}

// StartOfHour returns the top of t's hour in the studio timezone.
func StartOfHour(t time.Time) time.Time {
	local := ToStudio(t)
	return time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), 0, 0, 0, StudioTZ)
}

// StartOfWeek returns Monday 00:00:00 of t's week in the studio timezone.
func StartOfWeek(t time.Time) time.Time {
	local := ToStudio(t)
	weekday := int(local.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	return StartOfDay(local.AddDate(0, 0, -(weekday - 1)))
}

// StartOfMonth returns the first day of t's month in the studio timezone.
func StartOfMonth(t time.Time) time.Time {
	local := ToStudio(t)
	return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, StudioTZ)
}

// EndOfMonth returns the last day of t's month at 00:00:00.
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, -1)
}

// MonthGridRange returns the Monday-aligned range covering t's month:
// the Monday of the week containing the 1st, and the Monday *after* the
// week containing the last day (exclusive bound). Every month view grid
// is built from this range.
func MonthGridRange(t time.Time) (start, end time.Time) {
	start = StartOfWeek(StartOfMonth(t))
	end = StartOfWeek(EndOfMonth(t)).AddDate(0, 0, 7)
	return start, end
}

// IsSameDay checks if two times fall on the same studio-timezone day.
func IsSameDay(t1, t2 time.Time) bool {
	a, b := ToStudio(t1), ToStudio(t2)
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// IsSameMonth checks if two times fall in the same studio-timezone month.
func IsSameMonth(t1, t2 time.Time) bool {
	a, b := ToStudio(t1), ToStudio(t2)
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// IsToday checks if the given time is today in the studio timezone.
func IsToday(t time.Time) bool {
	return IsSameDay(t, Now())
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Common date/time formats.
const (
	// FormatDate is the standard date format (YYYY-MM-DD).
	FormatDate = "2006-01-02"
	// FormatTime is the standard time format (HH:MM).
	FormatTime = "15:04"
	// FormatDateTime is the standard datetime format.
	FormatDateTime = "2006-01-02 15:04"
	// FormatRussianDate is the Russian date format (DD.MM.YYYY).
	FormatRussianDate = "02.01.2006"
)

// FormatStudio formats a time in the studio timezone with the given layout.
func FormatStudio(t time.Time, layout string) string {
	return ToStudio(t).Format(layout)
}

// FormatTimeStr formats a time as HH:MM in the studio timezone.
func FormatTimeStr(t time.Time) string {
	return FormatStudio(t, FormatTime)
}

// ParseStudio parses a time string in the studio timezone.
func ParseStudio(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, StudioTZ)
}

// ParseDateStudio parses a date string (YYYY-MM-DD) in the studio timezone.
func ParseDateStudio(value string) (time.Time, error) {
	return ParseStudio(FormatDate, value)
}

// MonthKey returns a stable "YYYY-MM" key for cache keys and summaries.
func MonthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// Notification timing helpers.

// IsSafeNotificationTime checks if it's appropriate to send reminders (9:00-22:00).
func IsSafeNotificationTime(t time.Time) bool {
	hour := ToStudio(t).Hour()
	return hour >= 9 && hour < 22
}

// WeekdayNameRu returns the Russian name for a weekday.
func WeekdayNameRu(t time.Time) string {
	switch ToStudio(t).Weekday() {
	case time.Monday:
		return "Понедельник"
	case time.Tuesday:
		return "Вторник"
	case time.Wednesday:
		return "Среда"
	case time.Thursday:
		return "Четверг"
	case time.Friday:
		return "Пятница"
	case time.Saturday:
		return "Суббота"
	case time.Sunday:
		return "Воскресенье"
	default:
		return ""
	}
}

// MonthNameRu returns the Russian name for a month.
func MonthNameRu(m time.Month) string {
	names := []string{
		"", "Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
		"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
	}
	if int(m) >= 1 && int(m) <= 12 {
		return names[m]
	}
	return ""
}
