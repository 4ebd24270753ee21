package query

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/vocal-hub/vocal-studio-hub/internal/domain/lesson"
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/student"
	"github.com/vocal-hub/vocal-studio-hub/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// UPCOMING LESSONS
// ══════════════════════════════════════════════════════════════════════════════

// UpcomingLessonsQuery asks for the lessons of a time window with
// student names resolved.
type UpcomingLessonsQuery struct {
	UserID int64

	// From/To bound the window [From, To). A zero From means "now",
	// a zero To means 24 hours past From.
	From time.Time
	To   time.Time

	// IncludeCancelled keeps cancelled lessons in the result.
	IncludeCancelled bool
}

// UpcomingLesson pairs a lesson with its student's name.
type UpcomingLesson struct {
	Lesson      *lesson.Lesson
	StudentName string
}

// UpcomingLessonsHandler handles the UpcomingLessonsQuery.
type UpcomingLessonsHandler struct {
	lessonRepo  lesson.Repository
	studentRepo student.Repository
}

// NewUpcomingLessonsHandler creates an UpcomingLessonsHandler.
func NewUpcomingLessonsHandler(lessonRepo lesson.Repository, studentRepo student.Repository) *UpcomingLessonsHandler {
	return &UpcomingLessonsHandler{lessonRepo: lessonRepo, studentRepo: studentRepo}
}

// Handle returns the lessons of the window, start ascending.
func (h *UpcomingLessonsHandler) Handle(ctx context.Context, q UpcomingLessonsQuery) ([]UpcomingLesson, error) {
	from := q.From
	if from.IsZero() {
		from = timeutil.Now()
	}
	to := q.To
	if to.IsZero() {
		to = from.Add(24 * time.Hour)
	}

	lessons, err := h.lessonRepo.ListInRange(ctx, q.UserID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list lessons in range: %w", err)
	}

	// Student names are resolved once per student, not per lesson.
	names := make(map[int64]string)
	result := make([]UpcomingLesson, 0, len(lessons))

	for _, l := range lessons {
		if l.IsCancelled && !q.IncludeCancelled {
			continue
		}

		name, ok := names[l.StudentID]
		if !ok {
			if st, err := h.studentRepo.GetByID(ctx, q.UserID, l.StudentID); err == nil {
				name = st.Name
			} else {
				name = fmt.Sprintf("Ученик #%d", l.StudentID)
			}
			names[l.StudentID] = name
		}

		result = append(result, UpcomingLesson{Lesson: l, StudentName: name})
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Lesson.Date.Equal(result[j].Lesson.Date) {
			return result[i].Lesson.ID < result[j].Lesson.ID
		}
		return result[i].Lesson.Date.Before(result[j].Lesson.Date)
	})

	return result, nil
}
