// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"
	"fmt"
	"time"

	"github.com/vocal-hub/vocal-studio-hub/internal/domain/lesson"
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/shared"
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/student"
	"github.com/vocal-hub/vocal-studio-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// SCHEDULE LESSON COMMAND
// Puts a new lesson on the calendar after checking the student exists.
// ══════════════════════════════════════════════════════════════════════════════

// ScheduleLessonCommand contains the data to schedule a lesson.
type ScheduleLessonCommand struct {
	UserID          int64
	StudentID       int64
	Date            time.Time
	DurationMinutes int
	Notes           string
}

// ScheduleLessonResult contains the scheduled lesson.
type ScheduleLessonResult struct {
	Lesson *lesson.Lesson
}

// ScheduleLessonHandler handles the ScheduleLessonCommand.
type ScheduleLessonHandler struct {
	lessonRepo  lesson.Repository
	studentRepo student.Repository
	publisher   shared.EventPublisher
	log         *logger.Logger
}

// NewScheduleLessonHandler creates a ScheduleLessonHandler.
func NewScheduleLessonHandler(
	lessonRepo lesson.Repository,
	studentRepo student.Repository,
	publisher shared.EventPublisher,
	log *logger.Logger,
) *ScheduleLessonHandler {
	if log == nil {
		log = logger.Default()
	}
	return &ScheduleLessonHandler{
		lessonRepo:  lessonRepo,
		studentRepo: studentRepo,
		publisher:   publisher,
		log:         log.With(logger.Component("schedule_lesson")),
	}
}

// Handle executes the command.
func (h *ScheduleLessonHandler) Handle(ctx context.Context, cmd ScheduleLessonCommand) (*ScheduleLessonResult, error) {
	l := &lesson.Lesson{
		UserID:          cmd.UserID,
		StudentID:       cmd.StudentID,
		Date:            cmd.Date,
		DurationMinutes: cmd.DurationMinutes,
		Notes:           cmd.Notes,
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}

	// The lesson must point at an existing student of the account.
	if _, err := h.studentRepo.GetByID(ctx, cmd.UserID, cmd.StudentID); err != nil {
		return nil, fmt.Errorf("resolve student %d: %w", cmd.StudentID, err)
	}

	if err := h.lessonRepo.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("create lesson: %w", err)
	}

	h.log.Info("lesson scheduled",
		logger.LessonID(l.ID),
		logger.StudentID(l.StudentID),
		logger.Time("date", l.Date))

	if h.publisher != nil {
		event := shared.NewLessonScheduledEvent(l.ID, l.StudentID, l.Date, l.DurationMinutes)
		if err := h.publisher.Publish(ctx, event); err != nil {
			h.log.Warn("event publish failed", logger.Err(err))
		}
	}

	return &ScheduleLessonResult{Lesson: l}, nil
}
