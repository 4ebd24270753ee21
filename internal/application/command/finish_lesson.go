package command

import (
	"context"
	"fmt"

	"github.com/vocal-hub/vocal-studio-hub/internal/domain/lesson"
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/shared"
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/student"
	"github.com/vocal-hub/vocal-studio-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// COMPLETE / CANCEL LESSON COMMANDS
// Completing a lesson consumes one paid lesson from the student's
// balance. Both operations are idempotent: repeating them changes
// nothing and returns the current state.
// ══════════════════════════════════════════════════════════════════════════════

// CompleteLessonCommand marks a lesson as held.
type CompleteLessonCommand struct {
	UserID   int64
	LessonID int64
}

// CompleteLessonResult contains the updated lesson and balance.
type CompleteLessonResult struct {
	Lesson *lesson.Lesson

	// RemainingLessons is the student's balance after completion.
	RemainingLessons int

	// AlreadyCompleted is true when the lesson was completed earlier
	// and this call changed nothing.
	AlreadyCompleted bool
}

// CompletionStore persists the completed lesson together with the
// student's decremented balance. Implementations must make the two
// writes atomic: either the lesson is marked held and the balance is
// charged, or neither happens. A partial write would strand the
// charge, because a retry lands on the already-completed branch.
type CompletionStore interface {
	SaveCompletion(ctx context.Context, l *lesson.Lesson, st *student.Student) error
}

// FinishLessonHandler handles completing and cancelling lessons.
type FinishLessonHandler struct {
	lessonRepo  lesson.Repository
	studentRepo student.Repository
	completions CompletionStore
	publisher   shared.EventPublisher
	log         *logger.Logger
}

// NewFinishLessonHandler creates a FinishLessonHandler.
func NewFinishLessonHandler(
	lessonRepo lesson.Repository,
	studentRepo student.Repository,
	completions CompletionStore,
	publisher shared.EventPublisher,
	log *logger.Logger,
) *FinishLessonHandler {
	if log == nil {
		log = logger.Default()
	}
	return &FinishLessonHandler{
		lessonRepo:  lessonRepo,
		studentRepo: studentRepo,
		completions: completions,
		publisher:   publisher,
		log:         log.With(logger.Component("finish_lesson")),
	}
}

// HandleComplete executes the complete command.
func (h *FinishLessonHandler) HandleComplete(ctx context.Context, cmd CompleteLessonCommand) (*CompleteLessonResult, error) {
	l, err := h.lessonRepo.GetByID(ctx, cmd.UserID, cmd.LessonID)
	if err != nil {
		return nil, err
	}

	if l.IsCancelled {
		return nil, lesson.ErrLessonCancelled
	}

	st, err := h.studentRepo.GetByID(ctx, cmd.UserID, l.StudentID)
	if err != nil {
		return nil, fmt.Errorf("resolve student %d: %w", l.StudentID, err)
	}

	if !l.Complete() {
		return &CompleteLessonResult{
			Lesson:           l,
			RemainingLessons: st.RemainingLessons,
			AlreadyCompleted: true,
		}, nil
	}

	st.ConsumeLesson()
	if err := h.completions.SaveCompletion(ctx, l, st); err != nil {
		return nil, fmt.Errorf("save completion: %w", err)
	}

	h.log.Info("lesson completed",
		logger.LessonID(l.ID),
		logger.StudentID(st.ID),
		logger.Int("remaining_lessons", st.RemainingLessons))

	if h.publisher != nil {
		event := shared.NewLessonCompletedEvent(l.ID, st.ID, l.Date, l.DurationMinutes, st.RemainingLessons)
		if err := h.publisher.Publish(ctx, event); err != nil {
			h.log.Warn("event publish failed", logger.Err(err))
		}
	}

	return &CompleteLessonResult{
		Lesson:           l,
		RemainingLessons: st.RemainingLessons,
	}, nil
}

// CancelLessonCommand marks a lesson as cancelled. The lesson stays in
// the collection so it still shows up struck through on the calendar.
type CancelLessonCommand struct {
	UserID   int64
	LessonID int64
}

// HandleCancel executes the cancel command.
func (h *FinishLessonHandler) HandleCancel(ctx context.Context, cmd CancelLessonCommand) (*lesson.Lesson, error) {
	l, err := h.lessonRepo.GetByID(ctx, cmd.UserID, cmd.LessonID)
	if err != nil {
		return nil, err
	}

	if !l.Cancel() {
		return l, nil
	}

	if err := h.lessonRepo.Update(ctx, l); err != nil {
		return nil, fmt.Errorf("update lesson: %w", err)
	}

	h.log.Info("lesson cancelled", logger.LessonID(l.ID), logger.StudentID(l.StudentID))
	return l, nil
}
