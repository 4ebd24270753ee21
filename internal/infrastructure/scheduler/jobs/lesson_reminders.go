package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/vocal-hub/vocal-studio-hub/internal/domain/lesson"
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/student"
	"github.com/vocal-hub/vocal-studio-hub/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// LESSON REMINDERS JOB
// ══════════════════════════════════════════════════════════════════════════════

// Notifier delivers reminder messages to the teacher's chat.
type Notifier interface {
	SendMessage(ctx context.Context, text string) error
	Enabled() bool
}

// LessonRemindersConfig contains configuration for the reminders job.
type LessonRemindersConfig struct {
	// UserID is the teacher's account whose schedule is watched.
	UserID int64

	// Horizon is how far ahead the job looks for upcoming lessons.
	Horizon time.Duration
}

// DefaultLessonRemindersConfig returns sensible defaults.
func DefaultLessonRemindersConfig(userID int64) LessonRemindersConfig {
	return LessonRemindersConfig{
		UserID:  userID,
		Horizon: 24 * time.Hour,
	}
}

// LessonRemindersJob sends a Telegram digest of upcoming lessons. It
// runs hourly, but each lesson is reminded about at most once: sent
// reminders are tracked in memory and pruned when the lesson start
// passes. Reminders respect the quiet-hours window.
type LessonRemindersJob struct {
	lessonRepo  lesson.Repository
	studentRepo student.Repository
	notifier    Notifier
	logger      *slog.Logger
	config      LessonRemindersConfig

	mu   sync.Mutex
	sent map[int64]time.Time // lesson ID -> lesson start
}

// NewLessonRemindersJob creates the job.
func NewLessonRemindersJob(
	lessonRepo lesson.Repository,
	studentRepo student.Repository,
	notifier Notifier,
	logger *slog.Logger,
	config LessonRemindersConfig,
) *LessonRemindersJob {
	if logger == nil {
		logger = slog.Default()
	}
	if config.Horizon <= 0 {
		config.Horizon = 24 * time.Hour
	}

	return &LessonRemindersJob{
		lessonRepo:  lessonRepo,
		studentRepo: studentRepo,
		notifier:    notifier,
		logger:      logger,
		config:      config,
		sent:        make(map[int64]time.Time),
	}
}

// Name returns the job name.
func (j *LessonRemindersJob) Name() string {
	return "lesson_reminders"
}

// Description returns a human-readable description.
func (j *LessonRemindersJob) Description() string {
	return "Sends a Telegram digest of upcoming lessons"
}

// Run executes the reminders job.
func (j *LessonRemindersJob) Run(ctx context.Context) error {
	if j.notifier == nil || !j.notifier.Enabled() {
		j.logger.Debug("reminders skipped: notifications disabled")
		return nil
	}

	now := timeutil.Now()
	if !timeutil.IsSafeNotificationTime(now) {
		j.logger.Debug("reminders skipped: quiet hours", "hour", now.Hour())
		return nil
	}

	lessons, err := j.lessonRepo.ListInRange(ctx, j.config.UserID, now, now.Add(j.config.Horizon))
	if err != nil {
		return fmt.Errorf("list upcoming lessons: %w", err)
	}

	pending := j.filterPending(lessons, now)
	if len(pending) == 0 {
		return nil
	}

	message := j.buildDigest(ctx, pending)
	if err := j.notifier.SendMessage(ctx, message); err != nil {
		return fmt.Errorf("send reminder digest: %w", err)
	}

	j.markSent(pending)
	j.logger.Info("reminder digest sent", "lessons", len(pending))
	return nil
}

// filterPending drops cancelled lessons and ones already reminded
// about, and prunes stale entries from the sent set.
func (j *LessonRemindersJob) filterPending(lessons []*lesson.Lesson, now time.Time) []*lesson.Lesson {
	j.mu.Lock()
	defer j.mu.Unlock()

	for id, start := range j.sent {
		if start.Before(now) {
			delete(j.sent, id)
		}
	}

	pending := make([]*lesson.Lesson, 0, len(lessons))
	for _, l := range lessons {
		if l.IsCancelled || l.IsCompleted {
			continue
		}
		if _, ok := j.sent[l.ID]; ok {
			continue
		}
		pending = append(pending, l)
	}
	return pending
}

func (j *LessonRemindersJob) markSent(lessons []*lesson.Lesson) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, l := range lessons {
		j.sent[l.ID] = l.Date
	}
}

// buildDigest formats the reminder message in Russian.
func (j *LessonRemindersJob) buildDigest(ctx context.Context, lessons []*lesson.Lesson) string {
	var sb strings.Builder
	sb.WriteString("<b>Ближайшие занятия</b>\n\n")

	for _, l := range lessons {
		name := j.studentName(ctx, l.StudentID)
		sb.WriteString(fmt.Sprintf("%s %s-%s  %s",
			timeutil.FormatStudio(l.Date, "02.01"),
			timeutil.FormatTimeStr(l.Date),
			timeutil.FormatTimeStr(l.End()),
			name,
		))
		if l.Notes != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", l.Notes))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (j *LessonRemindersJob) studentName(ctx context.Context, studentID int64) string {
	s, err := j.studentRepo.GetByID(ctx, j.config.UserID, studentID)
	if err != nil {
		return fmt.Sprintf("Ученик #%d", studentID)
	}
	return s.Name
}
