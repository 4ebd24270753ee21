package calendar

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vocal-hub/vocal-studio-hub/internal/domain/lesson"
	"github.com/vocal-hub/vocal-studio-hub/pkg/logger"
)

// Phase is the dispatcher's interaction state. The machine is strictly
// tagged: exactly one phase at a time, and every transition below is
// the only way to move between them.
//
//	Idle ──OpenForCreate/OpenForEdit──▶ DialogOpen
//	DialogOpen ──Submit──▶ Submitting ──ok──▶ Idle
//	                                 └─fail─▶ DialogOpen (draft intact)
//	DialogOpen ──Close──▶ Idle
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseCreating
	PhaseEditing
	PhaseSubmitting
)

// String returns the phase name for logs.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCreating:
		return "creating"
	case PhaseEditing:
		return "editing"
	case PhaseSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// DefaultDurationMinutes pre-fills the duration of a new lesson draft.
const DefaultDurationMinutes = 60

// Draft is the editable form state of the lesson dialog.
type Draft struct {
	StudentID       int64
	Start           time.Time
	DurationMinutes int
	Notes           string
}

// toLesson converts the draft into a lesson for the create call.
func (d Draft) toLesson() *lesson.Lesson {
	return &lesson.Lesson{
		StudentID:       d.StudentID,
		Date:            d.Start,
		DurationMinutes: d.DurationMinutes,
		Notes:           d.Notes,
	}
}

// toPatch converts the draft into a partial update for the edit call.
func (d Draft) toPatch() lesson.Patch {
	start := d.Start
	duration := d.DurationMinutes
	notes := d.Notes
	studentID := d.StudentID
	return lesson.Patch{
		Date:            &start,
		DurationMinutes: &duration,
		Notes:           &notes,
		StudentID:       &studentID,
	}
}

// Dispatcher errors.
var (
	// ErrSubmitInFlight reports a Submit while a previous one is still
	// running. The repeat is dropped, not queued.
	ErrSubmitInFlight = errors.New("submit already in flight")

	// ErrDialogClosed reports a Submit with no dialog open.
	ErrDialogClosed = errors.New("no dialog open")

	// ErrActionInFlight reports a repeated complete/cancel/delete click
	// while the first call is still running.
	ErrActionInFlight = errors.New("action already in flight")
)

// Dispatcher turns user actions into store mutations. It owns the
// dialog state machine and guards against double submits: while a
// backend call is in flight, repeated Submit calls and repeated
// per-lesson action clicks return in-flight errors without touching
// the network.
type Dispatcher struct {
	store *Store
	log   *logger.Logger

	mu        sync.Mutex
	phase     Phase
	prevPhase Phase // phase to restore when a submit fails
	draft     Draft
	editingID int64
	submitErr error
	inFlight  map[int64]bool // per-lesson direct actions
}

// NewDispatcher creates a Dispatcher over the store.
func NewDispatcher(store *Store, log *logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.Default()
	}
	return &Dispatcher{
		store:    store,
		log:      log.With(logger.Component("calendar.dispatch")),
		inFlight: make(map[int64]bool),
	}
}

// Phase returns the current interaction phase.
func (d *Dispatcher) Phase() Phase {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.phase
}

// Draft returns the current dialog draft.
func (d *Dispatcher) Draft() Draft {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.draft
}

// SetDraft replaces the dialog draft with edited form values. Ignored
// outside an open dialog.
func (d *Dispatcher) SetDraft(draft Draft) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.phase == PhaseCreating || d.phase == PhaseEditing {
		d.draft = draft
	}
}

// SubmitErr returns the error of the last failed submit, cleared on the
// next successful submit or dialog close.
func (d *Dispatcher) SubmitErr() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.submitErr
}

// ══════════════════════════════════════════════════════════════════════════════
// DIALOG TRANSITIONS
// ══════════════════════════════════════════════════════════════════════════════

// OpenForCreate opens the dialog for a new lesson in the clicked slot.
// Ignored while a submit is in flight.
func (d *Dispatcher) OpenForCreate(slot time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.phase == PhaseSubmitting {
		return
	}
	d.phase = PhaseCreating
	d.editingID = 0
	d.submitErr = nil
	d.draft = Draft{Start: slot, DurationMinutes: DefaultDurationMinutes}
}

// OpenForEdit opens the dialog pre-filled from an existing lesson.
// Ignored while a submit is in flight.
func (d *Dispatcher) OpenForEdit(l *lesson.Lesson) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.phase == PhaseSubmitting {
		return
	}
	d.phase = PhaseEditing
	d.editingID = l.ID
	d.submitErr = nil
	d.draft = Draft{
		StudentID:       l.StudentID,
		Start:           l.Date,
		DurationMinutes: l.DurationMinutes,
		Notes:           l.Notes,
	}
}

// Close dismisses the dialog and discards the draft. Ignored while a
// submit is in flight.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.phase == PhaseSubmitting {
		return
	}
	d.phase = PhaseIdle
	d.editingID = 0
	d.submitErr = nil
	d.draft = Draft{}
}

// ══════════════════════════════════════════════════════════════════════════════
// SUBMIT
// ══════════════════════════════════════════════════════════════════════════════

// Submit validates the draft and sends it to the backend. Validation
// failures keep the dialog open and never reach the network. While the
// call is running the phase is Submitting and repeated Submit calls
// return ErrSubmitInFlight. On success the dialog closes; on backend
// failure it reopens with the draft intact and the error exposed via
// SubmitErr.
func (d *Dispatcher) Submit(ctx context.Context) error {
	d.mu.Lock()
	switch d.phase {
	case PhaseSubmitting:
		d.mu.Unlock()
		return ErrSubmitInFlight
	case PhaseCreating, PhaseEditing:
	default:
		d.mu.Unlock()
		return ErrDialogClosed
	}

	draft := d.draft
	if err := draft.toLesson().Validate(); err != nil {
		d.submitErr = err
		d.mu.Unlock()
		d.log.Debug("draft validation failed", logger.Err(err))
		return err
	}

	d.prevPhase = d.phase
	editingID := d.editingID
	d.phase = PhaseSubmitting
	d.submitErr = nil
	d.mu.Unlock()

	var err error
	if editingID == 0 {
		_, err = d.store.Create(ctx, draft.toLesson())
	} else {
		_, err = d.store.Update(ctx, editingID, draft.toPatch())
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		// Reopen the dialog with the user's input preserved.
		d.phase = d.prevPhase
		d.submitErr = err
		d.log.Warn("submit failed",
			logger.Err(err),
			logger.String("phase", d.prevPhase.String()))
		return err
	}

	d.phase = PhaseIdle
	d.editingID = 0
	d.draft = Draft{}
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// DIRECT ACTIONS
// Complete, cancel, and delete skip the dialog. Each lesson gets at
// most one in-flight call; repeat clicks return ErrActionInFlight.
// ══════════════════════════════════════════════════════════════════════════════

// MarkCompleted marks the lesson completed.
func (d *Dispatcher) MarkCompleted(ctx context.Context, id int64) error {
	return d.direct(ctx, id, d.store.Complete)
}

// CancelLesson cancels the lesson, keeping it on the calendar.
func (d *Dispatcher) CancelLesson(ctx context.Context, id int64) error {
	return d.direct(ctx, id, d.store.Cancel)
}

// DeleteLesson removes the lesson from the schedule.
func (d *Dispatcher) DeleteLesson(ctx context.Context, id int64) error {
	return d.direct(ctx, id, func(ctx context.Context, id int64) (*lesson.Lesson, error) {
		return nil, d.store.Remove(ctx, id)
	})
}

func (d *Dispatcher) direct(ctx context.Context, id int64, op func(context.Context, int64) (*lesson.Lesson, error)) error {
	d.mu.Lock()
	if d.inFlight[id] {
		d.mu.Unlock()
		return ErrActionInFlight
	}
	d.inFlight[id] = true
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		delete(d.inFlight, id)
		d.mu.Unlock()
	}()

	_, err := op(ctx, id)
	return err
}
