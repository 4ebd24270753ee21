package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types. Each event represents something significant that
// happened in the studio's schedule or ledger.
const (
	// Lesson events
	EventLessonScheduled EventType = "lesson.scheduled"
	EventLessonUpdated   EventType = "lesson.updated"
	EventLessonCompleted EventType = "lesson.completed"
	EventLessonCancelled EventType = "lesson.cancelled"
	EventLessonDeleted   EventType = "lesson.deleted"

	// Subscription events
	EventSubscriptionPurchased EventType = "subscription.purchased"
	EventSubscriptionExhausted EventType = "subscription.exhausted"

	// Finance events
	EventExpenseRecorded EventType = "finance.expense_recorded"
	EventIncomeRecorded  EventType = "finance.income_recorded"
	EventRentPosted      EventType = "finance.rent_posted"

	// Notification events
	EventNotificationSent   EventType = "notification.sent"
	EventNotificationFailed EventType = "notification.failed"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the entity that produced this event.
	AggregateID() int64
}

// EventHandler processes a published event.
type EventHandler interface {
	Handle(ctx context.Context, event Event) error
}

// EventHandlerFunc adapts a function to the EventHandler interface.
type EventHandlerFunc func(ctx context.Context, event Event) error

// Handle implements EventHandler.
func (f EventHandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// EventPublisher publishes domain events to interested handlers.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	ID          string    `json:"id"`
	Type        EventType `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	AggregateId int64     `json:"aggregate_id"`
}

// EventType implements Event.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// OccurredAt implements Event.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID implements Event.
func (e BaseEvent) AggregateID() int64 {
	return e.AggregateId
}

// NewBaseEvent creates a new base event with a unique ID.
func NewBaseEvent(eventType EventType, aggregateID int64) BaseEvent {
	return BaseEvent{
		ID:          uuid.NewString(),
		Type:        eventType,
		Timestamp:   time.Now(),
		AggregateId: aggregateID,
	}
}

// LessonScheduledEvent is emitted when a new lesson lands on the calendar.
type LessonScheduledEvent struct {
	BaseEvent
	StudentID       int64     `json:"student_id"`
	Date            time.Time `json:"date"`
	DurationMinutes int       `json:"duration_minutes"`
}

// NewLessonScheduledEvent creates a LessonScheduledEvent.
func NewLessonScheduledEvent(lessonID, studentID int64, date time.Time, duration int) LessonScheduledEvent {
	return LessonScheduledEvent{
		BaseEvent:       NewBaseEvent(EventLessonScheduled, lessonID),
		StudentID:       studentID,
		Date:            date,
		DurationMinutes: duration,
	}
}

// LessonCompletedEvent is emitted when a lesson is marked completed.
type LessonCompletedEvent struct {
	BaseEvent
	StudentID        int64     `json:"student_id"`
	Date             time.Time `json:"date"`
	DurationMinutes  int       `json:"duration_minutes"`
	RemainingLessons int       `json:"remaining_lessons"`
}

// NewLessonCompletedEvent creates a LessonCompletedEvent.
func NewLessonCompletedEvent(lessonID, studentID int64, date time.Time, duration, remaining int) LessonCompletedEvent {
	return LessonCompletedEvent{
		BaseEvent:        NewBaseEvent(EventLessonCompleted, lessonID),
		StudentID:        studentID,
		Date:             date,
		DurationMinutes:  duration,
		RemainingLessons: remaining,
	}
}

// SubscriptionPurchasedEvent is emitted when a student buys an abonement.
type SubscriptionPurchasedEvent struct {
	BaseEvent
	StudentID    int64 `json:"student_id"`
	LessonsCount int   `json:"lessons_count"`
	Price        int64 `json:"price"`
}

// NewSubscriptionPurchasedEvent creates a SubscriptionPurchasedEvent.
func NewSubscriptionPurchasedEvent(subscriptionID, studentID int64, lessonsCount int, price int64) SubscriptionPurchasedEvent {
	return SubscriptionPurchasedEvent{
		BaseEvent:    NewBaseEvent(EventSubscriptionPurchased, subscriptionID),
		StudentID:    studentID,
		LessonsCount: lessonsCount,
		Price:        price,
	}
}

// RentPostedEvent is emitted when the recurring rent expense is posted.
type RentPostedEvent struct {
	BaseEvent
	Amount int64     `json:"amount"`
	Month  time.Time `json:"month"`
}

// NewRentPostedEvent creates a RentPostedEvent.
func NewRentPostedEvent(expenseID int64, amount int64, month time.Time) RentPostedEvent {
	return RentPostedEvent{
		BaseEvent: NewBaseEvent(EventRentPosted, expenseID),
		Amount:    amount,
		Month:     month,
	}
}
