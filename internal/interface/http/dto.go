package http

import (
	"time"

	"github.com/vocal-hub/vocal-studio-hub/internal/domain/finance"
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/lesson"
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/student"
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/subscription"
)

// ══════════════════════════════════════════════════════════════════════════════
// WIRE TYPES
// Field names are the JSON contract the calendar client builds on.
// ══════════════════════════════════════════════════════════════════════════════

// tokenRequest is the body of POST /api/auth/token.
type tokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// tokenResponse is the reply to a successful authentication.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6"`
}

// lessonResponse is the wire form of a lesson. The student is embedded
// in list responses so the calendar needs no extra round trips.
type lessonResponse struct {
	ID              int64            `json:"id"`
	StudentID       int64            `json:"student_id"`
	Date            time.Time        `json:"date"`
	DurationMinutes int              `json:"duration_minutes"`
	IsCompleted     bool             `json:"is_completed"`
	IsCancelled     bool             `json:"is_cancelled"`
	Notes           string           `json:"notes"`
	Student         *studentResponse `json:"student,omitempty"`
}

func toLessonResponse(l *lesson.Lesson, st *student.Student) lessonResponse {
	resp := lessonResponse{
		ID:              l.ID,
		StudentID:       l.StudentID,
		Date:            l.Date,
		DurationMinutes: l.DurationMinutes,
		IsCompleted:     l.IsCompleted,
		IsCancelled:     l.IsCancelled,
		Notes:           l.Notes,
	}
	if st != nil {
		s := toStudentResponse(st)
		resp.Student = &s
	}
	return resp
}

type createLessonRequest struct {
	StudentID       int64     `json:"student_id" validate:"required,gt=0"`
	Date            time.Time `json:"date" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"required,gt=0,lte=480"`
	Notes           string    `json:"notes" validate:"max=2000"`
}

// updateLessonRequest carries a partial update. Nil means "leave the
// field alone", mirroring exclude_unset semantics.
type updateLessonRequest struct {
	StudentID       *int64     `json:"student_id" validate:"omitempty,gt=0"`
	Date            *time.Time `json:"date"`
	DurationMinutes *int       `json:"duration_minutes" validate:"omitempty,gt=0,lte=480"`
	Notes           *string    `json:"notes" validate:"omitempty,max=2000"`
	IsCompleted     *bool      `json:"is_completed"`
	IsCancelled     *bool      `json:"is_cancelled"`
}

func (r updateLessonRequest) toPatch() lesson.Patch {
	return lesson.Patch{
		StudentID:       r.StudentID,
		Date:            r.Date,
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
		IsCompleted:     r.IsCompleted,
		IsCancelled:     r.IsCancelled,
	}
}

// studentResponse is the wire form of a student.
type studentResponse struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Notes            string `json:"notes"`
	RemainingLessons int    `json:"remaining_lessons"`
}

func toStudentResponse(st *student.Student) studentResponse {
	return studentResponse{
		ID:               st.ID,
		Name:             st.Name,
		Email:            st.Email,
		Phone:            st.Phone,
		Notes:            st.Notes,
		RemainingLessons: st.RemainingLessons,
	}
}

type createStudentRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"max=32"`
	Notes string `json:"notes" validate:"max=2000"`
}

type updateStudentRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone" validate:"omitempty,max=32"`
	Notes *string `json:"notes" validate:"omitempty,max=2000"`
}

// subscriptionResponse is the wire form of a subscription.
type subscriptionResponse struct {
	ID           int64     `json:"id"`
	StudentID    int64     `json:"student_id"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	LessonsCount int       `json:"lessons_count"`
	Price        int64     `json:"price"`
	Notes        string    `json:"notes"`
}

func toSubscriptionResponse(sub *subscription.Subscription) subscriptionResponse {
	return subscriptionResponse{
		ID:           sub.ID,
		StudentID:    sub.StudentID,
		StartDate:    sub.StartDate,
		EndDate:      sub.EndDate,
		LessonsCount: sub.LessonsCount,
		Price:        sub.Price,
		Notes:        sub.Notes,
	}
}

type purchaseSubscriptionRequest struct {
	StudentID    int64     `json:"student_id" validate:"required,gt=0"`
	StartDate    time.Time `json:"start_date" validate:"required"`
	EndDate      time.Time `json:"end_date" validate:"required"`
	LessonsCount int       `json:"lessons_count" validate:"required,gt=0,lte=100"`
	Price        int64     `json:"price" validate:"gte=0"`
	Notes        string    `json:"notes" validate:"max=2000"`
}

// purchaseSubscriptionResponse includes the updated student balance so
// the frontend can refresh it without a second request.
type purchaseSubscriptionResponse struct {
	Subscription     subscriptionResponse `json:"subscription"`
	RemainingLessons int                  `json:"remaining_lessons"`
}

// ledgerResponse is the wire form of an expense or income record.
type ledgerResponse struct {
	ID          int64     `json:"id"`
	Date        time.Time `json:"date"`
	Amount      int64     `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
}

func toExpenseResponse(e *finance.Expense) ledgerResponse {
	return ledgerResponse{
		ID:          e.ID,
		Date:        e.Date,
		Amount:      e.Amount,
		Category:    e.Category,
		Description: e.Description,
	}
}

func toIncomeResponse(i *finance.Income) ledgerResponse {
	return ledgerResponse{
		ID:          i.ID,
		Date:        i.Date,
		Amount:      i.Amount,
		Category:    i.Category,
		Description: i.Description,
	}
}

type createLedgerRequest struct {
	Date        time.Time `json:"date" validate:"required"`
	Amount      int64     `json:"amount" validate:"required,gt=0"`
	Category    string    `json:"category" validate:"required,min=2,max=64"`
	Description string    `json:"description" validate:"max=2000"`
}

// rentResponse is the wire form of the rent settings.
type rentResponse struct {
	Amount     int64 `json:"amount"`
	PaymentDay int   `json:"payment_day"`
}

type putRentRequest struct {
	Amount     int64 `json:"amount" validate:"gte=0"`
	PaymentDay int   `json:"payment_day" validate:"required,gte=1,lte=28"`
}

// upcomingLessonResponse pairs a lesson with its student's name for
// the reminders preview.
type upcomingLessonResponse struct {
	lessonResponse
	StudentName string `json:"student_name"`
}
