// Package studio implements the HTTP client for the studio backend API.
// The calendar view-model talks to the backend exclusively through this
// package: bearer authentication, error classification for the retry
// layer, and a circuit breaker against a down backend.
package studio

import "time"

// ══════════════════════════════════════════════════════════════════════════════
// WIRE TYPES
// Field names follow the backend's JSON contract.
// ══════════════════════════════════════════════════════════════════════════════

// LessonDTO is the wire form of a lesson. The backend embeds the
// student so list responses need no extra round trips for names.
type LessonDTO struct {
	ID              int64       `json:"id"`
	StudentID       int64       `json:"student_id"`
	Date            time.Time   `json:"date"`
	DurationMinutes int         `json:"duration_minutes"`
	IsCompleted     bool        `json:"is_completed"`
	IsCancelled     bool        `json:"is_cancelled"`
	Notes           string      `json:"notes"`
	Student         *StudentDTO `json:"student,omitempty"`
}

// StudentDTO is the wire form of a student.
type StudentDTO struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Notes            string `json:"notes"`
	RemainingLessons int    `json:"remaining_lessons"`
}

// CreateLessonRequest is the body of POST /api/lessons.
type CreateLessonRequest struct {
	StudentID       int64     `json:"student_id"`
	Date            time.Time `json:"date"`
	DurationMinutes int       `json:"duration_minutes"`
	Notes           string    `json:"notes,omitempty"`
}

// UpdateLessonRequest is the body of PATCH /api/lessons/{id}.
// Nil fields are omitted, matching the backend's partial-update
// semantics.
type UpdateLessonRequest struct {
	StudentID       *int64     `json:"student_id,omitempty"`
	Date            *time.Time `json:"date,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	IsCompleted     *bool      `json:"is_completed,omitempty"`
	IsCancelled     *bool      `json:"is_cancelled,omitempty"`
}

// TokenRequest is the body of POST /api/auth/token.
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is the reply to a successful authentication.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ErrorResponse is the backend's error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
