package studio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/vocal-hub/vocal-studio-hub/internal/calendar"
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/lesson"
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/shared"
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/student"
	"github.com/vocal-hub/vocal-studio-hub/pkg/circuitbreaker"
	"github.com/vocal-hub/vocal-studio-hub/pkg/retry"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// ClientConfig contains configuration for the studio API client.
type ClientConfig struct {
	// BaseURL is the backend base URL, e.g. "http://localhost:8080".
	BaseURL string

	// Timeout is the HTTP request timeout.
	Timeout time.Duration

	// Logger for structured logging.
	Logger *slog.Logger
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig(baseURL string) ClientConfig {
	return ClientConfig{
		BaseURL: baseURL,
		Timeout: 15 * time.Second,
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// CLIENT
// ══════════════════════════════════════════════════════════════════════════════

// Client talks to the studio backend. It implements calendar.Client.
//
// Error contract: transport failures and 5xx responses come back
// wrapped with retry.Retryable so the store's load retrier picks them
// up; 4xx responses are wrapped with retry.Permanent. A 401 also
// invalidates the session before returning.
type Client struct {
	config  ClientConfig
	http    *http.Client
	logger  *slog.Logger
	session *calendar.Session
	breaker *circuitbreaker.CircuitBreaker
	mapper  *Mapper
}

// NewClient creates a studio API client bound to the session.
func NewClient(config ClientConfig, session *calendar.Session) *Client {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		config:  config,
		http:    &http.Client{Timeout: config.Timeout},
		logger:  logger,
		session: session,
		mapper:  NewMapper(),
	}
	c.breaker = circuitbreaker.StudioAPIBreaker(func(name string, from, to circuitbreaker.State) {
		logger.Warn("circuit breaker state change",
			"breaker", name, "from", from.String(), "to", to.String())
	})
	return c
}

var _ calendar.Client = (*Client)(nil)

// ══════════════════════════════════════════════════════════════════════════════
// AUTHENTICATION
// ══════════════════════════════════════════════════════════════════════════════

// Login exchanges credentials for a bearer token and installs it into
// the session. Login bypasses the session token and the retry layer.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body, err := json.Marshal(TokenRequest{Username: username, Password: password})
	if err != nil {
		return fmt.Errorf("marshal token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.BaseURL+"/api/auth/token", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return unauthorizedError(respBody)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("auth failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var token TokenResponse
	if err := json.Unmarshal(respBody, &token); err != nil {
		return fmt.Errorf("parse token response: %w", err)
	}

	c.session.SetToken(token.AccessToken)
	return nil
}

func unauthorizedError(body []byte) error {
	var e ErrorResponse
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return fmt.Errorf("%w: %s", shared.ErrUnauthorized, e.Error)
	}
	return shared.ErrUnauthorized
}

// ══════════════════════════════════════════════════════════════════════════════
// LESSON OPERATIONS
// ══════════════════════════════════════════════════════════════════════════════

// ListLessons returns lessons starting in [from, to).
func (c *Client) ListLessons(ctx context.Context, from, to time.Time) ([]*lesson.Lesson, error) {
	params := url.Values{}
	params.Set("from", from.Format(time.RFC3339))
	params.Set("to", to.Format(time.RFC3339))

	var dtos []LessonDTO
	if err := c.doRequest(ctx, http.MethodGet, "/api/lessons?"+params.Encode(), nil, &dtos); err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}

	return c.mapper.ToLessons(dtos), nil
}

// ListStudents returns all students of the account.
func (c *Client) ListStudents(ctx context.Context) ([]*student.Student, error) {
	var dtos []StudentDTO
	if err := c.doRequest(ctx, http.MethodGet, "/api/students", nil, &dtos); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}

	return c.mapper.ToStudents(dtos), nil
}

// CreateLesson schedules a lesson.
func (c *Client) CreateLesson(ctx context.Context, l *lesson.Lesson) (*lesson.Lesson, error) {
	var dto LessonDTO
	if err := c.doRequest(ctx, http.MethodPost, "/api/lessons", c.mapper.FromDraft(l), &dto); err != nil {
		return nil, fmt.Errorf("create lesson: %w", err)
	}

	return c.mapper.ToLesson(dto), nil
}

// UpdateLesson applies a partial update.
func (c *Client) UpdateLesson(ctx context.Context, id int64, p lesson.Patch) (*lesson.Lesson, error) {
	path := fmt.Sprintf("/api/lessons/%d", id)

	var dto LessonDTO
	if err := c.doRequest(ctx, http.MethodPatch, path, c.mapper.FromPatch(p), &dto); err != nil {
		return nil, fmt.Errorf("update lesson %d: %w", id, err)
	}

	return c.mapper.ToLesson(dto), nil
}

// CompleteLesson marks the lesson completed. The backend decrements the
// student's remaining lesson balance as part of the same call.
func (c *Client) CompleteLesson(ctx context.Context, id int64) (*lesson.Lesson, error) {
	path := fmt.Sprintf("/api/lessons/%d/complete", id)

	var dto LessonDTO
	if err := c.doRequest(ctx, http.MethodPost, path, nil, &dto); err != nil {
		return nil, fmt.Errorf("complete lesson %d: %w", id, err)
	}

	return c.mapper.ToLesson(dto), nil
}

// CancelLesson marks the lesson cancelled.
func (c *Client) CancelLesson(ctx context.Context, id int64) (*lesson.Lesson, error) {
	path := fmt.Sprintf("/api/lessons/%d/cancel", id)

	var dto LessonDTO
	if err := c.doRequest(ctx, http.MethodPost, path, nil, &dto); err != nil {
		return nil, fmt.Errorf("cancel lesson %d: %w", id, err)
	}

	return c.mapper.ToLesson(dto), nil
}

// DeleteLesson removes a lesson.
func (c *Client) DeleteLesson(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/lessons/%d", id)

	if err := c.doRequest(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete lesson %d: %w", id, err)
	}

	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// REQUEST EXECUTION
// ══════════════════════════════════════════════════════════════════════════════

// doRequest performs one authenticated request through the circuit
// breaker and classifies the outcome for the retry layer. It never
// retries by itself: bulk-load retries belong to the calendar store.
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	return c.breaker.Execute(ctx, func(ctx context.Context) error {
		return c.doSingleRequest(ctx, method, path, body, result)
	})
}

func (c *Client) doSingleRequest(ctx context.Context, method, path string, body, result interface{}) error {
	token, err := c.session.Token()
	if err != nil {
		return retry.Permanent(err)
	}

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return retry.Permanent(fmt.Errorf("marshal body: %w", err))
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, bodyReader)
	if err != nil {
		return retry.Permanent(fmt.Errorf("create request: %w", err))
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	c.logger.Debug("studio api request", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		// Network-level failure, worth retrying on bulk loads.
		return retry.Retryable(fmt.Errorf("http request: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return retry.Retryable(fmt.Errorf("read response: %w", err))
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		// The token is dead for every future call too.
		c.session.Invalidate()
		return retry.Permanent(unauthorizedError(respBody))

	case resp.StatusCode == http.StatusNotFound:
		return retry.Permanent(fmt.Errorf("%w: %s %s", shared.ErrNotFound, method, path))

	case resp.StatusCode >= 500:
		return retry.Retryable(fmt.Errorf("server error %d: %s", resp.StatusCode, string(respBody)))

	case resp.StatusCode >= 400:
		return retry.Permanent(apiError(resp.StatusCode, respBody))
	}

	if result == nil || len(respBody) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return retry.Permanent(fmt.Errorf("parse response: %w", err))
	}

	return nil
}

func apiError(status int, body []byte) error {
	var e ErrorResponse
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return fmt.Errorf("api error %d: %s", status, e.Error)
	}
	return fmt.Errorf("api error %d", status)
}
