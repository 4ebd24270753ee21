// Package telegram implements a minimal Telegram Bot API client used by
// the worker to deliver lesson reminders to the teacher's chat.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/vocal-hub/vocal-studio-hub/pkg/circuitbreaker"
	"github.com/vocal-hub/vocal-studio-hub/pkg/retry"
)

const defaultAPIBase = "https://api.telegram.org"

// ErrDisabled is returned when the client was built without a bot token.
var ErrDisabled = errors.New("telegram notifications are disabled")

// ══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// Config contains Telegram bot configuration.
type Config struct {
	// BotToken is the bot token from @BotFather. Empty disables sending.
	BotToken string

	// ChatID is the chat that receives reminders.
	ChatID int64

	// APIBase overrides the Bot API host, for tests.
	APIBase string

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// Logger for structured logging.
	Logger *slog.Logger
}

// DefaultConfig returns sensible defaults for the given token and chat.
func DefaultConfig(botToken string, chatID int64) Config {
	return Config{
		BotToken: botToken,
		ChatID:   chatID,
		APIBase:  defaultAPIBase,
		Timeout:  10 * time.Second,
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// CLIENT
// ══════════════════════════════════════════════════════════════════════════════

// Client sends messages through the Telegram Bot API. Requests go through
// a retrier and a circuit breaker so a flaky Telegram outage never stalls
// the worker loop.
type Client struct {
	config  Config
	http    *http.Client
	logger  *slog.Logger
	retrier *retry.Retrier
	breaker *circuitbreaker.CircuitBreaker
}

// NewClient creates a Telegram client.
func NewClient(config Config) *Client {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if config.APIBase == "" {
		config.APIBase = defaultAPIBase
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}

	c := &Client{
		config:  config,
		http:    &http.Client{Timeout: config.Timeout},
		logger:  logger,
		retrier: retry.TelegramRetrier(),
	}
	c.breaker = circuitbreaker.TelegramAPIBreaker(func(name string, from, to circuitbreaker.State) {
		logger.Warn("circuit breaker state change",
			"breaker", name, "from", from.String(), "to", to.String())
	})
	return c
}

// Enabled reports whether the client has a bot token configured.
func (c *Client) Enabled() bool {
	return c.config.BotToken != ""
}

type sendMessageRequest struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
}

// SendMessage delivers a text message to the configured chat.
// Transient failures are retried with exponential backoff.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	if !c.Enabled() {
		return ErrDisabled
	}

	err := c.retrier.Do(ctx, func(ctx context.Context) error {
		return c.breaker.Execute(ctx, func(ctx context.Context) error {
			return c.sendOnce(ctx, text)
		})
	})
	if err != nil {
		c.logger.Error("telegram send failed", "chat_id", c.config.ChatID, "error", err)
		return err
	}

	c.logger.Debug("telegram message sent", "chat_id", c.config.ChatID, "length", len(text))
	return nil
}

func (c *Client) sendOnce(ctx context.Context, text string) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:    c.config.ChatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return retry.Permanent(fmt.Errorf("marshal message: %w", err))
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.config.APIBase, c.config.BotToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return retry.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return retry.Retryable(fmt.Errorf("http request: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return retry.Retryable(fmt.Errorf("read response: %w", err))
	}

	var apiResp apiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return retry.Retryable(fmt.Errorf("parse response (status %d): %w", resp.StatusCode, err))
	}

	if apiResp.OK {
		return nil
	}

	// 429 and 5xx come back as retryable, everything else is a
	// misconfigured bot or chat and retrying will not help.
	apiErr := fmt.Errorf("telegram api error %d: %s", apiResp.ErrorCode, apiResp.Description)
	if apiResp.ErrorCode == http.StatusTooManyRequests || apiResp.ErrorCode >= 500 {
		return retry.Retryable(apiErr)
	}
	return retry.Permanent(apiErr)
}
