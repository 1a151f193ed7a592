// Package notify delivers moderation alerts through the messenger gateway.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sngm3741/hairline-directory/api/internal/directory/application"
)

// Config describes the gateway and the admin channels to post to.
type Config struct {
	Endpoint            string
	PrimaryDestination  string
	FallbackDestination string
	AdminBaseURL        string
	Timeout             time.Duration
	Attempts            int
	RetryDelay          time.Duration
}

// FailedNotification is kept for later replay when every channel failed.
type FailedNotification struct {
	Kind       string
	ItemID     string
	Text       string
	Error      string
	Attempts   int
	OccurredAt time.Time
}

// FailureSink stores notifications that could not be delivered.
type FailureSink interface {
	RecordFailure(ctx context.Context, failure FailedNotification) error
}

// Messenger posts {userId, text, destination} to the gateway's /messages.
type Messenger struct {
	cfg      Config
	client   *http.Client
	failures FailureSink
	logger   zerolog.Logger
	now      func() time.Time
}

const persistTimeout = 5 * time.Second

var _ application.ModerationNotifier = (*Messenger)(nil)

func NewMessenger(cfg Config, failures FailureSink, logger zerolog.Logger) *Messenger {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.Attempts < 1 {
		cfg.Attempts = 3
	}
	return &Messenger{
		cfg:      cfg,
		client:   &http.Client{Timeout: cfg.Timeout},
		failures: failures,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// PendingItem alerts admins. The primary channel is retried; the fallback
// gets a single attempt. When both fail the alert is persisted.
func (m *Messenger) PendingItem(ctx context.Context, item application.PendingItem) error {
	primary := strings.TrimSpace(m.cfg.PrimaryDestination)
	fallback := strings.TrimSpace(m.cfg.FallbackDestination)
	if strings.TrimSpace(m.cfg.Endpoint) == "" || (primary == "" && fallback == "") {
		return nil
	}

	text := buildModerationMessage(m.cfg.AdminBaseURL, item)
	identifier := string(item.Kind) + ":" + item.ID

	var primaryErr, fallbackErr error
	attempts := 0
	if primary != "" {
		primaryErr = m.sendWithRetry(ctx, primary, identifier, text, m.cfg.Attempts, m.cfg.RetryDelay)
		attempts += m.cfg.Attempts
		if primaryErr == nil {
			return nil
		}
		m.logger.Warn().Err(primaryErr).Str("destination", primary).Msg("primary moderation channel failed")
	}
	if fallback != "" {
		fallbackErr = m.sendWithRetry(ctx, fallback, identifier, text, 1, 0)
		attempts++
		if fallbackErr == nil {
			return nil
		}
		m.logger.Warn().Err(fallbackErr).Str("destination", fallback).Msg("fallback moderation channel failed")
	}

	combined := errors.Join(primaryErr, fallbackErr)
	m.persistFailure(ctx, item, text, combined, attempts)
	return combined
}

func buildModerationMessage(adminBaseURL string, item application.PendingItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**New %s awaiting moderation**\n", item.Kind)
	if s := strings.TrimSpace(item.Summary); s != "" {
		b.WriteString("> " + s + "\n")
	}
	if base := strings.TrimSpace(adminBaseURL); base != "" && item.ID != "" {
		fmt.Fprintf(&b, "[Open in admin](%s/%ss/%s)\n", strings.TrimRight(base, "/"), item.Kind, item.ID)
	}
	return b.String()
}

func (m *Messenger) sendWithRetry(ctx context.Context, destination, userID, text string, attempts int, delay time.Duration) error {
	var lastErr error
	for i := 0; i < attempts; i++ {
		if lastErr = m.send(ctx, destination, userID, text); lastErr == nil {
			return nil
		}
		if delay <= 0 || i == attempts-1 {
			continue
		}
		select {
		case <-ctx.Done():
			return errors.Join(lastErr, ctx.Err())
		case <-time.After(delay):
		}
	}
	return lastErr
}

func (m *Messenger) send(ctx context.Context, destination, userID, text string) error {
	body, err := json.Marshal(map[string]string{
		"userId":      userID,
		"text":        text,
		"destination": destination,
	})
	if err != nil {
		return fmt.Errorf("encode messenger payload: %w", err)
	}

	endpoint := strings.TrimRight(m.cfg.Endpoint, "/") + "/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build messenger request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("messenger request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 1<<16))
		return fmt.Errorf("messenger returned status=%d body=%s", res.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}

func (m *Messenger) persistFailure(ctx context.Context, item application.PendingItem, text string, err error, attempts int) {
	if m.failures == nil || err == nil {
		return
	}
	failure := FailedNotification{
		Kind:       string(item.Kind),
		ItemID:     item.ID,
		Text:       text,
		Error:      err.Error(),
		Attempts:   attempts,
		OccurredAt: m.now(),
	}
	// ctx may already have expired during the send.
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()
	if perr := m.failures.RecordFailure(pctx, failure); perr != nil {
		m.logger.Error().Err(perr).Str("item_id", item.ID).Msg("failed to persist notification failure")
	}
}
