package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ksaxena149/personal-relationship-manager/internal/domain"
	"github.com/ksaxena149/personal-relationship-manager/internal/infra/auth"
)

// ErrRequestFailed wraps non-2xx responses from the reminder API.
var ErrRequestFailed = errors.New("reminder API request failed")

const defaultTimeout = 10 * time.Second

type clientImpl struct {
	baseURL string
	http    *http.Client
	tokens  auth.TokenSource
}

// NewClient returns the HTTP-backed reminder gateway. baseURL is the root
// of the relationship-manager API, without a trailing slash.
func NewClient(baseURL string, tokens auth.TokenSource, timeout time.Duration) domain.ReminderGateway {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &clientImpl{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

func (c *clientImpl) FetchReminders(ctx context.Context) ([]*domain.Reminder, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/reminders", nil)
	if err != nil {
		return nil, err
	}

	var resp listResponse

	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode reminder list: %w", err)
	}

	reminders := make([]*domain.Reminder, 0, len(resp.Data))

	for _, dto := range resp.Data {
		reminder, err := dto.ToEntity()
		if err != nil {
			slog.Warn("skipping malformed reminder in response",
				"reminder_id", dto.ID,
				"error", err,
			)

			continue
		}

		reminders = append(reminders, reminder)
	}

	slog.Debug("reminders fetched",
		"count", len(reminders),
	)

	return reminders, nil
}

func (c *clientImpl) CompleteReminder(ctx context.Context, id domain.ReminderID) error {
	payload, err := json.Marshal(completeRequest{IsCompleted: true})
	if err != nil {
		return err
	}

	path := fmt.Sprintf("/api/reminders/%s/complete", id)

	if _, err := c.do(ctx, http.MethodPatch, path, payload); err != nil {
		return err
	}

	slog.Debug("reminder completed remotely",
		"reminder_id", id,
	)

	return nil
}

func (c *clientImpl) DeleteReminder(ctx context.Context, id domain.ReminderID) error {
	path := fmt.Sprintf("/api/reminders/%s", id)

	if _, err := c.do(ctx, http.MethodDelete, path, nil); err != nil {
		return err
	}

	slog.Debug("reminder deleted remotely",
		"reminder_id", id,
	)

	return nil
}

func (c *clientImpl) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+token)

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// The server rejected the credential; treat it like a missing one
		// so the caller can redirect to authentication.
		return nil, fmt.Errorf("%w: credential rejected", domain.ErrNoCredential)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %s %s returned %d", ErrRequestFailed, method, path, resp.StatusCode)
	}

	return respBody, nil
}
