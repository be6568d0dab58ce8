package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	errorvalues "github.com/limbo/streak/internal/error_values"
	"github.com/limbo/streak/pkg/entity"
)

const (
	habitsPath     = "/habits"
	defaultTimeout = 10 * time.Second
	// Bodies above this are treated as malformed rather than read forever.
	maxBodySize = 4 << 20
)

// Client talks to a habit collection over HTTP (GET/POST/DELETE /habits).
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	logger  *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout. It applies to a copy of the
// HTTP client, so a client passed with WithHTTPClient is never modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c
}

// Timeout reports the per-request timeout in effect.
func (c *Client) Timeout() time.Duration {
	return c.http.Timeout
}

func (c *Client) List(ctx context.Context) ([]entity.Habit, error) {
	body, err := c.do(ctx, http.MethodGet, habitsPath, nil)
	if err != nil {
		return nil, err
	}
	// An object, a string or null is not a collection
	if !bytes.HasPrefix(bytes.TrimSpace(body), []byte("[")) {
		return nil, fmt.Errorf("%w: expected a list of habits", errorvalues.ErrMalformedData)
	}
	habits := make([]entity.Habit, 0)
	if err := sonic.ConfigDefault.Unmarshal(body, &habits); err != nil {
		return nil, fmt.Errorf("%w: %v", errorvalues.ErrMalformedData, err)
	}
	c.logger.Debug("habits listed", slog.Int("count", len(habits)))
	return habits, nil
}

func (c *Client) Create(ctx context.Context, draft entity.HabitDraft) (*entity.Habit, error) {
	payload, err := sonic.ConfigDefault.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("encoding habit draft: %w", err)
	}
	body, err := c.do(ctx, http.MethodPost, habitsPath, payload)
	if err != nil {
		return nil, err
	}
	var habit entity.Habit
	if err := sonic.ConfigDefault.Unmarshal(body, &habit); err != nil {
		return nil, fmt.Errorf("%w: %v", errorvalues.ErrMalformedData, err)
	}
	if habit.ID == 0 {
		return nil, fmt.Errorf("%w: created habit has no id", errorvalues.ErrMalformedData)
	}
	c.logger.Debug("habit created", slog.Int("id", habit.ID))
	return &habit, nil
}

// Delete removes the habit with id. A 404 is reported as ErrHabitNotFound
// so callers can tell "already gone" from real failures.
func (c *Client) Delete(ctx context.Context, id int) error {
	_, err := c.do(ctx, http.MethodDelete, habitsPath+"/"+strconv.Itoa(id), nil)
	if err != nil {
		return err
	}
	c.logger.Debug("habit deleted", slog.Int("id", id))
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", errorvalues.ErrNetworkFailure, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", errorvalues.ErrNetworkFailure, method, path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", errorvalues.ErrNetworkFailure, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusNotFound && method == http.MethodDelete {
			return nil, fmt.Errorf("%w: %s %s", errorvalues.ErrHabitNotFound, method, path)
		}
		return nil, fmt.Errorf("%w: %s %s: %d", errorvalues.ErrBadStatus, method, path, resp.StatusCode)
	}
	return body, nil
}
