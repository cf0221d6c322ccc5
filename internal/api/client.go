package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client defaults
const (
	DefaultBaseURL   = "http://127.0.0.1:8000"
	DefaultTimeout   = 15 * time.Second
	DefaultFeedLimit = 50

	// UserIDHeader carries the acting user until the backend issues tokens
	UserIDHeader = "X-User-ID"

	maxErrorBody = 4 << 10
)

// HTTPError is returned for any non-2xx response
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
}

// Options configures a Client. Zero fields take the defaults above.
type Options struct {
	BaseURL    string
	Token      string
	UserID     string
	Timeout    time.Duration
	FeedLimit  int
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client talks to the backend on behalf of one user
type Client struct {
	baseURL string
	token   string
	userID  string
	limit   int
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a client from opts
func NewClient(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", opts.BaseURL, err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	limit := opts.FeedLimit
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL: base,
		token:   opts.Token,
		userID:  strings.TrimSpace(opts.UserID),
		limit:   limit,
		http:    hc,
		logger:  logger.Named("api"),
	}, nil
}

// UserID returns the user requests are made for by default
func (c *Client) UserID() string {
	return c.userID
}

// BaseURL returns the normalized backend root
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do issues one request as user and decodes a JSON body into T. An empty user
// falls back to the client's user. A nil body sends no payload.
func do[T any](ctx context.Context, c *Client, method, path, user string, body any) (T, error) {
	var zero T

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return zero, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return zero, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if user == "" {
		user = c.userID
	}
	if user != "" {
		req.Header.Set(UserIDHeader, user)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return zero, fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Request finished",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return zero, &HTTPError{Status: resp.StatusCode, Message: errorMessage(msg)}
	}

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return zero, fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return out, nil
}

// errorMessage extracts FastAPI's {"detail": ...} when present
func errorMessage(body []byte) string {
	var payload struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != nil {
		if s, ok := payload.Detail.(string); ok {
			return s
		}
		if b, err := json.Marshal(payload.Detail); err == nil {
			return string(b)
		}
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return "Request failed"
	}
	return msg
}

func limitQuery(n int) string {
	return "?limit=" + strconv.Itoa(n)
}
