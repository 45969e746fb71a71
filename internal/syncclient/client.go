// Package syncclient is the polling consumer of the board API. It keeps a
// local view reconciled against periodic re-fetches; nothing is pushed, so a
// remote change becomes visible at most one poll interval after it commits.
package syncclient

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

	"taskboard/internal/adapter/http/dto"
	"taskboard/pkg/apierrors"
)

const (
	defaultHTTPTimeout = 15 * time.Second
	pollIntervalHeader = "X-Poll-Interval"
)

// APIError is a non-2xx answer from the board API.
type APIError struct {
	StatusCode int
	Key        string
	Message    string
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("board api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("board api: status %d: %s", e.StatusCode, e.Message)
}

// Temporary reports whether retrying later may succeed.
func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusServiceUnavailable || e.StatusCode == http.StatusTooManyRequests
}

type Client struct {
	baseURL  string
	token    string
	language string
	client   *http.Client
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) { c.client = client }
}

func WithLanguage(lang string) Option {
	return func(c *Client) { c.language = lang }
}

func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UnreadCount carries the unread badge and the poll interval advertised by
// the server, zero when absent.
type UnreadCount struct {
	Count        int
	PollInterval time.Duration
}

func (c *Client) ListTasks(ctx context.Context, query url.Values) ([]dto.TaskItem, error) {
	path := "/api/tasks"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	var tasks []dto.TaskItem
	if _, err := c.do(ctx, http.MethodGet, path, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateTask sends a partial patch; a nil value in patch clears the field.
func (c *Client) UpdateTask(ctx context.Context, id string, patch map[string]any) (dto.TaskItem, error) {
	var task dto.TaskItem
	_, err := c.do(ctx, http.MethodPatch, "/api/tasks/"+url.PathEscape(id), patch, &task)
	return task, err
}

func (c *Client) ListNotifications(ctx context.Context, unreadOnly bool, limit int) ([]dto.NotificationItem, error) {
	query := url.Values{}
	if unreadOnly {
		query.Set("unread_only", "true")
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	path := "/api/notifications"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	var items []dto.NotificationItem
	if _, err := c.do(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) UnreadCount(ctx context.Context) (UnreadCount, error) {
	var body dto.UnreadCountResponse
	header, err := c.do(ctx, http.MethodGet, "/api/notifications/unread-count", nil, &body)
	if err != nil {
		return UnreadCount{}, err
	}
	return UnreadCount{Count: body.Count, PollInterval: parseSeconds(header.Get(pollIntervalHeader))}, nil
}

func (c *Client) MarkAllRead(ctx context.Context) (int, error) {
	var body dto.MarkAllReadResponse
	if _, err := c.do(ctx, http.MethodPost, "/api/notifications/read-all", nil, &body); err != nil {
		return 0, err
	}
	return body.Updated, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) (http.Header, error) {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.language != "" {
		req.Header.Set("Accept-Language", c.language)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.Header, decodeAPIError(resp, raw)
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.Header, nil
}

func decodeAPIError(resp *http.Response, raw []byte) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		RetryAfter: parseSeconds(resp.Header.Get("Retry-After")),
	}
	var body apierrors.JsonErr
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Key = body.ErrDetails.Key
		apiErr.Message = body.ErrDetails.Message
	}
	return apiErr
}

func parseSeconds(value string) time.Duration {
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
