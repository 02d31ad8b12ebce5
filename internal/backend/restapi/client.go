// Package restapi implements the service.Service interface over the Tasks REST API.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"tasks/internal/auth"
	"tasks/internal/config"
	"tasks/internal/logging"
	"tasks/internal/service"
)

// APITimeout is the default timeout for API calls.
const APITimeout = config.DefaultTimeout

// Client implements service.Service using the Tasks REST API.
type Client struct {
	base    *url.URL
	http    *http.Client
	timeout time.Duration
	log     *logging.Logger
}

// New creates a client for cfg.APIURL that authorizes requests with the
// provider's bearer token.
func New(ctx context.Context, cfg *config.Config, provider auth.Provider, log *logging.Logger) (*Client, error) {
	httpClient := oauth2.NewClient(ctx, provider.TokenSource(ctx))
	c, err := NewWithHTTPClient(cfg.APIURL, httpClient)
	if err != nil {
		return nil, err
	}
	if cfg.Timeout > 0 {
		c.timeout = cfg.Timeout
	}
	if log != nil {
		c.log = log.WithComponent("api")
	}
	return c, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url: %s", baseURL)
	}
	return &Client{
		base:    base,
		http:    httpClient,
		timeout: APITimeout,
		log:     logging.Discard(),
	}, nil
}

// ListTasks implements service.Service.
func (c *Client) ListTasks(ctx context.Context, userID string, status service.StatusFilter, sort service.SortKey) ([]service.Task, error) {
	q := url.Values{}
	q.Set("status", string(status))
	q.Set("sort", string(sort))

	var tasks []service.Task
	if err := c.do(ctx, "list tasks", http.MethodGet, tasksPath(userID), q, nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	return tasks, nil
}

// GetTask implements service.Service.
func (c *Client) GetTask(ctx context.Context, userID string, taskID int64) (service.Task, error) {
	var task service.Task
	err := c.do(ctx, "get task", http.MethodGet, taskPath(userID, taskID), nil, nil, &task)
	return task, err
}

// CreateTask implements service.Service.
func (c *Client) CreateTask(ctx context.Context, userID string, in service.NewTask) (service.Task, error) {
	var task service.Task
	err := c.do(ctx, "create task", http.MethodPost, tasksPath(userID), nil, in, &task)
	return task, err
}

// UpdateTask implements service.Service.
func (c *Client) UpdateTask(ctx context.Context, userID string, taskID int64, in service.TaskUpdate) (service.Task, error) {
	var task service.Task
	err := c.do(ctx, "update task", http.MethodPut, taskPath(userID, taskID), nil, in, &task)
	return task, err
}

// DeleteTask implements service.Service.
func (c *Client) DeleteTask(ctx context.Context, userID string, taskID int64) error {
	return c.do(ctx, "delete task", http.MethodDelete, taskPath(userID, taskID), nil, nil, nil)
}

// ToggleTaskComplete implements service.Service.
func (c *Client) ToggleTaskComplete(ctx context.Context, userID string, taskID int64) (service.Task, error) {
	var task service.Task
	path := append(taskPath(userID, taskID), "complete")
	err := c.do(ctx, "toggle task", http.MethodPatch, path, nil, nil, &task)
	return task, err
}

func tasksPath(userID string) []string {
	return []string{"api", userID, "tasks"}
}

func taskPath(userID string, taskID int64) []string {
	return append(tasksPath(userID), strconv.FormatInt(taskID, 10))
}

// do sends one request and decodes the JSON response into out (if non-nil).
// Every failure is returned as a *service.APIError.
func (c *Client) do(ctx context.Context, op, method string, path []string, query url.Values, body, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := c.base.JoinPath(path...)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &service.APIError{Op: op, Kind: service.KindGeneric, Err: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return &service.APIError{Op: op, Kind: service.KindGeneric, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request_failed", logging.Fields{"op": op, "error": err})
		return transportError(op, err)
	}
	defer res.Body.Close()

	c.log.Debug("request", logging.Fields{
		"op":       op,
		"method":   method,
		"status":   res.StatusCode,
		"duration": time.Since(start).String(),
	})

	if err := googleapi.CheckResponse(res); err != nil {
		return statusError(op, err)
	}

	if out == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return &service.APIError{Op: op, Kind: service.KindGeneric, Status: res.StatusCode, Message: "invalid response", Err: err}
	}
	return nil
}

// transportError classifies a failure that produced no HTTP response.
func transportError(op string, err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.Is(err, auth.ErrNoSession) || errors.As(err, &retrieveErr) {
		return &service.APIError{Op: op, Kind: service.KindAuth, Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &service.APIError{Op: op, Kind: service.KindNetwork, Message: "network request timed out", Err: err}
	}
	return &service.APIError{Op: op, Kind: service.KindNetwork, Err: err}
}

// statusError converts a non-2xx response into an APIError.
func statusError(op string, err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return &service.APIError{Op: op, Kind: service.KindGeneric, Err: err}
	}
	return &service.APIError{
		Op:      op,
		Kind:    service.KindForStatus(gerr.Code),
		Status:  gerr.Code,
		Message: detail(gerr),
		Err:     err,
	}
}

// detail extracts the server's error message. The API answers with
// {"detail": "..."}; validation failures carry a list instead of a string.
func detail(gerr *googleapi.Error) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal([]byte(gerr.Body), &body); err == nil && len(body.Detail) > 0 {
		var s string
		if err := json.Unmarshal(body.Detail, &s); err == nil && s != "" {
			return s
		}
	}
	if gerr.Message != "" {
		return gerr.Message
	}
	return http.StatusText(gerr.Code)
}
