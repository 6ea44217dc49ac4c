package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/existflow/credboard/internal/logger"
	"github.com/existflow/credboard/internal/model"
)

// maxErrorBody caps how much of a failed response is copied into the error
const maxErrorBody = 512

// Client reads sections, credentials and attachments from the REST backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient creates a client for the API rooted at baseURL
// (for example http://localhost:8000/api)
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.WithFields(logger.F("component", "api"))
	}
	return c
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchSections returns every section
func (c *Client) FetchSections(ctx context.Context) ([]model.Section, error) {
	var out []model.Section
	if err := c.get(ctx, "sections", &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

// FetchCredentials returns the credentials listed under a section
func (c *Client) FetchCredentials(ctx context.Context, sectionID int64) ([]model.Credential, error) {
	var out []model.Credential
	if err := c.get(ctx, "credentials/"+strconv.FormatInt(sectionID, 10), &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

// FetchAttachments returns the attachments of a project
func (c *Client) FetchAttachments(ctx context.Context, projectID int64) ([]model.Attachment, error) {
	var out []model.Attachment
	if err := c.get(ctx, "attachments/"+strconv.FormatInt(projectID, 10), &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (c *Client) get(ctx context.Context, resource string, out any) error {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+resource, nil)
	if err != nil {
		return &FetchError{Resource: resource, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("Request failed", logger.F("resource", resource), logger.F("error", err))
		return &FetchError{Resource: resource, Err: fmt.Errorf("failed to connect: %w", err)}
	}
	defer resp.Body.Close()

	c.log.Debug("Request done",
		logger.F("resource", resource),
		logger.F("status", resp.StatusCode),
		logger.F("duration", time.Since(start).String()))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &FetchError{
			Resource: resource,
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("%w: %s", ErrUnexpectedStatus, strings.TrimSpace(string(body))),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &FetchError{Resource: resource, Status: resp.StatusCode, Err: fmt.Errorf("%w: %v", ErrDecode, err)}
	}

	return nil
}

// nonNil turns a JSON null into an empty list
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
