package connection

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yndnr/kernbench-go/internal/core/domain"
	"github.com/yndnr/kernbench-go/internal/core/service"
	"github.com/yndnr/kernbench-go/internal/infra/buildinfo"
)

// DefaultTimeout bounds non-run requests. Runs are bounded by the caller's
// context only, since a beast run can take minutes.
const DefaultTimeout = 30 * time.Second

// Client talks to a kernbench server.
type Client struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client, e.g. to set TLS.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithTimeout sets the timeout for requests other than POST /runs.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a client for server, adding http:// when no scheme is
// given. A unix:///path/to/socket server dials the local socket.
func NewClient(server string, opts ...Option) *Client {
	c := &Client{
		client:  &http.Client{},
		timeout: DefaultTimeout,
	}

	if path, ok := strings.CutPrefix(server, "unix://"); ok {
		c.baseURL = "http://localhost"
		c.client.Transport = &http.Transport{
			DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
				var d net.Dialer
				return d.DialContext(ctx, "unix", path)
			},
		}
	} else {
		c.baseURL = strings.TrimRight(server, "/")
		if !strings.HasPrefix(c.baseURL, "http://") && !strings.HasPrefix(c.baseURL, "https://") {
			c.baseURL = "http://" + c.baseURL
		}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the base URL of the client.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// envelope mirrors the server's response wrapper.
type envelope struct {
	Code      string          `json:"code"`
	Message   string          `json:"message"`
	Details   string          `json:"details"`
	RequestID string          `json:"request_id"`
	Data      json.RawMessage `json:"data"`
}

// Health returns the server's health payload.
func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	return out, c.call(ctx, http.MethodGet, "/health", nil, &out, true)
}

// Kernels returns the server's catalogue.
func (c *Client) Kernels(ctx context.Context) (core, extended []domain.Kernel, err error) {
	var out struct {
		Core     []domain.Kernel `json:"core"`
		Extended []domain.Kernel `json:"extended"`
	}
	if err := c.call(ctx, http.MethodGet, "/kernels", nil, &out, true); err != nil {
		return nil, nil, err
	}
	return out.Core, out.Extended, nil
}

// Run executes req on the server. A cancelled run comes back as the partial
// run together with ErrRunCancelled.
func (c *Client) Run(ctx context.Context, req service.RunRequest) (*domain.Run, error) {
	var run domain.Run
	if err := c.call(ctx, http.MethodPost, "/runs", req, &run, false); err != nil {
		return nil, err
	}
	if run.Cancelled {
		return &run, domain.ErrRunCancelled
	}
	return &run, nil
}

// ListRuns returns at most limit stored runs, newest first.
func (c *Client) ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	var out struct {
		Items []domain.RunSummary `json:"items"`
	}
	path := "/runs?limit=" + strconv.Itoa(limit)
	if err := c.call(ctx, http.MethodGet, path, nil, &out, true); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// GetRun fetches one run; id may be "latest".
func (c *Client) GetRun(ctx context.Context, id string) (*domain.Run, error) {
	var run domain.Run
	if err := c.call(ctx, http.MethodGet, "/runs/"+url.PathEscape(id), nil, &run, true); err != nil {
		return nil, err
	}
	return &run, nil
}

// DeleteRun removes one run.
func (c *Client) DeleteRun(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/runs/"+url.PathEscape(id), nil, nil, true)
}

// Compare returns speedups of current over baseline.
func (c *Client) Compare(ctx context.Context, baseline, current string) (*domain.Comparison, error) {
	q := url.Values{"baseline": {baseline}, "current": {current}}
	var cmp domain.Comparison
	if err := c.call(ctx, http.MethodGet, "/compare?"+q.Encode(), nil, &cmp, true); err != nil {
		return nil, err
	}
	return &cmp, nil
}

// Verify runs the parity checks on the server.
func (c *Client) Verify(ctx context.Context, extended bool) (*domain.Verification, error) {
	var v domain.Verification
	path := "/verify?extended=" + strconv.FormatBool(extended)
	if err := c.call(ctx, http.MethodGet, path, nil, &v, true); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) call(ctx context.Context, method, path string, body, target any, bounded bool) error {
	if bounded && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", "kernbench/"+buildinfo.Get().Version)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	return ParseResponse(resp, target)
}

// ParseResponse decodes the envelope of resp into target. Error envelopes
// become *domain.DomainError values carrying the server's code, so callers
// can match them with errors.Is.
func ParseResponse(resp *http.Response, target any) error {
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 400 {
			return fmt.Errorf("request failed with status %d", resp.StatusCode)
		}
		return fmt.Errorf("parse response: %w", err)
	}

	if resp.StatusCode >= 400 {
		if env.Code == "" {
			return fmt.Errorf("request failed with status %d", resp.StatusCode)
		}
		de := domain.NewDomainError(env.Code, env.Message)
		if env.Details != "" {
			de = de.WithDetails(env.Details)
		}
		return de
	}

	if target != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, target); err != nil {
			return fmt.Errorf("parse response data: %w", err)
		}
	}
	return nil
}
