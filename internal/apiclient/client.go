// Package apiclient is the typed client for the remote REST API.
//
// Anonymous calls (login, register) use a plain HTTP client. Everything else
// goes through a session-scoped view whose transport is an oauth2.Transport
// backed by a TokenSource that reads the session store on every request, so the
// bearer token is never cached in the client. The client never redirects and
// never clears the session; callers decide what a 401 means.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	apperrors "github.com/Rushil0704/auth-client-1/internal/errors"
	"github.com/Rushil0704/auth-client-1/internal/observability/metrics"
	"github.com/Rushil0704/auth-client-1/internal/ports"
)

const defaultTimeout = 10 * time.Second

// Options configures a Client.
type Options struct {
	BaseURL  string
	Timeout  time.Duration
	PageSize int

	// Sessions is where bearer tokens are read from.
	Sessions ports.SessionStore

	// Transport is the base round tripper; http.DefaultTransport when nil.
	Transport http.RoundTripper

	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

// Client talks to the remote REST API.
type Client struct {
	base      *url.URL
	timeout   time.Duration
	pageSize  int
	sessions  ports.SessionStore
	transport http.RoundTripper
	anon      *http.Client
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

var _ ports.APIClient = (*Client)(nil)

// New validates the base URL and builds a client.
func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("apiclient: invalid base url %q", opts.BaseURL)
	}
	if opts.Sessions == nil {
		return nil, errors.New("apiclient: session store is required")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		base:      base,
		timeout:   timeout,
		pageSize:  pageSize,
		sessions:  opts.Sessions,
		transport: transport,
		anon:      &http.Client{Transport: transport},
		metrics:   opts.Metrics,
		logger:    logger.With("component", "apiclient"),
	}, nil
}

// ForSession returns the authenticated endpoints for one browser session.
func (c *Client) ForSession(sid string) ports.SessionAPI {
	return &SessionClient{
		c: c,
		hc: &http.Client{
			Transport: &oauth2.Transport{
				Source: &sessionTokenSource{store: c.sessions, sid: sid},
				Base:   c.transport,
			},
		},
	}
}

// request describes one API call. endpoint is the low-cardinality label used for metrics.
type request struct {
	method   string
	path     string
	endpoint string
	query    url.Values
	body     any
}

// do executes req and decodes a JSON response into out when out is non-nil.
func (c *Client) do(ctx context.Context, hc *http.Client, req request, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	err := c.roundTrip(ctx, hc, req, out)
	c.metrics.ObserveAPICall(metrics.APICall{
		Endpoint: req.endpoint,
		Duration: time.Since(start),
		Err:      err,
	})
	if err != nil {
		c.logger.DebugContext(ctx, "api call failed",
			"endpoint", req.endpoint,
			"status", apperrors.GetStatus(err),
			"error", err,
		)
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, hc *http.Client, req request, out any) error {
	u := c.base.JoinPath(req.path)
	if len(req.query) > 0 {
		u.RawQuery = req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode request body")
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u.String(), body)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "build request")
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(httpReq)
	if err != nil {
		if errors.Is(err, ErrNoToken) {
			return apperrors.Unauthorized("no authentication token")
		}
		return apperrors.Network(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperrors.FromStatus(resp.StatusCode, readErrorMessage(resp))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return apperrors.Wrap(err, apperrors.ErrCodeServer, "decode response")
	}
	return nil
}

// readErrorMessage extracts {"message": "..."} from an error body, falling back to the status text.
func readErrorMessage(resp *http.Response) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(data, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return http.StatusText(resp.StatusCode)
}
