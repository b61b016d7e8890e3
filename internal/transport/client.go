// Package transport provides the authenticated HTTP client used to talk to
// the directory service.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/agentstation/aadsync/pkg/constants"
	"github.com/agentstation/aadsync/pkg/errors"
	"github.com/agentstation/aadsync/pkg/logging"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client provides HTTP client functionality with authentication.
type Client struct {
	http *http.Client
	auth Authenticator
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.http.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New creates a new transport client with the specified authenticator.
func New(auth Authenticator, opts ...Option) *Client {
	if auth == nil {
		auth = &NoAuth{}
	}
	c := &Client{
		http: &http.Client{Timeout: DefaultHTTPTimeout},
		auth: auth,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do performs an HTTP request with authentication applied.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := c.auth.Apply(ctx, req); err != nil {
		return nil, err
	}

	// Set common headers
	req.Header.Set("Accept", "application/json")
	if req.Body != nil && req.Method != http.MethodGet && req.Method != http.MethodDelete {
		req.Header.Set("Content-Type", "application/json")
	}

	logging.FromContext(ctx).Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Msg("Sending request")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.WrapResource("send", "request", req.Method+" "+req.URL.Path, errors.Join(errors.ErrCanceled, err))
		}
		return nil, errors.WrapResource("send", "request", req.Method+" "+req.URL.Path, err)
	}
	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	return c.send(ctx, http.MethodGet, url, nil)
}

// Post performs a POST request with body encoded as JSON.
func (c *Client) Post(ctx context.Context, url string, body any) (*http.Response, error) {
	return c.send(ctx, http.MethodPost, url, body)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, url string) (*http.Response, error) {
	return c.send(ctx, http.MethodDelete, url, nil)
}

func (c *Client) send(ctx context.Context, method, url string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.WrapResource("encode", "request", method+" "+url, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, errors.WrapResource("create", "request", method+" "+url, err)
	}
	return c.Do(ctx, req)
}
