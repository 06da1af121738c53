// Package transport is the single HTTP client every real service goes
// through: one base URL, a bounded per-request timeout, bearer-token
// attachment from the session store, and uniform error normalization.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/skyfn/skyfn-console/internal/domain"
	"github.com/skyfn/skyfn-console/internal/session"
)

// DefaultTimeout bounds every request. Requests exceeding it fail with
// status 0 and a network-error message.
const DefaultTimeout = 10 * time.Second

const networkErrorMessage = "Network error: Unable to connect to the server"

// Client issues JSON requests against the configured base endpoint. It
// never retries; every failure is surfaced to the calling service as a
// *domain.APIError.
type Client struct {
	baseURL       string
	http          *http.Client
	session       session.Store
	limiter       *rate.Limiter
	onAuthExpired func()
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client (tests)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout overrides the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithRateLimit paces outgoing requests client-side. Zero disables pacing.
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(c *Client) {
		if requestsPerSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
		}
	}
}

// WithOnAuthExpired registers the hook invoked when a 401 response clears
// the session. This is the transport's analog of redirecting to the login
// entry point; it fires exactly once per 401 and is the only place
// authentication expiry is handled.
func WithOnAuthExpired(fn func()) Option {
	return func(c *Client) { c.onAuthExpired = fn }
}

// New creates a Client for the given base URL and session store
func New(baseURL string, sess session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		session: sess,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get issues a GET request
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post issues a POST request with a JSON body
func (c *Client) Post(ctx context.Context, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

// Put issues a PUT request with a JSON body
func (c *Client) Put(ctx context.Context, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

// Delete issues a DELETE request
func (c *Client) Delete(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

// wireError is the error body shape the backend emits
type wireError struct {
	Message string               `json:"message"`
	Code    string               `json:"code"`
	Errors  map[string][]string  `json:"errors"`
	Detail  []domain.ErrorDetail `json:"detail"`
}

func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &domain.APIError{Message: networkErrorMessage, Status: 0}
		}
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, &domain.APIError{Message: "Failed to encode request body", Status: 0}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &domain.APIError{Message: err.Error(), Status: 0}
	}
	req.Header.Set("Content-Type", "application/json")
	if token, ok := c.session.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		// No response received: DNS failure, refused connection, timeout.
		log.Error().Err(err).Str("method", method).Str("path", path).Msg("Network error")
		return nil, &domain.APIError{Message: networkErrorMessage, Status: 0}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error().Err(err).Str("method", method).Str("path", path).Msg("Failed to read response body")
		return nil, &domain.APIError{Message: networkErrorMessage, Status: 0}
	}

	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("API exchange")

	if resp.StatusCode < 400 {
		return data, nil
	}

	return nil, c.normalizeError(method, path, resp.StatusCode, data)
}

// normalizeError funnels every non-2xx response into the uniform error
// shape. A 401 additionally clears the credential slot and fires the
// auth-expired hook; services never re-implement this.
func (c *Client) normalizeError(method, path string, status int, body []byte) *domain.APIError {
	var we wireError
	_ = json.Unmarshal(body, &we)

	apiErr := &domain.APIError{
		Message: we.Message,
		Status:  status,
		Code:    we.Code,
		Errors:  we.Errors,
		Detail:  we.Detail,
	}
	if apiErr.Message == "" {
		if status >= 500 {
			apiErr.Message = "Server error: Please try again later"
		} else {
			apiErr.Message = "An error occurred"
		}
	}

	if status == http.StatusUnauthorized {
		if err := c.session.Clear(); err != nil {
			log.Error().Err(err).Msg("Failed to clear session after 401")
		}
		if c.onAuthExpired != nil {
			c.onAuthExpired()
		}
	}

	log.Error().
		Str("method", method).
		Str("path", path).
		Int("status", status).
		Str("message", apiErr.Message).
		Msg("API error")

	return apiErr
}
