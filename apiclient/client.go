// Package apiclient is the single chokepoint for all calls to the
// wawatch backend. It normalizes URL construction, JSON handling,
// credential attachment, and the error shape every caller sees.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/vrstep/wawatch/pkg/logger"
)

// authPathPrefix covers the endpoints that always carry credentials,
// whether or not the caller asked for them.
const authPathPrefix = "/api/v1/auth"

// Config holds the client configuration loaded from the environment.
type Config struct {
	BaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:8080"`
}

// Request describes one backend call passed through Do.
type Request struct {
	Endpoint string
	Method   string
	Body     any
	// RequiresCredentials attaches the session cookie jar to the call.
	// Endpoints under /api/v1/auth are credentialed regardless.
	RequiresCredentials bool
	// Header carries caller-supplied extras; they win over defaults.
	Header http.Header
}

// Client talks to the wawatch backend. Credentials are backend session
// cookies held in a jar; uncredentialed calls neither send nor store
// them. Create one Client per application and share it.
type Client struct {
	baseURL string
	log     *slog.Logger
	limiter *rate.Limiter

	// credentialed carries the cookie jar; bare shares the transport
	// but never sees cookies.
	credentialed *http.Client
	bare         *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The credentialed
// variant still gets its own cookie jar.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		credentialed := *hc
		bare := *hc
		bare.Jar = nil
		c.credentialed = &credentialed
		c.bare = &bare
	}
}

// WithLogger sets the structured logger. Default discards output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithRateLimit paces outbound calls to rps requests per second with
// the given burst. Zero rps disables pacing.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// New creates a Client for the configured base URL.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		log:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		credentialed: &http.Client{},
		bare:         &http.Client{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.credentialed.Jar == nil {
		// cookiejar.New only errors on invalid options; none are passed.
		jar, _ := cookiejar.New(nil)
		c.credentialed.Jar = jar
	}

	return c
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ClearCredentials drops every stored session cookie. Called on logout
// and after a failed session validation.
func (c *Client) ClearCredentials() {
	jar, _ := cookiejar.New(nil)
	c.credentialed.Jar = jar
}

// Do executes one backend call and returns the raw JSON body.
//
// Result contract: 204 and 2xx-with-empty-body resolve to (nil, nil);
// any other 2xx resolves to the body bytes. Every failure is an Error:
// KindHTTP for non-2xx, KindMalformedResponse for undecodable 2xx
// bodies, KindNetwork when no response arrived. Calls are independent;
// there is no caching, deduplication, or retry.
func (c *Client) Do(ctx context.Context, r Request) (json.RawMessage, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, newNetworkError(err)
		}
	}

	url := r.Endpoint
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = c.baseURL + url
	}

	var body io.Reader
	if r.Body != nil && r.Method != http.MethodGet {
		payload, err := json.Marshal(r.Body)
		if err != nil {
			return nil, newNetworkError(err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, url, body)
	if err != nil {
		return nil, newNetworkError(err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	for key, values := range r.Header {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	credentialed := r.RequiresCredentials || strings.HasPrefix(r.Endpoint, authPathPrefix)
	hc := c.bare
	if credentialed {
		hc = c.credentialed
	}

	start := time.Now()
	c.log.LogAttrs(ctx, slog.LevelDebug, "api request",
		logger.Component("apiclient"),
		logger.Method(r.Method),
		logger.Path(url),
		logger.RequestID(requestID),
		slog.Bool("credentialed", credentialed),
	)

	resp, err := hc.Do(req)
	if err != nil {
		apiErr := newNetworkError(err)
		c.log.LogAttrs(ctx, slog.LevelError, "api request failed",
			logger.Component("apiclient"),
			logger.Method(r.Method),
			logger.Path(url),
			logger.RequestID(requestID),
			logger.Elapsed(start),
			logger.Error(apiErr),
		)
		return nil, apiErr
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newNetworkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newHTTPError(resp.StatusCode, text)
		c.log.LogAttrs(ctx, slog.LevelError, "api request failed",
			logger.Component("apiclient"),
			logger.Method(r.Method),
			logger.Path(url),
			logger.StatusCode(resp.StatusCode),
			logger.RequestID(requestID),
			logger.Elapsed(start),
			logger.Error(apiErr),
		)
		return nil, apiErr
	}

	if len(text) == 0 {
		// Valid empty success, distinct from an error.
		c.log.LogAttrs(ctx, slog.LevelDebug, "api response with empty body",
			logger.Component("apiclient"),
			logger.Path(url),
			logger.StatusCode(resp.StatusCode),
			logger.RequestID(requestID),
		)
		return nil, nil
	}

	if !json.Valid(text) {
		apiErr := newMalformedError(resp.StatusCode, string(text))
		c.log.LogAttrs(ctx, slog.LevelError, "api response malformed",
			logger.Component("apiclient"),
			logger.Path(url),
			logger.StatusCode(resp.StatusCode),
			logger.RequestID(requestID),
			logger.Error(apiErr),
		)
		return nil, apiErr
	}

	return json.RawMessage(text), nil
}

// call runs Do and decodes the JSON result into T. A nil result (204
// or empty body) yields a nil pointer. A 2xx body that decodes into
// neither T nor JSON at all surfaces as KindMalformedResponse from Do;
// a shape mismatch on an otherwise valid JSON body decodes to zero
// values, mirroring encoding/json semantics.
func call[T any](ctx context.Context, c *Client, r Request) (*T, error) {
	raw, err := c.Do(ctx, r)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	out := new(T)
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, newMalformedError(http.StatusOK, string(raw))
	}
	return out, nil
}
