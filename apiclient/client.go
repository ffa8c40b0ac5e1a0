// Package apiclient is the HTTP client for the SACCO member backend. Every
// call goes through a single wrapper that injects the bearer credential and
// classifies failures: HTTP 401 becomes a silent error, anything else an
// ordinary one. Read calls are retried at most once, and only on transport
// failures; classified HTTP errors are never retried.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

const (
	defaultTimeout       = 15 * time.Second
	defaultRetryInterval = 250 * time.Millisecond

	contentTypeJSON = "application/json"
)

// Client talks to the member backend.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	source        oauth2.TokenSource
	logger        zerolog.Logger
	retryInterval time.Duration
}

// Option modifies the Client at construction time.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (primarily for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTokenSource sets where bearer credentials come from. Calls go out
// unauthenticated when the source is nil or yields no token.
func WithTokenSource(source oauth2.TokenSource) Option {
	return func(c *Client) {
		c.source = source
	}
}

// WithLogger sets the logger used for non-silent request failures.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout overrides the default per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// New creates a Client for the given backend base URL.
func New(baseURL string, options ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("[apiclient.New] base URL is required")
	}

	client := &Client{
		baseURL:       baseURL,
		httpClient:    &http.Client{Timeout: defaultTimeout},
		logger:        zerolog.Nop(),
		retryInterval: defaultRetryInterval,
	}

	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

// SetTokenSource wires the bearer source after construction. The session
// manager is both a consumer of the client and its token source, so one of
// the two has to be attached late.
func (c *Client) SetTokenSource(source oauth2.TokenSource) {
	c.source = source
}

// getJSON performs a read call with the single-retry policy: transport
// failures are retried once, classified HTTP errors are permanent.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	operation := func() error {
		err := c.do(ctx, http.MethodGet, path, nil, out)
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return backoff.Permanent(err)
		}
		return err
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(c.retryInterval), 1), ctx)
	return backoff.Retry(operation, policy)
}

// postJSON performs a write call. Writes are never retried.
func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// do builds, sends, and classifies a single request.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "[Client.do] marshal body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "[Client.do] build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}
	authed := c.setBearer(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "[Client.do] request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.classify(resp, path, authed)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "[Client.do] decode response")
	}
	return nil
}

// doWithBearer sends a single request with an explicit bearer credential,
// bypassing the token source. Used by rehydration, which validates a
// persisted token before any session state exists.
func (c *Client) doWithBearer(ctx context.Context, method, path, bearer string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrap(err, "[Client.doWithBearer] build request")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "[Client.doWithBearer] request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.classify(resp, path, bearer != "")
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "[Client.doWithBearer] decode response")
	}
	return nil
}

// setBearer reports whether a bearer credential was attached.
func (c *Client) setBearer(req *http.Request) bool {
	if c.source == nil {
		return false
	}
	tok, err := c.source.Token()
	if err != nil || tok == nil || tok.AccessToken == "" {
		// unauthenticated calls are legitimate (login, public forms)
		return false
	}
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)
	return true
}

// classify turns a non-2xx response into an APIError. A 401 on a call that
// carried a bearer credential is the silent variant and is never logged. A
// 401 without a bearer (login, refresh) is a credential failure and keeps the
// server's message like any other error.
func (c *Client) classify(resp *http.Response, path string, authed bool) error {
	if resp.StatusCode == http.StatusUnauthorized && authed {
		return unauthorizedError()
	}

	message := genericFailureMessage
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		message = body.Message
	}

	c.logger.Warn().Int("status", resp.StatusCode).Str("path", path).Str("message", message).Msg("api request failed")
	return &APIError{StatusCode: resp.StatusCode, Message: message}
}
