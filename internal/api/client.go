package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/bookhaven/bookhaven-client/pkg/errors"
	"github.com/bookhaven/bookhaven-client/pkg/logger"
	"github.com/bookhaven/bookhaven-client/pkg/metrics"
)

// TokenSource yields the bearer credential for the current session, if any.
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
}

// SessionExpiredHandler runs when the backend rejects the session. It is
// expected to tear the session down and move the user to the login surface.
type SessionExpiredHandler func(ctx context.Context)

// ClientParams groups dependencies for the API client.
type ClientParams struct {
	BaseURL          string
	HTTPClient       *http.Client
	Tokens           TokenSource
	OnSessionExpired SessionExpiredHandler
	Logger           *logger.Logger
	Metrics          *metrics.RequestMetrics
}

// Client issues authenticated calls against the bookstore backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	onExpired  SessionExpiredHandler
	logg       *logger.Logger
	metrics    *metrics.RequestMetrics
}

// NewClient builds an API client with the required dependencies.
func NewClient(params ClientParams) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(params.BaseURL), "/")
	if baseURL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "base url is required")
	}
	httpClient := params.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		tokens:     params.Tokens,
		onExpired:  params.OnSessionExpired,
		logg:       params.Logger,
		metrics:    params.Metrics,
	}, nil
}

type requestSpec struct {
	method      string
	path        string
	body        io.Reader
	contentType string
	// idempotencyKey is attached to mutating calls so a retried request
	// cannot double-apply on the backend.
	idempotencyKey string
}

func jsonSpec(method, path string, payload any) (requestSpec, error) {
	buf := &bytes.Buffer{}
	if payload != nil {
		if err := json.NewEncoder(buf).Encode(payload); err != nil {
			return requestSpec{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode request body")
		}
	}
	return requestSpec{
		method:      method,
		path:        path,
		body:        buf,
		contentType: "application/json",
	}, nil
}

func mutationKey() string {
	return uuid.NewString()
}

// do executes the request and decodes the success body into out when non-nil.
func (c *Client) do(ctx context.Context, spec requestSpec, out any) error {
	req, err := http.NewRequestWithContext(ctx, spec.method, c.baseURL+spec.path, spec.body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}
	if spec.contentType != "" {
		req.Header.Set("Content-Type", spec.contentType)
	}
	if spec.idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", spec.idempotencyKey)
	}
	if c.tokens != nil {
		if token, ok := c.tokens.Token(ctx); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	started := time.Now()
	if c.logg != nil {
		ctx = c.logg.WithRequestID(ctx, uuid.NewString())
		ctx = c.logg.WithEndpoint(ctx, spec.path)
		c.logg.Debug(ctx, fmt.Sprintf("%s %s", spec.method, spec.path))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(spec.path, started, false)
		if ctx.Err() != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, ctx.Err(), "request cancelled")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "backend unreachable")
	}
	defer resp.Body.Close()
	c.observe(spec.path, started, resp.StatusCode < 400)

	if resp.StatusCode >= 400 {
		return c.handleErrorResponse(ctx, spec.path, resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode response body")
	}
	return nil
}

func (c *Client) handleErrorResponse(ctx context.Context, path string, resp *http.Response) error {
	code := pkgerrors.FromStatus(resp.StatusCode)

	var body struct {
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	_ = json.Unmarshal(raw, &body)
	message := strings.TrimSpace(body.Message)
	if message == "" {
		message = pkgerrors.MetadataFor(code).PublicMessage
	}

	sessionRejected := resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden
	if sessionRejected && !isSessionExempt(path) && c.onExpired != nil {
		if c.logg != nil {
			c.logg.Warn(ctx, "session rejected by backend, tearing down")
		}
		c.onExpired(ctx)
	}

	return pkgerrors.New(code, message).WithDetails(map[string]any{
		"status":   resp.StatusCode,
		"endpoint": path,
	})
}

// isSessionExempt reports whether a 401/403 on the path should be left for the
// caller instead of triggering the global session teardown. Login and register
// fail with these statuses on bad credentials, not on expired sessions.
func isSessionExempt(path string) bool {
	return path == pathLogin || path == pathRegister
}

func (c *Client) observe(endpoint string, started time.Time, ok bool) {
	if c.metrics == nil {
		return
	}
	c.metrics.ObserveDuration(endpoint, time.Since(started))
	if ok {
		c.metrics.IncSuccess(endpoint)
	} else {
		c.metrics.IncFailure(endpoint)
	}
}
