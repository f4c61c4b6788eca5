// Package publish pushes the computed environments to the downstream control
// plane. Publishing is optional: without both an endpoint and a token every
// call is a no-op.
package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/inovacc/envsync/internal/model"
	"golang.org/x/oauth2"
)

// SyncPath is appended to the configured endpoint.
const SyncPath = "environments/sync"

// DefaultTimeout bounds a single publish request.
const DefaultTimeout = 30 * time.Second

// Options configures a Publisher
type Options struct {
	Endpoint   string
	Token      string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Result reports what Publish did.
type Result struct {
	Skipped bool
}

// Publisher sends environment lists to the control plane.
type Publisher struct {
	endpoint string
	token    string
	base     *http.Client
	logger   *slog.Logger
}

type payload struct {
	Environments []model.Environment `json:"environments"`
}

// New creates a Publisher. Missing endpoint or token is not an error.
func New(opts Options) *Publisher {
	base := opts.HTTPClient
	if base == nil {
		base = &http.Client{Timeout: DefaultTimeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Publisher{
		endpoint: strings.TrimSpace(opts.Endpoint),
		token:    strings.TrimSpace(opts.Token),
		base:     base,
		logger:   logger,
	}
}

// Configured reports whether both endpoint and token are set.
func (p *Publisher) Configured() bool {
	return p.endpoint != "" && p.token != ""
}

// Publish pushes envs in a single POST. It returns Result{Skipped: true} without
// any network traffic when the publisher is not configured.
func (p *Publisher) Publish(ctx context.Context, requestID string, envs []model.Environment) (Result, error) {
	if !p.Configured() {
		p.logger.Debug("publish skipped, endpoint or token not configured")
		return Result{Skipped: true}, nil
	}

	target, err := url.JoinPath(p.endpoint, SyncPath)
	if err != nil {
		return Result{}, fmt.Errorf("invalid publish endpoint %q: %w", p.endpoint, err)
	}

	if envs == nil {
		envs = []model.Environment{}
	}

	body, err := json.Marshal(payload{Environments: envs})
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode environments: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("failed to build publish request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	if requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := p.client(ctx).Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("publish request failed: %w", err)
	}

	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return Result{}, &PublishError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	_, _ = io.Copy(io.Discard, resp.Body)

	p.logger.Info("published environments",
		slog.String("endpoint", target),
		slog.Int("count", len(envs)),
		slog.Int("status", resp.StatusCode),
	)

	return Result{Skipped: false}, nil
}

// client wraps the base client with a bearer token transport.
func (p *Publisher) client(ctx context.Context) *http.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.base)
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: p.token, TokenType: "Bearer"})

	c := oauth2.NewClient(ctx, ts)
	c.Timeout = p.base.Timeout

	return c
}
