// Package collector fetches every repository of a GitHub organization.
package collector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v82/github"
	"github.com/inovacc/envsync/internal/application"
	"github.com/inovacc/envsync/internal/model"
	"golang.org/x/oauth2"
)

const (
	// PageSize is the number of repositories requested per page. A page with
	// fewer items marks the end of the collection.
	PageSize = 100

	// MaxPages bounds pagination against a misbehaving server.
	MaxPages = 1000

	// DefaultAPIURL is the public GitHub REST endpoint.
	DefaultAPIURL = "https://api.github.com/"
)

// Options configures a Collector
type Options struct {
	// Token is sent as a bearer credential when non-empty
	Token string

	// APIURL overrides the REST base URL (GitHub Enterprise, tests)
	APIURL string

	// HTTPClient is the base client; defaults to http.DefaultClient
	HTTPClient *http.Client

	// MaxPages caps pagination; defaults to MaxPages
	MaxPages int

	Logger *slog.Logger
}

// Collector lists organization repositories page by page.
type Collector struct {
	client   *github.Client
	maxPages int
	logger   *slog.Logger
}

// New creates a Collector.
func New(opts Options) (*Collector, error) {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	if opts.Token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token, TokenType: "Bearer"})
		httpClient = oauth2.NewClient(ctx, ts)
	}

	client := github.NewClient(httpClient)
	client.UserAgent = application.UserAgent

	if opts.APIURL != "" {
		base, err := parseBaseURL(opts.APIURL)
		if err != nil {
			return nil, err
		}

		client.BaseURL = base
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	maxPages := opts.MaxPages
	if maxPages <= 0 {
		maxPages = MaxPages
	}

	return &Collector{client: client, maxPages: maxPages, logger: logger}, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API URL %q: %w", raw, err)
	}

	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid GitHub API URL %q: scheme and host required", raw)
	}

	return u, nil
}

// FetchAll returns every repository of org in server order. Pages are requested
// sequentially starting at 1 until a page holds fewer than PageSize items. Any
// failure aborts the whole fetch.
func (c *Collector) FetchAll(ctx context.Context, org string) ([]model.Item, error) {
	var items []model.Item

	for page := 1; page <= c.maxPages; page++ {
		opt := &github.RepositoryListByOrgOptions{
			Type: "all",
			ListOptions: github.ListOptions{
				Page:    page,
				PerPage: PageSize,
			},
		}

		start := time.Now()

		repos, resp, err := c.client.Repositories.ListByOrg(ctx, org, opt)
		if err != nil {
			return nil, classifyError(org, page, resp, err)
		}

		c.logger.Debug("fetched repository page",
			slog.String("org", org),
			slog.Int("page", page),
			slog.Int("count", len(repos)),
			slog.Duration("elapsed", time.Since(start)),
		)

		for i, repo := range repos {
			item, err := toItem(repo)
			if err != nil {
				var malformed *MalformedItemError
				if errors.As(err, &malformed) {
					malformed.Page = page
					malformed.Index = i
				}

				return nil, err
			}

			items = append(items, item)
		}

		if len(repos) < PageSize {
			c.logger.Info("fetched organization repositories",
				slog.String("org", org),
				slog.Int("pages", page),
				slog.Int("repos", len(items)),
			)

			return items, nil
		}
	}

	return nil, &PageLimitError{Org: org, Pages: c.maxPages}
}

func toItem(r *github.Repository) (model.Item, error) {
	if r == nil {
		return model.Item{}, &MalformedItemError{Field: "repository"}
	}

	item := model.Item{
		ID:          r.GetID(),
		Name:        r.GetName(),
		FullName:    r.GetFullName(),
		URL:         r.GetHTMLURL(),
		Description: r.Description,
		Archived:    r.GetArchived(),
	}

	switch {
	case r.ID == nil:
		return model.Item{}, &MalformedItemError{Field: "id"}
	case item.Name == "":
		return model.Item{}, &MalformedItemError{Field: "name"}
	case item.FullName == "":
		return model.Item{}, &MalformedItemError{Field: "full_name"}
	case item.URL == "":
		return model.Item{}, &MalformedItemError{Field: "html_url"}
	}

	if r.PushedAt != nil && !r.PushedAt.IsZero() {
		pushed := r.PushedAt.UTC()
		item.PushedAt = &pushed
	}

	return item, nil
}

// classifyError maps a go-github failure onto the collector's error taxonomy.
func classifyError(org string, page int, resp *github.Response, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &TransportError{Op: fmt.Sprintf("fetch page %d", page), Err: err}
	}

	var rateLimitErr *github.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RemoteAPIError{StatusCode: statusOf(rateLimitErr.Response), Body: rateLimitErr.Message}
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &RemoteAPIError{StatusCode: statusOf(abuseErr.Response), Body: abuseErr.Message}
	}

	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) {
		status := statusOf(errResp.Response)
		if status == http.StatusNotFound {
			return &OrganizationNotFoundError{Org: org}
		}

		return &RemoteAPIError{StatusCode: status, Body: responseBody(errResp.Response, errResp.Message)}
	}

	// a response arrived but could not be decoded
	if resp != nil && resp.Response != nil {
		return &RemoteAPIError{StatusCode: resp.StatusCode, Body: fmt.Sprintf("invalid response: %v", err)}
	}

	return &TransportError{Op: fmt.Sprintf("fetch page %d", page), Err: err}
}

func statusOf(resp *http.Response) int {
	if resp == nil {
		return 0
	}

	return resp.StatusCode
}

func responseBody(resp *http.Response, fallback string) string {
	if resp == nil || resp.Body == nil {
		return fallback
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(strings.TrimSpace(string(data))) == 0 {
		return fallback
	}

	return strings.TrimSpace(string(data))
}
