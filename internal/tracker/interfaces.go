package tracker

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"net/http"
)

const (
	// DefaultPageSize is the number of issues requested per API call.
	DefaultPageSize = 100
	// DefaultLimit bounds how many issues one run renders.
	DefaultLimit = 100
)

// Kind selects the tracker backend.
type Kind string

const (
	// KindYouTrack queries the YouTrack REST API.
	KindYouTrack Kind = "youtrack"
	// KindGitHub queries the GitHub issue search API.
	KindGitHub Kind = "github"
)

// ErrUnsupportedTracker indicates the backend kind is unknown.
var ErrUnsupportedTracker = errors.New("unsupported tracker")

// Page bounds a query to Limit issues starting at Offset.
type Page struct {
	Offset int
	Limit  int
}

// DefaultPage is the first DefaultLimit issues.
func DefaultPage() Page {
	return Page{Offset: 0, Limit: DefaultLimit}
}

// Client fetches issues matching a tracker filter query.
type Client interface {
	// Issues returns a lazy sequence: no request is sent before iteration.
	// A remote failure is yielded once as the error and ends the sequence.
	Issues(ctx context.Context, query string, page Page) iter.Seq2[Issue, error]
}

// Config configures a tracker client.
type Config struct {
	Kind     Kind
	BaseURL  string
	Username string
	Password string
	// Token is sent as a static bearer token and takes precedence over
	// Username and Password.
	Token      string
	HTTPClient *http.Client
	PageSize   int
	Logger     *slog.Logger
}

// WithDefaults fills missing optional values with package defaults.
func (c Config) WithDefaults() Config {
	if c.PageSize == 0 {
		c.PageSize = DefaultPageSize
	}
	c.Logger = cmp.Or(c.Logger, slog.Default())
	return c
}

// New constructs the client for cfg.Kind.
func New(cfg Config) (Client, error) {
	cfg = cfg.WithDefaults()
	if cfg.PageSize < 0 {
		return nil, fmt.Errorf("invalid PageSize %d", cfg.PageSize)
	}

	switch cfg.Kind {
	case KindYouTrack:
		client, err := newYouTrackClient(cfg)
		if err != nil {
			return nil, fmt.Errorf("create youtrack client: %w", err)
		}
		return client, nil
	case KindGitHub:
		client, err := newGitHubClient(cfg)
		if err != nil {
			return nil, fmt.Errorf("create github client: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("create client for %q: %w", cfg.Kind, ErrUnsupportedTracker)
	}
}

// pageFunc fetches up to top issues after skipping skip. more reports
// whether the backend has issues beyond the returned ones.
type pageFunc func(ctx context.Context, query string, skip, top int) (issues []Issue, more bool, err error)

func paginate(ctx context.Context, query string, page Page, pageSize int, fetch pageFunc) iter.Seq2[Issue, error] {
	return func(yield func(Issue, error) bool) {
		skip := max(page.Offset, 0)
		remaining := page.Limit
		for remaining > 0 {
			top := min(pageSize, remaining)
			issues, more, err := fetch(ctx, query, skip, top)
			if err != nil {
				yield(Issue{}, err)
				return
			}
			if len(issues) > remaining {
				issues = issues[:remaining]
			}
			for _, issue := range issues {
				if !yield(issue, nil) {
					return
				}
			}
			remaining -= len(issues)
			skip += len(issues)
			if !more || len(issues) == 0 {
				return
			}
		}
	}
}
