package tracker

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"net/url"
	"path"
	"strings"

	goGithub "github.com/google/go-github/v72/github"
)

const defaultGitHubBaseURL = "https://api.github.com/"

type gitHubClient struct {
	client   *goGithub.Client
	pageSize int
	logger   *slog.Logger
}

func newGitHubClient(cfg Config) (*gitHubClient, error) {
	client := goGithub.NewClient(httpClientFor(cfg))

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGitHubBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse REST base URL %q: %w", baseURL, err)
	}
	client.BaseURL = parsed

	return &gitHubClient{
		client:   client,
		pageSize: cfg.PageSize,
		logger:   cfg.Logger,
	}, nil
}

func (c *gitHubClient) Issues(ctx context.Context, query string, page Page) iter.Seq2[Issue, error] {
	return paginate(ctx, query, page, c.pageSize, c.searchIssues)
}

// searchIssues maps skip onto GitHub's page numbers. Pages always have
// pageSize entries so a skip inside a page drops the leading entries.
func (c *gitHubClient) searchIssues(ctx context.Context, query string, skip, top int) ([]Issue, bool, error) {
	perPage := c.pageSize
	opts := &goGithub.SearchOptions{
		ListOptions: goGithub.ListOptions{
			PerPage: perPage,
			Page:    skip/perPage + 1,
		},
	}
	c.logger.Debug("searching github issues", "query", query, "page", opts.Page, "per_page", perPage)

	result, resp, err := c.client.Search.Issues(ctx, query, opts)
	if err != nil {
		return nil, false, wrapRESTError("search issues", err)
	}

	found := result.Issues
	if within := skip % perPage; within > 0 {
		found = found[min(within, len(found)):]
	}
	if len(found) > top {
		found = found[:top]
	}

	issues := make([]Issue, 0, len(found))
	for _, issue := range found {
		issues = append(issues, mapGitHubIssue(issue))
	}
	more := resp != nil && resp.NextPage != 0
	return issues, more, nil
}

func mapGitHubIssue(issue *goGithub.Issue) Issue {
	out := Issue{
		ProjectShortName: repositoryName(issue.GetRepositoryURL()),
		NumberInProject:  issue.GetNumber(),
		Summary:          issue.GetTitle(),
		State:            issue.GetState(),
	}
	for _, label := range issue.Labels {
		if name := label.GetName(); name != "" {
			out.Tags = append(out.Tags, name)
		}
	}
	return out
}

// repositoryName returns "repo" from ".../repos/owner/repo".
func repositoryName(repositoryURL string) string {
	if repositoryURL == "" {
		return ""
	}
	parsed, err := url.Parse(repositoryURL)
	if err != nil {
		return ""
	}
	name := path.Base(strings.TrimSuffix(parsed.Path, "/"))
	if name == "." || name == "/" {
		return ""
	}
	return name
}

func wrapRESTError(op string, err error) error {
	if err == nil {
		return nil
	}

	var respErr *goGithub.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		return fmt.Errorf("%s: %w", op, &statusError{
			StatusCode: respErr.Response.StatusCode,
			Err:        err,
		})
	}

	return fmt.Errorf("%s: %w", op, err)
}
