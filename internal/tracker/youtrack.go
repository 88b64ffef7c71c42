package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"strconv"
	"strings"

	"resty.dev/v3"
)

const (
	youTrackIssuesPath  = "/api/issues"
	youTrackIssueFields = "idReadable,numberInProject,summary,project(shortName),tags(name),customFields(name,value(name))"
	youTrackStateField  = "State"
)

type youTrackClient struct {
	rest     *resty.Client
	pageSize int
	logger   *slog.Logger
}

type youTrackIssue struct {
	IDReadable      string `json:"idReadable"`
	NumberInProject *int   `json:"numberInProject"`
	Summary         string `json:"summary"`
	Project         *struct {
		ShortName string `json:"shortName"`
	} `json:"project"`
	Tags []struct {
		Name string `json:"name"`
	} `json:"tags"`
	CustomFields []youTrackCustomField `json:"customFields"`
}

type youTrackCustomField struct {
	Name  string          `json:"name"`
	Value json.RawMessage `json:"value"`
}

type youTrackError struct {
	Error       string `json:"error"`
	Description string `json:"error_description"`
}

func newYouTrackClient(cfg Config) (*youTrackClient, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("youtrack host is empty")
	}

	rest := resty.NewWithClient(httpClientFor(cfg))
	rest.SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/"))
	rest.SetHeader("Accept", "application/json")
	if cfg.Token == "" && cfg.Username != "" {
		rest.SetBasicAuth(cfg.Username, cfg.Password)
	}

	return &youTrackClient{
		rest:     rest,
		pageSize: cfg.PageSize,
		logger:   cfg.Logger,
	}, nil
}

func (c *youTrackClient) Issues(ctx context.Context, query string, page Page) iter.Seq2[Issue, error] {
	return paginate(ctx, query, page, c.pageSize, c.listIssues)
}

func (c *youTrackClient) listIssues(ctx context.Context, query string, skip, top int) ([]Issue, bool, error) {
	c.logger.Debug("requesting youtrack issues", "query", query, "skip", skip, "top", top)

	var payload []youTrackIssue
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"query":  query,
			"fields": youTrackIssueFields,
			"$skip":  strconv.Itoa(skip),
			"$top":   strconv.Itoa(top),
		}).
		SetResult(&payload).
		Get(youTrackIssuesPath)
	if err != nil {
		return nil, false, fmt.Errorf("list youtrack issues: %w", err)
	}
	if resp.IsError() {
		return nil, false, fmt.Errorf("list youtrack issues: %w", newStatusError(resp.StatusCode(), youTrackErrorMessage(resp.String())))
	}

	issues := make([]Issue, 0, len(payload))
	for _, raw := range payload {
		issues = append(issues, raw.normalize())
	}
	c.logger.Debug("received youtrack issues", "count", len(issues))
	return issues, len(payload) >= top, nil
}

func (r youTrackIssue) normalize() Issue {
	issue := Issue{Summary: r.Summary}

	if r.Project != nil {
		issue.ProjectShortName = r.Project.ShortName
	}
	if r.NumberInProject != nil {
		issue.NumberInProject = *r.NumberInProject
	}
	if issue.ProjectShortName == "" || issue.NumberInProject == 0 {
		project, number := splitReadableID(r.IDReadable)
		if issue.ProjectShortName == "" {
			issue.ProjectShortName = project
		}
		if issue.NumberInProject == 0 {
			issue.NumberInProject = number
		}
	}

	for _, tag := range r.Tags {
		issue.Tags = append(issue.Tags, tag.Name)
	}
	for _, field := range r.CustomFields {
		if field.Name == youTrackStateField {
			issue.State = customFieldText(field.Value)
			break
		}
	}
	return issue
}

// splitReadableID splits "BON-12" into its project and number parts.
func splitReadableID(id string) (string, int) {
	idx := strings.LastIndex(id, "-")
	if idx <= 0 {
		return "", 0
	}
	number, err := strconv.Atoi(id[idx+1:])
	if err != nil || number <= 0 {
		return "", 0
	}
	return id[:idx], number
}

// customFieldText reads a custom field value that is either an element with
// a name, a list of such elements, or a plain scalar.
func customFieldText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var element struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &element); err == nil {
		return element.Name
	}

	var elements []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &elements); err == nil {
		names := make([]string, 0, len(elements))
		for _, e := range elements {
			names = append(names, e.Name)
		}
		return strings.Join(names, ", ")
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	return string(raw)
}

func youTrackErrorMessage(body string) string {
	var payload youTrackError
	if err := json.Unmarshal([]byte(body), &payload); err == nil {
		switch {
		case payload.Description != "":
			return payload.Description
		case payload.Error != "":
			return payload.Error
		}
	}
	return strings.TrimSpace(body)
}
