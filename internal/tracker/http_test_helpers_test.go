package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

// RoundTrip links the stub response to its request the way a real
// transport does; go-github error messages read it.
func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := f(req)
	if resp != nil && resp.Request == nil {
		resp.Request = req
	}
	return resp, err
}

func newTestHTTPClient(fn roundTripFunc) *http.Client {
	return &http.Client{Transport: fn}
}

func mustJSONResponse(t *testing.T, statusCode int, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("encode json response: %v", err)
	}
	return &http.Response{
		StatusCode: statusCode,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader(body)),
	}
}

func notFoundResponse(path string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusNotFound,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(fmt.Sprintf(`{"error":"not found: %s"}`, path))),
	}
}

func youTrackIssuePayload(id string, number int, summary, state string, tags ...string) map[string]any {
	tagList := make([]map[string]any, 0, len(tags))
	for _, tag := range tags {
		tagList = append(tagList, map[string]any{"name": tag})
	}
	return map[string]any{
		"idReadable":      id,
		"numberInProject": number,
		"summary":         summary,
		"project":         map[string]any{"shortName": "BON"},
		"tags":            tagList,
		"customFields": []map[string]any{
			{"name": "Priority", "value": map[string]any{"name": "Major"}},
			{"name": "State", "value": map[string]any{"name": state, "$type": "StateBundleElement"}},
		},
	}
}

func collect(t *testing.T, client Client, query string, page Page) ([]Issue, error) {
	t.Helper()
	var out []Issue
	for issue, err := range client.Issues(context.Background(), query, page) {
		if err != nil {
			return out, err
		}
		out = append(out, issue)
	}
	return out, nil
}
