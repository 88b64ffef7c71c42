package cli

import (
	"context"
	"io"
	"iter"
	"log/slog"

	"github.com/johnqtcg/you/internal/config"
	"github.com/johnqtcg/you/internal/tracker"
)

type fakeLoader struct {
	cfg   config.Config
	err   error
	calls int
}

func (f *fakeLoader) Load() (config.Config, error) {
	f.calls++
	if f.err != nil {
		return config.Config{}, f.err
	}
	return f.cfg, nil
}

type fakeClientFactory struct {
	client *fakeClient
	err    error
	gotCfg []config.Config
}

func (f *fakeClientFactory) New(cfg config.Config, _ *slog.Logger) (tracker.Client, error) {
	f.gotCfg = append(f.gotCfg, cfg)
	if f.err != nil {
		return nil, f.err
	}
	return f.client, nil
}

type fakeClient struct {
	issues     []tracker.Issue
	err        error
	gotQueries []string
	gotPages   []tracker.Page
}

func (f *fakeClient) Issues(_ context.Context, q string, page tracker.Page) iter.Seq2[tracker.Issue, error] {
	f.gotQueries = append(f.gotQueries, q)
	f.gotPages = append(f.gotPages, page)
	return func(yield func(tracker.Issue, error) bool) {
		for _, issue := range f.issues {
			if !yield(issue, nil) {
				return
			}
		}
		if f.err != nil {
			yield(tracker.Issue{}, f.err)
		}
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
