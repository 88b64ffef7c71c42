package cli

import (
	"errors"

	"github.com/johnqtcg/you/internal/config"
	"github.com/johnqtcg/you/internal/query"
	"github.com/johnqtcg/you/internal/tracker"
)

const (
	// ExitOK indicates the run completed successfully.
	ExitOK = 0
	// ExitRuntime indicates generic runtime failure.
	ExitRuntime = 1
	// ExitUsage indicates the command line carried no query.
	ExitUsage = 1
	// ExitConfig indicates a missing or invalid config file.
	ExitConfig = 2
	// ExitAuth indicates the tracker rejected the credentials.
	ExitAuth = 3
)

// ResolveExitCode maps run error state to CLI exit codes.
func ResolveExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	if errors.Is(err, query.ErrNoArgs) {
		return ExitUsage
	}

	var nfErr *config.NotFoundError
	if errors.As(err, &nfErr) {
		return ExitConfig
	}

	var vErr *config.ValidationError
	if errors.As(err, &vErr) {
		return ExitConfig
	}
	if errors.Is(err, tracker.ErrUnsupportedTracker) {
		return ExitConfig
	}

	if tracker.IsAuthError(err) {
		return ExitAuth
	}

	return ExitRuntime
}
