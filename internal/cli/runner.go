package cli

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"

	"github.com/johnqtcg/you/internal/config"
	"github.com/johnqtcg/you/internal/query"
	"github.com/johnqtcg/you/internal/render"
	"github.com/johnqtcg/you/internal/tracker"
)

// UsageLine is printed when the command line is empty.
const UsageLine = "Usage: you <QUERY/ALIAS>"

// Runner executes the CLI application flow.
type Runner interface {
	Run(ctx context.Context, args []string) int
}

// ClientFactory creates issue tracker clients from runtime config.
type ClientFactory interface {
	New(cfg config.Config, logger *slog.Logger) (tracker.Client, error)
}

// Renderer writes the terminal output of a run.
type Renderer interface {
	Query(w io.Writer, q string) error
	Issues(w io.Writer, seq iter.Seq2[tracker.Issue, error]) (int, error)
	Aliases(w io.Writer, names []string) error
}

// AppDeps defines dependencies for CLI app construction.
type AppDeps struct {
	Loader        config.Loader
	Resolver      query.Resolver
	ClientFactory ClientFactory
	Renderer      Renderer
	Logger        *slog.Logger
	Stdout        io.Writer
	Stderr        io.Writer
}

// App orchestrates a single query run.
type App struct {
	loader        config.Loader
	resolver      query.Resolver
	clientFactory ClientFactory
	renderer      Renderer
	logger        *slog.Logger
	stdout        io.Writer
	stderr        io.Writer
}

// NewApp creates a CLI runner with injected dependencies.
func NewApp(deps AppDeps) Runner {
	app := &App{
		loader:        deps.Loader,
		resolver:      deps.Resolver,
		clientFactory: deps.ClientFactory,
		renderer:      deps.Renderer,
		logger:        deps.Logger,
		stdout:        deps.Stdout,
		stderr:        deps.Stderr,
	}
	app.setDefaults()
	return app
}

func (a *App) setDefaults() {
	if a.stdout == nil {
		a.stdout = os.Stdout
	}
	if a.stderr == nil {
		a.stderr = os.Stderr
	}
	if a.logger == nil {
		a.logger = NewLogger(os.Getenv(EnvLogLevel), os.Getenv(EnvLogFormat), a.stderr)
	}
	if a.loader == nil {
		a.loader = config.NewLoader(config.LoaderOptions{})
	}
	if a.resolver == nil {
		a.resolver = query.New()
	}
	if a.clientFactory == nil {
		a.clientFactory = defaultClientFactory{}
	}
	if a.renderer == nil {
		a.renderer = render.New()
	}
}

// Run executes the CLI workflow and returns an exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		if _, err := fmt.Fprintln(a.stdout, UsageLine); err != nil {
			writeErrorLine(a.stderr, fmt.Errorf("write usage: %w", err))
		}
		return ExitUsage
	}

	if err := a.run(ctx, args); err != nil {
		writeErrorLine(a.stderr, err)
		return ResolveExitCode(err)
	}
	return ExitOK
}

func (a *App) run(ctx context.Context, args []string) error {
	cfg, err := a.loader.Load()
	if err != nil {
		return err
	}
	a.logger.Debug("config loaded", "path", cfg.Path, "tracker", cfg.Tracker, "aliases", len(cfg.Aliases), "variables", len(cfg.Variables))

	res, err := a.resolver.Resolve(args, cfg)
	if err != nil {
		return fmt.Errorf("resolve query: %w", err)
	}
	a.logger.Debug("arguments resolved", "mode", res.Mode)

	if res.Mode == query.ModeListAliases {
		return a.renderer.Aliases(a.stdout, res.Aliases)
	}
	if res.Alias != "" {
		a.logger.Debug("alias used", "alias", res.Alias)
	}

	if err := a.renderer.Query(a.stdout, res.Query); err != nil {
		return err
	}

	client, err := a.clientFactory.New(cfg, a.logger)
	if err != nil {
		return fmt.Errorf("build client: %w", err)
	}

	count, err := a.renderer.Issues(a.stdout, client.Issues(ctx, res.Query, tracker.DefaultPage()))
	if err != nil {
		return fmt.Errorf("list issues: %w", err)
	}
	a.logger.Info("issues listed", "count", count)
	return nil
}

type defaultClientFactory struct{}

func (f defaultClientFactory) New(cfg config.Config, logger *slog.Logger) (tracker.Client, error) {
	_ = f
	client, err := tracker.New(trackerConfig(cfg, logger))
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return client, nil
}

func trackerConfig(cfg config.Config, logger *slog.Logger) tracker.Config {
	if cfg.Tracker == config.TrackerGitHub {
		return tracker.Config{
			Kind:    tracker.KindGitHub,
			BaseURL: cfg.GitHub.APIURL,
			Token:   cfg.GitHub.Token,
			Logger:  logger,
		}
	}
	return tracker.Config{
		Kind:     tracker.Kind(cfg.Tracker),
		BaseURL:  cfg.YouTrack.Host,
		Username: cfg.YouTrack.Username,
		Password: cfg.YouTrack.Password,
		Token:    cfg.YouTrack.Token,
		Logger:   logger,
	}
}

func writeErrorLine(w io.Writer, err error) {
	if _, writeErr := fmt.Fprintf(w, "error: %v\n", err); writeErr != nil {
		return
	}
}
