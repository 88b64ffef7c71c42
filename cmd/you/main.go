package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/johnqtcg/you/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := runWithRunner(ctx, os.Args[1:], cli.NewApp(cli.AppDeps{}))
	stop()
	os.Exit(code)
}

func runWithRunner(ctx context.Context, args []string, runner cli.Runner) int {
	code := cli.ExitOK
	cmd := newRootCommand(runner, &code)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		return cli.ExitRuntime
	}
	return code
}

// newRootCommand passes every argument through to the runner untouched, so
// query tokens like -Resolved or --help are never read as flags.
func newRootCommand(runner cli.Runner, code *int) *cobra.Command {
	return &cobra.Command{
		Use:                "you <QUERY|ALIAS>",
		Short:              "List issue tracker issues for a query or alias",
		Long:               "Resolves an alias or free-text filter query, substitutes ${variables} from ~/.youtrack.yml and prints the matching issues. Run 'you aliases' to list configured aliases.",
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			*code = runner.Run(cmd.Context(), args)
			return nil
		},
	}
}
