package query

import (
	"errors"
	"strings"

	"github.com/johnqtcg/you/internal/config"
)

// ListAliasesCommand is the literal first argument that switches to listing mode.
const ListAliasesCommand = "aliases"

// ErrNoArgs indicates the command line carried neither a query nor an alias.
var ErrNoArgs = errors.New("no query or alias given")

// Mode identifies what the command line asked for.
type Mode string

const (
	// ModeQuery runs a filter query against the tracker.
	ModeQuery Mode = "query"
	// ModeListAliases prints the configured alias names.
	ModeListAliases Mode = "list_aliases"
)

// Resolution is the outcome of resolving command line arguments.
type Resolution struct {
	Mode Mode
	// Aliases holds alias names in document order for ModeListAliases.
	Aliases []string
	// Alias is the alias name used to build Query, empty for free text.
	Alias string
	// Query is the final filter query for ModeQuery.
	Query string
}

// Resolver turns command line arguments into a filter query.
type Resolver interface {
	Resolve(args []string, cfg config.Config) (Resolution, error)
}

// New creates the default resolver implementation.
func New() Resolver {
	return &defaultResolver{}
}

type defaultResolver struct{}

func (r *defaultResolver) Resolve(args []string, cfg config.Config) (Resolution, error) {
	_ = r

	if len(args) == 0 {
		return Resolution{}, ErrNoArgs
	}

	if args[0] == ListAliasesCommand {
		return Resolution{
			Mode:    ModeListAliases,
			Aliases: cfg.AliasNames(),
		}, nil
	}

	out := Resolution{Mode: ModeQuery}
	if alias, ok := cfg.Alias(args[0]); ok {
		out.Alias = alias.Name
		out.Query = alias.Query
	} else {
		out.Query = strings.Join(args, " ")
	}

	out.Query = Substitute(out.Query, cfg.DynVariables())
	return out, nil
}

// Substitute replaces every placeholder occurrence with its value in a single
// pass. Replaced text is never scanned again, so a value that contains another
// placeholder is kept literally. Unknown placeholders are left unchanged.
func Substitute(q string, vars []config.DynVariable) string {
	if len(vars) == 0 {
		return q
	}

	oldnew := make([]string, 0, len(vars)*2)
	for _, v := range vars {
		if v.Placeholder == "" {
			continue
		}
		oldnew = append(oldnew, v.Placeholder, v.Value)
	}
	return strings.NewReplacer(oldnew...).Replace(q)
}
