package cmd

import (
	"context"
	"path/filepath"

	"github.com/ardnew/arrowconf/cli/cmd/repl"
	"github.com/ardnew/arrowconf/log"
	"github.com/ardnew/arrowconf/pkg"
)

// Repl starts an interactive session. Source files given with --source are
// loaded before the first prompt.
type Repl struct {
	HistorySize int `default:"1000" help:"Maximum number of retained history entries"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	streams := StreamsFrom(ctx)

	cfg := repl.Config{
		HistoryPath: historyPath(ctx),
		HistorySize: r.HistorySize,
		Logger:      log.Default(),
		Options:     langOptions(ctx),
		Input:       streams.In,
		Output:      streams.Out,
	}

	// Stdin drives the terminal, so only named files are preloaded.
	if src := sourceFilesFrom(ctx); src != nil {
		defer src.Close()

		if src.Stdin() == nil {
			cfg.Source = src
		}
	}

	return report(ctx, "repl", repl.Run(ctx, cfg))
}

// historyPath returns the history file within the cache directory named by
// the kong variable [CacheIdentifier].
func historyPath(ctx context.Context) string {
	if ktx := kongContextFrom(ctx); ktx != nil {
		if dir, ok := ktx.Model.Vars()[CacheIdentifier]; ok && dir != "" {
			return filepath.Join(dir, repl.BaseHistory)
		}
	}

	return pkg.CachePath(repl.BaseHistory)
}
