package cli

import (
	"context"
	"errors"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/ardnew/arrowconf/cli/cmd"
	"github.com/ardnew/arrowconf/lang"
	"github.com/ardnew/arrowconf/pkg"
)

// CLI is the top-level command-line interface for arrowconf.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit" short:"V"`

	Source   []string `help:"Input source file(s) or '-' for stdin"               name:"source" short:"s" type:"existingfile"`
	Strict   bool     `help:"Exit with a non-zero status when a command fails"`
	MaxDepth int      `help:"Maximum list nesting depth" default:"${maxDepth}"`

	Convert cmd.Convert `cmd:"" default:"withargs" help:"Convert configuration to TOML, YAML or JSON"`
	Query   cmd.Query   `cmd:""                    help:"Evaluate an expression over the configuration"`
	Fmt     cmd.Fmt     `cmd:""                    help:"Print the evaluated configuration in arrow syntax"`
	Repl    cmd.Repl    `cmd:""                    help:"Start an interactive session"`
	Init    cmd.Init    `cmd:""                    help:"Initialize configuration file"`
}

// Run executes the arrowconf CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
//
// Commands read and write the streams stored in ctx by [cmd.WithStreams],
// or the process standard streams.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) (err error) {
	var cli CLI

	if err := pkg.MkdirAll(); err != nil {
		return err
	}

	streams := cmd.StreamsFrom(ctx)
	ctx = cmd.WithStreams(ctx, streams)

	configFilePath := pkg.ConfigPath(cmd.ConfigIdentifier)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  pkg.CacheDir(),
		"maxDepth":           strconv.Itoa(lang.DefaultMaxDepth),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(streams.Out, streams.Err),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve(ctx), configFilePath),
		vars,
		kong.Vars{"version": pkg.Version()},
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSettings(ctx, cmd.Settings{
		Strict:   cli.Strict,
		MaxDepth: cli.MaxDepth,
	})
	ctx = cmd.WithSourceFiles(ctx, cli.Source)

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx, streams.Err)

	// Strict mode exit status is applied after profiling stops.
	defer func() {
		var exitErr *cmd.ExitError
		if errors.As(err, &exitErr) {
			exit(exitErr.Code)

			err = nil
		}
	}()

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
