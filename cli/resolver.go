package cli

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/arrowconf/cli/cmd"
	"github.com/ardnew/arrowconf/lang"
	"github.com/ardnew/arrowconf/log"
)

// resolve returns a [kong.ConfigurationLoader] that parses config files
// written in arrow syntax.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx), "/path/to/config")
//
// Each assignment names a flag in upper case with hyphens removed:
//
//	LOGLEVEL <- |concat(debug)|
//	LOGPRETTY <- |concat(false)|
//	MAXDEPTH <- 500
//	SOURCE <- (list |concat(base.conf)| |concat(local.conf)|)
//
// This configuration is applied as:
//
//	--log-level=debug --no-log-pretty --max-depth=500 --source=base.conf,local.conf
//
// Command-line flags override config file values. A config file that fails
// to parse is logged and otherwise ignored.
func resolve(ctx context.Context) func(r io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		m, err := lang.ParseReader(ctx, r)
		if err != nil {
			log.WarnContext(
				ctx,
				"ignoring invalid configuration file",
				slog.Any("error", err),
			)

			return config{}, nil
		}

		return configFrom(m), nil
	}
}

// config implements [kong.Resolver] for arrow syntax configs.
type config map[string]string

// configFrom flattens m into flag values as kong parses them from the
// command line. Lists are joined with commas.
func configFrom(m *lang.Mapping) config {
	c := make(config, m.Len())

	for name, v := range m.All() {
		c[name] = flagString(v)
	}

	return c
}

func flagString(v lang.Value) string {
	switch v.Kind {
	case lang.KindInt:
		return strconv.FormatInt(v.Int, 10)

	case lang.KindList:
		elems := make([]string, len(v.List))
		for i, e := range v.List {
			elems[i] = flagString(e)
		}

		return strings.Join(elems, ",")

	default:
		return v.Str
	}
}

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[cmd.ConfigName(flag.Name)]; ok {
		return value, nil
	}

	// Not found: let kong use defaults
	return nil, nil //nolint:nilnil
}
