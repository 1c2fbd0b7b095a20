package cmd

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/arrowconf/lang"
	"github.com/ardnew/arrowconf/log"
	"github.com/ardnew/arrowconf/pkg"
	"github.com/ardnew/arrowconf/profile"
)

// configFileMode is the permission mode of the generated configuration file.
const configFileMode os.FileMode = 0o600

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	return report(ctx, "init", i.write(ctx))
}

func (i *Init) write(ctx context.Context) error {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		panic("internal error: kong context undefined")
	}

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	if _, err := os.Stat(confPath); err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s configuration\n", pkg.Name)
	buf.WriteString("# Names are command-line flag names in upper case without hyphens.\n")

	if err := ConfigMapping(ktx).Format(&buf); err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}

	if err := os.WriteFile(confPath, buf.Bytes(), configFileMode); err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}

	log.DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// ConfigName returns the configuration name of a flag: the flag name in
// upper case with hyphens removed.
func ConfigName(flag string) string {
	return strings.ToUpper(strings.ReplaceAll(flag, "-", ""))
}

// ConfigMapping constructs the configuration mapping from the current flag
// values of ktx. Only application-level flags are considered. Help, version
// and profiling flags are excluded, as are empty values and strings that
// cannot be written in arrow syntax.
func ConfigMapping(ktx *kong.Context) *lang.Mapping {
	m := lang.NewMapping()

	prefixIgnore := []string{"help", "version", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		name := ConfigName(flag.Name)
		if !lang.IsName(name) {
			continue
		}

		v, ok := flagValue(ktx.FlagValue(flag))
		if !ok {
			continue
		}

		if _, err := v.Literal(); err != nil {
			log.Debug(
				"skipping flag",
				slog.String("flag", flag.Name),
				slog.Any("error", err),
			)

			continue
		}

		m.Set(name, v)
	}

	return m
}

// flagValue converts a parsed flag value to an arrow value. It reports false
// for unset and empty values.
func flagValue(val any) (lang.Value, bool) {
	switch v := val.(type) {
	case nil:
		return lang.Value{}, false

	case bool:
		return lang.Str(fmt.Sprint(v)), true

	case int:
		return lang.Int(int64(v)), true

	case int64:
		return lang.Int(v), true

	case string:
		return lang.Str(v), v != ""

	case []string:
		if len(v) == 0 {
			return lang.Value{}, false
		}

		elems := make([]lang.Value, len(v))
		for i, s := range v {
			elems[i] = lang.Str(s)
		}

		return lang.List(elems...), true

	default:
		s := fmt.Sprint(v)

		return lang.Str(s), s != ""
	}
}
