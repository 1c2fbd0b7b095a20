package cmd

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ardnew/arrowconf/lang"
	"github.com/ardnew/arrowconf/log"
)

// outputFileMode is the permission mode of files written by convert.
const outputFileMode os.FileMode = 0o644

// Convert evaluates the input and writes the resulting mapping to a file.
type Convert struct {
	Output string `arg:""                                                                     help:"Output file path"               name:"output" type:"path"`
	Format string `help:"Output format (toml, yaml, json); defaults to the output extension" placeholder:"FORMAT" short:"F"`
	Indent int    `default:"2"                                                                help:"Indent width for YAML and JSON" short:"i"`
}

// Run executes the convert command.
func (c *Convert) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	return report(ctx, "convert", c.convert(ctx))
}

func (c *Convert) format() (lang.Format, error) {
	if c.Format == "" {
		return lang.FormatFromPath(c.Output), nil
	}

	return lang.ParseFormat(c.Format)
}

func (c *Convert) convert(ctx context.Context) error {
	format, err := c.format()
	if err != nil {
		return err
	}

	m, err := parseSource(ctx)
	if err != nil {
		return err
	}

	// Encode fully before touching the output file.
	var buf bytes.Buffer
	if err := lang.Encode(ctx, &buf, m, format, c.Indent); err != nil {
		return err
	}

	if sum, ok := unchanged(c.Output, buf.Bytes()); ok {
		log.DebugContext(
			ctx,
			"output unchanged",
			slog.String("file", c.Output),
			slog.String("fingerprint", sum),
		)
	} else if err := os.WriteFile(c.Output, buf.Bytes(), outputFileMode); err != nil {
		return ErrWriteOutput.With(slog.String("file", c.Output)).Wrap(err)
	}

	log.DebugContext(
		ctx,
		"output written",
		slog.String("file", c.Output),
		slog.String("format", format.String()),
		slog.Int("entries", m.Len()),
		slog.Int("bytes", buf.Len()),
	)

	fmt.Fprintf(
		StreamsFrom(ctx).Out,
		"%s output written to %s\n",
		strings.ToUpper(format.String()),
		c.Output,
	)

	return nil
}

// unchanged reports whether the regular file at path already holds data,
// comparing content fingerprints.
func unchanged(path string, data []byte) (string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() || info.Size() != int64(len(data)) {
		return "", false
	}

	sum, err := lang.FingerprintReader(f)
	if err != nil || sum != lang.Fingerprint(string(data)) {
		return "", false
	}

	return sum, true
}
