package cmd

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/ardnew/arrowconf/lang"
)

// Fmt evaluates the input and prints the resulting mapping in arrow syntax,
// one literal assignment per name.
type Fmt struct{}

// Run executes the fmt command.
func (f *Fmt) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	return report(ctx, "fmt", f.format(ctx))
}

func (f *Fmt) format(ctx context.Context) error {
	m, err := parseSource(ctx)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := m.Format(&buf); err != nil {
		return lang.WrapError(err).With(slog.String("command", "fmt"))
	}

	_, err = buf.WriteTo(StreamsFrom(ctx).Out)

	return err
}
