package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ardnew/arrowconf/lang"
	"github.com/ardnew/arrowconf/log"
)

// Error represents a CLI command error with structured logging support.
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
}

func NewError(msg string) *Error {
	return &Error{msg: msg}
}

func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

func (e *Error) Unwrap() error { return e.err }

func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.Any("cause", e.err))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{msg: e.msg, err: err, attrs: e.attrs}
}

// With adds attributes to the error for structured logging.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{msg: e.msg, err: e.err, attrs: newAttrs}
}

var (
	ErrWriteOutput = NewError("write output file")
	ErrWriteConfig = NewError("write configuration file")
	ErrFileExists  = NewError("file exists (use --force to overwrite)")
)

// Exit status codes reported in strict mode.
const (
	ExitFailure = 1
	ExitSyntax  = 2
	ExitType    = 3
)

// ExitError requests process termination with a specific status code.
// It is returned by commands only in strict mode, after the failure has
// already been reported.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode returns the strict-mode exit status for err.
func ExitCode(err error) int {
	switch lang.KindOf(err) {
	case lang.KindSyntax:
		return ExitSyntax
	case lang.KindType:
		return ExitType
	default:
		return ExitFailure
	}
}

// report prints err to the output stream as "Error: <message>" and logs it at
// debug level. It returns nil unless strict mode is enabled, in which case it
// returns an [ExitError] carrying the exit status for the error kind.
func report(ctx context.Context, command string, err error) error {
	if err == nil {
		return nil
	}

	fmt.Fprintf(StreamsFrom(ctx).Out, "Error: %s\n", err)

	log.DebugContext(
		ctx,
		"command failed",
		slog.String("command", command),
		slog.String("kind", lang.KindOf(err).String()),
		slog.Any("error", err),
	)

	if !settingsFrom(ctx).Strict {
		return nil
	}

	return &ExitError{Code: ExitCode(err), Err: err}
}
