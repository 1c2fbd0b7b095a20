package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
//
// Errors returned by this package are derived from these with [Error.Wrap]
// and [Error.With]; a derived error still matches its sentinel with
// [errors.Is].
var (
	ErrSyntax           = NewError("syntax error")
	ErrType             = NewError("type error")
	ErrRange            = NewError("integer out of range")
	ErrMaxDepthExceeded = NewError("maximum list depth exceeded")
	ErrReadInput        = NewError("failed to read input")
	ErrInvalidFormat    = NewError("invalid format")
	ErrEncode           = NewError("encode failed")
	ErrQuery            = NewError("query failed")
)

// Kind classifies errors for reporting.
type Kind int

// KindSyntax covers malformed lines, values, expressions and arguments.
// KindType covers operands or arguments of the wrong value type. Anything
// else is KindOther.
const (
	KindOther  Kind = iota // other
	KindSyntax             // syntax
	KindType               // type
)

// KindOf reports the kind of err.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindOther
	case errors.Is(err, ErrType):
		return KindType
	case errors.Is(err, ErrSyntax):
		return KindSyntax
	default:
		return KindOther
	}
}

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	line  int         // 1-based source line, 0 if unknown
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
// If err already is (or wraps) an *Error, that value is returned.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the available fields:
	//
	//   "line <n>: <msg>: <err>"
	//
	// with each part omitted when unset.
	part := make([]string, 0, 3)

	if e.line > 0 {
		part = append(part, "line "+strconv.Itoa(e.line))
	}

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from.
// Sentinels are the errors that carry a message and wrap nothing.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.err != nil || t.msg == "" {
		return false
	}

	return t.msg == e.msg
}

// Line returns the 1-based source line recorded with [Error.WithLine],
// or 0 if none was recorded.
func (e *Error) Line() int { return e.line }

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	if e.line > 0 {
		attrs = append(attrs, slog.Int("line", e.line))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		line:  e.line,
		attrs: e.attrs, // Share attrs
	}
}

// WrapText creates a new Error wrapping a plain error built from text.
// The text is used verbatim, so offending input can be quoted safely.
func (e *Error) WrapText(text ...string) *Error {
	return e.Wrap(errors.New(strings.Join(text, "")))
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		line:  e.line,
		attrs: newAttrs,
	}
}

// WithLine returns a copy of the error positioned at the given source line.
func (e *Error) WithLine(line int) *Error {
	return &Error{
		msg:   e.msg,
		err:   e.err,
		line:  line,
		attrs: e.attrs,
	}
}
