package lang

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strings"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"

	"github.com/ardnew/arrowconf/log"
)

// Interpreter evaluates source lines one at a time against a variable table
// and collects every assignment into an ordered [Mapping].
//
// An Interpreter is not safe for concurrent use.
type Interpreter struct {
	vars     map[string]Value
	result   *Mapping
	maxDepth int
	logger   log.Logger
}

// Assignment is the outcome of interpreting one assignment line.
type Assignment struct {
	Name  string
	Value Value
}

// New returns an interpreter with empty tables.
func New(opts ...Option) *Interpreter {
	in := &Interpreter{
		vars:   make(map[string]Value),
		result: NewMapping(),
	}

	applyDefaults(in)
	applyOptions(in, opts...)

	return in
}

// Parse interprets every line of text with a fresh interpreter and returns
// the resulting mapping. The first error aborts the parse and no partial
// result is returned.
func Parse(ctx context.Context, text string, opts ...Option) (*Mapping, error) {
	in := New(opts...)

	if err := in.Load(ctx, text); err != nil {
		return nil, err
	}

	return in.result, nil
}

// ParseReader reads all of r and interprets it with [Parse].
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Mapping, error) {
	// Wrap reader with async read-ahead so input is fetched while the
	// previous chunk is being copied.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	return Parse(ctx, string(data), opts...)
}

// Lines yields each line of text with its 1-based line number.
// Lines are split on '\n' and trimmed of surrounding whitespace.
func Lines(text string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		n := 0
		for line := range strings.SplitSeq(text, "\n") {
			n++

			if !yield(n, strings.TrimSpace(line)) {
				return
			}
		}
	}
}

// Fingerprint returns the hex xxh3 digest of text.
func Fingerprint(text string) string {
	return fmt.Sprintf("%016x", xxh3.HashString(text))
}

// FingerprintReader returns the hex xxh3 digest of everything read from r.
// It equals Fingerprint of the same content.
func FingerprintReader(r io.Reader) (string, error) {
	h := xxh3.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}

	return fmt.Sprintf("%016x", h.Sum64()), nil
}

// Load interprets every line of text in order, stopping at the first error.
// Assignments made by earlier lines are kept.
func (in *Interpreter) Load(ctx context.Context, text string) error {
	for n, line := range Lines(text) {
		if err := ctx.Err(); err != nil {
			return err
		}

		if _, err := in.exec(ctx, n, line); err != nil {
			in.logger.DebugContext(ctx, "load failed", slog.Any("error", err))

			return err
		}
	}

	in.logger.DebugContext(
		ctx,
		"parse complete",
		slog.Int("assignments", in.result.Len()),
		slog.Int("source_bytes", len(text)),
		slog.String("fingerprint", Fingerprint(text)),
	)

	return nil
}

// Exec interprets a single line. Blank lines and comments yield a nil
// assignment and a nil error.
func (in *Interpreter) Exec(ctx context.Context, line string) (*Assignment, error) {
	return in.exec(ctx, 0, line)
}

func (in *Interpreter) exec(
	ctx context.Context,
	n int,
	line string,
) (*Assignment, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil, nil
	}

	if !strings.Contains(line, "<-") {
		return nil, atLine(n, ErrSyntax.WrapText("invalid syntax: ", line))
	}

	name, text, ok := splitAssignment(line)
	if !ok {
		return nil, atLine(n, ErrSyntax.WrapText("invalid assignment syntax: ", line))
	}

	v, err := in.eval(text)
	if err != nil {
		return nil, atLine(n, WrapError(err).With(slog.String("name", name)))
	}

	in.vars[name] = v
	in.result.Set(name, v)

	in.logger.TraceContext(
		ctx,
		"assign",
		slog.String("name", name),
		slog.String("kind", v.Kind.String()),
		slog.Int("line", n),
	)

	return &Assignment{Name: name, Value: v}, nil
}

// Eval evaluates a value without assigning it.
func (in *Interpreter) Eval(ctx context.Context, text string) (Value, error) {
	v, err := in.eval(strings.TrimSpace(text))
	if err != nil {
		return Value{}, err
	}

	in.logger.TraceContext(ctx, "eval", slog.String("kind", v.Kind.String()))

	return v, nil
}

func (in *Interpreter) eval(text string) (Value, error) {
	ev := evaluator{
		vars:     in.vars,
		maxDepth: in.maxDepth,
		src:      text,
	}

	return ev.value(0, len(text), 0)
}

// Lookup returns the value currently assigned to name.
func (in *Interpreter) Lookup(name string) (Value, bool) {
	v, ok := in.vars[name]

	return v, ok
}

// Names returns the assigned names in first-assignment order.
func (in *Interpreter) Names() []string {
	return in.result.Keys()
}

// Result returns a copy of the mapping accumulated so far.
func (in *Interpreter) Result() *Mapping {
	return in.result.Clone()
}

// Reset discards every assignment.
func (in *Interpreter) Reset() {
	clear(in.vars)
	in.result = NewMapping()
}

// atLine positions err at source line n; n <= 0 leaves err unchanged.
func atLine(n int, err *Error) error {
	if n <= 0 {
		return err
	}

	return err.WithLine(n)
}
