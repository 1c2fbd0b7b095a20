package repl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ardnew/arrowconf/lang"
	"github.com/ardnew/arrowconf/log"
)

// action is a side effect requested by a session outcome.
type action int

const (
	actionNone action = iota
	actionClear
	actionQuit
)

// outcome is the result of running one input line.
type outcome struct {
	text   string
	err    error
	action action
}

// session holds the interpreter state shared by all lines of one REPL.
type session struct {
	in     *lang.Interpreter
	logger log.Logger
}

func newSession(in *lang.Interpreter, logger log.Logger) *session {
	return &session{in: in, logger: logger}
}

func helpMessage() string {
	return `
Commands:

  :help          Print this cruft
  :list          List assigned variables
  :query <expr>  Evaluate an expr-lang expression over the variables
  :reset         Forget all variables
  :clear         Clear screen
  :quit          Exit REPL

Usage:
  NAME <- VALUE  Assign VALUE to NAME
  VALUE          Evaluate VALUE without assigning it
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Use Up/Down arrows for history navigation
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// run executes one line of input.
func (s *session) run(ctx context.Context, line string) outcome {
	line = strings.TrimSpace(line)

	s.logger.TraceContext(ctx, "repl run", slog.String("line", line))

	switch {
	case line == "":
		return outcome{}

	case strings.HasPrefix(line, commandPrefix):
		return s.command(ctx, strings.TrimPrefix(line, commandPrefix))

	case strings.Contains(line, "<-"):
		a, err := s.in.Exec(ctx, line)
		if err != nil {
			return outcome{err: err}
		}

		if a == nil {
			return outcome{}
		}

		return outcome{text: fmt.Sprintf("%s = %s", a.Name, a.Value)}

	default:
		v, err := s.in.Eval(ctx, line)
		if err != nil {
			return outcome{err: err}
		}

		return outcome{text: v.String()}
	}
}

func (s *session) command(ctx context.Context, input string) outcome {
	name, arg, _ := strings.Cut(strings.TrimSpace(input), " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "help":
		return outcome{text: strings.TrimSpace(helpMessage())}

	case "list":
		return outcome{text: s.list()}

	case "query":
		if arg == "" {
			return outcome{err: ErrMissingQuery}
		}

		result, err := lang.Query(ctx, s.in.Result(), arg)
		if err != nil {
			return outcome{err: err}
		}

		return outcome{text: lang.FormatResult(result)}

	case "reset":
		s.in.Reset()

		return outcome{text: "variables cleared"}

	case "clear":
		return outcome{action: actionClear}

	case "quit", "exit":
		return outcome{action: actionQuit}
	}

	return outcome{err: fmt.Errorf("%w: %s", ErrUnknownCommand, name)}
}

func (s *session) list() string {
	m := s.in.Result()
	if m.Len() == 0 {
		return "(no variables)"
	}

	var b strings.Builder

	for name, v := range m.All() {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}

		fmt.Fprintf(&b, "%s = %s", name, v)
	}

	return b.String()
}
