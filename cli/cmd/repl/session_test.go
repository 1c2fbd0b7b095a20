package repl

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/arrowconf/lang"
	"github.com/ardnew/arrowconf/log"
)

func newTestSession(t *testing.T) *session {
	t.Helper()

	return newSession(lang.New(), log.Discard())
}

func TestSession_Run(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)

	steps := []struct {
		line    string
		want    string
		wantErr error
	}{
		{"A <- 5", "A = 5", nil},
		{"B <- |A+3|", "B = 8", nil},
		{"C <- (list A B (list 1 -2))", "C = [5, 8, [1, -2]]", nil},
		{"|concat(A,B)|", "58", nil},
		{"(list A 2)", "[5, 2]", nil},
		{"# comment <- ignored", "", nil},
		{"", "", nil},
		{"D <- |A+foo|", "", lang.ErrType},
		{"D <- ", "", lang.ErrSyntax},
		{":query C[2][1] + A", "3", nil},
		{":query", "", ErrMissingQuery},
		{":bogus", "", ErrUnknownCommand},
	}

	for _, step := range steps {
		out := s.run(ctx, step.line)

		if step.wantErr != nil {
			if !errors.Is(out.err, step.wantErr) {
				t.Errorf("run(%q) error = %v, want %v", step.line, out.err, step.wantErr)
			}

			continue
		}

		if out.err != nil {
			t.Errorf("run(%q) unexpected error: %v", step.line, out.err)

			continue
		}

		if out.text != step.want {
			t.Errorf("run(%q) = %q, want %q", step.line, out.text, step.want)
		}
	}
}

func TestSession_Commands(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)

	if out := s.run(ctx, ":list"); out.text != "(no variables)" {
		t.Errorf(":list on empty session = %q", out.text)
	}

	s.run(ctx, "A <- 1")
	s.run(ctx, "B <- |concat(x,A)|")

	if out := s.run(ctx, ":list"); out.text != "A = 1\nB = x1" {
		t.Errorf(":list = %q", out.text)
	}

	if out := s.run(ctx, ":help"); !strings.Contains(out.text, ":query") {
		t.Errorf(":help = %q, want command summary", out.text)
	}

	if out := s.run(ctx, ":reset"); out.err != nil {
		t.Fatalf(":reset error = %v", out.err)
	}

	if names := s.in.Names(); len(names) != 0 {
		t.Errorf("Names() after :reset = %v, want empty", names)
	}

	if out := s.run(ctx, ":clear"); out.action != actionClear {
		t.Errorf(":clear action = %v, want %v", out.action, actionClear)
	}

	for _, line := range []string{":quit", ": quit", ":exit"} {
		if out := s.run(ctx, line); out.action != actionQuit {
			t.Errorf("%s action = %v, want %v", line, out.action, actionQuit)
		}
	}
}

func TestSession_FailedAssignmentKeepsState(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)

	s.run(ctx, "A <- 1")

	if out := s.run(ctx, "A <- |abs(foo)|"); out.err == nil {
		t.Fatal("expected error")
	}

	if v, ok := s.in.Lookup("A"); !ok || !v.Equal(lang.Int(1)) {
		t.Errorf("Lookup(A) = (%v, %v), want (1, true)", v, ok)
	}
}
