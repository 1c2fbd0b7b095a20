package lang

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/ardnew/arrowconf/log"
)

const endToEnd = `
# integers, references and lists
A <- 5
B <- |A + 3|
C <- (list A B (list 1 -2))
D <- |concat(A, B)|
`

func TestParse_EndToEnd(t *testing.T) {
	m, err := Parse(t.Context(), endToEnd)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if got, want := m.Keys(), []string{"A", "B", "C", "D"}; !slices.Equal(got, want) {
		t.Fatalf("expected keys %v, got %v", want, got)
	}

	want := map[string]Value{
		"A": Int(5),
		"B": Int(8),
		"C": List(Int(5), Int(8), List(Int(1), Int(-2))),
		"D": Str("58"),
	}

	for k, w := range want {
		v, ok := m.Get(k)
		if !ok {
			t.Errorf("missing key %s", k)

			continue
		}

		if !v.Equal(w) {
			t.Errorf("%s: expected %v, got %v", k, w, v)
		}
	}
}

func TestParse_Idempotent(t *testing.T) {
	first, err := Parse(t.Context(), endToEnd)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	second, err := Parse(t.Context(), endToEnd)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if !first.Equal(second) {
		t.Errorf("expected equal results, got %v and %v", first.Native(), second.Native())
	}
}

func TestParse_EmptyAndComments(t *testing.T) {
	for _, input := range []string{"", "\n\n", "# only a comment", "  # indented\n\t\n"} {
		m, err := Parse(t.Context(), input)
		if err != nil {
			t.Errorf("%q: unexpected error %v", input, err)

			continue
		}

		if m.Len() != 0 {
			t.Errorf("%q: expected empty mapping, got %v", input, m.Native())
		}
	}
}

func TestParse_Reassignment(t *testing.T) {
	m, err := Parse(t.Context(), "A <- 1\nB <- 2\nA <- |A + 10|")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if got, want := m.Keys(), []string{"A", "B"}; !slices.Equal(got, want) {
		t.Errorf("expected keys %v, got %v", want, got)
	}

	if v, _ := m.Get("A"); !v.Equal(Int(11)) {
		t.Errorf("expected A = 11, got %v", v)
	}
}

func TestParse_NoForwardReferences(t *testing.T) {
	_, err := Parse(t.Context(), "A <- B\nB <- 1")
	if KindOf(err) != KindSyntax {
		t.Errorf("expected syntax error, got %v", err)
	}
}

func TestParse_AssignmentForms(t *testing.T) {
	tests := []struct {
		input string
		name  string
		want  Value
	}{
		{"A<-1", "A", Int(1)},
		{"A \t <-   1", "A", Int(1)},
		{"  LONGNAME <- 2  \r", "LONGNAME", Int(2)},
		{"X <- (list 1 <- 2)", "", Value{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m, err := Parse(t.Context(), tt.input)
			if tt.name == "" {
				if err == nil {
					t.Fatalf("expected error, got %v", m.Native())
				}

				return
			}

			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			if v, _ := m.Get(tt.name); !v.Equal(tt.want) {
				t.Errorf("expected %s = %v, got %v", tt.name, tt.want, v)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  Kind
		line  int
		msg   string
	}{
		{"missing arrow", "A 5", KindSyntax, 1, "invalid syntax: A 5"},
		{"lower-case name", "a <- 5", KindSyntax, 1, "invalid assignment syntax: a <- 5"},
		{"missing name", "<- 5", KindSyntax, 1, "invalid assignment syntax"},
		{"missing value", "A <-", KindSyntax, 1, "invalid assignment syntax: A <-"},
		{"mixed-case name", "Ab <- 1", KindSyntax, 1, "invalid assignment syntax"},
		{"type error", "A <- |1 + foo|", KindType, 1, "cannot add non-numeric values"},
		{"truncated list", "# c\n\nA <- 1\nB <- (list 1 2", KindSyntax, 4, "invalid value"},
		{"error after valid lines", "A <- 1\nB <- |concat(x)|\nC <- nope", KindSyntax, 3, "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse(t.Context(), tt.input)
			if err == nil {
				t.Fatalf("expected error, got %v", m.Native())
			}

			if m != nil {
				t.Errorf("expected no partial result, got %v", m.Native())
			}

			if got := KindOf(err); got != tt.kind {
				t.Errorf("expected kind %s, got %s", tt.kind, got)
			}

			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("expected *Error, got %T", err)
			}

			if e.Line() != tt.line {
				t.Errorf("expected line %d, got %d", tt.line, e.Line())
			}

			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("expected message containing %q, got %q", tt.msg, err.Error())
			}
		})
	}
}

func TestParse_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	if _, err := Parse(ctx, "A <- 1"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestParse_Logging(t *testing.T) {
	var buf strings.Builder

	logger := log.Make(&buf,
		log.WithLevel(log.LevelTrace),
		log.WithFormat(log.FormatJSON),
		log.WithPretty(false),
	)

	if _, err := Parse(t.Context(), endToEnd, WithLogger(logger)); err != nil {
		t.Fatalf("parse error: %v", err)
	}

	output := buf.String()

	for _, want := range []string{`"msg":"assign"`, `"name":"C"`, `"msg":"parse complete"`, Fingerprint(endToEnd)} {
		if !strings.Contains(output, want) {
			t.Errorf("expected log output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestParseReader(t *testing.T) {
	m, err := ParseReader(t.Context(), strings.NewReader(endToEnd))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if m.Len() != 4 {
		t.Errorf("expected 4 entries, got %d", m.Len())
	}
}

func TestParseReader_ReadError(t *testing.T) {
	_, err := ParseReader(t.Context(), iotest.ErrReader(errors.New("boom")))
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("expected read input error, got %v", err)
	}
}

func TestLines(t *testing.T) {
	var got []string

	for n, line := range Lines("  A <- 1\r\n\n\t# c  \nB <- 2") {
		got = append(got, strings.Repeat("+", n)+line)
	}

	want := []string{"+A <- 1", "++", "+++# c", "++++B <- 2"}
	if !slices.Equal(got, want) {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestLines_StopEarly(t *testing.T) {
	count := 0

	for range Lines("a\nb\nc") {
		count++

		break
	}

	if count != 1 {
		t.Errorf("expected 1 iteration, got %d", count)
	}
}

func TestInterpreter_Session(t *testing.T) {
	in := New()

	a, err := in.Exec(t.Context(), "# comment")
	if err != nil || a != nil {
		t.Fatalf("expected nil assignment for comment, got %v, %v", a, err)
	}

	a, err = in.Exec(t.Context(), "X <- 3")
	if err != nil {
		t.Fatalf("exec error: %v", err)
	}

	if a.Name != "X" || !a.Value.Equal(Int(3)) {
		t.Errorf("unexpected assignment %+v", a)
	}

	if _, err := in.Exec(t.Context(), "Y <- |X + X|"); err != nil {
		t.Fatalf("exec error: %v", err)
	}

	if got := in.Names(); !slices.Equal(got, []string{"X", "Y"}) {
		t.Errorf("unexpected names %v", got)
	}

	if v, ok := in.Lookup("Y"); !ok || !v.Equal(Int(6)) {
		t.Errorf("expected Y = 6, got %v (%t)", v, ok)
	}

	// A failed line leaves earlier assignments intact.
	if _, err := in.Exec(t.Context(), "Z <- |X + nope|"); err == nil {
		t.Fatal("expected error")
	}

	if _, ok := in.Lookup("Z"); ok {
		t.Error("expected Z to be unassigned")
	}

	result := in.Result()
	if result.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", result.Len())
	}

	in.Reset()

	if len(in.Names()) != 0 {
		t.Errorf("expected no names after reset, got %v", in.Names())
	}

	if result.Len() != 2 {
		t.Error("expected earlier result to be unaffected by reset")
	}
}

func TestInterpreter_ResultIsCopy(t *testing.T) {
	in := interp(t, "L <- (list 1 2)")

	r := in.Result()
	v, _ := r.Get("L")
	v.List[0] = Int(99)

	if got, _ := in.Lookup("L"); !got.Equal(List(Int(1), Int(2))) {
		t.Errorf("expected interpreter state to be unaffected, got %v", got)
	}
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint("A <- 1")
	if len(a) != 16 {
		t.Errorf("expected 16 hex digits, got %q", a)
	}

	if a != Fingerprint("A <- 1") {
		t.Error("expected stable fingerprint")
	}

	if a == Fingerprint("A <- 2") {
		t.Error("expected different inputs to differ")
	}
}

func TestFingerprintReader(t *testing.T) {
	for _, text := range []string{"", "A <- 1", endToEnd, strings.Repeat("B <- 2\n", 4096)} {
		got, err := FingerprintReader(iotest.OneByteReader(strings.NewReader(text)))
		if err != nil {
			t.Fatalf("fingerprint error: %v", err)
		}

		if want := Fingerprint(text); got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	}

	if _, err := FingerprintReader(iotest.ErrReader(errors.New("boom"))); err == nil {
		t.Error("expected read error")
	}
}

func TestInterpreter_LoadKeepsEarlierAssignments(t *testing.T) {
	in := New()

	err := in.Load(t.Context(), "A <- 1\nB <- (list A\nC <- 3")
	if KindOf(err) != KindSyntax {
		t.Fatalf("expected syntax error, got %v", err)
	}

	if got := in.Names(); !slices.Equal(got, []string{"A"}) {
		t.Errorf("expected only A to be assigned, got %v", got)
	}
}
