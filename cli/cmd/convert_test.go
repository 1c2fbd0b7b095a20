package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const endToEnd = `A <- 5
B <- |A + 3|
C <- (list A B (list 1 -2))
D <- |concat(A, B)|
`

func TestConvertRun(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		format  string
		indent  int
		want    string
		wantMsg string
	}{
		{
			name:    "json_from_extension",
			output:  "out.json",
			want:    `{"A":5,"B":8,"C":[5,8,[1,-2]],"D":"58"}` + "\n",
			wantMsg: "JSON output written to ",
		},
		{
			name:    "explicit_format_overrides_extension",
			output:  "out.txt",
			format:  "json",
			want:    `{"A":5,"B":8,"C":[5,8,[1,-2]],"D":"58"}` + "\n",
			wantMsg: "JSON output written to ",
		},
		{
			name:    "toml_default",
			output:  "out",
			want:    "A = 5\n",
			wantMsg: "TOML output written to ",
		},
		{
			name:    "yaml_from_yml",
			output:  "out.yml",
			indent:  2,
			want:    "A: 5\n",
			wantMsg: "YAML output written to ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := testContext(t, endToEnd, Settings{})
			path := filepath.Join(t.TempDir(), tt.output)

			c := &Convert{Output: path, Format: tt.format, Indent: tt.indent}
			if err := c.Run(ctx); err != nil {
				t.Fatalf("Convert.Run() error = %v", err)
			}

			if got, want := out.String(), tt.wantMsg+path+"\n"; got != want {
				t.Errorf("message = %q, want %q", got, want)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}

			if !strings.HasPrefix(string(data), tt.want) {
				t.Errorf("output = %q, want prefix %q", data, tt.want)
			}
		})
	}
}

func TestConvertRun_UnchangedOutputNotRewritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	old := time.Date(2001, 2, 3, 4, 5, 6, 0, time.UTC)

	convert := func(input string) string {
		t.Helper()

		ctx, out := testContext(t, input, Settings{})
		if err := (&Convert{Output: path}).Run(ctx); err != nil {
			t.Fatalf("Convert.Run() error = %v", err)
		}

		return out.String()
	}

	modTime := func() time.Time {
		t.Helper()

		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}

		return info.ModTime()
	}

	convert("A <- 1")

	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatal(err)
	}

	if got, want := convert("A <- 1"), "JSON output written to "+path+"\n"; got != want {
		t.Errorf("message = %q, want %q", got, want)
	}

	if !modTime().Equal(old) {
		t.Errorf("identical output was rewritten")
	}

	// Same size, different content.
	convert("A <- 2")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if want := `{"A":2}` + "\n"; string(data) != want {
		t.Errorf("output = %q, want %q", data, want)
	}

	if modTime().Equal(old) {
		t.Errorf("changed output was not rewritten")
	}
}

func TestConvertRun_ErrorWritesNothing(t *testing.T) {
	ctx, out := testContext(t, "A <- 1\nB <- |1 + foo|\n", Settings{})
	path := filepath.Join(t.TempDir(), "out.json")

	if err := (&Convert{Output: path}).Run(ctx); err != nil {
		t.Fatalf("Convert.Run() error = %v, want nil outside strict mode", err)
	}

	want := "Error: line 2: type error: cannot add non-numeric values: 1, foo\n"
	if got := out.String(); got != want {
		t.Errorf("message = %q, want %q", got, want)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("output file should not exist, stat error = %v", err)
	}
}

func TestConvertRun_Strict(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		format   string
		wantCode int
	}{
		{"syntax", "A 5\n", "", ExitSyntax},
		{"unbalanced", "A <- (list 1 2\n", "", ExitSyntax},
		{"type", "A <- |1 + foo|\n", "", ExitType},
		{"format", "A <- 1\n", "xml", ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := testContext(t, tt.input, Settings{Strict: true})
			path := filepath.Join(t.TempDir(), "out.toml")

			err := (&Convert{Output: path, Format: tt.format}).Run(ctx)

			var exitErr *ExitError
			if !errors.As(err, &exitErr) {
				t.Fatalf("Convert.Run() error = %v, want *ExitError", err)
			}

			if exitErr.Code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", exitErr.Code, tt.wantCode)
			}

			if !strings.HasPrefix(out.String(), "Error: ") {
				t.Errorf("message = %q, want Error prefix", out.String())
			}
		})
	}
}

func TestConvertRun_Sources(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, filepath.Join(dir, "a.conf"), "A <- 5")
	second := writeFile(t, filepath.Join(dir, "b.conf"), "B <- |A + 1|")

	ctx, _ := testContext(t, "ignored <- stdin", Settings{})
	ctx = WithSourceFiles(ctx, []string{first, second})

	path := filepath.Join(dir, "out.json")
	if err := (&Convert{Output: path}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if want := `{"A":5,"B":6}` + "\n"; string(data) != want {
		t.Errorf("output = %q, want %q", data, want)
	}
}

func TestQueryRun(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"C[2][1]", "-2"},
		{"len(C)", "3"},
		{"A + B", "13"},
		{"D", "58"},
		{"C", "[5, 8, [1, -2]]"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			ctx, out := testContext(t, endToEnd, Settings{})

			if err := (&Query{Expr: tt.expr}).Run(ctx); err != nil {
				t.Fatalf("Query.Run() error = %v", err)
			}

			if got := strings.TrimSpace(out.String()); got != tt.want {
				t.Errorf("Query(%q) = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestQueryRun_Error(t *testing.T) {
	ctx, out := testContext(t, endToEnd, Settings{Strict: true})

	err := (&Query{Expr: "NOPE +"}).Run(ctx)

	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != ExitFailure {
		t.Fatalf("Query.Run() error = %v, want exit %d", err, ExitFailure)
	}

	if !strings.HasPrefix(out.String(), "Error: ") {
		t.Errorf("message = %q, want Error prefix", out.String())
	}
}

func TestFmtRun(t *testing.T) {
	ctx, out := testContext(t, endToEnd, Settings{})

	if err := (&Fmt{}).Run(ctx); err != nil {
		t.Fatalf("Fmt.Run() error = %v", err)
	}

	want := "A <- 5\n" +
		"B <- 8\n" +
		"C <- (list 5 8 (list 1 -2))\n" +
		"D <- |concat(58)|\n"
	if got := out.String(); got != want {
		t.Errorf("Fmt output =\n%s\nwant\n%s", got, want)
	}
}

func TestFmtRun_RoundTrip(t *testing.T) {
	ctx, out := testContext(t, endToEnd, Settings{})

	if err := (&Fmt{}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	first := out.String()

	ctx, out = testContext(t, first, Settings{})
	if err := (&Fmt{}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	if out.String() != first {
		t.Errorf("fmt is not idempotent:\n%s\n---\n%s", first, out.String())
	}
}
