package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/arrowconf/cli/cmd"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "arrowconf-cli-test-*")
	if err != nil {
		panic(err)
	}

	os.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	os.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))

	code := m.Run()

	os.RemoveAll(dir)
	os.Exit(code)
}

type runResult struct {
	out    string
	exited bool
	code   int
	err    error
}

func run(t *testing.T, stdin string, args ...string) runResult {
	t.Helper()

	var out, errOut bytes.Buffer

	ctx := cmd.WithStreams(context.Background(), cmd.Streams{
		In:  strings.NewReader(stdin),
		Out: &out,
		Err: &errOut,
	})

	var res runResult

	res.err = Run(ctx, func(code int) {
		res.exited = true
		res.code = code
	}, append([]string{"--log-level=error"}, args...)...)
	res.out = out.String()

	return res
}

const endToEnd = `A <- 5
B <- |A + 3|
C <- (list A B (list 1 -2))
D <- |concat(A, B)|
`

func TestRun_ConvertDefaultCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	res := run(t, endToEnd, path)
	if res.err != nil || res.exited {
		t.Fatalf("Run() = %+v", res)
	}

	if want := "JSON output written to " + path + "\n"; res.out != want {
		t.Errorf("output = %q, want %q", res.out, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	// --indent defaults to 2.
	const want = `{
  "A": 5,
  "B": 8,
  "C": [
    5,
    8,
    [
      1,
      -2
    ]
  ],
  "D": "58"
}
`
	if string(data) != want {
		t.Errorf("file = %q, want %q", data, want)
	}
}

func TestRun_ErrorIsNotFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.toml")

	res := run(t, "A <- 1\nB <- |1 + foo|\n", "convert", path)
	if res.err != nil || res.exited {
		t.Fatalf("Run() = %+v", res)
	}

	if !strings.HasPrefix(res.out, "Error: ") {
		t.Errorf("output = %q, want Error prefix", res.out)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("output file should not exist, stat error = %v", err)
	}
}

func TestRun_StrictExitCode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		flags []string
		want  int
	}{
		{"syntax", "A 1\n", nil, cmd.ExitSyntax},
		{"unbalanced", "A <- (list 1 2\n", nil, cmd.ExitSyntax},
		{"type", "B <- |1 + foo|\n", nil, cmd.ExitType},
		{"format", "A <- 1\n", []string{"--format=xml"}, cmd.ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out.toml")

			args := append([]string{"--strict", "convert", path}, tt.flags...)

			res := run(t, tt.input, args...)
			if res.err != nil {
				t.Fatalf("Run() error = %v", res.err)
			}

			if !res.exited || res.code != tt.want {
				t.Errorf("exit = (%v, %d), want (true, %d)", res.exited, res.code, tt.want)
			}
		})
	}
}

func TestRun_Query(t *testing.T) {
	res := run(t, endToEnd, "query", "C[2][1] * B")
	if res.err != nil {
		t.Fatalf("Run() error = %v", res.err)
	}

	if got := strings.TrimSpace(res.out); got != "-16" {
		t.Errorf("query = %q, want %q", got, "-16")
	}
}

func TestRun_SourceFlag(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.conf")

	if err := os.WriteFile(src, []byte(endToEnd), 0o600); err != nil {
		t.Fatal(err)
	}

	res := run(t, "", "--source", src, "fmt")
	if res.err != nil {
		t.Fatalf("Run() error = %v", res.err)
	}

	if !strings.HasPrefix(res.out, "A <- 5\nB <- 8\n") {
		t.Errorf("fmt output = %q", res.out)
	}
}

func TestRun_MaxDepth(t *testing.T) {
	res := run(t, "A <- (list (list (list 1)))\n", "--strict", "--max-depth=2", "fmt")
	if res.err != nil {
		t.Fatalf("Run() error = %v", res.err)
	}

	if !res.exited || res.code != cmd.ExitSyntax {
		t.Errorf("exit = (%v, %d), want (true, %d)", res.exited, res.code, cmd.ExitSyntax)
	}
}

func TestRun_UnknownFlag(t *testing.T) {
	res := run(t, "", "--bogus", "out.toml")
	if res.err == nil {
		t.Error("Run() with unknown flag should fail")
	}
}
