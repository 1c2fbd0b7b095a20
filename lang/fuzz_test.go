package lang

import (
	"strings"
	"testing"
)

// FuzzParse checks that arbitrary input never panics and that any mapping
// that can be re-rendered in arrow syntax parses back to itself.
func FuzzParse(f *testing.F) {
	f.Add(endToEnd)
	f.Add("A <- (list 1 (list 2 3) |concat(x, y)|)")
	f.Add("A <- (list 1 2")
	f.Add("A <- (list 1 2))")
	f.Add("A <- |1 + 2 + 3|")
	f.Add("A <- |abs(-9223372036854775808)|")
	f.Add("A <- |concat(a b, c)|\nB <- |concat(A, A)|")
	f.Add("A <- 99999999999999999999")
	f.Add("# comment\n\n  B<-  -0  ")
	f.Add("A <- (list(list)(list))")

	f.Fuzz(func(t *testing.T, input string) {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("parse panicked on input %q: %v", input, r)
			}
		}()

		m, err := Parse(t.Context(), input, WithMaxDepth(64))
		if err != nil {
			if m != nil {
				t.Fatalf("expected nil mapping with error %v", err)
			}

			return
		}

		var sb strings.Builder
		if err := m.Format(&sb); err != nil {
			return
		}

		again, err := Parse(t.Context(), sb.String(), WithMaxDepth(64))
		if err != nil {
			t.Fatalf("reparse of %q failed: %v", sb.String(), err)
		}

		if !m.Equal(again) {
			t.Fatalf("round trip mismatch for %q:\n%v\n%v", input, m.Native(), again.Native())
		}
	})
}
