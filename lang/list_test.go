package lang

import (
	"errors"
	"slices"
	"testing"
)

// splitList splits the body of a list literal, the text between "(list" and
// the final ")", into its top-level elements.
func splitList(body string) ([]string, error) {
	t, ok := newTokenizer(body)
	if !ok {
		return nil, ErrSyntax.WrapText("unbalanced parentheses in list: ", body)
	}

	var elems []string
	for i, j := range t.elements(0, len(body)) {
		elems = append(elems, body[i:j])
	}

	return elems, nil
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		body string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"1 2 3", []string{"1", "2", "3"}},
		{" 1\t\t2  ", []string{"1", "2"}},
		{"1 (list 2 3) 4", []string{"1", "(list 2 3)", "4"}},
		{"|concat(a, b)| x", []string{"|concat(a, b)|", "x"}},
		{"a(b c)d e", []string{"a(b c)d", "e"}},
		{"(list (list 1 2) 3)", []string{"(list (list 1 2) 3)"}},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			got, err := splitList(tt.body)
			if err != nil {
				t.Fatalf("split error: %v", err)
			}

			if !slices.Equal(got, tt.want) {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSplitList_Unbalanced(t *testing.T) {
	for _, body := range []string{"(", ")", "1 (2", "1) (2", "(()"} {
		if _, err := splitList(body); !errors.Is(err, ErrSyntax) {
			t.Errorf("%q: expected syntax error, got %v", body, err)
		}
	}
}

func TestTokenizer_Closes(t *testing.T) {
	tok, ok := newTokenizer("(a (b) c)")
	if !ok {
		t.Fatal("expected balanced input")
	}

	if !tok.closes(0, 8) {
		t.Error("expected outer parentheses to match")
	}

	if !tok.closes(3, 5) {
		t.Error("expected inner parentheses to match")
	}

	if tok.closes(0, 5) {
		t.Error("expected outer '(' not to match inner ')'")
	}
}
