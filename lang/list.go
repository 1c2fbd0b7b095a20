package lang

import "iter"

// tokenizer locates the top-level elements of list literals in src.
//
// Parenthesis matches for all of src are computed once, so finding the
// elements of a list and of every list nested inside it is linear in the
// length of src.
type tokenizer struct {
	src   string
	match []int // index of the matching ')' for each '(' in src
}

// newTokenizer pairs the parentheses of src. It reports false if they do
// not balance.
func newTokenizer(src string) (*tokenizer, bool) {
	match := make([]int, len(src))
	stack := make([]int, 0, 8)

	for i := range len(src) {
		switch src[i] {
		case '(':
			stack = append(stack, i)
		case ')':
			if len(stack) == 0 {
				return nil, false
			}

			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			match[open] = i
		}
	}

	if len(stack) != 0 {
		return nil, false
	}

	return &tokenizer{src: src, match: match}, true
}

// closes reports whether the '(' at open is matched by the ')' at end.
func (t *tokenizer) closes(open, end int) bool {
	return t.src[open] == '(' && t.match[open] == end
}

// elements yields the [start, end) span of each element in src[start:end].
//
// Elements are separated by spaces or tabs outside of parentheses. A
// parenthesized group, including any blanks inside it, belongs to the
// element it appears in. Runs of separators produce no empty elements.
func (t *tokenizer) elements(start, end int) iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		i := start
		for {
			for i < end && isBlank(t.src[i]) {
				i++
			}

			if i >= end {
				return
			}

			j := i
			for j < end && !isBlank(t.src[j]) {
				if t.src[j] == '(' {
					j = t.match[j] + 1
				} else {
					j++
				}
			}

			if !yield(i, j) {
				return
			}

			i = j
		}
	}
}

func isBlank(c byte) bool { return c == ' ' || c == '\t' }
