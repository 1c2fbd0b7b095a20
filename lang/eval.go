package lang

import (
	"log/slog"
	"strconv"
	"strings"
)

const listPrefix = "(list"

// evaluator resolves one value text against a variable table.
type evaluator struct {
	vars     map[string]Value
	maxDepth int
	src      string
	tok      *tokenizer // built on the first list literal encountered
}

// value evaluates src[start:end], which is enclosed by depth list literals.
func (ev *evaluator) value(start, end, depth int) (Value, error) {
	text := ev.src[start:end]

	switch {
	case isInteger(text):
		return parseInt(text)

	case IsName(text):
		if v, ok := ev.vars[text]; ok {
			return v, nil
		}

	case strings.HasPrefix(text, listPrefix) && strings.HasSuffix(text, ")"):
		return ev.list(start, end, depth)

	case len(text) >= 2 && text[0] == '|' && text[len(text)-1] == '|':
		return ev.expr(strings.TrimSpace(text[1 : len(text)-1]))
	}

	return Value{}, errInvalid(text)
}

// list evaluates the list literal src[start:end].
func (ev *evaluator) list(start, end, depth int) (Value, error) {
	text := ev.src[start:end]

	if depth >= ev.maxDepth {
		return Value{}, ErrSyntax.Wrap(
			ErrMaxDepthExceeded.With(slog.Int("max_depth", ev.maxDepth)),
		)
	}

	if ev.tok == nil {
		// A list reached without an enclosing list spans all of src.
		tok, ok := newTokenizer(ev.src)
		if !ok {
			return Value{}, errUnbalanced(text)
		}

		ev.tok = tok
	}

	// Parentheses in src balance here, so a mismatch means text is more
	// than one group, as in "(list 1)(list 2)".
	if !ev.tok.closes(start, end-1) {
		return Value{}, errInvalid(text)
	}

	elems := []Value{}

	for i, j := range ev.tok.elements(start+len(listPrefix), end-1) {
		v, err := ev.value(i, j, depth+1)
		if err != nil {
			return Value{}, err
		}

		elems = append(elems, v)
	}

	return List(elems...), nil
}

func errInvalid(text string) *Error {
	return ErrSyntax.WrapText("invalid value: ", text).
		With(slog.String("value", text))
}

func errUnbalanced(text string) *Error {
	return ErrSyntax.WrapText("unbalanced parentheses in list: ", text).
		With(slog.String("value", text))
}

// isInteger reports whether s is an optional '-' followed by ASCII digits.
func isInteger(s string) bool {
	return isDigits(strings.TrimPrefix(s, "-"))
}

// isDigits reports whether s is a non-empty string of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

func parseInt(s string) (Value, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Value{}, ErrSyntax.Wrap(ErrRange.WrapText(s)).
			With(slog.String("value", s))
	}

	return Int(n), nil
}
