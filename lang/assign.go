package lang

import (
	"strings"
	"unicode"
)

// splitAssignment splits a trimmed line of the form
//
//	NAME <- VALUE
//
// into its name and trimmed value. The name must begin at the first column
// and consist only of ASCII upper-case letters. Spaces or tabs may separate
// the name from the arrow, and the value must not be empty.
func splitAssignment(line string) (name, value string, ok bool) {
	i := 0
	for i < len(line) && isUpper(line[i]) {
		i++
	}

	if i == 0 {
		return "", "", false
	}

	name = line[:i]

	rest := strings.TrimLeftFunc(line[i:], unicode.IsSpace)

	rest, ok = strings.CutPrefix(rest, "<-")
	if !ok {
		return "", "", false
	}

	value = strings.TrimSpace(rest)
	if value == "" {
		return "", "", false
	}

	return name, value, true
}

// IsName reports whether s is a valid variable name.
func IsName(s string) bool {
	if s == "" {
		return false
	}

	for i := range len(s) {
		if !isUpper(s[i]) {
			return false
		}
	}

	return true
}

func isUpper(c byte) bool { return 'A' <= c && c <= 'Z' }
