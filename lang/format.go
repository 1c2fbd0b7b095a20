package lang

import (
	"bufio"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// Format writes m in arrow syntax, one assignment per line in
// first-assignment order. Interpreting the output yields a mapping equal
// to m.
//
// Strings are written as concat expressions. A string that concat cannot
// reproduce, for example one containing a comma, fails with [ErrEncode].
func (m *Mapping) Format(w io.Writer) error {
	bw := bufio.NewWriter(w)

	for k, v := range m.All() {
		lit, err := v.Literal()
		if err != nil {
			return WrapError(err).With(slog.String("name", k))
		}

		bw.WriteString(k)
		bw.WriteString(" <- ")
		bw.WriteString(lit)
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

// Literal returns arrow syntax that evaluates to v.
func (v Value) Literal() (string, error) {
	var sb strings.Builder
	if err := v.writeLiteral(&sb, false); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func (v Value) writeLiteral(sb *strings.Builder, inList bool) error {
	switch v.Kind {
	case KindInt:
		sb.WriteString(strconv.FormatInt(v.Int, 10))

	case KindList:
		sb.WriteString(listPrefix)

		for _, e := range v.List {
			sb.WriteByte(' ')

			if err := e.writeLiteral(sb, true); err != nil {
				return err
			}
		}

		sb.WriteByte(')')

	case KindString:
		if !concatSafe(v.Str, inList) {
			return ErrEncode.WrapText("string cannot be written as concat: ",
				strconv.Quote(v.Str))
		}

		sb.WriteString("|concat(")
		sb.WriteString(v.Str)
		sb.WriteString(")|")
	}

	return nil
}

// concatSafe reports whether |concat(s)| evaluates back to s in any
// variable table.
func concatSafe(s string, inList bool) bool {
	if s != strings.TrimSpace(s) || IsName(s) {
		return false
	}

	if strings.ContainsAny(s, ",+|()\n\r") {
		return false
	}

	return !inList || !strings.ContainsAny(s, " \t")
}
