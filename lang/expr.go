package lang

import (
	"log/slog"
	"math"
	"strings"
)

// expr evaluates the trimmed interior of a |...| expression.
func (ev *evaluator) expr(text string) (Value, error) {
	switch {
	case strings.Contains(text, "+"):
		return ev.add(text)

	case strings.HasPrefix(text, "concat(") && strings.HasSuffix(text, ")"):
		return ev.concat(text[len("concat(") : len(text)-1])

	case strings.HasPrefix(text, "abs(") && strings.HasSuffix(text, ")"):
		return ev.abs(strings.TrimSpace(text[len("abs(") : len(text)-1]))
	}

	return Value{}, errUnsupported(text)
}

func errUnsupported(text string) *Error {
	return ErrSyntax.WrapText("unsupported expression: ", text).
		With(slog.String("expr", text))
}

// add evaluates "l + r". Operands are variables or unsigned integers; any
// other operand text is kept as a string and rejected as non-numeric.
func (ev *evaluator) add(text string) (Value, error) {
	l, r, _ := strings.Cut(text, "+")
	if strings.Contains(r, "+") {
		return Value{}, errUnsupported(text)
	}

	lv, err := ev.operand(strings.TrimSpace(l))
	if err != nil {
		return Value{}, err
	}

	rv, err := ev.operand(strings.TrimSpace(r))
	if err != nil {
		return Value{}, err
	}

	if lv.Kind != KindInt || rv.Kind != KindInt {
		return Value{}, ErrType.WrapText(
			"cannot add non-numeric values: ", lv.String(), ", ", rv.String(),
		).With(slog.String("left", lv.String()), slog.String("right", rv.String()))
	}

	sum := lv.Int + rv.Int
	if (rv.Int > 0 && sum < lv.Int) || (rv.Int < 0 && sum > lv.Int) {
		return Value{}, ErrSyntax.Wrap(ErrRange.WrapText(text)).
			With(slog.String("expr", text))
	}

	return Int(sum), nil
}

func (ev *evaluator) operand(s string) (Value, error) {
	if v, ok := ev.vars[s]; ok {
		return v, nil
	}

	if isDigits(s) {
		return parseInt(s)
	}

	return Str(s), nil
}

// concat joins its comma-separated pieces. A piece naming a variable
// contributes the variable's text.
func (ev *evaluator) concat(args string) (Value, error) {
	var sb strings.Builder

	for piece := range strings.SplitSeq(args, ",") {
		piece = strings.TrimSpace(piece)

		v, ok := ev.vars[piece]
		if !ok {
			sb.WriteString(piece)

			continue
		}

		if v.Kind == KindList {
			return Value{}, ErrType.WrapText("cannot concatenate list value: ", piece).
				With(slog.String("name", piece))
		}

		sb.WriteString(v.String())
	}

	return Str(sb.String()), nil
}

func (ev *evaluator) abs(arg string) (Value, error) {
	var n int64

	if v, ok := ev.vars[arg]; ok {
		if v.Kind != KindInt {
			return Value{}, ErrType.WrapText("invalid argument for abs(): ", arg).
				With(slog.String("kind", v.Kind.String()))
		}

		n = v.Int
	} else {
		if !isInteger(arg) {
			return Value{}, ErrSyntax.WrapText("invalid argument for abs(): ", arg).
				With(slog.String("arg", arg))
		}

		v, err := parseInt(arg)
		if err != nil {
			return Value{}, err
		}

		n = v.Int
	}

	switch {
	case n == math.MinInt64:
		return Value{}, ErrSyntax.Wrap(ErrRange.WrapText(arg)).
			With(slog.String("arg", arg))
	case n < 0:
		n = -n
	}

	return Int(n), nil
}
