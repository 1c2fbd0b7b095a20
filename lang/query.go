package lang

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
)

// Query evaluates an expr-lang expression with the entries of m as its
// environment. Integers are int64, lists are []any and strings are string.
//
// For example, with C holding [5, 8, [1, -2]], the query "C[2][1]" returns
// int64(-2) and "len(C)" returns 3.
func Query(ctx context.Context, m *Mapping, source string) (any, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, ErrQuery.WrapText("empty query")
	}

	env := m.Native()

	program, err := expr.Compile(source, expr.Env(env))
	if err != nil {
		return nil, ErrQuery.Wrap(err).
			With(slog.String("query", source))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := expr.Run(program, env)
	if err != nil {
		return nil, ErrQuery.Wrap(err).
			With(slog.String("query", source))
	}

	return result, nil
}

// FormatResult renders a query result as text. Lists are bracketed with
// comma-separated elements, and strings nested in lists or maps are quoted.
func FormatResult(result any) string {
	if s, ok := result.(string); ok {
		return s
	}

	return formatResultValue(result)
}

// formatResultValue recursively formats a Go value.
func formatResultValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "nil"

	case bool:
		return strconv.FormatBool(val)

	case int:
		return strconv.Itoa(val)

	case int64:
		return strconv.FormatInt(val, 10)

	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)

	case string:
		return strconv.Quote(val)

	case Value:
		return formatResultValue(val.Native())

	case []any:
		parts := make([]string, len(val))
		for i, e := range val {
			parts[i] = formatResultValue(e)
		}

		return "[" + strings.Join(parts, ", ") + "]"

	case map[string]any:
		parts := make([]string, 0, len(val))
		for _, k := range slices.Sorted(maps.Keys(val)) {
			parts = append(parts, k+": "+formatResultValue(val[k]))
		}

		return "{" + strings.Join(parts, ", ") + "}"

	default:
		return fmt.Sprintf("%v", val)
	}
}
