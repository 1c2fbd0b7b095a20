package cmd

import (
	"context"
	"fmt"

	"github.com/ardnew/arrowconf/lang"
)

// Query evaluates the input and then an expr-lang expression over the
// resulting mapping.
type Query struct {
	Expr string `arg:"" help:"Expression evaluated with each assigned name in scope (e.g. 'C[2][1]', 'len(C)')" name:"expr"`
}

// Run executes the query command.
func (q *Query) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	return report(ctx, "query", q.query(ctx))
}

func (q *Query) query(ctx context.Context) error {
	m, err := parseSource(ctx)
	if err != nil {
		return err
	}

	result, err := lang.Query(ctx, m, q.Expr)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(StreamsFrom(ctx).Out, lang.FormatResult(result))

	return err
}
