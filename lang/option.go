package lang

import "github.com/ardnew/arrowconf/log"

// DefaultMaxDepth is the default maximum nesting depth of list literals.
// It can be modified to change the default for all new interpreters.
var DefaultMaxDepth = 10000

// Option configures interpreter behavior.
type Option func(*Interpreter)

// WithMaxDepth sets the maximum nesting depth of list literals.
// Non-positive values leave the current setting unchanged.
func WithMaxDepth(depth int) Option {
	return func(in *Interpreter) {
		if depth > 0 {
			in.maxDepth = depth
		}
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(in *Interpreter) {
		in.logger = logger
	}
}

func applyDefaults(in *Interpreter) {
	in.maxDepth = DefaultMaxDepth
}

// applyOptions applies functional options to an interpreter.
func applyOptions(in *Interpreter, opts ...Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(in)
		}
	}
}
