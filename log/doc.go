// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("conversion complete", slog.String("output", path))
//
// # Configuration
//
// Configure a logger using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// [Logger.Wrap] derives a logger with some options overridden, and [Config]
// does the same for the package default logger used by [Info], [Error], etc.
//
// # Levels
//
// Five levels are supported: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn], and [LevelError]. Messages below the configured level are
// discarded. Trace is rendered as "TRACE" rather than slog's "DEBUG-4".
//
// # Output Formats
//
// [FormatJSON] (default) and [FormatText] are available, each with an
// optional colorized "pretty" variant selected by [WithPretty].
package log
