// Package cli contains the command line interface for arrowconf.
//
// # Usage
//
//	arrowconf [flags] <output>          convert stdin to TOML, YAML or JSON
//	arrowconf [flags] query <expr>      evaluate an expression over the result
//	arrowconf [flags] fmt               print the result in arrow syntax
//	arrowconf [flags] repl              start an interactive session
//	arrowconf [flags] init [--force]    write the configuration file
//
// Input is read from standard input unless one or more --source files are
// given. Failures print "Error: <message>" on standard output and exit with
// status 0, matching a batch tool that reports rather than aborts. With
// --strict the exit status is 2 for syntax errors, 3 for type errors and 1
// for anything else.
//
// # Configuration
//
// Flag defaults are read from the file "config" in the user configuration
// directory (for example ~/.config/arrowconf/config). The file is itself
// written in arrow syntax, naming each flag in upper case with hyphens
// removed:
//
//	LOGLEVEL <- |concat(debug)|
//	STRICT <- |concat(true)|
//	MAXDEPTH <- 500
//
// A JSON file "config.json" in the same directory is also consulted. Flags
// given on the command line take precedence. The init command writes the
// current flag values to the configuration file.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, etc.)
//   - --[no-]log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/arrowconf/pprof)
package cli
