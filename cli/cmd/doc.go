// Package cmd implements the arrowconf subcommands.
//
// Every command reads configuration text from the --source files, or from
// standard input when none are given, and evaluates it before acting on the
// resulting mapping:
//
//   - [Convert] encodes the mapping as TOML, YAML or JSON into a file
//   - [Query] evaluates an expr-lang expression over the mapping
//   - [Fmt] prints the mapping back in arrow syntax
//   - [Repl] starts an interactive session
//   - [Init] writes the current flag values as a configuration file
//
// Failures are printed as "Error: <message>" on the output stream. They
// terminate the process with a non-zero status only in strict mode.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"
)
