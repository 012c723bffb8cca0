// Package cli implements the command-line interface for the semcmp tool.
//
// # Overview
//
// The semcmp CLI orders semantic versions by SemVer 2.0.0 precedence. It exposes the
// direct comparison surface, the staged (set A, set B, query) surface, a batch checker
// for expected orderings, and a precedence sort.
//
// # Commands
//
// compare - Compare two versions:
//
//	semcmp compare 1.0.0-alpha 1.0.0
//	semcmp compare --a-core 1,0,0 --a-pre alpha --b-core 1,0,0
//
// Prints the ordering of A relative to B (LESS, EQUAL, GREATER) and the five predicates.
// Decomposed operands are checked against the prerelease grammar unless --lenient is set.
//
// stage - Run the staged protocol:
//
//	semcmp stage --a 1.0.0-alpha.1 --b 1.0.0-alpha.beta
//
// Stages both versions in a session and reads every identifier back by index.
//
// batch - Check expected orderings:
//
//	semcmp batch --input cases.yaml [--parallel 4] [--fail-on-mismatch]
//
// Loads {left, right, expected} cases from a file or HTTP/HTTPS URL and evaluates them
// concurrently.
//
// sort - Sort versions:
//
//	semcmp sort [--reverse] 1.0.0 1.0.0-rc.1 0.9.0
//
// # Global Flags
//
//	--log-level    Log level: debug, info, warn, error (default: info)
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Output Flags
//
//	--output, -o   Output file path (default: stdout)
//	--format, -t   Output format: yaml, json, table (default: yaml)
//
// Table output renders batch reports and sort results as columns and everything else
// as FIELD/VALUE rows keyed like the JSON output.
//
// # Environment Variables
//
//   - LOG_LEVEL, SEMCMP_LOG_LEVEL: default log level
//   - SEMCMP_FORMAT: default output format
package cli
