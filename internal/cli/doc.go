// Package cli wires together the Cobra command tree for the censor binary.
//
// It defines the root command and all subcommands (file, check, patterns,
// config, version), binds flags, reads configuration, invokes the redactor,
// and returns deterministic exit codes:
//
//	0  every file redacted
//	2  usage or configuration error
//	3  a pattern failed to compile or match
//	4  a file could not be read or written
package cli
