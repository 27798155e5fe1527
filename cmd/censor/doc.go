// Censor is a CLI that redacts regular expression matches from text files,
// rewriting each file in place with [REDACTED] in place of every match.
//
// Usage:
//
//	censor file app.log -p 'ABC123' -p 'token=\w+'   # redact in place
//	censor file app.log --preset secrets --dry-run     # print, don't write
//	censor file *.env -f patterns.yaml --format json   # patterns from a file
//	censor check -f patterns.yaml --engine regexp2     # validate only
//	censor patterns list                               # built-in presets
//	censor config init                                 # write default config
package main
