// Package redact replaces every match of an ordered list of regular
// expressions in a text file with the literal placeholder [REDACTED] and
// rewrites the file in place.
//
// Patterns are applied one pass at a time: pass i+1 scans the buffer already
// rewritten by pass i, so a later pattern can match placeholder text produced
// by an earlier one. The placeholder is inserted literally; capture group
// references such as $1 are not expanded.
//
// Two regex dialects are available:
//   - re2:     Go's regexp package (RE2 syntax, linear time). The default.
//   - regexp2: github.com/dlclark/regexp2, a backtracking engine with
//     lookaround and backreferences.
//
// All patterns are compiled before the target file is read, so an invalid
// pattern never results in a partial rewrite. Writes default to a temporary
// file in the target's directory followed by a rename; the truncate mode
// rewrites the existing file directly.
package redact
