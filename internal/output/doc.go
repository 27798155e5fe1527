// Package output formats censor run reports.
//
// Two formats are supported:
//   - text: one line per file for terminals (default)
//   - json: the full [Report] as indented JSON
//
// Use [GetWriter] to obtain a [Writer] for a format string, or [Render] and
// [WriteReport] to pick the destination as well.
package output
