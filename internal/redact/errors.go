package redact

import (
	"errors"
	"fmt"
	"regexp/syntax"

	r2syntax "github.com/dlclark/regexp2/syntax"
)

// PathError reports that the target file could not be read: it is missing,
// unreadable, not a regular file, or not valid UTF-8 text.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// PatternError reports a pattern that failed to compile, or that failed while
// matching (regexp2 timeouts). Index is the position in the ordered list.
// Patterns are often the secrets themselves, so Error names the index only;
// Pattern is kept for callers that choose to show it.
type PatternError struct {
	Index   int
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("pattern %d: %v", e.Index, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// WriteError reports that the redacted content could not be persisted.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ErrMatchTimeout is wrapped by PatternError when a regexp2 pass exceeds its
// match timeout. It replaces the engine's error, which quotes the input.
var ErrMatchTimeout = errors.New("match timeout exceeded")

// ErrNotRegular is wrapped by PathError when the target is a directory or
// other non-regular file.
var ErrNotRegular = errors.New("not a regular file")

// ErrNotText is wrapped by PathError when the target is not valid UTF-8.
var ErrNotText = errors.New("content is not valid UTF-8 text")

// IsPathError reports whether err wraps a *PathError.
func IsPathError(err error) bool {
	var pe *PathError
	return errors.As(err, &pe)
}

// IsPatternError reports whether err wraps a *PatternError.
func IsPatternError(err error) bool {
	var pe *PatternError
	return errors.As(err, &pe)
}

// IsWriteError reports whether err wraps a *WriteError.
func IsWriteError(err error) bool {
	var we *WriteError
	return errors.As(err, &we)
}

// compileCause strips the offending expression from a parse error, keeping
// only the error code.
func compileCause(err error) error {
	var se *syntax.Error
	if errors.As(err, &se) {
		return errors.New(se.Code.String())
	}
	var r2 *r2syntax.Error
	if errors.As(err, &r2) {
		if len(r2.Args) > 0 {
			return errors.New("invalid pattern syntax")
		}
		return errors.New(r2.Code.String())
	}
	return errors.New("invalid pattern")
}
