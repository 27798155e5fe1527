package output

import (
	"github.com/dshills/censor/internal/redact"
)

// Status is the outcome of one file.
type Status string

const (
	StatusRedacted Status = "redacted"
	StatusFailed   Status = "failed"
	// StatusSkipped marks a file excluded by path glob; it is not read.
	StatusSkipped Status = "skipped"
)

// ErrorKind classifies a failure the same way the redact package does.
type ErrorKind string

const (
	KindPath    ErrorKind = "path"
	KindPattern ErrorKind = "pattern"
	KindWrite   ErrorKind = "write"
	KindOther   ErrorKind = "other"
)

// Result is the outcome for a single file. Changed reports whether the
// content differed after redaction; match counts are deliberately absent.
type Result struct {
	Path       string    `json:"path"`
	Status     Status    `json:"status"`
	Kind       ErrorKind `json:"kind,omitempty"`
	Error      string    `json:"error,omitempty"`
	Bytes      int       `json:"bytes"`
	Changed    bool      `json:"changed"`
	DurationMs int64     `json:"durationMs"`
}

// Timing holds wall-clock durations for a run.
type Timing struct {
	TotalMs int64 `json:"totalMs"`
}

// Report summarises one censor run.
type Report struct {
	Engine    string   `json:"engine"`
	WriteMode string   `json:"writeMode"`
	Patterns  int      `json:"patterns"`
	Results   []Result `json:"results"`
	Timing    Timing   `json:"timing"`
}

// Skipped returns the number of files excluded by path glob.
func (r *Report) Skipped() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == StatusSkipped {
			n++
		}
	}
	return n
}

// Failed returns the number of files that could not be redacted.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == StatusFailed {
			n++
		}
	}
	return n
}

// ClassifyError maps an error from the redact package to an ErrorKind.
func ClassifyError(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case redact.IsPatternError(err):
		return KindPattern
	case redact.IsPathError(err):
		return KindPath
	case redact.IsWriteError(err):
		return KindWrite
	default:
		return KindOther
	}
}

// Failure builds a failed Result for path.
func Failure(path string, err error, durationMs int64) Result {
	return Result{
		Path:       path,
		Status:     StatusFailed,
		Kind:       ClassifyError(err),
		Error:      err.Error(),
		DurationMs: durationMs,
	}
}
