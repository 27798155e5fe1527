package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/alessio/shellescape"
)

// TextWriter outputs a human-readable text report.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, report *Report) error {
	ew := &errWriter{w: w}

	ew.printf("Censor — %s, %s (engine: %s, write: %s)\n",
		plural(len(report.Results), "file"),
		plural(report.Patterns, "pattern"),
		report.Engine, report.WriteMode)
	ew.println(strings.Repeat("─", 60))

	for _, r := range report.Results {
		path := shellescape.Quote(r.Path)
		switch r.Status {
		case StatusFailed:
			ew.printf("  [fail] %s  %s: %s\n", path, r.Kind, r.Error)
			continue
		case StatusSkipped:
			ew.printf("  [skip] %s  (excluded)\n", path)
			continue
		}
		state := "unchanged"
		if r.Changed {
			state = "changed"
		}
		ew.printf("  [ok]   %s  (%s, %s)\n", path, plural(r.Bytes, "byte"), state)
	}

	failed, skipped := report.Failed(), report.Skipped()
	ew.println(strings.Repeat("─", 60))
	if skipped > 0 {
		ew.printf("%d redacted, %d skipped, %d failed in %dms\n",
			len(report.Results)-failed-skipped, skipped, failed, report.Timing.TotalMs)
	} else {
		ew.printf("%d redacted, %d failed in %dms\n",
			len(report.Results)-failed, failed, report.Timing.TotalMs)
	}

	return ew.err
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
