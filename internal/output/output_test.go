package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/censor/internal/config"
	"github.com/dshills/censor/internal/redact"
)

func sampleReport() *Report {
	return &Report{
		Engine:    "re2",
		WriteMode: "atomic",
		Patterns:  2,
		Results: []Result{
			{Path: "app.env", Status: StatusRedacted, Bytes: 42, Changed: true, DurationMs: 1},
			{Path: "my notes.txt", Status: StatusRedacted, Bytes: 1, Changed: false},
			Failure("missing.txt", &redact.PathError{Path: "missing.txt", Err: os.ErrNotExist}, 0),
		},
		Timing: Timing{TotalMs: 7},
	}
}

func TestTextWriter(t *testing.T) {
	var buf bytes.Buffer
	w := &TextWriter{}
	if err := w.Write(&buf, sampleReport()); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"3 files, 2 patterns (engine: re2, write: atomic)",
		"[ok]   app.env  (42 bytes, changed)",
		"[ok]   'my notes.txt'  (1 byte, unchanged)",
		"[fail] missing.txt  path: reading missing.txt:",
		"2 redacted, 1 failed in 7ms",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTextWriter_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextWriter{}).Write(&buf, &Report{Engine: "re2", WriteMode: "atomic"}); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if !strings.Contains(buf.String(), "0 files, 0 patterns") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestTextWriter_PropagatesWriteError(t *testing.T) {
	if err := (&TextWriter{}).Write(failingWriter{}, sampleReport()); err == nil {
		t.Error("expected write error")
	}
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	w := &JSONWriter{}
	if err := w.Write(&buf, sampleReport()); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	var decoded Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(decoded.Results) != 3 {
		t.Fatalf("Results = %d, want 3", len(decoded.Results))
	}
	if decoded.Results[2].Kind != KindPath {
		t.Errorf("Kind = %q, want %q", decoded.Results[2].Kind, KindPath)
	}
	if !strings.HasSuffix(buf.String(), "}\n") {
		t.Error("JSON output should end with a newline")
	}
}

func TestGetWriter(t *testing.T) {
	for _, format := range config.Formats {
		if _, err := GetWriter(format); err != nil {
			t.Errorf("GetWriter(%q) error: %v", format, err)
		}
	}
	if _, err := GetWriter("sarif"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, sampleReport(), "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestWriteReport_ToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	if err := WriteReport(sampleReport(), "json", path); err != nil {
		t.Fatalf("WriteReport error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !json.Valid(data) {
		t.Error("report file is not valid JSON")
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorKind
	}{
		{nil, ""},
		{&redact.PathError{Err: os.ErrNotExist}, KindPath},
		{&redact.PatternError{Err: errors.New("bad")}, KindPattern},
		{&redact.WriteError{Err: errors.New("full")}, KindWrite},
		{errors.New("other"), KindOther},
	}
	for _, tt := range tests {
		if got := ClassifyError(tt.err); got != tt.want {
			t.Errorf("ClassifyError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestReport_Failed(t *testing.T) {
	if got := sampleReport().Failed(); got != 1 {
		t.Errorf("Failed() = %d, want 1", got)
	}
}

func TestTextWriter_Skipped(t *testing.T) {
	report := sampleReport()
	report.Results = append(report.Results, Result{Path: ".env", Status: StatusSkipped})

	var buf bytes.Buffer
	if err := (&TextWriter{}).Write(&buf, report); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"[skip] .env  (excluded)", "2 redacted, 1 skipped, 1 failed in 7ms"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if got := report.Skipped(); got != 1 {
		t.Errorf("Skipped() = %d, want 1", got)
	}
}
