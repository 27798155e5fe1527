package redact

import (
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Placeholder is substituted for every match of every pattern.
const Placeholder = "[REDACTED]"

// Options controls how patterns are compiled and how files are rewritten.
// The zero value uses the re2 engine, atomic writes, no match timeout and a
// no-op logger.
type Options struct {
	Engine    Engine
	WriteMode WriteMode
	// MatchTimeout bounds a single regexp2 pass. Ignored by re2, which runs
	// in linear time.
	MatchTimeout time.Duration
	Logger       *zap.Logger
}

// Redactor holds an ordered list of compiled patterns.
type Redactor struct {
	passes []pass
	source []string
	mode   WriteMode
	log    *zap.Logger
}

// Stats describes one successful file rewrite.
type Stats struct {
	Bytes   int
	Changed bool
}

// Compile compiles patterns in order. It stops at the first invalid pattern
// and returns a *PatternError for it. An empty list is valid and yields a
// Redactor that leaves content unchanged.
func Compile(patterns []string, opts Options) (*Redactor, error) {
	engine, err := ParseEngine(string(opts.Engine))
	if err != nil {
		return nil, err
	}
	mode, err := ParseWriteMode(string(opts.WriteMode))
	if err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := &Redactor{
		passes: make([]pass, 0, len(patterns)),
		source: append([]string(nil), patterns...),
		mode:   mode,
		log:    log,
	}
	for i, p := range patterns {
		compiled, err := compilePass(engine, p, opts.MatchTimeout)
		if err != nil {
			return nil, &PatternError{Index: i, Pattern: p, Err: compileCause(err)}
		}
		r.passes = append(r.passes, compiled)
	}
	log.Debug("patterns compiled", zap.String("engine", string(engine)), zap.Int("count", len(r.passes)))
	return r, nil
}

// Censor compiles patterns with default options and redacts the file at path.
func Censor(path string, patterns []string) error {
	r, err := Compile(patterns, Options{})
	if err != nil {
		return err
	}
	_, err = r.CensorFile(path)
	return err
}

// Len returns the number of compiled patterns.
func (r *Redactor) Len() int {
	return len(r.passes)
}

// Patterns returns a copy of the pattern sources in application order.
func (r *Redactor) Patterns() []string {
	return append([]string(nil), r.source...)
}

// Apply runs every pass over content in order. Each pass sees the output of
// the previous one.
func (r *Redactor) Apply(content string) (string, error) {
	for i, p := range r.passes {
		out, err := p.replace(content)
		if err != nil {
			return "", &PatternError{Index: i, Pattern: r.source[i], Err: err}
		}
		content = out
	}
	return content, nil
}

// Preview returns the redacted content of the file at path without writing.
func (r *Redactor) Preview(path string) (string, error) {
	_, _, data, err := readText(path)
	if err != nil {
		return "", err
	}
	return r.Apply(data)
}

// CensorFile reads the file at path, applies every pass and writes the result
// back to the same file. Nothing is written if reading or matching fails.
func (r *Redactor) CensorFile(path string) (Stats, error) {
	start := time.Now()
	target, meta, data, err := readText(path)
	if err != nil {
		return Stats{}, err
	}

	out, err := r.Apply(data)
	if err != nil {
		return Stats{}, err
	}

	mode := r.mode
	if mode == WriteAtomic && meta.links > 1 {
		// A rename would leave the other links holding the original bytes.
		r.log.Debug("file has multiple links, rewriting in place",
			zap.String("path", path), zap.Uint64("links", meta.links))
		mode = WriteTruncate
	}
	if err := writeFile(target, []byte(out), meta, mode); err != nil {
		return Stats{}, &WriteError{Path: path, Err: err}
	}

	st := Stats{Bytes: len(out), Changed: out != data}
	r.log.Debug("file rewritten",
		zap.String("path", path),
		zap.String("writeMode", string(mode)),
		zap.Int("bytes", st.Bytes),
		zap.Bool("changed", st.Changed),
		zap.Duration("elapsed", time.Since(start)),
	)
	return st, nil
}

// readText resolves symlinks so the write lands on the real file, checks the
// target is a regular file and reads it whole. The read handle is closed
// before this returns.
func readText(path string) (string, fileMeta, string, error) {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", fileMeta{}, "", &PathError{Path: path, Err: err}
	}
	info, err := os.Stat(target)
	if err != nil {
		return "", fileMeta{}, "", &PathError{Path: path, Err: err}
	}
	if !info.Mode().IsRegular() {
		return "", fileMeta{}, "", &PathError{Path: path, Err: ErrNotRegular}
	}
	data, err := os.ReadFile(target)
	if err != nil {
		return "", fileMeta{}, "", &PathError{Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		return "", fileMeta{}, "", &PathError{Path: path, Err: ErrNotText}
	}
	return target, statMeta(info), string(data), nil
}
