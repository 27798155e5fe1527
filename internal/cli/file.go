package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/dshills/censor/internal/config"
	"github.com/dshills/censor/internal/logger"
	"github.com/dshills/censor/internal/output"
	"github.com/dshills/censor/internal/patterns"
	"github.com/dshills/censor/internal/redact"
)

// Shared pattern flags
var (
	flagPatterns     []string
	flagPatternFiles []string
	flagPresets      []string
	flagEngine       string
	flagMatchTimeout int
)

// file command flags
var (
	flagWriteMode string
	flagFormat    string
	flagOut       string
	flagDryRun    bool
	flagProgress  bool
	flagExclude   []string
)

func addPatternFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&flagPatterns, "pattern", "p", nil, "Pattern to redact (repeatable, applied in order)")
	cmd.Flags().StringArrayVarP(&flagPatternFiles, "patterns-file", "f", nil, "File of patterns, YAML/JSON or one per line (repeatable)")
	cmd.Flags().StringSliceVar(&flagPresets, "preset", nil, "Built-in pattern set (see 'censor patterns list')")
	cmd.Flags().StringVar(&flagEngine, "engine", "", "Regex engine (re2, regexp2)")
	cmd.Flags().IntVar(&flagMatchTimeout, "match-timeout-ms", 0, "Per-pattern match timeout in ms (regexp2 only)")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagEngine != "" {
		m["engine"] = flagEngine
	}
	if flagMatchTimeout > 0 {
		m["matchTimeoutMs"] = strconv.Itoa(flagMatchTimeout)
	}
	if flagWriteMode != "" {
		m["writeMode"] = flagWriteMode
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagLogLevel != "" {
		m["logLevel"] = flagLogLevel
	}
	return m
}

// loadConfig merges flags over the config layers. Pattern list flags replace
// the configured lists rather than appending to them.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(buildOverrides())
	if err != nil {
		return config.Config{}, err
	}
	if len(flagPatterns) > 0 {
		cfg.Patterns = flagPatterns
	}
	if len(flagPatternFiles) > 0 {
		cfg.PatternFiles = flagPatternFiles
	}
	if len(flagPresets) > 0 {
		cfg.Presets = flagPresets
	}
	if len(flagExclude) > 0 {
		cfg.Exclude = flagExclude
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	logger.SetLevel(cfg.LogLevel)
	return cfg, nil
}

func buildRedactor(cfg config.Config) (*redact.Redactor, error) {
	list, err := patterns.Assemble(cfg.Presets, cfg.PatternFiles, cfg.Patterns)
	if err != nil {
		return nil, fmt.Errorf("loading patterns: %w", err)
	}
	return redact.Compile(list, redact.Options{
		Engine:       redact.Engine(cfg.Engine),
		WriteMode:    redact.WriteMode(cfg.WriteMode),
		MatchTimeout: time.Duration(cfg.MatchTimeoutMs) * time.Millisecond,
		Logger:       logger.Logger(),
	})
}

// prepare loads config and compiles patterns. A pattern error sets the exit
// code and returns ok=false with a nil error so cobra stays quiet.
func prepare(cmd *cobra.Command) (config.Config, *redact.Redactor, bool, error) {
	cfg, err := loadConfig()
	if err != nil {
		return config.Config{}, nil, false, err
	}
	r, err := buildRedactor(cfg)
	if err != nil {
		if redact.IsPatternError(err) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			exitCode = ExitPatternError
			return cfg, nil, false, nil
		}
		return cfg, nil, false, err
	}
	return cfg, r, true, nil
}

var fileCmd = &cobra.Command{
	Use:   "file <path>...",
	Short: "Redact pattern matches in files, rewriting them in place",
	Long: `Redact every match of the configured patterns in each file and rewrite it in place.

Patterns are applied in order (presets, then pattern files, then --pattern
values); each pass sees the output of the previous one. All patterns are
compiled before any file is read. Files are processed one after another and a
failure on one file does not stop the rest.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, r, ok, err := prepare(cmd)
		if err != nil || !ok {
			return err
		}
		if r.Len() == 0 {
			logger.Warn("no patterns configured; files will be rewritten unchanged")
		}

		if flagDryRun {
			runPreview(cmd, r, cfg, args)
			return nil
		}

		report := runFiles(cmd, r, cfg, args)

		if flagOut != "" {
			err = output.WriteReport(report, cfg.Format, flagOut)
		} else {
			err = output.Render(cmd.OutOrStdout(), report, cfg.Format)
		}
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error writing output: %v\n", err)
			exitCode = ExitFileError
			return nil
		}

		exitCode = reportExitCode(report)
		return nil
	},
}

func runFiles(cmd *cobra.Command, r *redact.Redactor, cfg config.Config, paths []string) *output.Report {
	start := time.Now()
	report := &output.Report{
		Engine:    cfg.Engine,
		WriteMode: cfg.WriteMode,
		Patterns:  r.Len(),
		Results:   make([]output.Result, 0, len(paths)),
	}

	bar := newProgress(cmd.ErrOrStderr(), len(paths))
	for _, path := range paths {
		if patterns.MatchPath(path, cfg.Exclude) {
			logger.Debug("file excluded", zap.String("path", path))
			report.Results = append(report.Results, output.Result{Path: path, Status: output.StatusSkipped})
			if bar != nil {
				_ = bar.Add(1)
			}
			continue
		}
		fileStart := time.Now()
		st, err := r.CensorFile(path)
		elapsed := time.Since(fileStart).Milliseconds()
		if err != nil {
			logger.Error("redaction failed", zap.String("path", path), zap.Error(err))
			report.Results = append(report.Results, output.Failure(path, err, elapsed))
		} else {
			report.Results = append(report.Results, output.Result{
				Path:       path,
				Status:     output.StatusRedacted,
				Bytes:      st.Bytes,
				Changed:    st.Changed,
				DurationMs: elapsed,
			})
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	report.Timing.TotalMs = time.Since(start).Milliseconds()
	return report
}

func runPreview(cmd *cobra.Command, r *redact.Redactor, cfg config.Config, paths []string) {
	out := cmd.OutOrStdout()
	var failed []output.Result
	for i, path := range paths {
		if patterns.MatchPath(path, cfg.Exclude) {
			continue
		}
		content, err := r.Preview(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			failed = append(failed, output.Failure(path, err, 0))
			continue
		}
		if len(paths) > 1 {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "==> %s <==\n", path)
		}
		fmt.Fprint(out, content)
	}
	exitCode = reportExitCode(&output.Report{Results: failed})
}

// reportExitCode prefers the pattern exit code when a pattern failed while
// matching, since that failure applies to every file.
func reportExitCode(report *output.Report) int {
	code := ExitSuccess
	for _, res := range report.Results {
		if res.Status != output.StatusFailed {
			continue
		}
		if res.Kind == output.KindPattern {
			return ExitPatternError
		}
		code = ExitFileError
	}
	return code
}

// newProgress returns nil unless --progress is set and w is a terminal.
func newProgress(w io.Writer, total int) *progressbar.ProgressBar {
	if !flagProgress || total < 2 {
		return nil
	}
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("redacting"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Compile the configured patterns without touching any file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, r, ok, err := prepare(cmd)
		if err != nil || !ok {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d patterns compiled (engine: %s)\n", r.Len(), cfg.Engine)
		return nil
	},
}

func init() {
	addPatternFlags(fileCmd)
	addPatternFlags(checkCmd)

	fileCmd.Flags().StringVar(&flagWriteMode, "write-mode", "", "How files are rewritten (atomic, truncate)")
	fileCmd.Flags().StringVar(&flagFormat, "format", "", "Report format (text, json)")
	fileCmd.Flags().StringVar(&flagOut, "out", "", "Report file path (default: stdout)")
	fileCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print redacted content to stdout instead of rewriting files")
	fileCmd.Flags().BoolVar(&flagProgress, "progress", false, "Show a progress bar on stderr when it is a terminal")
	fileCmd.Flags().StringSliceVar(&flagExclude, "exclude", nil, "Skip files whose path matches a glob (\"**/\" prefix also matches the base name)")
}
