package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"github.com/creasty/defaults"

	"github.com/dshills/censor/internal/redact"
)

// DefaultLogLevel is used when neither the config nor CENSOR_LOG_LEVEL sets one.
const DefaultLogLevel = "warn"

var (
	// Formats lists the report formats the output package can render.
	Formats = []string{"text", "json"}
	// LogLevels lists the accepted logLevel values.
	LogLevels = []string{"debug", "info", "warn", "error"}
)

// Config represents the censor configuration.
type Config struct {
	Patterns       []string `json:"patterns,omitempty"`
	PatternFiles   []string `json:"patternFiles,omitempty"`
	Presets        []string `json:"presets,omitempty"`
	Exclude        []string `json:"exclude,omitempty"`
	Engine         string   `json:"engine" default:"re2"`
	WriteMode      string   `json:"writeMode" default:"atomic"`
	Format         string   `json:"format" default:"text"`
	LogLevel       string   `json:"logLevel" default:"warn"`
	MatchTimeoutMs int      `json:"matchTimeoutMs,omitempty"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	var cfg Config
	_ = defaults.Set(&cfg)
	return cfg
}

// ConfigDir returns the platform-appropriate config directory for censor.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "censor"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "censor"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "censor"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "censor"), nil
	default:
		return filepath.Join(home, ".config", "censor"), nil
	}
}

// ConfigPath returns the full path to the config file. CENSOR_CONFIG wins
// over the platform default.
func ConfigPath() (string, error) {
	if p := os.Getenv("CENSOR_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile loads config from the config file. Returns zero Config and nil error if file doesn't exist.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only non-zero values should be set).
// List-valued flags are applied by the caller after Load.
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func mergeFile(dst *Config, src Config) {
	if len(src.Patterns) > 0 {
		dst.Patterns = src.Patterns
	}
	if len(src.PatternFiles) > 0 {
		dst.PatternFiles = src.PatternFiles
	}
	if len(src.Presets) > 0 {
		dst.Presets = src.Presets
	}
	if len(src.Exclude) > 0 {
		dst.Exclude = src.Exclude
	}
	if src.Engine != "" {
		dst.Engine = src.Engine
	}
	if src.WriteMode != "" {
		dst.WriteMode = src.WriteMode
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.MatchTimeoutMs > 0 {
		dst.MatchTimeoutMs = src.MatchTimeoutMs
	}
}

func mergeEnv(cfg *Config) error {
	if v := os.Getenv("CENSOR_ENGINE"); v != "" {
		cfg.Engine = v
	}
	if v := os.Getenv("CENSOR_WRITE_MODE"); v != "" {
		cfg.WriteMode = v
	}
	if v := os.Getenv("CENSOR_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("CENSOR_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("CENSOR_MATCH_TIMEOUT_MS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CENSOR_MATCH_TIMEOUT_MS must be an integer: %w", err)
		}
		cfg.MatchTimeoutMs = n
	}
	if v := os.Getenv("CENSOR_PATTERN_FILES"); v != "" {
		cfg.PatternFiles = filepath.SplitList(v)
	}
	if v := os.Getenv("CENSOR_PRESETS"); v != "" {
		cfg.Presets = SplitComma(v)
	}
	if v := os.Getenv("CENSOR_EXCLUDE"); v != "" {
		cfg.Exclude = SplitComma(v)
	}
	return nil
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	for key, v := range overrides {
		if v == "" {
			continue
		}
		if err := SetField(cfg, key, v); err != nil {
			return err
		}
	}
	return nil
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "engine":
		cfg.Engine = value
	case "writeMode":
		cfg.WriteMode = value
	case "format":
		cfg.Format = value
	case "logLevel":
		cfg.LogLevel = value
	case "matchTimeoutMs":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("matchTimeoutMs must be an integer: %w", err)
		}
		cfg.MatchTimeoutMs = n
	case "presets":
		cfg.Presets = SplitComma(value)
	case "patternFiles":
		cfg.PatternFiles = SplitComma(value)
	case "exclude":
		cfg.Exclude = SplitComma(value)
	case "patterns":
		return fmt.Errorf("patterns may contain commas; use 'censor config add-pattern' instead")
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

// Validate rejects values no component can act on.
func (c Config) Validate() error {
	if _, err := redact.ParseEngine(c.Engine); err != nil {
		return err
	}
	if _, err := redact.ParseWriteMode(c.WriteMode); err != nil {
		return err
	}
	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("unsupported output format: %s", c.Format)
	}
	if !slices.Contains(LogLevels, c.LogLevel) {
		return fmt.Errorf("unknown log level: %s", c.LogLevel)
	}
	if c.MatchTimeoutMs < 0 {
		return fmt.Errorf("matchTimeoutMs must not be negative")
	}
	for _, g := range c.Exclude {
		if _, err := filepath.Match(g, ""); err != nil {
			return fmt.Errorf("invalid exclude glob %q: %w", g, err)
		}
	}
	return nil
}

// SplitComma splits a comma-separated list, trimming blanks.
func SplitComma(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
