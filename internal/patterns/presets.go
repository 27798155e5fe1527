package patterns

import (
	"fmt"
	"sort"
)

// presets are ordered pattern sets selectable by name. All of them compile
// under both the re2 and regexp2 engines.
var presets = map[string][]string{
	"secrets": {
		// Generic API keys (long hex/base64 strings after common key names)
		`(?i)(api[_-]?key|apikey|api[_-]?secret)\s*[:=]\s*["']?([A-Za-z0-9/+=_-]{20,})["']?`,
		// AWS access key IDs
		`AKIA[0-9A-Z]{16}`,
		// AWS secret access keys
		`(?i)(aws[_-]?secret[_-]?access[_-]?key)\s*[:=]\s*["']?([A-Za-z0-9/+=]{40})["']?`,
		// Quoted secrets/tokens/passwords in assignments
		`(?i)(secret|token|password|passwd|credential)\s*[:=]\s*["']([^"']{8,})["']`,
		`(?i)Bearer\s+[A-Za-z0-9._-]{20,}`,
		// JWTs
		`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`,
		`-----BEGIN\s+(RSA\s+)?PRIVATE KEY-----`,
		`gh[pousr]_[A-Za-z0-9_]{36,}`,
		`xox[bporas]-[A-Za-z0-9-]{10,}`,
		`sk-ant-[A-Za-z0-9_-]{20,}`,
		`sk-[A-Za-z0-9]{20,}`,
		// Long hex strings in key/secret/token assignments
		`(?i)(key|secret|token)\s*[:=]\s*["']?[0-9a-f]{32,}["']?`,
	},
	"pii": {
		`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`,
		`\b(?:\d{1,3}\.){3}\d{1,3}\b`,
	},
}

// PresetNames returns the available preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset returns a copy of the named preset's patterns.
func Preset(name string) ([]string, error) {
	p, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset: %s", name)
	}
	return append([]string(nil), p...), nil
}
