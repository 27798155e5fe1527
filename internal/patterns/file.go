package patterns

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON []byte

var schemaLoader = gojsonschema.NewBytesLoader(schemaJSON)

// Entry is one pattern from a structured pattern file. A bare string in the
// file becomes an Entry with an empty Name.
type Entry struct {
	Name  string `yaml:"name"`
	Regex string `yaml:"regex"`
}

// UnmarshalYAML accepts either a scalar regex or a {name, regex} mapping.
func (e *Entry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		e.Regex = value.Value
		return nil
	}
	type plain Entry
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*e = Entry(p)
	return nil
}

type fileDoc struct {
	Patterns []Entry `yaml:"patterns"`
}

// LoadFile reads the patterns in path, preserving file order.
func LoadFile(path string) ([]string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expanding pattern file path: %w", err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("reading pattern file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(expanded)) {
	case ".yaml", ".yml", ".json":
		entries, err := ParseStructured(data)
		if err != nil {
			return nil, fmt.Errorf("parsing pattern file %s: %w", path, err)
		}
		out := make([]string, len(entries))
		for i, e := range entries {
			out[i] = e.Regex
		}
		return out, nil
	default:
		return ParseLines(string(data)), nil
	}
}

// ParseStructured decodes and validates a YAML or JSON pattern document.
func ParseStructured(data []byte) ([]Entry, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errors.New("empty pattern document")
	}
	if err := validate(raw); err != nil {
		return nil, err
	}

	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Patterns, nil
}

func validate(doc any) error {
	// The schema loader only understands JSON types.
	buf, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("pattern document is not JSON-compatible: %w", err)
	}
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(buf))
	if err != nil {
		return err
	}
	if result.Valid() {
		return nil
	}
	if len(result.Errors()) == 0 {
		return errors.New("schema validation failed")
	}
	return fmt.Errorf("schema validation failed: %s", result.Errors()[0].String())
}

// ParseLines splits line-oriented pattern text. Leading and trailing spaces
// inside a pattern are significant and kept; only a trailing \r is removed.
func ParseLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}

// Assemble builds the final ordered list: presets, then files, then inline.
func Assemble(presetNames, files, inline []string) ([]string, error) {
	var out []string
	for _, name := range presetNames {
		p, err := Preset(name)
		if err != nil {
			return nil, err
		}
		out = append(out, p...)
	}
	for _, f := range files {
		p, err := LoadFile(f)
		if err != nil {
			return nil, err
		}
		out = append(out, p...)
	}
	out = append(out, inline...)
	return out, nil
}
