package patterns

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/dlclark/regexp2"
	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseLines(t *testing.T) {
	text := "# header comment\nABC123\n\n  # indented comment\r\nXYZ\\d+\r\n lead space\n"
	got := ParseLines(text)
	assert.Equal(t, []string{"ABC123", `XYZ\d+`, " lead space"}, got)
}

func TestParseLines_Empty(t *testing.T) {
	assert.Empty(t, ParseLines(""))
	assert.Empty(t, ParseLines("\n# only comments\n\n"))
}

func TestLoadFile_Text(t *testing.T) {
	path := writeFile(t, "patterns.txt", "first\nsecond\n")
	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, got)
}

func TestLoadFile_YAML(t *testing.T) {
	content := `patterns:
  - 'AKIA[0-9A-Z]{16}'
  - name: session cookie
    regex: 'sid=[0-9a-f]{32}'
  - "plain"
`
	path := writeFile(t, "patterns.yaml", content)
	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{`AKIA[0-9A-Z]{16}`, `sid=[0-9a-f]{32}`, "plain"}, got)
}

func TestLoadFile_JSON(t *testing.T) {
	path := writeFile(t, "patterns.json", `{"patterns": ["a+", {"name": "b", "regex": "b+"}]}`)
	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a+", "b+"}, got)
}

func TestParseStructured_Entries(t *testing.T) {
	entries, err := ParseStructured([]byte("patterns:\n  - name: n\n    regex: r\n  - bare\n"))
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Name: "n", Regex: "r"}, {Regex: "bare"}}, entries)
}

func TestParseStructured_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing patterns key", "other: []\n"},
		{"patterns not a list", "patterns: abc\n"},
		{"entry missing regex", "patterns:\n  - name: only-name\n"},
		{"unknown entry field", "patterns:\n  - regex: a\n    flags: i\n"},
		{"numeric entry", "patterns:\n  - 42\n"},
		{"unknown top-level key", "patterns: []\nextra: 1\n"},
		{"empty document", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStructured([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestLoadFile_HomeExpansion(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, "p.txt"), []byte("x\n"), 0o644))

	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	got, err := LoadFile("~/p.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, got)
}

func TestPresets_CompileUnderBothEngines(t *testing.T) {
	for _, name := range PresetNames() {
		p, err := Preset(name)
		require.NoError(t, err)
		require.NotEmpty(t, p, name)
		for _, expr := range p {
			_, err := regexp.Compile(expr)
			assert.NoError(t, err, "re2: %s", expr)
			_, err = regexp2.Compile(expr, regexp2.None)
			assert.NoError(t, err, "regexp2: %s", expr)
		}
	}
}

func TestPreset_Unknown(t *testing.T) {
	_, err := Preset("nope")
	assert.Error(t, err)
}

func TestPreset_ReturnsCopy(t *testing.T) {
	p, err := Preset("pii")
	require.NoError(t, err)
	p[0] = "mutated"
	again, err := Preset("pii")
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", again[0])
}

func TestPresetNames_Sorted(t *testing.T) {
	assert.Equal(t, []string{"pii", "secrets"}, PresetNames())
}

func TestAssemble_Order(t *testing.T) {
	f1 := writeFile(t, "one.txt", "file1\n")
	f2 := writeFile(t, "two.txt", "file2\n")

	got, err := Assemble([]string{"pii"}, []string{f1, f2}, []string{"inline1", "inline2"})
	require.NoError(t, err)

	pii, err := Preset("pii")
	require.NoError(t, err)
	want := append(pii, "file1", "file2", "inline1", "inline2")
	assert.Equal(t, want, got)
}

func TestAssemble_Errors(t *testing.T) {
	_, err := Assemble([]string{"nope"}, nil, nil)
	assert.Error(t, err)

	_, err = Assemble(nil, []string{filepath.Join(t.TempDir(), "missing")}, nil)
	assert.Error(t, err)
}

func TestAssemble_Empty(t *testing.T) {
	got, err := Assemble(nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMatchPath(t *testing.T) {
	globs := []string{"**/.env", "*.log", "**/*secrets*", "["}

	tests := []struct {
		path string
		want bool
	}{
		{".env", true},
		{"config/.env", true},
		{"app.log", true},
		{"logs/app.log", false},
		{"deploy/prod-secrets.yaml", true},
		{"main.go", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MatchPath(tt.path, globs), tt.path)
	}
	assert.False(t, MatchPath("anything", nil))
}
