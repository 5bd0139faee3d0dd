package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/promptkit/format"
)

const yamlConfig = `
extension_order: before
stringifiers:
  omit: [boolean]
  date_layout: "2006-01-02"
  list_marker: "* "
transformers:
  replace:
    - name: shout
      pattern: one
      with: ONE
  max_tokens: 4
  truncate: end
`

const tomlConfig = `
extension_order = "before"

[stringifiers]
omit = ["boolean"]
date_layout = "2006-01-02"
list_marker = "* "

[transformers]
max_tokens = 4
truncate = "end"

[[transformers.replace]]
name = "shout"
pattern = "one"
with = "ONE"
`

const jsonConfig = `{
  "extension_order": "before",
  "stringifiers": {"omit": ["boolean"], "date_layout": "2006-01-02", "list_marker": "* "},
  "transformers": {
    "replace": [{"name": "shout", "pattern": "one", "with": "ONE"}],
    "max_tokens": 4,
    "truncate": "end"
  }
}`

func expectedFile() *File {
	return &File{
		ExtensionOrder: "before",
		Stringifiers: StringifierConfig{
			Omit:       []string{"boolean"},
			DateLayout: "2006-01-02",
			ListMarker: "* ",
		},
		Transformers: TransformerConfig{
			Replace:   []Replacement{{Name: "shout", Pattern: "one", With: "ONE"}},
			MaxTokens: 4,
			Truncate:  "end",
		},
	}
}

func TestParse_AllKinds(t *testing.T) {
	tests := []struct {
		kind Kind
		data string
	}{
		{YAML, yamlConfig},
		{TOML, tomlConfig},
		{JSON, jsonConfig},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			f, err := Parse([]byte(tt.data), tt.kind)
			require.NoError(t, err)
			assert.Equal(t, expectedFile(), f)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	for _, kind := range []Kind{YAML, TOML, JSON} {
		f, err := Parse(nil, kind)
		require.NoError(t, err, kind)
		assert.Equal(t, &File{}, f, kind)
	}
}

func TestParse_UnknownKeys(t *testing.T) {
	tests := []struct {
		kind Kind
		data string
	}{
		{YAML, "stringifiers:\n  colour: red\n"},
		{TOML, "[transformers]\nmax_token = 3\n"},
		{JSON, `{"extension": "before"}`},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.kind)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestParse_UnsupportedKind(t *testing.T) {
	_, err := Parse([]byte("a=1"), Kind("ini"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		path    string
		want    Kind
		wantErr bool
	}{
		{path: "prompt.yaml", want: YAML},
		{path: "dir/prompt.YML", want: YAML},
		{path: "prompt.toml", want: TOML},
		{path: "prompt.json", want: JSON},
		{path: "prompt.ini", wantErr: true},
		{path: "prompt", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := KindOf(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "formatter.toml")
	require.NoError(t, os.WriteFile(path, []byte(tomlConfig), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, expectedFile(), f)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"nope": 1}`), 0o644))
	_, err = Load(bad)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestFile_Formatter_ZeroValueIsBuiltin(t *testing.T) {
	f, err := (&File{}).Formatter()
	require.NoError(t, err)

	got, err := f.Format([]string{"\n  Flag: ", "\n  Items:\n  ", "  // note\n"}, true, []string{"a", "b"})
	require.NoError(t, err)

	want, err := format.Format([]string{"\n  Flag: ", "\n  Items:\n  ", "  // note\n"}, true, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFile_Formatter_Stringifiers(t *testing.T) {
	f, err := expectedFile().Formatter()
	require.NoError(t, err)

	date := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	s, err := f.Stringify(date)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", s)

	s, err = f.Stringify([]string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, "* a\n* b", s)

	// boolean omitted: the JSON fallback renders it.
	s, err = f.Stringify(false)
	require.NoError(t, err)
	assert.Equal(t, "false", s)
}

func TestFile_Formatter_OverrideDoesNotRestoreOmittedRule(t *testing.T) {
	cfg := &File{Stringifiers: StringifierConfig{Pick: []string{"text"}, DateLayout: "2006-01-02"}}
	f, err := cfg.Formatter()
	require.NoError(t, err)

	s, err := f.Stringify(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, `"2025-01-01T00:00:00Z"`, s)
}

func TestFile_Formatter_Transformers(t *testing.T) {
	f, err := expectedFile().Formatter()
	require.NoError(t, err)

	// Replacement runs first (before order), the budget runs last.
	assert.Equal(t, "line ONE\n[...]", f.Clean("  line one\n  line two\n  line three\n"))
}

func TestFile_Formatter_OmitTransformer(t *testing.T) {
	cfg := &File{Transformers: TransformerConfig{Omit: []string{"comments", "no-such-step"}}}
	f, err := cfg.Formatter()
	require.NoError(t, err)

	assert.Equal(t, "see http://example.com", f.Clean("  see http://example.com  "))
}

func TestFile_Formatter_Invalid(t *testing.T) {
	tests := []struct {
		name string
		file File
	}{
		{name: "extension order", file: File{ExtensionOrder: "sideways"}},
		{name: "replace without name", file: File{Transformers: TransformerConfig{Replace: []Replacement{{Pattern: "x"}}}}},
		{name: "bad pattern", file: File{Transformers: TransformerConfig{Replace: []Replacement{{Name: "x", Pattern: "("}}}}},
		{name: "negative budget", file: File{Transformers: TransformerConfig{MaxTokens: -1}}},
		{name: "truncate strategy", file: File{Transformers: TransformerConfig{MaxTokens: 10, Truncate: "sideways"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.file.Formatter()
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestSchema(t *testing.T) {
	data, err := Schema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, SchemaID, doc["$id"])
	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok, "schema should describe File properties at the root")
	assert.Contains(t, props, "extension_order")
	assert.Contains(t, props, "stringifiers")
	assert.Contains(t, props, "transformers")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func listOf(t *testing.T, w *Watcher) string {
	t.Helper()
	s, err := w.Formatter().Stringify([]string{"a"})
	require.NoError(t, err)
	return s
}

func TestWatcher_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formatter.yaml")
	writeFile(t, path, "stringifiers:\n  list_marker: \"* \"\n")

	var reloads atomic.Int32
	w, err := NewWatcher(path, WithOnReload(func(*format.Formatter) { reloads.Add(1) }))
	require.NoError(t, err)
	assert.Equal(t, "* a", listOf(t, w))

	writeFile(t, path, "stringifiers:\n  list_marker: \"+ \"\n")
	require.NoError(t, w.Reload())
	assert.Equal(t, "+ a", listOf(t, w))
	assert.Equal(t, int32(1), reloads.Load())

	previous := w.Formatter()
	writeFile(t, path, "stringifiers: [\n")
	assert.ErrorIs(t, w.Reload(), ErrInvalid)
	assert.Same(t, previous, w.Formatter())
	assert.Equal(t, int32(1), reloads.Load())
}

func TestNewWatcher_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formatter.yaml")
	writeFile(t, path, "extension_order: sideways\n")

	_, err := NewWatcher(path)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestWatcher_Run(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formatter.yaml")
	writeFile(t, path, "stringifiers:\n  list_marker: \"* \"\n")

	w, err := NewWatcher(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Rewrite on every tick: the watch may not be registered yet.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("stringifiers:\n  list_marker: \"+ \"\n"), 0o644)
		s, _ := w.Formatter().Stringify([]string{"a"})
		return s == "+ a"
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWatcher_Poll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formatter.json")
	writeFile(t, path, `{"stringifiers": {"list_marker": "* "}}`)

	w, err := NewWatcher(path, WithPollInterval(10*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.poll(ctx) }()

	writeFile(t, path, `{"stringifiers": {"list_marker": "+ "}}`)
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))

	require.Eventually(t, func() bool {
		s, _ := w.Formatter().Stringify([]string{"a"})
		return s == "+ a"
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
