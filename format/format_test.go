package format

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/promptkit/registry"
	"github.com/randalmurphal/promptkit/stringify"
	"github.com/randalmurphal/promptkit/transform"
)

var newYear = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// lines wraps a single interpolated value the way an indented template does.
func lines(value any) ([]string, []any) {
	return []string{"\n      ", "\n    "}, []any{value}
}

func TestFormat_Whitespace(t *testing.T) {
	tests := []struct {
		name      string
		fragments []string
		want      string
	}{
		{name: "trims whitespace", fragments: []string{"\n      Hello\n      World\n    "}, want: "Hello\nWorld"},
		{name: "keeps single empty line", fragments: []string{"\n      Hello\n\n      World\n    "}, want: "Hello\n\nWorld"},
		{name: "collapses many empty lines", fragments: []string{"\n      Hello\n\n\n      World\n    "}, want: "Hello\n\nWorld"},
		{
			name:      "strips comments",
			fragments: []string{"\n      // This is a comment\n      Hello // this is another comment\n      // This too\n      World // this is also a comment\n    "},
			want:      "Hello\n\nWorld",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.fragments)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_DefaultStringifier(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "date", value: newYear, want: "January 1, 2025"},
		{name: "nil", value: nil, want: ""},
		{name: "true", value: true, want: "true"},
		{name: "false", value: false, want: ""},
		{name: "object", value: struct {
			Name string `json:"name"`
			Age  int    `json:"age"`
		}{Name: "John", Age: 30}, want: `{"name":"John","age":30}`},
		{name: "list", value: []string{"Hello", "World"}, want: "- Hello\n- World"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fragments, values := lines(tt.value)
			got, err := Format(fragments, values...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_CircularReference(t *testing.T) {
	list := []any{1, 2, 3}
	list = append(list, nil)
	list[3] = list

	fragments, values := lines(list)
	got, err := Format(fragments, values...)
	require.NoError(t, err)
	assert.Equal(t, "- 1\n- 2\n- 3\n- [Circular Reference]", got)
}

func TestFormat_CustomDateSurvivesPipeline(t *testing.T) {
	f := New(Config{
		Stringifiers: stringify.Builtins().Extend(
			registry.NewEntry(stringify.Date, stringify.DateLayout("02. January 2006")),
		),
	})

	got, err := f.Format([]string{"Hello\n  ", "\n  World\n"}, newYear)
	require.NoError(t, err)
	assert.Equal(t, "Hello\n01. January 2025\nWorld", got)
}

func TestFormat_ExtraStringifiers(t *testing.T) {
	iso := stringify.DateLayout("2006-01-02")

	t.Run("collision replaces built-in", func(t *testing.T) {
		f := New(Config{ExtraStringifiers: []registry.Entry[stringify.Rule]{registry.NewEntry(stringify.Date, iso)}})
		got, err := f.Format([]string{"on ", ""}, newYear)
		require.NoError(t, err)
		assert.Equal(t, "on 2025-01-01", got)
	})

	t.Run("after keeps built-in priority", func(t *testing.T) {
		f := New(Config{ExtraStringifiers: []registry.Entry[stringify.Rule]{registry.NewEntry("iso", iso)}})
		got, err := f.Format([]string{"on ", ""}, newYear)
		require.NoError(t, err)
		assert.Equal(t, "on January 1, 2025", got)
	})

	t.Run("before gives extra priority", func(t *testing.T) {
		f := New(Config{
			ExtraStringifiers: []registry.Entry[stringify.Rule]{registry.NewEntry("iso", iso)},
			ExtensionOrder:    registry.Before,
		})
		got, err := f.Format([]string{"on ", ""}, newYear)
		require.NoError(t, err)
		assert.Equal(t, "on 2025-01-01", got)
	})
}

func TestFormat_CustomTransformers(t *testing.T) {
	upper := registry.NewEntry[transform.Transformer]("uppercase", strings.ToUpper)

	t.Run("extend runs after built-ins", func(t *testing.T) {
		f := New(Config{Transformers: transform.Builtins().Extend(upper)})
		got, err := f.Format([]string{"\n        Hello\n      "})
		require.NoError(t, err)
		assert.Equal(t, "HELLO", got)
	})

	t.Run("replacement drops built-ins", func(t *testing.T) {
		f := New(Config{Transformers: registry.New([]registry.Entry[transform.Transformer]{upper})})
		got, err := f.Format([]string{"\n        Hello\n      "})
		require.NoError(t, err)
		assert.Equal(t, "\n        HELLO\n      ", got)
	})

	t.Run("extra before built-ins", func(t *testing.T) {
		mark := registry.NewEntry[transform.Transformer]("mark", func(s string) string { return s + "   !" })
		f := New(Config{ExtraTransformers: []registry.Entry[transform.Transformer]{mark}, ExtensionOrder: registry.Before})
		got, err := f.Format([]string{"hi"})
		require.NoError(t, err)
		assert.Equal(t, "hi !", got)
	})
}

func TestFormat_Arity(t *testing.T) {
	tests := []struct {
		name      string
		fragments []string
		values    []any
	}{
		{name: "too many values", fragments: []string{"a", "b"}, values: []any{1, 2}},
		{name: "too few values", fragments: []string{"a", "b", "c"}, values: []any{1}},
		{name: "values without fragments", fragments: nil, values: []any{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Format(tt.fragments, tt.values...)
			assert.ErrorIs(t, err, ErrArity)
		})
	}

	got, err := Format(nil)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestFormat_RuleErrorPropagatesUnchanged(t *testing.T) {
	boom := errors.New("boom")
	f := New(Config{ExtraStringifiers: []registry.Entry[stringify.Rule]{
		registry.NewEntry("failing", stringify.For(func(int, stringify.Func) (string, error) { return "", boom })),
	}})

	_, err := f.Format([]string{"n=", ""}, 7)
	assert.Same(t, boom, err)

	assert.Panics(t, func() { f.MustFormat([]string{"n=", ""}, 7) })
}

func TestFormatter_StringifyAndClean(t *testing.T) {
	s, err := Default.Stringify([]string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, "- a\n- b", s)

	assert.Equal(t, "a\n\nb", Default.Clean("  a\n\n\n\n  b  "))
}

func TestFormat_Idempotent(t *testing.T) {
	fragments := []string{"\n  Rules:\n  ", "\n\n\n  // internal note\n  Date: ", "\n"}
	first, err := Format(fragments, []string{"one", "two"}, newYear)
	require.NoError(t, err)

	second, err := Format([]string{first})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFormatter_IndependentInstances(t *testing.T) {
	upper := New(Config{ExtraTransformers: []registry.Entry[transform.Transformer]{
		registry.NewEntry[transform.Transformer]("upper", strings.ToUpper),
	}})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			got, err := upper.Format([]string{" x ", " "}, "y")
			assert.NoError(t, err)
			assert.Equal(t, "X Y", got)
		}()
		go func() {
			defer wg.Done()
			got, err := Default.Format([]string{" x ", " "}, "y")
			assert.NoError(t, err)
			assert.Equal(t, "x y", got)
		}()
	}
	wg.Wait()
}
