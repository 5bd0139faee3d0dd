package template

import (
	"fmt"
	"regexp"
	"strings"
)

// placeholderPattern matches {{name}}, {{ .name }} and {{user.name}} style
// references. Path segments after the first may be slice indexes.
var placeholderPattern = regexp.MustCompile(`\{\{\s*\.?([A-Za-z_]\w*(?:\.(?:[A-Za-z_]\w*|\d+))*)\s*\}\}`)

// Parse builds a template from text with {{name}} placeholders, bound to
// the Binder's formatter. Each placeholder becomes a key path.
//
// There are no control structures: {{#if}}, {{range}} and similar
// directives are rejected with ErrParse.
func (b *Binder) Parse(text string) (*Template, error) {
	if text == "" {
		return nil, ErrEmpty
	}

	matches := placeholderPattern.FindAllStringSubmatchIndex(text, -1)
	fragments := make([]string, 0, len(matches)+1)
	placeholders := make([]any, 0, len(matches))

	last := 0
	for _, m := range matches {
		fragments = append(fragments, text[last:m[0]])
		placeholders = append(placeholders, Key(text[m[2]:m[3]]))
		last = m[1]
	}
	fragments = append(fragments, text[last:])

	for _, f := range fragments {
		if i := strings.Index(f, "{{"); i >= 0 {
			return nil, fmt.Errorf("%w: unsupported placeholder near %q", ErrParse, snippet(f[i:]))
		}
	}

	return &Template{fragments: fragments, placeholders: placeholders, formatter: b.formatter}, nil
}

// Parse parses with Default.
func Parse(text string) (*Template, error) {
	return Default.Parse(text)
}

// MustParse is like Parse but panics on error. Use it for templates that
// are package-level variables.
func MustParse(text string) *Template {
	t, err := Parse(text)
	if err != nil {
		panic(fmt.Sprintf("template.MustParse: %v", err))
	}
	return t
}

// snippet returns the start of s, up to the end of the first tag or 30 bytes.
func snippet(s string) string {
	if end := strings.Index(s, "}}"); end >= 0 && end < 30 {
		return s[:end+2]
	}
	if len(s) > 30 {
		return s[:30]
	}
	return s
}
