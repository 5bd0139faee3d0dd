package transform

import (
	"regexp"
	"strings"

	"github.com/randalmurphal/promptkit/registry"
)

// Transformer is a pure text to text cleanup step.
type Transformer func(text string) string

// Names of the built-in transformers.
const (
	LineEndings = "lineEndings"
	Comments    = "comments"
	Dedent      = "dedent"
	Spaces      = "spaces"
	BlankLines  = "blankLines"
	Trim        = "trim"
)

var (
	lineEndingPattern = regexp.MustCompile(`\r+\n`)
	edgeSpacePattern  = regexp.MustCompile(`[ \t\r]*\n[ \t]*`)
	spaceRunPattern   = regexp.MustCompile(`[ \t]+`)
	newlineRunPattern = regexp.MustCompile(`\n{3,}`)
)

// Builtins returns the built-in transformers in application order.
// Comments are stripped before blank lines are collapsed so that a
// comment-only line can be collapsed, and lines are de-indented before
// spaces are collapsed so that indentation never becomes an inner space.
func Builtins(opts ...registry.Option) *registry.Registry[Transformer] {
	return registry.New([]registry.Entry[Transformer]{
		{Name: LineEndings, Value: NormalizeLineEndings},
		{Name: Comments, Value: StripComments},
		{Name: Dedent, Value: DedentLines},
		{Name: Spaces, Value: CollapseSpaces},
		{Name: BlankLines, Value: CollapseBlankLines},
		{Name: Trim, Value: strings.TrimSpace},
	}, opts...)
}

// NormalizeLineEndings converts CRLF to LF. Runs of carriage returns
// before a line feed are removed in one pass.
func NormalizeLineEndings(text string) string {
	return lineEndingPattern.ReplaceAllString(text, "\n")
}

// StripComments removes "//" line comments together with the horizontal
// whitespace before them. A "//" preceded by a backslash is kept verbatim.
func StripComments(text string) string {
	if !strings.Contains(text, "//") {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = stripLineComment(line)
	}
	return strings.Join(lines, "\n")
}

func stripLineComment(line string) string {
	for i := 0; i+1 < len(line); i++ {
		if line[i] != '/' || line[i+1] != '/' {
			continue
		}
		if i > 0 && line[i-1] == '\\' {
			i++
			continue
		}
		return strings.TrimRight(line[:i], " \t\r")
	}
	return line
}

// DedentLines removes spaces and tabs on both sides of every newline,
// and stray carriage returns before it.
func DedentLines(text string) string {
	return edgeSpacePattern.ReplaceAllString(text, "\n")
}

// CollapseSpaces replaces runs of spaces and tabs with a single space.
func CollapseSpaces(text string) string {
	return spaceRunPattern.ReplaceAllString(text, " ")
}

// CollapseBlankLines keeps at most one blank line between paragraphs.
func CollapseBlankLines(text string) string {
	return newlineRunPattern.ReplaceAllString(text, "\n\n")
}

// Replace returns a transformer replacing every match of re with repl.
// repl may reference capture groups as in regexp.Regexp.ReplaceAllString.
func Replace(re *regexp.Regexp, repl string) Transformer {
	return func(text string) string {
		return re.ReplaceAllString(text, repl)
	}
}

// Chain composes transformers left to right.
func Chain(ts ...Transformer) Transformer {
	steps := make([]Transformer, len(ts))
	copy(steps, ts)
	return func(text string) string {
		for _, t := range steps {
			text = t(text)
		}
		return text
	}
}

// Pipeline applies transformers in registry order.
type Pipeline struct {
	steps []Transformer
}

// NewPipeline creates a pipeline from reg. A nil registry means the
// built-in transformers.
func NewPipeline(reg *registry.Registry[Transformer]) Pipeline {
	if reg == nil {
		reg = Builtins()
	}
	var steps []Transformer
	for _, t := range reg.Values() {
		if t != nil {
			steps = append(steps, t)
		}
	}
	return Pipeline{steps: steps}
}

// Apply runs text through every step; each output feeds the next step.
func (p Pipeline) Apply(text string) string {
	for _, step := range p.steps {
		text = step(text)
	}
	return text
}

// Len returns the number of steps.
func (p Pipeline) Len() int {
	return len(p.steps)
}
