package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/promptkit/format"
	"github.com/randalmurphal/promptkit/registry"
	"github.com/randalmurphal/promptkit/stringify"
	"github.com/randalmurphal/promptkit/transform"
	"github.com/randalmurphal/promptkit/truncate"
)

// Kind is a configuration file syntax.
type Kind string

// Supported kinds.
const (
	YAML Kind = "yaml"
	TOML Kind = "toml"
	JSON Kind = "json"
)

// File is the declarative form of a formatter configuration.
// The zero value describes the built-in formatter.
type File struct {
	// ExtensionOrder is "after" (default) or "before". It applies to every
	// rule the file adds on top of the built-ins.
	ExtensionOrder string `json:"extension_order,omitempty" yaml:"extension_order" toml:"extension_order" jsonschema:"enum=before,enum=after"`

	Stringifiers StringifierConfig `json:"stringifiers,omitempty" yaml:"stringifiers" toml:"stringifiers"`
	Transformers TransformerConfig `json:"transformers,omitempty" yaml:"transformers" toml:"transformers"`
}

// StringifierConfig selects and tunes the built-in conversion rules.
type StringifierConfig struct {
	// Pick keeps only the named rules. Empty keeps all.
	Pick []string `json:"pick,omitempty" yaml:"pick" toml:"pick"`

	// Omit drops the named rules.
	Omit []string `json:"omit,omitempty" yaml:"omit" toml:"omit"`

	// DateLayout replaces the layout of the date rule (Go reference time).
	DateLayout string `json:"date_layout,omitempty" yaml:"date_layout" toml:"date_layout"`

	// ListMarker replaces the "- " bullet of the sequence rule.
	ListMarker string `json:"list_marker,omitempty" yaml:"list_marker" toml:"list_marker"`
}

// TransformerConfig selects the built-in transforms and adds new ones.
type TransformerConfig struct {
	Pick []string `json:"pick,omitempty" yaml:"pick" toml:"pick"`
	Omit []string `json:"omit,omitempty" yaml:"omit" toml:"omit"`

	// Replace adds regular expression replacements.
	Replace []Replacement `json:"replace,omitempty" yaml:"replace" toml:"replace"`

	// MaxTokens truncates the final text to an estimated token count.
	// 0 disables truncation.
	MaxTokens int `json:"max_tokens,omitempty" yaml:"max_tokens" toml:"max_tokens" jsonschema:"minimum=0"`

	// Truncate is the truncation strategy: "end" (default), "middle" or "start".
	Truncate string `json:"truncate,omitempty" yaml:"truncate" toml:"truncate" jsonschema:"enum=end,enum=middle,enum=start"`
}

// Replacement is a named regular expression replacement.
type Replacement struct {
	Name    string `json:"name" yaml:"name" toml:"name"`
	Pattern string `json:"pattern" yaml:"pattern" toml:"pattern"`
	With    string `json:"with" yaml:"with" toml:"with"`
}

// KindOf returns the kind matching the file extension of path.
func KindOf(path string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	case ".json":
		return JSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads and parses the configuration file at path.
func Load(path string) (*File, error) {
	kind, err := KindOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	f, err := Parse(data, kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes data of the given kind. Unknown keys are rejected.
// Empty input yields the zero File.
func Parse(data []byte, kind Kind) (*File, error) {
	var f File

	switch kind {
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	case TOML:
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
		}
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, kind)
	}

	return &f, nil
}

// Formatter builds the formatter the file describes.
func (f *File) Formatter() (*format.Formatter, error) {
	order, err := registry.ParseOrder(f.ExtensionOrder)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	rules := f.Stringifiers.build(order)

	transforms, err := f.Transformers.build(order)
	if err != nil {
		return nil, err
	}

	return format.New(format.Config{
		Stringifiers: rules,
		Transformers: transforms,
	}), nil
}

func (c StringifierConfig) build(order registry.Order) *registry.Registry[stringify.Rule] {
	rules := selectEntries(stringify.Builtins(registry.WithOrder(order)), c.Pick, c.Omit, "stringifiers")

	var overrides []registry.Entry[stringify.Rule]
	if c.DateLayout != "" && rules.Has(stringify.Date) {
		overrides = append(overrides, registry.NewEntry(stringify.Date, stringify.DateLayout(c.DateLayout)))
	}
	if c.ListMarker != "" && rules.Has(stringify.Sequence) {
		overrides = append(overrides, registry.NewEntry(stringify.Sequence, stringify.SequenceWith(c.ListMarker)))
	}
	return rules.Extend(overrides...)
}

func (c TransformerConfig) build(order registry.Order) (*registry.Registry[transform.Transformer], error) {
	transforms := selectEntries(transform.Builtins(registry.WithOrder(order)), c.Pick, c.Omit, "transformers")

	extra := make([]registry.Entry[transform.Transformer], 0, len(c.Replace))
	for i, r := range c.Replace {
		if r.Name == "" {
			return nil, fmt.Errorf("%w: replace[%d] has no name", ErrInvalid, i)
		}
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: replace %q: %w", ErrInvalid, r.Name, err)
		}
		extra = append(extra, registry.NewEntry(r.Name, transform.Replace(re, r.With)))
	}
	transforms = transforms.Extend(extra...)

	if c.MaxTokens < 0 {
		return nil, fmt.Errorf("%w: max_tokens must not be negative, got %d", ErrInvalid, c.MaxTokens)
	}
	strategy, err := truncate.ParseStrategy(c.Truncate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.MaxTokens > 0 {
		// The budget always runs last, whatever the extension order.
		budget := registry.NewEntry(transform.BudgetName, transform.Budget(c.MaxTokens, strategy))
		transforms = transforms.ExtendFunc(func(cur *registry.Registry[transform.Transformer]) []registry.Entry[transform.Transformer] {
			return append(cur.Omit(transform.BudgetName).Entries(), budget)
		})
	}

	return transforms, nil
}

// selectEntries applies pick and omit. Unknown names are ignored, as the
// registry does, but logged to help spot typos.
func selectEntries[T any](reg *registry.Registry[T], pick, omit []string, section string) *registry.Registry[T] {
	for _, names := range [][]string{pick, omit} {
		for _, name := range names {
			if !reg.Has(name) {
				slog.Debug("ignoring unknown rule name in formatter config",
					slog.String("section", section),
					slog.String("name", name))
			}
		}
	}
	if len(pick) > 0 {
		reg = reg.Pick(pick...)
	}
	if len(omit) > 0 {
		reg = reg.Omit(omit...)
	}
	return reg
}

// LoadFormatter loads the file at path and builds its formatter.
func LoadFormatter(path string) (*format.Formatter, error) {
	f, err := Load(path)
	if err != nil {
		return nil, err
	}
	formatter, err := f.Formatter()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return formatter, nil
}
