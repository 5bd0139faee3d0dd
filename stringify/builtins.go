package stringify

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/randalmurphal/promptkit/registry"
)

// Names of the built-in rules.
const (
	Date     = "date"
	Boolean  = "boolean"
	Sequence = "sequence"
	Text     = "text"
)

// LongDate is the layout of the built-in date rule, e.g. "January 1, 2025".
const LongDate = "January 2, 2006"

// ListMarker prefixes every element rendered by the built-in sequence rule.
const ListMarker = "- "

var bytesType = reflect.TypeOf([]byte(nil))

// Builtins returns the built-in rules, most specific first:
// date, boolean, sequence, text.
func Builtins(opts ...registry.Option) *registry.Registry[Rule] {
	return registry.New([]registry.Entry[Rule]{
		{Name: Date, Value: DateLayout(LongDate)},
		{Name: Boolean, Value: BooleanRule},
		{Name: Sequence, Value: SequenceWith(ListMarker)},
		{Name: Text, Value: TextRule},
	}, opts...)
}

// DateLayout returns a rule formatting time.Time and *time.Time values with
// the given layout.
func DateLayout(layout string) Rule {
	return Rule{
		Applies: isDate,
		Convert: func(value any, _ Func) (string, error) {
			switch t := value.(type) {
			case time.Time:
				return t.Format(layout), nil
			case *time.Time:
				return t.Format(layout), nil
			}
			return "", nil
		},
	}
}

func isDate(value any) bool {
	switch t := value.(type) {
	case time.Time:
		return true
	case *time.Time:
		return t != nil
	}
	return false
}

// BooleanRule renders true as "true" and false as nothing, so that a false
// flag disappears from the prompt instead of printing "false".
var BooleanRule = Rule{
	Applies: func(value any) bool {
		return reflect.ValueOf(value).Kind() == reflect.Bool
	},
	Convert: func(value any, _ Func) (string, error) {
		if reflect.ValueOf(value).Bool() {
			return "true", nil
		}
		return "", nil
	},
}

// SequenceWith returns a rule rendering slices and arrays as one line per
// element, each prefixed with marker. Byte slices are left to the text rule.
func SequenceWith(marker string) Rule {
	return Rule{
		Applies: isSequence,
		Convert: func(value any, stringify Func) (string, error) {
			rv := reflect.ValueOf(value)
			lines := make([]string, rv.Len())
			for i := range lines {
				s, err := stringify(rv.Index(i).Interface())
				if err != nil {
					return "", err
				}
				lines[i] = marker + s
			}
			return strings.Join(lines, "\n"), nil
		},
	}
}

func isSequence(value any) bool {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Type().Elem().Kind() != reflect.Uint8
	}
	return false
}

// TextRule passes strings (including named string types), non-nil string
// pointers and byte slices through unchanged.
var TextRule = Rule{
	Applies: func(value any) bool {
		rv := reflect.ValueOf(value)
		switch rv.Kind() {
		case reflect.String:
			return true
		case reflect.Pointer:
			return !rv.IsNil() && rv.Elem().Kind() == reflect.String
		case reflect.Slice:
			return rv.Type().ConvertibleTo(bytesType)
		}
		return false
	},
	Convert: func(value any, _ Func) (string, error) {
		rv := reflect.ValueOf(value)
		switch rv.Kind() {
		case reflect.Pointer:
			return rv.Elem().String(), nil
		case reflect.Slice:
			return string(rv.Convert(bytesType).Bytes()), nil
		}
		return rv.String(), nil
	},
}

// Fallback handles values no rule applies to. Nil values, functions and
// channels become empty text, everything else its JSON form.
var Fallback = Rule{
	Applies: func(any) bool { return true },
	Convert: func(value any, _ Func) (string, error) {
		if isNil(value) || isOpaque(reflect.TypeOf(value)) {
			return "", nil
		}
		return marshal(value), nil
	},
}

// isOpaque reports whether values of t have no textual form.
func isOpaque(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	}
	return false
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// marshal renders value as compact JSON without HTML escaping.
// Struct fields keep declaration order and map keys are sorted.
func marshal(value any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		var unsupported *json.UnsupportedValueError
		if errors.As(err, &unsupported) && strings.HasPrefix(unsupported.Str, "encountered a cycle") {
			return CircularReference
		}
		// A nested func or chan would make fmt print its address.
		var unsupportedType *json.UnsupportedTypeError
		if errors.As(err, &unsupportedType) && isOpaque(unsupportedType.Type) {
			return ""
		}
		return fmt.Sprint(value)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
