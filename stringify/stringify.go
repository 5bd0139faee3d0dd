package stringify

import (
	"reflect"

	"github.com/randalmurphal/promptkit/registry"
)

// CircularReference replaces a value that is already being stringified
// further up the same call chain.
const CircularReference = "[Circular Reference]"

// Func stringifies a nested value with the same rule set as the caller.
type Func func(value any) (string, error)

// Rule converts one recognized shape of value into text.
//
// Convert receives the dispatching Func so that container rules can
// stringify their elements. Errors returned by Convert are passed back to
// the caller of Dispatcher.Stringify unchanged.
type Rule struct {
	Applies func(value any) bool
	Convert func(value any, stringify Func) (string, error)
}

// When builds a rule from a predicate and a converter.
func When(applies func(value any) bool, convert func(value any, stringify Func) (string, error)) Rule {
	return Rule{Applies: applies, Convert: convert}
}

// For builds a rule that applies to values of dynamic type T.
//
//	stringify.For(func(d time.Duration, _ stringify.Func) (string, error) {
//	    return d.Round(time.Second).String(), nil
//	})
func For[T any](convert func(value T, stringify Func) (string, error)) Rule {
	return Rule{
		Applies: func(value any) bool {
			_, ok := value.(T)
			return ok
		},
		Convert: func(value any, stringify Func) (string, error) {
			return convert(value.(T), stringify)
		},
	}
}

// Dispatcher picks the first applicable rule for a value.
// It holds no mutable state and is safe for concurrent use.
type Dispatcher struct {
	rules []Rule
}

// New creates a dispatcher over the rules of reg, in registry order.
// A nil registry means the built-in rules.
func New(reg *registry.Registry[Rule]) *Dispatcher {
	if reg == nil {
		reg = Builtins()
	}
	return &Dispatcher{rules: reg.Values()}
}

// Stringify converts value to text. Values no rule applies to are handled
// by Fallback, so the only errors are those returned by rules.
func (d *Dispatcher) Stringify(value any) (string, error) {
	w := &walk{rules: d.rules}
	return w.stringify(value)
}

// walk carries the identities of the containers on the current recursion
// path for one top-level Stringify call.
type walk struct {
	rules  []Rule
	active map[identity]struct{}
}

type identity struct {
	typ reflect.Type
	ptr uintptr
	len int
}

func (w *walk) stringify(value any) (string, error) {
	if id, ok := identify(value); ok {
		if _, seen := w.active[id]; seen {
			return CircularReference, nil
		}
		if w.active == nil {
			w.active = make(map[identity]struct{})
		}
		w.active[id] = struct{}{}
		defer delete(w.active, id)
	}

	for _, rule := range w.rules {
		if rule.Applies != nil && rule.Convert != nil && rule.Applies(value) {
			return rule.Convert(value, w.stringify)
		}
	}
	return Fallback.Convert(value, w.stringify)
}

// identify returns the identity of reference values that can take part in
// a cycle. Two distinct but equal slices have different identities.
func identify(value any) (identity, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.Len() == 0 {
			return identity{}, false
		}
		return identity{typ: rv.Type(), ptr: rv.Pointer(), len: rv.Len()}, true
	case reflect.Map, reflect.Pointer:
		if rv.IsNil() {
			return identity{}, false
		}
		return identity{typ: rv.Type(), ptr: rv.Pointer()}, true
	default:
		return identity{}, false
	}
}
