package template

import (
	"reflect"
	"strconv"
	"strings"
)

// KeyPrefix marks a string placeholder as a key path into the arguments.
const KeyPrefix = "."

// Key returns the placeholder for a key path, e.g. Key("user.name").
func Key(path string) string {
	return KeyPrefix + path
}

// Resolve turns a placeholder into the value to format.
//
// A string starting with KeyPrefix is looked up in args. If the key is
// absent the string itself is returned, prefix included. Resolver
// functions, and any function of Args returning a value and optionally an
// error, are called with args. Anything else is returned unchanged.
func Resolve(placeholder any, args Args) (any, error) {
	switch p := placeholder.(type) {
	case string:
		if path, ok := keyPath(p); ok {
			if v, found := lookup(args, path); found {
				return v, nil
			}
		}
		return p, nil
	case Resolver:
		return p(args), nil
	case func(Args) any:
		return p(args), nil
	case func(Args) (any, error):
		return p(args)
	default:
		if fn, ok := resolverFunc(placeholder); ok {
			return callResolver(fn, args)
		}
		return placeholder, nil
	}
}

var (
	argsType  = reflect.TypeOf(Args(nil))
	errorType = reflect.TypeOf((*error)(nil)).Elem()
)

// resolverFunc reports whether placeholder is a non-nil function taking the
// arguments and returning a value, optionally followed by an error, such as
// func(Args) string or func(Args) (int, error).
func resolverFunc(placeholder any) (reflect.Value, bool) {
	fn := reflect.ValueOf(placeholder)
	if fn.Kind() != reflect.Func || fn.IsNil() {
		return reflect.Value{}, false
	}
	t := fn.Type()
	if t.NumIn() != 1 || t.IsVariadic() || !argsType.AssignableTo(t.In(0)) {
		return reflect.Value{}, false
	}
	switch t.NumOut() {
	case 1:
		return fn, true
	case 2:
		return fn, t.Out(1) == errorType
	}
	return reflect.Value{}, false
}

func callResolver(fn reflect.Value, args Args) (any, error) {
	out := fn.Call([]reflect.Value{reflect.ValueOf(args)})
	if len(out) == 2 && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	return out[0].Interface(), nil
}

func keyPath(placeholder any) (string, bool) {
	s, ok := placeholder.(string)
	if !ok || !strings.HasPrefix(s, KeyPrefix) {
		return "", false
	}
	return s[len(KeyPrefix):], true
}

// lookup finds path in args. The full path is tried as a key first, then
// each dot-separated segment is followed through maps with string keys,
// exported struct fields, and slice or array indexes.
func lookup(args Args, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	if v, ok := args[path]; ok {
		return v, true
	}
	if !strings.Contains(path, ".") {
		return nil, false
	}

	var cur any = args
	for _, seg := range strings.Split(path, ".") {
		next, ok := child(cur, seg)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func child(v any, name string) (any, bool) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		keyType := rv.Type().Key()
		if keyType.Kind() != reflect.String {
			return nil, false
		}
		val := rv.MapIndex(reflect.ValueOf(name).Convert(keyType))
		if !val.IsValid() {
			return nil, false
		}
		return val.Interface(), true
	case reflect.Struct:
		field := rv.FieldByName(name)
		if !field.IsValid() || !field.CanInterface() {
			return nil, false
		}
		return field.Interface(), true
	case reflect.Slice, reflect.Array:
		i, err := strconv.Atoi(name)
		if err != nil || i < 0 || i >= rv.Len() {
			return nil, false
		}
		return rv.Index(i).Interface(), true
	}
	return nil, false
}
