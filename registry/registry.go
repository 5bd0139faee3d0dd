package registry

import (
	"fmt"
	"strings"
)

// Order controls how Extend merges new entries with existing ones.
type Order int

const (
	// After keeps existing entries in place. Colliding names are replaced
	// in their original position and new names are appended.
	After Order = iota

	// Before places new entries ahead of existing ones. An existing entry
	// whose name collides with a new one is dropped.
	Before
)

// String returns "after" or "before".
func (o Order) String() string {
	if o == Before {
		return "before"
	}
	return "after"
}

// ParseOrder parses "before" or "after" (case-insensitive).
// An empty string yields After.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "after":
		return After, nil
	case "before":
		return Before, nil
	default:
		return After, fmt.Errorf("%w: %q", ErrInvalidOrder, s)
	}
}

// Entry is a named rule.
type Entry[T any] struct {
	Name  string
	Value T
}

// NewEntry creates an entry. It exists so that T can be inferred.
func NewEntry[T any](name string, value T) Entry[T] {
	return Entry[T]{Name: name, Value: value}
}

// Option configures a Registry.
type Option func(*options)

type options struct {
	order Order
}

// WithOrder sets the extension order of the registry.
func WithOrder(o Order) Option {
	return func(opts *options) {
		opts.order = o
	}
}

// Registry is an immutable, ordered collection of named rules.
// Entry order is dispatch priority. Every operation returns a new Registry,
// so a Registry can be shared between goroutines without locking.
//
// The zero value is an empty registry with After order.
type Registry[T any] struct {
	entries []Entry[T]
	order   Order
}

// New creates a registry from the given entries.
// If a name occurs more than once, the last value wins and the first
// position is kept.
func New[T any](entries []Entry[T], opts ...Option) *Registry[T] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	return &Registry[T]{
		entries: dedupe(entries),
		order:   o.order,
	}
}

// dedupe returns a fresh slice with unique names.
func dedupe[T any](entries []Entry[T]) []Entry[T] {
	out := make([]Entry[T], 0, len(entries))
	index := make(map[string]int, len(entries))
	for _, e := range entries {
		if i, ok := index[e.Name]; ok {
			out[i].Value = e.Value
			continue
		}
		index[e.Name] = len(out)
		out = append(out, e)
	}
	return out
}

// Get returns a copy of the name to rule mapping.
// Use Entries when the order matters.
func (r *Registry[T]) Get() map[string]T {
	m := make(map[string]T, len(r.entries))
	for _, e := range r.entries {
		m[e.Name] = e.Value
	}
	return m
}

// Entries returns a copy of the entries in dispatch order.
func (r *Registry[T]) Entries() []Entry[T] {
	out := make([]Entry[T], len(r.entries))
	copy(out, r.entries)
	return out
}

// Names returns the entry names in dispatch order.
func (r *Registry[T]) Names() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Name
	}
	return names
}

// Values returns the rules in dispatch order.
func (r *Registry[T]) Values() []T {
	values := make([]T, len(r.entries))
	for i, e := range r.entries {
		values[i] = e.Value
	}
	return values
}

// Lookup returns the rule registered under name.
func (r *Registry[T]) Lookup(name string) (T, bool) {
	for _, e := range r.entries {
		if e.Name == name {
			return e.Value, true
		}
	}
	var zero T
	return zero, false
}

// Has reports whether name is registered.
func (r *Registry[T]) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Len returns the number of entries.
func (r *Registry[T]) Len() int {
	return len(r.entries)
}

// Order returns the extension order.
func (r *Registry[T]) Order() Order {
	return r.order
}

// WithOrder returns a copy of the registry using the given extension order.
func (r *Registry[T]) WithOrder(o Order) *Registry[T] {
	return &Registry[T]{entries: r.Entries(), order: o}
}

// Pick returns a registry holding only the named entries, in their current
// order. Names that are not registered are ignored.
func (r *Registry[T]) Pick(names ...string) *Registry[T] {
	keep := nameSet(names)
	return r.filter(func(name string) bool {
		_, ok := keep[name]
		return ok
	})
}

// Omit returns a registry without the named entries.
// Names that are not registered are ignored.
func (r *Registry[T]) Omit(names ...string) *Registry[T] {
	drop := nameSet(names)
	return r.filter(func(name string) bool {
		_, ok := drop[name]
		return !ok
	})
}

func (r *Registry[T]) filter(keep func(name string) bool) *Registry[T] {
	out := make([]Entry[T], 0, len(r.entries))
	for _, e := range r.entries {
		if keep(e.Name) {
			out = append(out, e)
		}
	}
	return &Registry[T]{entries: out, order: r.order}
}

// Extend returns a registry combining the current entries with the given
// ones according to the registry's Order. On a name collision the new entry
// always wins.
func (r *Registry[T]) Extend(entries ...Entry[T]) *Registry[T] {
	ext := dedupe(entries)
	merged := make([]Entry[T], 0, len(r.entries)+len(ext))

	if r.order == Before {
		merged = append(merged, ext...)
		taken := make(map[string]struct{}, len(ext))
		for _, e := range ext {
			taken[e.Name] = struct{}{}
		}
		for _, e := range r.entries {
			if _, ok := taken[e.Name]; !ok {
				merged = append(merged, e)
			}
		}
		return &Registry[T]{entries: merged, order: r.order}
	}

	merged = append(merged, r.entries...)
	index := make(map[string]int, len(merged))
	for i, e := range merged {
		index[e.Name] = i
	}
	for _, e := range ext {
		if i, ok := index[e.Name]; ok {
			merged[i].Value = e.Value
			continue
		}
		index[e.Name] = len(merged)
		merged = append(merged, e)
	}
	return &Registry[T]{entries: merged, order: r.order}
}

// ExtendFunc builds the next registry from the current one. The builder
// receives the current registry and returns the complete set of entries for
// the result, in dispatch order. This allows reordering or dropping rules:
//
//	rules.ExtendFunc(func(cur *registry.Registry[stringify.Rule]) []registry.Entry[stringify.Rule] {
//	    return append([]registry.Entry[stringify.Rule]{custom}, cur.Omit("boolean").Entries()...)
//	})
func (r *Registry[T]) ExtendFunc(build func(current *Registry[T]) []Entry[T]) *Registry[T] {
	return &Registry[T]{entries: dedupe(build(r)), order: r.order}
}

func nameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
