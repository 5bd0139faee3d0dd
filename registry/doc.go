// Package registry provides an immutable, ordered collection of named rules.
//
// A Registry holds the conversion rules used by the stringify package and the
// text transforms used by the transform package. Entry order is priority: the
// first matching conversion rule wins, and transforms run first to last.
//
// # Operations
//
// Every operation returns a new Registry and leaves the receiver untouched:
//
//	base := registry.New([]registry.Entry[int]{{Name: "a", Value: 1}, {Name: "b", Value: 2}})
//	base.Pick("a")                          // a
//	base.Omit("a")                          // b
//	base.Extend(registry.NewEntry("c", 3))  // a, b, c
//
// Unknown names passed to Pick and Omit are ignored rather than reported.
//
// # Extension Order
//
// With After (the default) existing entries keep their positions, a colliding
// name is replaced in place, and new names are appended. With Before new
// entries go first and colliding existing entries are dropped.
package registry
