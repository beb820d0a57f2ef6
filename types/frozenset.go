package types

/*
FrozenSet is an immutable set of comparable elements.

It is sealed at construction: there is no way to add or remove elements
afterwards, which is why KindOf classifies it as Immutable even though it is
backed by a map. Copies of a FrozenSet share the backing map safely because
nothing can write to it.

Elements must be comparable. Storing a non-comparable element (a slice, a
map, a function) panics at construction, the same way it would panic as a
map key.
*/
type FrozenSet struct {
	elems map[any]struct{}
}

// NewFrozenSet builds a FrozenSet from the given elements. Duplicates are
// collapsed.
func NewFrozenSet(elems ...any) FrozenSet {
	m := make(map[any]struct{}, len(elems))
	for _, e := range elems {
		m[e] = struct{}{}
	}
	return FrozenSet{elems: m}
}

// Has reports whether the set contains the element.
func (s FrozenSet) Has(elem any) bool {
	_, ok := s.elems[elem]
	return ok
}

// Len returns the number of elements in the set.
func (s FrozenSet) Len() int {
	return len(s.elems)
}

// Values returns the elements as a fresh slice. Order is unspecified.
// Mutating the returned slice does not affect the set.
func (s FrozenSet) Values() []any {
	out := make([]any, 0, len(s.elems))
	for e := range s.elems {
		out = append(out, e)
	}
	return out
}
