// Package hashset is a minimal generic set.
package hashset

type Set[T comparable] map[T]struct{}

func New[T comparable](capacity int) Set[T] {
	return make(Set[T], capacity)
}

func FromSlice[T comparable](vals []T) Set[T] {
	set := New[T](len(vals))
	for _, v := range vals {
		set.Add(v)
	}
	return set
}

func (s Set[T]) Add(v T) {
	s[v] = struct{}{}
}

// AddNew inserts v and reports whether it was absent.
func (s Set[T]) AddNew(v T) bool {
	if s.Has(v) {
		return false
	}
	s[v] = struct{}{}
	return true
}

func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

func (s Set[T]) Len() int {
	return len(s)
}
