package gadfly

import "sort"

// -------------------------------------------------------------------------
// Float Set

// FloatSet is a set of float64 values. The tick statistics use it to
// deduplicate observed values on the all-integers code path.
type FloatSet map[float64]struct{}

func NewFloatSet() FloatSet {
	return make(FloatSet)
}

// Add adds x to s.
func (s FloatSet) Add(x float64) {
	s[x] = struct{}{}
}

// Contains reports membership of x in s.
func (s FloatSet) Contains(x float64) bool {
	_, ok := s[x]
	return ok
}

// Equals compares s to a slice t.
func (s FloatSet) Equals(t []float64) bool {
	if len(s) != len(t) {
		return false
	}
	for _, x := range t {
		if _, ok := s[x]; !ok {
			return false
		}
	}
	return true
}

// Elements returns the elements of s in ascending order.
func (s FloatSet) Elements() []float64 {
	elems := make([]float64, 0, len(s))
	for x := range s {
		elems = append(elems, x)
	}
	sort.Float64s(elems)
	return elems
}

// -------------------------------------------------------------------------
// String Set

// StringSet is a set of string values.
type StringSet map[string]struct{}

func NewStringSet() StringSet {
	return make(StringSet)
}

func NewStringSetFrom(init []string) StringSet {
	s := NewStringSet()
	for _, v := range init {
		s.Add(v)
	}
	return s
}

// Add adds x to s.
func (s StringSet) Add(x string) {
	s[x] = struct{}{}
}

// Contains reports membership of x in s.
func (s StringSet) Contains(x string) bool {
	_, ok := s[x]
	return ok
}

// Equals compares s to a slice t.
func (s StringSet) Equals(t []string) bool {
	if len(s) != len(t) {
		return false
	}
	for _, x := range t {
		if _, ok := s[x]; !ok {
			return false
		}
	}
	return true
}

// Elements returns the elements of s in ascending order.
func (s StringSet) Elements() []string {
	elems := make([]string, 0, len(s))
	for x := range s {
		elems = append(elems, x)
	}
	sort.Strings(elems)
	return elems
}
