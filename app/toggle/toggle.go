/*
Package toggle keeps track of which series of a chart are active.

A Set is the only state of an interactive chart: the drawn lines and the
checkboxes of the sidebar are both derived from it, so clicking a line
or a checkbox ends up in the same place.
*/
package toggle

import (
	"net/url"
	"sort"
	"strings"
	"sync"
)

// Set is a set of active entity codes. It is safe for concurrent use.
type Set struct {
	mu    sync.Mutex
	codes map[string]struct{}
}

// New returns a set with the given codes active.
func New(codes ...string) *Set {
	s := &Set{codes: make(map[string]struct{}, len(codes))}

	for _, c := range codes {
		if c != "" {
			s.codes[c] = struct{}{}
		}
	}

	return s
}

func (s *Set) Activate(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.codes[code] = struct{}{}
}

func (s *Set) Deactivate(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.codes, code)
}

// Toggle flips the state of the code and returns whether it is active
// afterwards.
func (s *Set) Toggle(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.codes[code]; ok {
		delete(s.codes, code)
		return false
	}

	s.codes[code] = struct{}{}

	return true
}

func (s *Set) IsActive(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.codes[code]

	return ok
}

// Codes returns the active codes, sorted.
func (s *Set) Codes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	codes := make([]string, 0, len(s.codes))
	for c := range s.codes {
		codes = append(codes, c)
	}

	sort.Strings(codes)

	return codes
}

func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.codes)
}

func (s *Set) Clone() *Set {
	return New(s.Codes()...)
}

func (s *Set) Equal(other *Set) bool {
	a, b := s.Codes(), other.Codes()
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func (s *Set) String() string {
	return strings.Join(s.Codes(), ",")
}

// Param is the name of the query parameter that carries a set.
const Param = "active"

// FromQuery returns the set carried by the query, and whether the query
// carried one at all. An empty parameter is an empty set, which is not
// the same as a missing parameter.
func FromQuery(q url.Values) (*Set, bool) {
	values, ok := q[Param]
	if !ok {
		return New(), false
	}

	var codes []string
	for _, v := range values {
		for _, c := range strings.Split(v, ",") {
			if c = strings.TrimSpace(c); c != "" {
				codes = append(codes, c)
			}
		}
	}

	return New(codes...), true
}

// Query returns the query parameters that carry the set.
func (s *Set) Query() url.Values {
	return url.Values{Param: []string{s.String()}}
}
