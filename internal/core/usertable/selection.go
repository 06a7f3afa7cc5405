package usertable

import "sort"

// SelectionSet is the set of checked user IDs. The zero value is empty.
//
// Membership is a map lookup. Mutating methods return a new set and leave
// the receiver untouched.
type SelectionSet struct {
	ids map[string]struct{}
}

// NewSelectionSet returns a set holding ids.
func NewSelectionSet(ids ...string) SelectionSet {
	set := SelectionSet{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		set.ids[id] = struct{}{}
	}
	return set
}

// Len returns the number of selected ids.
func (s SelectionSet) Len() int {
	return len(s.ids)
}

// Has reports whether id is selected.
func (s SelectionSet) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// IDs returns the selected ids in lexical order.
func (s SelectionSet) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (s SelectionSet) with(id string) SelectionSet {
	next := make(map[string]struct{}, len(s.ids)+1)
	for existing := range s.ids {
		next[existing] = struct{}{}
	}
	next[id] = struct{}{}
	return SelectionSet{ids: next}
}

func (s SelectionSet) without(id string) SelectionSet {
	next := make(map[string]struct{}, len(s.ids))
	for existing := range s.ids {
		if existing != id {
			next[existing] = struct{}{}
		}
	}
	return SelectionSet{ids: next}
}

// retain keeps only ids accepted by keep.
func (s SelectionSet) retain(keep func(string) bool) SelectionSet {
	next := make(map[string]struct{}, len(s.ids))
	for id := range s.ids {
		if keep(id) {
			next[id] = struct{}{}
		}
	}
	return SelectionSet{ids: next}
}
