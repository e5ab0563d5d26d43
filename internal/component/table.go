package component

import "sort"

// Reference is a lazy handle to another component. It is resolved by the
// registry at lookup time.
type Reference struct {
	ID string
}

// Ref builds a Reference to id.
func Ref(id string) Reference {
	return Reference{ID: id}
}

// String returns the referenced component id.
func (r Reference) String() string {
	return r.ID
}

// Table maps a projection name to a Reference.
type Table map[string]Reference

// NewTable returns an empty, non-nil Table.
func NewTable() Table {
	return make(Table)
}

// Clone returns an independent copy of t. A nil table clones to an empty one.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Names returns the table keys in lexical order.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Equal reports whether both tables hold the same entries.
func (t Table) Equal(other Table) bool {
	if len(t) != len(other) {
		return false
	}
	for k, v := range t {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}
