package engine

import "github.com/tidwall/btree"

// Collection is an immutable, ordered set of element IDs.
// The zero value is an empty collection.
type Collection struct {
	ids *btree.Set[string]
}

// NewCollection creates a collection holding the given IDs
func NewCollection(ids ...string) Collection {
	set := new(btree.Set[string])
	for _, id := range ids {
		set.Insert(id)
	}
	return Collection{ids: set}
}

// Len returns the number of elements
func (c Collection) Len() int {
	if c.ids == nil {
		return 0
	}
	return c.ids.Len()
}

// Empty reports whether the collection has no elements
func (c Collection) Empty() bool {
	return c.Len() == 0
}

// Contains reports whether id is in the collection
func (c Collection) Contains(id string) bool {
	if c.ids == nil {
		return false
	}
	return c.ids.Contains(id)
}

// IDs returns the element IDs in ascending order
func (c Collection) IDs() []string {
	ids := make([]string, 0, c.Len())
	c.each(func(id string) {
		ids = append(ids, id)
	})
	return ids
}

// Union returns the elements in c or other
func (c Collection) Union(other Collection) Collection {
	out := NewCollection()
	c.each(out.ids.Insert)
	other.each(out.ids.Insert)
	return out
}

// Difference returns the elements in c that are not in other
func (c Collection) Difference(other Collection) Collection {
	out := NewCollection()
	c.each(func(id string) {
		if !other.Contains(id) {
			out.ids.Insert(id)
		}
	})
	return out
}

// Intersect returns the elements in both c and other
func (c Collection) Intersect(other Collection) Collection {
	out := NewCollection()
	c.each(func(id string) {
		if other.Contains(id) {
			out.ids.Insert(id)
		}
	})
	return out
}

// Equal reports whether both collections hold the same IDs
func (c Collection) Equal(other Collection) bool {
	if c.Len() != other.Len() {
		return false
	}
	equal := true
	c.each(func(id string) {
		if !other.Contains(id) {
			equal = false
		}
	})
	return equal
}

func (c Collection) each(fn func(id string)) {
	if c.ids == nil {
		return
	}
	c.ids.Scan(func(id string) bool {
		fn(id)
		return true
	})
}
