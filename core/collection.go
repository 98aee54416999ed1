// Collection: an ordered, keyed set of repeated Items within one
// category (atom sites, background points, linked phases). Keys are the
// items' resolved entry names; re-adding a key replaces in place, and the
// key index is rebuilt lazily so an external rename of an item is picked
// up on the first lookup after it.
package core

// Collection is the base of every repeatable category container. Zero
// value is not usable; construct with NewCollection.
type Collection struct {
	code    string
	parent  Node
	entries []Entry
	index   map[string]int // lazy; nil means rebuild on next lookup
}

// NewCollection creates a collection base for the given category code.
func NewCollection(code string) Collection {
	return Collection{code: code}
}

// Add inserts e keyed by its resolved entry name, replacing any existing
// entry with the same key in place (last write wins, position preserved),
// and takes ownership of e.
func (c *Collection) Add(e Entry) {
	key := e.EntryName()
	if i, ok := c.lookup(key); ok {
		c.entries[i].setParent(nil)
		c.entries[i] = e
	} else {
		c.entries = append(c.entries, e)
	}
	e.setParent(c)
	c.index = nil
}

// Get returns the entry stored under key. The index cache is rebuilt on
// miss, so a lookup by an item's new name succeeds after a rename at the
// cost of one O(n) rebuild.
func (c *Collection) Get(key string) (Entry, bool) {
	i, ok := c.lookup(key)
	if !ok {
		return nil, false
	}

	return c.entries[i], true
}

// Delete unlinks the entry's parent pointer before removal, so weak
// references held elsewhere resolve to "not found" rather than to a stale
// but live object.
func (c *Collection) Delete(key string) bool {
	i, ok := c.lookup(key)
	if !ok {
		return false
	}
	c.entries[i].setParent(nil)
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	c.index = nil

	return true
}

// lookup resolves key to a position, rebuilding the index when it is
// stale (nil, or the cached position no longer carries the key).
func (c *Collection) lookup(key string) (int, bool) {
	if key == "" {
		return 0, false
	}
	if c.index != nil {
		if i, ok := c.index[key]; ok && i < len(c.entries) && c.entries[i].EntryName() == key {
			return i, true
		}
	}
	// Rebuild once and retry: entry names may have changed externally.
	c.index = make(map[string]int, len(c.entries))
	for i, e := range c.entries {
		c.index[e.EntryName()] = i
	}
	i, ok := c.index[key]

	return i, ok
}

// Len returns the number of stored entries.
func (c *Collection) Len() int { return len(c.entries) }

// Entries lists the stored entries in insertion order.
func (c *Collection) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)

	return out
}

// Parameters flattens every entry's parameters in insertion order.
func (c *Collection) Parameters() []*Parameter {
	var out []*Parameter
	for _, e := range c.entries {
		out = append(out, e.Parameters()...)
	}

	return out
}

// Parent returns the owning datablock, or nil when detached.
func (c *Collection) Parent() Node { return c.parent }

// DatablockName: collections never declare the datablock segment.
func (c *Collection) DatablockName() string { return "" }

// CategoryCode returns the collection's category code.
func (c *Collection) CategoryCode() string { return c.code }

// CategoryEntryName: the collection itself has no row key.
func (c *Collection) CategoryEntryName() string { return "" }

func (c *Collection) setParent(p Node) { c.parent = p }
