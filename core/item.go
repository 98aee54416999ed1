// Item: the fixed-shape bag of values representing one physical concept
// instance. Concrete category types (Cell, AtomSite, LinkedPhase, ...)
// embed Item and attach their Descriptors/Parameters in declaration
// order; that order is significant — it fixes the minimizer's parameter
// indexing.
package core

import (
	"fmt"
	"strings"
)

// Item is the base of every category item. Zero value is not usable;
// construct with NewItem.
type Item struct {
	code      string
	entryName func() string
	parent    Node
	values    []Value
}

// NewItem creates an item base for the given category code (e.g. "cell",
// "atom_site").
func NewItem(code string) Item {
	return Item{code: code}
}

// Attach registers values in declaration order and takes ownership of
// each (the item becomes their parent).
func (it *Item) Attach(values ...Value) {
	for _, v := range values {
		v.setParent(it)
		it.values = append(it.values, v)
	}
}

// SetEntryFunc declares the row key for repeatable items. Passing a
// resolver (rather than a snapshot) lets the key follow a rename of the
// underlying descriptor, e.g. an atom label.
func (it *Item) SetEntryFunc(f func() string) { it.entryName = f }

// EntryName returns the current row key, or "" for singleton categories.
func (it *Item) EntryName() string {
	if it.entryName == nil {
		return ""
	}

	return it.entryName()
}

// Parent returns the owning container, or nil when detached.
func (it *Item) Parent() Node { return it.parent }

// DatablockName: items never declare the datablock segment themselves.
func (it *Item) DatablockName() string { return "" }

// CategoryCode returns the item's category code.
func (it *Item) CategoryCode() string { return it.code }

// CategoryEntryName returns the declared row key, if any.
func (it *Item) CategoryEntryName() string { return it.EntryName() }

func (it *Item) setParent(p Node) { it.parent = p }

// Values lists all attached attributes in declaration order.
func (it *Item) Values() []Value {
	out := make([]Value, len(it.values))
	copy(out, it.values)

	return out
}

// Parameters lists the attached numeric parameters in declaration order.
func (it *Item) Parameters() []*Parameter {
	var out []*Parameter
	for _, v := range it.values {
		if p, ok := v.(*Parameter); ok {
			out = append(out, p)
		}
	}

	return out
}

// Summary renders one plain-text line per attribute, name then value, for
// reporting sinks.
func (it *Item) Summary() string {
	var sb strings.Builder
	for _, v := range it.values {
		switch t := v.(type) {
		case *Parameter:
			fmt.Fprintf(&sb, "%s  %v\n", t.UniqueName(), t.Value())
		case *Descriptor:
			fmt.Fprintf(&sb, "%s  %s\n", t.UniqueName(), t.Value())
		}
	}

	return sb.String()
}
