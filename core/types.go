// Package core types: identity chain interfaces, container element
// interfaces, and sentinel errors shared across the value model.
package core

import "errors"

// Sentinel errors for core container operations.
var (
	// ErrEmptyName indicates an attribute or datablock was given an empty name.
	ErrEmptyName = errors.New("core: name is empty")

	// ErrEntryNotFound indicates a collection lookup referenced a missing entry key.
	ErrEntryNotFound = errors.New("core: entry not found")

	// ErrBlockNotFound indicates a datablock lookup referenced a missing block name.
	ErrBlockNotFound = errors.New("core: datablock not found")
)

// Node is one link of the ownership chain used to resolve hierarchical
// identity. Each method reports only the segment the node itself declares;
// the empty string means "not declared here, defer to the parent". The
// walk itself lives in identity.go and is cycle-safe.
type Node interface {
	// Parent returns the owning node, or nil at the root.
	Parent() Node

	// DatablockName is the datablock segment declared at this node, if any.
	DatablockName() string

	// CategoryCode is the category segment declared at this node, if any.
	CategoryCode() string

	// CategoryEntryName is the row-key segment declared at this node, if any.
	CategoryEntryName() string
}

// Value is the shared surface of Descriptor and Parameter: an identified,
// validated scalar attribute owned by exactly one Item.
type Value interface {
	Node

	// Name is the attribute key (e.g. "length_a").
	Name() string

	// UID is the opaque per-instance token used as the optimizer-facing
	// identifier. Stable across renames, unique per construction.
	UID() string

	// UniqueName resolves the dotted hierarchical name
	// datablock.category.entry.attribute, omitting unresolved segments.
	UniqueName() string

	// Units reports the physical units, if any.
	Units() string

	// Description reports the human-readable description, if any.
	Description() string

	setParent(Node)
}

// Entry is what a Collection stores: an Item (or a type embedding one)
// keyed by its resolved entry name.
type Entry interface {
	Node

	// EntryName is the current row key (e.g. atom label). A rename is
	// picked up lazily by the collection's index.
	EntryName() string

	// Parameters lists the entry's numeric parameters in declaration order.
	Parameters() []*Parameter

	// Values lists all attributes (descriptors and parameters) in
	// declaration order.
	Values() []Value

	setParent(Node)
}

// Category is what a Datablock aggregates: either a single Item or a
// Collection of repeated Items.
type Category interface {
	Node

	// Parameters lists the category's numeric parameters, flattened
	// through collection entries, in declaration/insertion order.
	Parameters() []*Parameter

	setParent(Node)
}

// Block is what a Blocks set stores: one datablock (sample model or
// experiment) addressable by name.
type Block interface {
	Node

	// Name is the datablock entry key.
	Name() string

	// Parameters flattens every contained category in insertion order.
	Parameters() []*Parameter
}
