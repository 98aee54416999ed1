// Container tests: identity resolution through the ownership chain,
// collection keying and the lazy index, datablock flattening, and the
// fittable/free parameter queries.
package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rietgo/rietgo/core"
)

// site is a minimal repeatable category item for container tests.
type site struct {
	core.Item
	Label *core.Descriptor
	BIso  *core.Parameter
}

func newSite(label string, biso float64) *site {
	s := &site{Item: core.NewItem("atom_site")}
	s.Label = core.NewDescriptor("label", label)
	s.BIso = core.NewParameter("b_iso", biso, core.WithUnits("Å²"))
	s.Attach(s.Label, s.BIso)
	s.SetEntryFunc(func() string { return s.Label.Value() })

	return s
}

// block is a minimal datablock with one singleton item and one collection.
type block struct {
	core.Datablock
	Cell  *cellItem
	Sites *core.Collection
}

type cellItem struct {
	core.Item
	LengthA *core.Parameter
}

func newBlock(name string) *block {
	b := &block{Datablock: core.NewDatablock(name)}

	b.Cell = &cellItem{Item: core.NewItem("cell")}
	b.Cell.LengthA = core.NewParameter("length_a", 10.0)
	b.Cell.Attach(b.Cell.LengthA)
	b.AddCategory(b.Cell)

	sites := core.NewCollection("atom_site")
	b.Sites = &sites
	b.AddCategory(b.Sites)

	return b
}

// ------------------------------------------------------------------------
// 1. Identity: dotted names resolved by walking up, missing parts omitted.
// ------------------------------------------------------------------------

func TestUniqueName_FullChain(t *testing.T) {
	b := newBlock("lbco")
	s := newSite("La", 1.0)
	b.Sites.Add(s)

	require.Equal(t, "lbco.atom_site.La.b_iso", s.BIso.UniqueName())
	require.Equal(t, "lbco.cell.length_a", b.Cell.LengthA.UniqueName())
}

func TestUniqueName_DetachedValueOmitsSegments(t *testing.T) {
	p := core.NewParameter("length_a", 10.0)
	assert.Equal(t, "length_a", p.UniqueName(), "no owner: attribute name only")
}

func TestUniqueName_RenameChangesNameNotUID(t *testing.T) {
	b := newBlock("lbco")
	s := newSite("La", 1.0)
	b.Sites.Add(s)

	uid := s.BIso.UID()
	s.Label.SetValue("Ba")

	assert.Equal(t, "lbco.atom_site.Ba.b_iso", s.BIso.UniqueName())
	assert.Equal(t, uid, s.BIso.UID(), "uid must survive renames")
}

// ------------------------------------------------------------------------
// 2. Collection: replace-in-place keying, lazy index rebuild, unlink on
//    delete.
// ------------------------------------------------------------------------

func TestCollection_AddReplacesInPlace(t *testing.T) {
	b := newBlock("lbco")
	b.Sites.Add(newSite("La", 1.0))
	b.Sites.Add(newSite("Ba", 2.0))

	replacement := newSite("La", 9.0)
	b.Sites.Add(replacement)

	require.Equal(t, 2, b.Sites.Len(), "re-adding a key must not grow the collection")
	entries := b.Sites.Entries()
	assert.Equal(t, "La", entries[0].EntryName(), "replacement keeps the original position")

	got, ok := b.Sites.Get("La")
	require.True(t, ok)
	assert.Same(t, core.Entry(replacement), got)
}

func TestCollection_LazyIndexFollowsRename(t *testing.T) {
	b := newBlock("lbco")
	s := newSite("La", 1.0)
	b.Sites.Add(s)

	// Prime the index, then rename externally.
	_, ok := b.Sites.Get("La")
	require.True(t, ok)
	s.Label.SetValue("Ba")

	_, ok = b.Sites.Get("La")
	assert.False(t, ok, "old key must miss after rename")
	got, ok := b.Sites.Get("Ba")
	require.True(t, ok, "new key must hit after lazy rebuild")
	assert.Same(t, core.Entry(s), got)
}

func TestCollection_DeleteUnlinksParent(t *testing.T) {
	b := newBlock("lbco")
	s := newSite("La", 1.0)
	b.Sites.Add(s)

	require.True(t, b.Sites.Delete("La"))
	_, ok := b.Sites.Get("La")
	assert.False(t, ok)

	// Dangling weak references now resolve to a bare attribute name, not
	// to a stale ownership chain.
	assert.Equal(t, "b_iso", s.BIso.UniqueName())
}

// ------------------------------------------------------------------------
// 3. Blocks: flattening order and the fittable/free queries (P2).
// ------------------------------------------------------------------------

func TestBlocks_ParameterOrderIsDeterministic(t *testing.T) {
	b1 := newBlock("first")
	b1.Sites.Add(newSite("A", 1.0))
	b1.Sites.Add(newSite("B", 2.0))
	b2 := newBlock("second")

	bs := core.NewBlocks()
	bs.Add(b1)
	bs.Add(b2)

	var names []string
	for _, p := range bs.Parameters() {
		names = append(names, p.UniqueName())
	}
	require.Equal(t, []string{
		"first.cell.length_a",
		"first.atom_site.A.b_iso",
		"first.atom_site.B.b_iso",
		"second.cell.length_a",
	}, names, "blocks → categories → entries → attributes order")
}

func TestBlocks_ConstrainedExcludedFromFreeEvenWhenFree(t *testing.T) {
	b := newBlock("lbco")
	s := newSite("La", 1.0)
	b.Sites.Add(s)

	bs := core.NewBlocks()
	bs.Add(b)

	s.BIso.SetFree(true)
	s.BIso.SetConstrained(true)

	for _, p := range bs.FittableParameters() {
		if p == s.BIso {
			t.Fatal("constrained parameter leaked into fittable set")
		}
	}
	for _, p := range bs.FreeParameters() {
		if p == s.BIso {
			t.Fatal("constrained parameter leaked into free set")
		}
	}
}

func TestBlocks_AddReplacesByName(t *testing.T) {
	bs := core.NewBlocks()
	bs.Add(newBlock("lbco"))
	bs.Add(newBlock("lbco"))
	require.Equal(t, 1, bs.Len())
	require.Equal(t, []string{"lbco"}, bs.Names())
}
