// Hierarchical identity resolution. A value's dotted name is assembled
// from four segments — datablock, category code, category entry,
// attribute — each resolved by walking up the ownership chain. A node
// that declares its own segment wins immediately; otherwise the walk
// defers to the parent. The walk carries a visited set: the graph is
// designed acyclic, but a malformed parent link must not hang the
// resolver.
package core

import "strings"

// segment selects which identity part a walk resolves.
type segment int

const (
	segDatablock segment = iota
	segCategory
	segEntry
)

// resolveUp walks the parent chain from n and returns the first declared
// value of the requested segment, or "" when no node declares it.
func resolveUp(n Node, seg segment) string {
	visited := make(map[Node]bool)
	for cur := n; cur != nil; cur = cur.Parent() {
		if visited[cur] {
			return ""
		}
		visited[cur] = true

		var own string
		switch seg {
		case segDatablock:
			own = cur.DatablockName()
		case segCategory:
			own = cur.CategoryCode()
		case segEntry:
			own = cur.CategoryEntryName()
		}
		if own != "" {
			return own
		}
	}

	return ""
}

// uniqueName joins the resolved segments of v with dots, omitting any
// segment that does not resolve. The result is stable enough to key
// constraint aliases, though the opaque uid is preferred for optimizer
// identifiers since dotted names mutate on rename.
func uniqueName(v Value) string {
	parts := make([]string, 0, 4)
	for _, s := range []string{
		resolveUp(v, segDatablock),
		resolveUp(v, segCategory),
		resolveUp(v, segEntry),
		v.Name(),
	} {
		if s != "" {
			parts = append(parts, s)
		}
	}

	return strings.Join(parts, ".")
}
