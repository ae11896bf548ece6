// Package tree defines the node abstraction consumed by the arbor renderers.
//
// A [Node] is any value that exposes a payload and an ordered collection of
// children. The renderers never inspect node payloads beyond formatting them,
// and never require identity tracking: a tree is whatever the host says it
// is, one [List] at a time.
//
// Child collections advertise capabilities through optional interfaces:
//
//   - [Keyed]: the collection can label each child with a key (maps, ordered
//     pairs, struct fields).
//   - [Sequence]: the collection is positional (slices, fixed tuples). These
//     technically expose integer keys, but positional keys are noise in most
//     diagrams, so renderers suppress them unless forced.
//
// Host applications add their own collection kinds by implementing [List]
// plus whichever capability interfaces apply; nothing in the render packages
// needs to change.
package tree

import (
	"fmt"
	"sort"
	"strings"
)

// Node is a single tree node. Children may return nil for leaves.
//
// Nodes are treated as immutable snapshots during a render: the renderers
// call Children once per visit and never cache across calls.
type Node interface {
	// Value returns the node's payload for display purposes.
	Value() any

	// Children returns the ordered child collection, or nil for a leaf.
	// The returned order must be deterministic; the renderers visit it
	// in a single forward pass without sorting.
	Children() List
}

// List is an ordered collection of child nodes.
type List interface {
	Len() int
	At(i int) Node
}

// Keyed is implemented by child collections that can label children.
type Keyed interface {
	List

	// Key returns the label for the i-th child.
	Key(i int) any
}

// Sequence marks positional collections (slices, arrays, tuples). Keyed
// collections that also implement Sequence default to unlabeled output.
type Sequence interface {
	List

	// Positional is a marker method; implementations do nothing.
	Positional()
}

// Labeler is implemented by nodes that prefer a short display label over
// the generic formatting of their Value. Container nodes built by [Any]
// use it to summarize themselves instead of dumping their contents.
type Labeler interface {
	Label() string
}

// Index is a structured key: an ordered tuple of integer coordinates.
// It formats as its coordinates, e.g. Index{1, 2} renders "(1, 2)".
type Index []int

func (ix Index) String() string {
	parts := make([]string, len(ix))
	for i, c := range ix {
		parts[i] = fmt.Sprintf("%d", c)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Slice is a positional child collection. It exposes 0-based integer keys
// so forced key labeling has something to show, but defaults to unlabeled.
type Slice []Node

func (s Slice) Len() int      { return len(s) }
func (s Slice) At(i int) Node { return s[i] }
func (s Slice) Key(i int) any { return i }
func (s Slice) Positional()   {}

// Tuple is a fixed-size positional grouping. It behaves like [Slice] for
// rendering purposes but lets hosts distinguish the kind.
type Tuple []Node

func (t Tuple) Len() int      { return len(t) }
func (t Tuple) At(i int) Node { return t[i] }
func (t Tuple) Key(i int) any { return i }
func (t Tuple) Positional()   {}

// Map is a keyed child collection in deterministic, key-sorted order.
// Build one from a Go map with [NewMap]; hand-built instances are the
// caller's responsibility to keep sorted.
type Map []Pair

func (m Map) Len() int      { return len(m) }
func (m Map) At(i int) Node { return m[i].Node }
func (m Map) Key(i int) any { return m[i].Key }

// NewMap adapts a Go map into a [Map]. Entries sort by formatted key, so
// the collection's order is stable regardless of map iteration order.
// Values that already implement [Node] are used as-is; anything else is
// adapted with [Any].
func NewMap[K comparable, V any](src map[K]V) Map {
	out := make(Map, 0, len(src))
	for k, v := range src {
		n, ok := any(v).(Node)
		if !ok {
			n = Any(v)
		}
		out = append(out, Pair{Key: k, Node: n})
	}
	sort.Slice(out, func(i, j int) bool {
		return fmt.Sprintf("%v", out[i].Key) < fmt.Sprintf("%v", out[j].Key)
	})
	return out
}

// Pair is one keyed child.
type Pair struct {
	Key  any
	Node Node
}

// Pairs is an ordered key-labeled child collection.
type Pairs []Pair

func (p Pairs) Len() int      { return len(p) }
func (p Pairs) At(i int) Node { return p[i].Node }
func (p Pairs) Key(i int) any { return p[i].Key }

// Interface conformance checks.
var (
	_ Sequence = Slice(nil)
	_ Sequence = Tuple(nil)
	_ Keyed    = Slice(nil)
	_ Keyed    = Map(nil)
	_ Keyed    = Pairs(nil)
)

type valueNode struct {
	value    any
	children List
}

func (n valueNode) Value() any     { return n.value }
func (n valueNode) Children() List { return n.children }

// New creates a node with an explicit payload and child collection.
// Children may be nil for a leaf.
func New(value any, children List) Node {
	return valueNode{value: value, children: children}
}

// Leaf creates a childless node.
func Leaf(value any) Node {
	return valueNode{value: value}
}
