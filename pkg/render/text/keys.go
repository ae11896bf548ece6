package text

import (
	"fmt"
	"io"

	"github.com/matzehuels/arbor/pkg/tree"
)

// KeyPolicy decides whether a child collection gets key labels and how a
// key renders. Replace it with [WithKeyPolicy] to change behavior for host
// collection kinds without touching the printer.
type KeyPolicy interface {
	// ShouldPrintKeys reports whether the children of one node should be
	// labeled. Only consulted under [KeysAuto], and only for collections
	// implementing [tree.Keyed].
	ShouldPrintKeys(l tree.List) bool

	// RenderKey writes the compact textual form of a child's key.
	RenderKey(w io.Writer, key any) error
}

// KeysDecider lets a collection kind pre-empt the default policy for
// itself. Collections implementing it are labeled exactly when PrintKeys
// reports true.
type KeysDecider interface {
	PrintKeys() bool
}

type defaultPolicy struct{}

// DefaultKeyPolicy returns the built-in policy: keyed collections are
// labeled unless they are positional ([tree.Sequence]), and a collection's
// own [KeysDecider] answer wins over both rules.
func DefaultKeyPolicy() KeyPolicy {
	return defaultPolicy{}
}

func (defaultPolicy) ShouldPrintKeys(l tree.List) bool {
	if d, ok := l.(KeysDecider); ok {
		return d.PrintKeys()
	}
	if _, ok := l.(tree.Keyed); !ok {
		return false
	}
	if _, ok := l.(tree.Sequence); ok {
		return false
	}
	return true
}

// RenderKey formats keys with %v, which picks up Stringer implementations
// such as [tree.Index] coordinates.
func (defaultPolicy) RenderKey(w io.Writer, key any) error {
	_, err := fmt.Fprintf(w, "%v", key)
	return err
}
