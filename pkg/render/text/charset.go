package text

import (
	"errors"
	"fmt"

	"github.com/mattn/go-runewidth"
)

// ErrUnknownCharset is returned by [Preset] for an unrecognized preset name.
var ErrUnknownCharset = errors.New("unknown charset preset")

// Charset bundles the glyphs used to draw branches. All fields must be
// non-empty display strings; construct custom sets with [NewCharset] or by
// deriving from a preset with [Charset.With].
type Charset struct {
	// Mid is the branch glyph for a non-last child.
	Mid string
	// Terminator is the branch glyph for the last child.
	Terminator string
	// Skip is the vertical continuation under an open branch.
	Skip string
	// Dash is the horizontal filler written after Mid or Terminator.
	Dash string
	// Trunc marks a subtree cut off by the depth limit.
	Trunc string
	// Pair separates a child's key label from its value.
	Pair string
}

// Unicode returns the default box-drawing charset.
func Unicode() Charset {
	return Charset{
		Mid:        "├",
		Terminator: "└",
		Skip:       "│",
		Dash:       "─",
		Trunc:      "⋮",
		Pair:       " ⇒ ",
	}
}

// ASCII returns a 7-bit safe charset for terminals without box-drawing
// glyph support.
func ASCII() Charset {
	return Charset{
		Mid:        "+",
		Terminator: "\\",
		Skip:       "|",
		Dash:       "--",
		Trunc:      "...",
		Pair:       " => ",
	}
}

// Preset returns a named charset. Recognized names are "unicode" and
// "ascii", case-sensitive; anything else fails with [ErrUnknownCharset].
func Preset(name string) (Charset, error) {
	switch name {
	case "unicode":
		return Unicode(), nil
	case "ascii":
		return ASCII(), nil
	}
	return Charset{}, fmt.Errorf("%w: %q", ErrUnknownCharset, name)
}

// NewCharset constructs a charset from explicit glyphs.
func NewCharset(mid, terminator, skip, dash, trunc, pair string) Charset {
	return Charset{
		Mid:        mid,
		Terminator: terminator,
		Skip:       skip,
		Dash:       dash,
		Trunc:      trunc,
		Pair:       pair,
	}
}

// Overrides selects charset fields to replace in [Charset.With]. Empty
// fields keep the base value, which is unambiguous because charset glyphs
// are never empty.
type Overrides struct {
	Mid        string
	Terminator string
	Skip       string
	Dash       string
	Trunc      string
	Pair       string
}

// With returns a copy of c with the non-empty fields of o applied.
func (c Charset) With(o Overrides) Charset {
	if o.Mid != "" {
		c.Mid = o.Mid
	}
	if o.Terminator != "" {
		c.Terminator = o.Terminator
	}
	if o.Skip != "" {
		c.Skip = o.Skip
	}
	if o.Dash != "" {
		c.Dash = o.Dash
	}
	if o.Trunc != "" {
		c.Trunc = o.Trunc
	}
	if o.Pair != "" {
		c.Pair = o.Pair
	}
	return c
}

// BranchWidth returns the display-column width of Mid plus Dash, the
// horizontal space a branch occupies before the node text. Useful for
// callers aligning adjacent output manually.
func (c Charset) BranchWidth() int {
	return runewidth.StringWidth(c.Mid + c.Dash)
}
