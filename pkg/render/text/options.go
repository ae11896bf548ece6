package text

import (
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/arbor/pkg/tree"
)

// DefaultMaxDepth is the depth past which subtrees are truncated unless
// overridden with [WithMaxDepth].
const DefaultMaxDepth = 5

// KeyMode controls key labeling for child collections.
type KeyMode int

const (
	// KeysAuto defers to the [KeyPolicy] per collection.
	KeysAuto KeyMode = iota
	// KeysOn labels every child whose collection exposes keys.
	KeysOn
	// KeysOff never labels children.
	KeysOff
)

func (m KeyMode) String() string {
	switch m {
	case KeysOn:
		return "on"
	case KeysOff:
		return "off"
	}
	return "auto"
}

// Style holds lipgloss styles applied to structural output. The zero value
// leaves everything unstyled.
type Style struct {
	// Branch styles branch glyphs (mid, terminator, dash, trunc).
	Branch lipgloss.Style
	// Key styles key labels and the pair separator.
	Key lipgloss.Style
}

// Option configures a render call.
type Option func(*config)

type config struct {
	maxDepth   int
	truncation bool
	charset    Charset
	keys       KeyMode
	renderer   Renderer
	policy     KeyPolicy
	style      Style
	styled     bool
}

func newConfig(opts []Option) config {
	cfg := config{
		maxDepth:   DefaultMaxDepth,
		truncation: true,
		charset:    Unicode(),
		keys:       KeysAuto,
		renderer:   DefaultRenderer(),
		policy:     DefaultKeyPolicy(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithMaxDepth limits recursion depth. Negative values clamp to 0, which
// truncates directly below the root.
func WithMaxDepth(d int) Option {
	return func(c *config) { c.maxDepth = max(0, d) }
}

// WithoutTruncationMarker suppresses the marker lines normally written
// where the depth limit cuts off a subtree.
func WithoutTruncationMarker() Option {
	return func(c *config) { c.truncation = false }
}

// WithCharset selects the branch glyphs.
func WithCharset(cs Charset) Option {
	return func(c *config) { c.charset = cs }
}

// WithKeys forces or suppresses key labels regardless of collection kind.
// Collections without key support always print unlabeled, even under
// [KeysOn].
func WithKeys(m KeyMode) Option {
	return func(c *config) { c.keys = m }
}

// WithRenderer replaces the per-node text formatting.
func WithRenderer(r Renderer) Option {
	return func(c *config) { c.renderer = r }
}

// WithRenderFunc is shorthand for WithRenderer(RenderFunc(fn)).
func WithRenderFunc(fn func(w io.Writer, n tree.Node) error) Option {
	return func(c *config) { c.renderer = RenderFunc(fn) }
}

// WithKeyPolicy replaces key-labeling decisions and key formatting.
func WithKeyPolicy(p KeyPolicy) Option {
	return func(c *config) { c.policy = p }
}

// WithStyle applies lipgloss styling to branch glyphs and key labels.
// Node text styling belongs to the renderer.
func WithStyle(s Style) Option {
	return func(c *config) {
		c.style = s
		c.styled = true
	}
}
