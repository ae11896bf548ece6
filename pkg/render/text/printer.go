package text

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/arbor/pkg/tree"
)

// Render writes the branch diagram for root to w.
//
// Errors from the renderer, the key policy, the node's child accessors, or
// the sink abort the traversal immediately and surface unchanged; output
// written before the failure stays in w. There is no cycle detection:
// cyclic trees recurse until the depth limit cuts them off.
func Render(w io.Writer, root tree.Node, opts ...Option) error {
	cfg := newConfig(opts)
	p := &printer{w: w, cfg: cfg}
	return p.print(root, 0, "")
}

// RenderString captures the diagram into a string. Output is deterministic
// for a given tree and options.
func RenderString(root tree.Node, opts ...Option) (string, error) {
	var sb strings.Builder
	if err := Render(&sb, root, opts...); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Print renders to os.Stdout. The sink default is resolved here, at the
// call site; [Render] always takes an explicit sink.
func Print(root tree.Node, opts ...Option) error {
	return Render(os.Stdout, root, opts...)
}

type printer struct {
	w   io.Writer
	cfg config
}

func (p *printer) write(s string) error {
	_, err := io.WriteString(p.w, s)
	return err
}

// print emits one node and recurses into its children. The branch glyphs
// for this node were already written by the caller, so the first text line
// continues the current output line; continuation lines of multi-line text
// are re-prefixed to stay aligned under the branch.
func (p *printer) print(n tree.Node, depth int, prefix string) error {
	var sb strings.Builder
	if err := p.cfg.renderer.RenderNode(&sb, n); err != nil {
		return err
	}
	for i, line := range strings.Split(sb.String(), "\n") {
		if i > 0 {
			if err := p.write(prefix); err != nil {
				return err
			}
		}
		if err := p.write(line + "\n"); err != nil {
			return err
		}
	}

	children := n.Children()
	if children == nil || children.Len() == 0 {
		return nil
	}

	cs := p.cfg.charset
	if depth >= p.cfg.maxDepth {
		if !p.cfg.truncation {
			return nil
		}
		if err := p.write(prefix + p.branch(cs.Trunc) + "\n"); err != nil {
			return err
		}
		return p.write(prefix + "\n")
	}

	keyed, _ := children.(tree.Keyed)
	printKeys := false
	if keyed != nil {
		switch p.cfg.keys {
		case KeysOn:
			printKeys = true
		case KeysOff:
			printKeys = false
		default:
			printKeys = p.cfg.policy.ShouldPrintKeys(children)
		}
	}

	count := children.Len()
	for i := 0; i < count; i++ {
		last := i == count-1

		if err := p.write(prefix); err != nil {
			return err
		}

		// The child prefix replaces the branch columns: the skip glyph
		// keeps the vertical line running past non-last children, while
		// the last child pads with spaces since nothing continues below.
		var childPrefix string
		if last {
			if err := p.write(p.branch(cs.Terminator + cs.Dash + " ")); err != nil {
				return err
			}
			childPrefix = prefix + pad(width(cs.Skip)+1+width(cs.Dash))
		} else {
			if err := p.write(p.branch(cs.Mid + cs.Dash + " ")); err != nil {
				return err
			}
			childPrefix = prefix + cs.Skip + pad(1+width(cs.Dash))
		}

		if printKeys {
			var kb strings.Builder
			if err := p.cfg.policy.RenderKey(&kb, keyed.Key(i)); err != nil {
				return err
			}
			key := kb.String()
			if err := p.write(p.key(key + cs.Pair)); err != nil {
				return err
			}
			// The subtree aligns under the child's value, not its key.
			childPrefix += pad(ansi.StringWidth(key) + width(cs.Pair))
		}

		if err := p.print(children.At(i), depth+1, childPrefix); err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) branch(s string) string {
	if !p.cfg.styled {
		return s
	}
	return p.cfg.style.Branch.Render(s)
}

func (p *printer) key(s string) string {
	if !p.cfg.styled {
		return s
	}
	return p.cfg.style.Key.Render(s)
}

// width is the display-column width of a plain glyph string.
func width(s string) int {
	return runewidth.StringWidth(s)
}

func pad(n int) string {
	return strings.Repeat(" ", n)
}
