package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/arbor/pkg/tree"
)

// maxValueWidth caps the display width of a single line of default-rendered
// node text. Longer lines are cut with an ellipsis; custom renderers are
// free to ignore the cap.
const maxValueWidth = 120

// Renderer converts one node's payload to display text. The text may span
// multiple lines; the printer re-prefixes continuation lines to keep them
// aligned under the node's branch.
type Renderer interface {
	RenderNode(w io.Writer, n tree.Node) error
}

// RenderFunc adapts a function to the [Renderer] interface.
type RenderFunc func(w io.Writer, n tree.Node) error

func (f RenderFunc) RenderNode(w io.Writer, n tree.Node) error { return f(w, n) }

// DefaultRenderer returns the built-in renderer: nodes implementing
// [tree.Labeler] render their label, everything else renders as a compact,
// width-limited formatting of the node's value.
func DefaultRenderer() Renderer {
	return RenderFunc(func(w io.Writer, n tree.Node) error {
		if l, ok := n.(tree.Labeler); ok {
			_, err := io.WriteString(w, clipLines(l.Label()))
			return err
		}
		_, err := io.WriteString(w, clipLines(fmt.Sprintf("%v", n.Value())))
		return err
	})
}

// clipLines truncates each line to maxValueWidth display columns.
func clipLines(s string) string {
	if runewidth.StringWidth(s) <= maxValueWidth && !strings.Contains(s, "\n") {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = runewidth.Truncate(line, maxValueWidth, "…")
	}
	return strings.Join(lines, "\n")
}

// RenderNodeString formats a single node, without its subtree, using the
// renderer from opts (the default renderer when none is given).
func RenderNodeString(n tree.Node, opts ...Option) (string, error) {
	cfg := newConfig(opts)
	var sb strings.Builder
	if err := cfg.renderer.RenderNode(&sb, n); err != nil {
		return "", err
	}
	return sb.String(), nil
}
