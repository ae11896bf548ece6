// Package dot exports trees as Graphviz node-link diagrams.
//
// [ToDOT] converts a [tree.Node] to DOT text; [RenderSVG] and [RenderPNG]
// rasterize that DOT via Graphviz. Edge labels carry child keys when the
// collection exposes them, mirroring the key labeling of the text renderer.
package dot

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/arbor/pkg/render/text"
	"github.com/matzehuels/arbor/pkg/tree"
)

// Options configures DOT conversion.
type Options struct {
	// MaxDepth limits how deep the tree is walked. Zero or negative means
	// unlimited; the caller then owns cycle safety.
	MaxDepth int

	// Keys labels edges with child keys where the collection exposes them.
	Keys bool

	// Renderer formats node labels. Nil uses the default text renderer.
	Renderer text.Renderer
}

// ToDOT converts a tree to DOT format. Node ids are assigned in visit
// order (n0, n1, ...), so output is deterministic for a given tree.
func ToDOT(root tree.Node, opts Options) (string, error) {
	renderOpts := []text.Option{}
	if opts.Renderer != nil {
		renderOpts = append(renderOpts, text.WithRenderer(opts.Renderer))
	}

	var buf bytes.Buffer
	buf.WriteString("digraph tree {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")

	c := &converter{buf: &buf, opts: opts, renderOpts: renderOpts}
	if _, err := c.walk(root, 0); err != nil {
		return "", err
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

type converter struct {
	buf        *bytes.Buffer
	opts       Options
	renderOpts []text.Option
	next       int
}

// walk emits the node and its subtree, returning the node's DOT id.
func (c *converter) walk(n tree.Node, depth int) (string, error) {
	id := fmt.Sprintf("n%d", c.next)
	c.next++

	label, err := text.RenderNodeString(n, c.renderOpts...)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(c.buf, "  %s [label=%q];\n", id, label)

	children := n.Children()
	if children == nil || children.Len() == 0 {
		return id, nil
	}
	if c.opts.MaxDepth > 0 && depth >= c.opts.MaxDepth {
		return id, nil
	}

	keyed, _ := children.(tree.Keyed)
	for i := 0; i < children.Len(); i++ {
		childID, err := c.walk(children.At(i), depth+1)
		if err != nil {
			return "", err
		}
		if c.opts.Keys && keyed != nil {
			fmt.Fprintf(c.buf, "  %s -> %s [label=%q];\n", id, childID, fmt.Sprintf("%v", keyed.Key(i)))
		} else {
			fmt.Fprintf(c.buf, "  %s -> %s;\n", id, childID)
		}
	}
	return id, nil
}

// RenderSVG renders DOT text to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// RenderPNG renders DOT text to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
