// Package render groups Arbor's output backends.
//
// # Overview
//
// Two renderers share the [tree.Node] model:
//
//   - [text]: indented branch diagrams for terminals, with configurable
//     glyph charsets, depth truncation, and key labels
//   - [dot]: Graphviz node-link export (DOT text, SVG, PNG)
//
// The text renderer is the primary surface; the dot renderer reuses its
// node formatting so labels match across formats.
//
//	out, err := text.RenderString(root, text.WithMaxDepth(3))
//
//	d, err := dot.ToDOT(root, dot.Options{Keys: true})
//	svg, err := dot.RenderSVG(ctx, d)
//
// [text]: github.com/matzehuels/arbor/pkg/render/text
// [dot]: github.com/matzehuels/arbor/pkg/render/dot
// [tree.Node]: github.com/matzehuels/arbor/pkg/tree
package render
