// Package text renders trees as indented branch diagrams.
//
// # Overview
//
// Given any [tree.Node], the package walks it depth-first and writes one
// line per node, drawing branches with a configurable [Charset]:
//
//	list[3]
//	├─ 1
//	├─ 2
//	└─ list[2]
//	   ├─ 3
//	   └─ 4
//
// Basic usage:
//
//	err := text.Render(os.Stdout, tree.Any(doc),
//	    text.WithMaxDepth(3),
//	    text.WithCharset(text.ASCII()),
//	)
//
// # Entry points
//
//   - [Render]: write the diagram to an io.Writer
//   - [RenderString]: capture the diagram into a string
//   - [Print]: convenience wrapper for os.Stdout
//   - [RenderNodeString]: format a single node without its subtree
//
// # Options
//
//   - [WithMaxDepth]: stop descending past this depth (default 5)
//   - [WithoutTruncationMarker]: omit the marker line at the depth frontier
//   - [WithCharset]: branch glyphs ([Unicode] default, [ASCII], or custom)
//   - [WithKeys]: force or suppress key labels (default: decide per node)
//   - [WithRenderer]: replace per-node text formatting
//   - [WithKeyPolicy]: replace key-labeling decisions and key formatting
//   - [WithStyle]: lipgloss styling for branches and keys
//
// # Alignment
//
// All padding is computed in display columns, not bytes or runes, so wide
// glyphs and custom charsets stay aligned. Multi-line node text is
// re-prefixed so wrapped lines sit under their branch.
//
// # Limits
//
// The walk is a plain pre-order recursion with no cycle detection. Cyclic
// or unbounded trees are the caller's responsibility; the depth limit is
// the only guard.
package text
