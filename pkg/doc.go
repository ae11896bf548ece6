// Package pkg provides the core libraries for Arbor tree rendering.
//
// # Overview
//
// Arbor draws tree-shaped data as indented branch diagrams. The pkg
// directory is organized into a small set of libraries:
//
//  1. [tree] - The tree model: nodes, child collections, keys, and a
//     reflection adapter for plain Go values
//  2. [render/text] - The branch-diagram engine: glyph charsets, depth
//     truncation, key labels, display-width alignment
//  3. [render/dot] - Graphviz export (DOT, SVG, PNG)
//  4. [io] - Document loading (JSON, TOML, YAML)
//  5. [cache] - Render result caching (file, Redis, disabled)
//  6. [errors] - Structured error codes for the CLI and HTTP surfaces
//  7. [observability] - Hook points for metrics collection
//
// # Quick Start
//
// Adapt any Go value and print it:
//
//	import (
//	    "github.com/matzehuels/arbor/pkg/render/text"
//	    "github.com/matzehuels/arbor/pkg/tree"
//	)
//
//	doc := map[string]any{"servers": []any{"web", "db"}}
//	_ = text.Print(tree.Any(doc), text.WithMaxDepth(3))
//
// Load a document from disk instead:
//
//	root, err := io.Import("config.yaml")
//	out, err := text.RenderString(root, text.WithCharset(text.ASCII()))
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                # All tests
//	go test ./pkg/render/text/...    # Specific package
//
// [tree]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/tree
// [render/text]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/render/text
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/render/dot
// [io]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/io
// [cache]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/observability
package pkg
