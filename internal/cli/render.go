package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/errors"
	arborio "github.com/matzehuels/arbor/pkg/io"
	"github.com/matzehuels/arbor/pkg/observability"
	"github.com/matzehuels/arbor/pkg/render/dot"
	"github.com/matzehuels/arbor/pkg/render/text"
	"github.com/matzehuels/arbor/pkg/tree"
)

const (
	formatText = "text"
	formatDOT  = "dot"
	formatSVG  = "svg"
	formatPNG  = "png"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string // output file path; empty writes to stdout
	format  string // output format: text, dot, svg, png
	depth   int    // maximum recursion depth
	charset string // charset preset: unicode or ascii
	keys    string // key labeling: auto, on, off
	noTrunc bool   // suppress the truncation marker
	color   bool   // lipgloss styling for branches and keys (text format)
}

// renderCommand creates the render command for drawing documents.
//
// Default settings:
//   - format: text
//   - depth: 5 (the engine default)
//   - charset: unicode
//   - keys: auto (labeled for map-like children, unlabeled for sequences)
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		format:  formatText,
		depth:   text.DefaultMaxDepth,
		charset: "unicode",
		keys:    "auto",
	}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a tree document as a branch diagram",
		Long: `Render a JSON, TOML, or YAML document as a branch diagram.

Example:
  arbor render config.json
  arbor render services.yaml --depth 3 --charset ascii
  arbor render deps.toml --format svg -o deps.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runRender(ctx, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: text (default), dot, svg, png")
	cmd.Flags().IntVar(&opts.depth, "depth", opts.depth, "maximum tree depth")
	cmd.Flags().StringVar(&opts.charset, "charset", opts.charset, "branch glyphs: unicode (default), ascii")
	cmd.Flags().StringVar(&opts.keys, "keys", opts.keys, "key labels: auto (default), on, off")
	cmd.Flags().BoolVar(&opts.noTrunc, "no-truncation", false, "omit the marker where depth cuts the tree")
	cmd.Flags().BoolVar(&opts.color, "color", false, "style branches and keys (text format only)")

	return cmd
}

// runRender imports the document, renders it in the requested format, and
// writes the result to stdout or the output file.
func (c *CLI) runRender(ctx context.Context, path string, opts *renderOpts) error {
	textOpts, err := buildTextOptions(opts)
	if err != nil {
		return err
	}

	prog := newProgress(loggerFromContext(ctx))
	root, err := arborio.Import(path)
	if err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("document loaded", "path", path)

	observability.Render().OnRenderStart(ctx, opts.format)
	start := time.Now()
	out, err := renderDocument(ctx, root, opts, textOpts)
	observability.Render().OnRenderComplete(ctx, opts.format, len(out), time.Since(start), err)
	if err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "render %s as %s", path, opts.format)
	}

	if opts.output == "" {
		_, err := os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(opts.output, out, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", opts.output)
	}

	prog.done(fmt.Sprintf("Rendered %s", path))
	printSuccess("Wrote %s diagram", opts.format)
	printFile(opts.output)
	return nil
}

// renderDocument produces the diagram bytes for one format.
func renderDocument(ctx context.Context, root tree.Node, opts *renderOpts, textOpts []text.Option) ([]byte, error) {
	switch opts.format {
	case formatText:
		s, err := text.RenderString(root, textOpts...)
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	case formatDOT:
		s, err := dot.ToDOT(root, dotOptions(opts))
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	case formatSVG:
		s, err := dot.ToDOT(root, dotOptions(opts))
		if err != nil {
			return nil, err
		}
		return dot.RenderSVG(ctx, s)
	case formatPNG:
		s, err := dot.ToDOT(root, dotOptions(opts))
		if err != nil {
			return nil, err
		}
		return dot.RenderPNG(ctx, s)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be 'text', 'dot', 'svg', or 'png')", opts.format)
}

func dotOptions(opts *renderOpts) dot.Options {
	return dot.Options{
		MaxDepth: opts.depth,
		Keys:     opts.keys != "off",
	}
}

// buildTextOptions translates CLI flags into engine options, validating
// the charset and key-mode names.
func buildTextOptions(opts *renderOpts) ([]text.Option, error) {
	cs, err := text.Preset(opts.charset)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCharset, err, "invalid charset: %s (must be 'unicode' or 'ascii')", opts.charset)
	}

	mode, err := parseKeyMode(opts.keys)
	if err != nil {
		return nil, err
	}

	textOpts := []text.Option{
		text.WithMaxDepth(opts.depth),
		text.WithCharset(cs),
		text.WithKeys(mode),
	}
	if opts.noTrunc {
		textOpts = append(textOpts, text.WithoutTruncationMarker())
	}
	if opts.color {
		textOpts = append(textOpts, text.WithStyle(text.Style{
			Branch: StyleDim,
			Key:    StyleHighlight,
		}))
	}
	return textOpts, nil
}

// parseKeyMode maps the --keys flag to a key mode.
func parseKeyMode(s string) (text.KeyMode, error) {
	switch s {
	case "auto":
		return text.KeysAuto, nil
	case "on":
		return text.KeysOn, nil
	case "off":
		return text.KeysOff, nil
	}
	return text.KeysAuto, errors.New(errors.ErrCodeInvalidKeyMode, "invalid key mode: %s (must be 'auto', 'on', or 'off')", s)
}
