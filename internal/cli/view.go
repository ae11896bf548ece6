package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	arborio "github.com/matzehuels/arbor/pkg/io"
	"github.com/matzehuels/arbor/pkg/render/text"
	"github.com/matzehuels/arbor/pkg/tree"
)

// viewCommand creates the view command for interactive browsing.
func (c *CLI) viewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <file>",
		Short: "Browse a tree document interactively",
		Long: `Open a document in an interactive terminal browser.

Keys:
  up/k, down/j   move the cursor
  enter/space    expand or collapse the selected node
  q              quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := arborio.Import(args[0])
			if err != nil {
				return err
			}
			m, err := newViewModel(args[0], root)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
	return cmd
}

// viewNode shadows one tree node with browsing state. Children load on
// first expansion so large or lazy trees stay cheap to open.
type viewNode struct {
	node     tree.Node
	label    string
	key      string // key label, empty for unlabeled children
	depth    int
	expanded bool
	loaded   bool
	children []*viewNode
}

func newViewNode(n tree.Node, key string, depth int) (*viewNode, error) {
	label, err := text.RenderNodeString(n)
	if err != nil {
		return nil, err
	}
	// Only the first line fits a browser row.
	if i := strings.IndexByte(label, '\n'); i >= 0 {
		label = label[:i] + "…"
	}
	return &viewNode{node: n, label: label, key: key, depth: depth}, nil
}

// load materializes the children once.
func (v *viewNode) load() error {
	if v.loaded {
		return nil
	}
	v.loaded = true

	children := v.node.Children()
	if children == nil || children.Len() == 0 {
		return nil
	}

	keyed, _ := children.(tree.Keyed)
	labelKeys := text.DefaultKeyPolicy().ShouldPrintKeys(children)
	for i := 0; i < children.Len(); i++ {
		key := ""
		if labelKeys && keyed != nil {
			key = fmt.Sprintf("%v", keyed.Key(i))
		}
		child, err := newViewNode(children.At(i), key, v.depth+1)
		if err != nil {
			return err
		}
		v.children = append(v.children, child)
	}
	return nil
}

func (v *viewNode) hasChildren() bool {
	if !v.loaded {
		children := v.node.Children()
		return children != nil && children.Len() > 0
	}
	return len(v.children) > 0
}

// viewModel is the bubbletea model for the browser.
type viewModel struct {
	path   string
	root   *viewNode
	rows   []*viewNode
	cursor int
	offset int
	height int
	width  int
}

func newViewModel(path string, root tree.Node) (*viewModel, error) {
	vn, err := newViewNode(root, "", 0)
	if err != nil {
		return nil, err
	}
	if err := vn.load(); err != nil {
		return nil, err
	}
	vn.expanded = true

	m := &viewModel{path: path, root: vn, height: 24, width: 80}
	m.reflow()
	return m, nil
}

// reflow rebuilds the visible rows from the expansion state.
func (m *viewModel) reflow() {
	m.rows = m.rows[:0]
	var walk func(v *viewNode)
	walk = func(v *viewNode) {
		m.rows = append(m.rows, v)
		if !v.expanded {
			return
		}
		for _, c := range v.children {
			walk(c)
		}
	}
	walk(m.root)

	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
}

func (m *viewModel) Init() tea.Cmd { return nil }

func (m *viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case "enter", " ":
			v := m.rows[m.cursor]
			if v.expanded {
				v.expanded = false
			} else if v.hasChildren() {
				if err := v.load(); err == nil {
					v.expanded = true
				}
			}
			m.reflow()
		}
	}

	// Keep the cursor inside the visible window.
	visible := m.height - 2
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	return m, nil
}

func (m *viewModel) View() string {
	var sb strings.Builder
	sb.WriteString(StyleTitle.Render(m.path) + "\n")

	visible := m.height - 2
	end := min(len(m.rows), m.offset+visible)
	for i := m.offset; i < end; i++ {
		v := m.rows[i]

		marker := "  "
		if v.hasChildren() {
			if v.expanded {
				marker = "▾ "
			} else {
				marker = "▸ "
			}
		}

		line := strings.Repeat("  ", v.depth) + marker
		if v.key != "" {
			line += StyleDim.Render(v.key+" ⇒ ") + v.label
		} else {
			line += v.label
		}

		if i == m.cursor {
			line = StyleHighlight.Render(line)
		}
		sb.WriteString(line + "\n")
	}

	sb.WriteString(StyleDim.Render(fmt.Sprintf("%d/%d · enter expand · q quit", m.cursor+1, len(m.rows))))
	return sb.String()
}
