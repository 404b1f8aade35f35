package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/gqlcanvas/pkg/errors"
	"github.com/matzehuels/gqlcanvas/pkg/graph"
)

var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(colorWhite).Background(lipgloss.Color("236"))
)

// editKind is what the input line is editing.
type editKind int

const (
	editNone editKind = iota
	editLabel
	editValue
)

// =============================================================================
// CanvasModel - interactive canvas browser
// =============================================================================

// CanvasModel browses the nodes of a canvas and applies patches to them.
// Edits go through the same node patches the API accepts.
type CanvasModel struct {
	Canvas *graph.ParsedResult
	Cursor int
	Offset int
	Height int

	// Dirty is set by any applied patch and cleared by a save.
	Dirty bool

	editing editKind
	input   []rune
	status  string
	depth   map[string]int
	save    func(*graph.ParsedResult) error
}

// NewCanvasModel creates a browser over canvas. save is called on "s".
func NewCanvasModel(canvas *graph.ParsedResult, save func(*graph.ParsedResult) error) CanvasModel {
	return CanvasModel{
		Canvas: canvas,
		Height: 15,
		depth:  nodeDepths(canvas),
		save:   save,
	}
}

// nodeDepths returns each node's distance from its tree root.
func nodeDepths(canvas *graph.ParsedResult) map[string]int {
	parent := make(map[string]string, len(canvas.Edges))
	for _, e := range canvas.Edges {
		parent[e.Target] = e.Source
	}
	depth := make(map[string]int, len(canvas.Nodes))
	for _, n := range canvas.Nodes {
		d := 0
		for id := n.ID; parent[id] != "" && d < len(canvas.Nodes); id = parent[id] {
			d++
		}
		depth[n.ID] = d
	}
	return depth
}

func (m CanvasModel) Init() tea.Cmd {
	return nil
}

func (m CanvasModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing != editNone {
			return m.updateInput(msg)
		}
		return m.updateBrowse(msg)
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-10, 5)
	}
	return m, nil
}

func (m CanvasModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
			if m.Cursor < m.Offset {
				m.Offset = m.Cursor
			}
		}
	case "down", "j":
		if m.Cursor < len(m.Canvas.Nodes)-1 {
			m.Cursor++
			if m.Cursor >= m.Offset+m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	case "r":
		if n := m.current(); n != nil {
			m.editing = editLabel
			m.input = []rune(n.Label)
		}
	case "e":
		n := m.current()
		if n == nil {
			break
		}
		if n.Kind != graph.KindVariable {
			m.status = "only variables have a value"
			break
		}
		m.editing = editValue
		m.input = []rune(string(n.Data.Value))
	case "s":
		if m.save == nil {
			break
		}
		if err := m.save(m.Canvas); err != nil {
			m.status = "save failed: " + err.Error()
			break
		}
		m.Dirty = false
		m.status = "saved"
	}
	return m, nil
}

func (m CanvasModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.editing = editNone
		m.input = nil
	case tea.KeyEnter:
		m.commit()
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
	}
	return m, nil
}

// commit turns the input line into a patch on the selected node.
func (m *CanvasModel) commit() {
	n := m.current()
	if n == nil {
		m.editing = editNone
		return
	}

	text := string(m.input)
	var p graph.Patch
	switch m.editing {
	case editLabel:
		p.Label = &text
	case editValue:
		p.Value = json.RawMessage(text)
	}

	if err := m.Canvas.ApplyPatch(n.ID, p); err != nil {
		m.status = errors.UserMessage(err)
		return
	}
	m.Dirty = true
	m.editing = editNone
	m.input = nil
	m.status = "updated " + n.ID
}

func (m CanvasModel) current() *graph.Node {
	if m.Cursor < 0 || m.Cursor >= len(m.Canvas.Nodes) {
		return nil
	}
	return &m.Canvas.Nodes[m.Cursor]
}

func (m CanvasModel) View() string {
	var b strings.Builder

	title := "Canvas"
	if m.Canvas.OperationName != nil {
		title += ": " + *m.Canvas.OperationName
	}
	if m.Dirty {
		title += " *"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  r rename  e edit value  s save  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Canvas.Nodes))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		n := m.Canvas.Nodes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		label := strings.Repeat("  ", m.depth[n.ID]) + n.Label
		if n.Kind == graph.KindVariable {
			label += " = " + string(n.Data.Value)
		}
		pos := fmt.Sprintf("%g,%g", n.Position.X, n.Position.Y)
		rows = append(rows, []string{cursor, n.ID, string(n.Kind), label, pos})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Kind", "Label", "Position").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Canvas.Nodes) {
				return lipgloss.NewStyle()
			}
			style := kindStyles[m.Canvas.Nodes[idx].Kind]
			if col == 1 || col == 4 {
				style = listDimStyle
			}
			if idx == m.Cursor {
				style = style.Bold(true)
			}
			return style
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	switch m.editing {
	case editLabel:
		b.WriteString("label: " + inputStyle.Render(string(m.input)+"█") + "\n")
	case editValue:
		b.WriteString("value: " + inputStyle.Render(string(m.input)+"█") + "\n")
	}
	if m.status != "" {
		b.WriteString(StyleHighlight.Render(m.status) + "\n")
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Canvas.Nodes))))

	return b.String()
}
