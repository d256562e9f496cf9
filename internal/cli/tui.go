package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Babdus/protolanguage-v2/pkg/render/radial"
)

var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	listLeafStyle   = lipgloss.NewStyle().Foreground(colorGreen)
)

var nodeHeaders = []string{"", "Name", "Angle", "Radius", "Rotate", "Anchor", "Children"}

// NodeListModel is the bubbletea model browsing the placed nodes of a
// scene. Enter toggles the path of the link into the selected node.
type NodeListModel struct {
	Scene    radial.Scene
	Cursor   int
	Offset   int
	Height   int
	ShowPath bool

	incoming map[int]radial.LinkView
}

// NewNodeListModel creates a model over sc. Links are matched to the node
// they end at by placement.
func NewNodeListModel(sc radial.Scene) NodeListModel {
	m := NodeListModel{Scene: sc, Height: 15, incoming: make(map[int]radial.LinkView)}
	for _, lv := range sc.Links {
		for i, nv := range sc.Nodes {
			if nv.Node == lv.Link.Target {
				m.incoming[i] = lv
				break
			}
		}
	}
	return m
}

func (m NodeListModel) Init() tea.Cmd {
	return nil
}

func (m NodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
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
			if m.Cursor < len(m.Scene.Nodes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			m.ShowPath = !m.ShowPath
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-10, 5)
		if m.Cursor >= m.Offset+m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
	}
	return m, nil
}

func (m NodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Placed nodes (%s links)", m.Scene.Style)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ link path  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Scene.Nodes))
	b.WriteString(nodeTable(m.Scene.Nodes[m.Offset:end], m.Offset, m.Cursor))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Scene.Nodes))))

	if m.ShowPath {
		b.WriteString("\n\n")
		if lv, ok := m.incoming[m.Cursor]; ok {
			b.WriteString(listHeaderStyle.Render(lv.Link.Source.Name + " → " + lv.Link.Target.Name))
			b.WriteString("\n")
			b.WriteString(StyleValue.Render(lv.Path.String()))
		} else {
			b.WriteString(listDimStyle.Render("root: no incoming link"))
		}
	}
	return b.String()
}

// nodeTable renders nodes as a bordered table. offset is the index of
// nodes[0] in the full list; cursor marks the selected row, -1 for none.
func nodeTable(nodes []radial.NodeView, offset, cursor int) string {
	rows := make([][]string, 0, len(nodes))
	for i, nv := range nodes {
		mark := "  "
		if offset+i == cursor {
			mark = "▸ "
		}
		anchor := "-"
		if nv.Label.Visible {
			anchor = nv.Label.Anchor
		}
		rows = append(rows, []string{
			mark,
			nv.Node.Name,
			formatCoord(nv.Node.Angle),
			formatCoord(nv.Node.Radius),
			formatCoord(nv.Placement.Rotate),
			anchor,
			strconv.Itoa(nv.Node.ChildCount),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(nodeHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			if row >= len(nodes) {
				return lipgloss.NewStyle()
			}
			style := lipgloss.NewStyle()
			if nodes[row].Node.IsLeaf() {
				style = listLeafStyle
			}
			if offset+row == cursor {
				return style.Bold(true)
			}
			if col >= 2 {
				return style.Foreground(colorGray)
			}
			return style
		})
	return t.Render()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
