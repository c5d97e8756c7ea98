package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lumentrace/lumen/pkg/scene"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// kindDescriptions explains each procedural scene for the picker.
var kindDescriptions = map[scene.Kind]string{
	scene.KindCover:   "random sphere field on a ground plane",
	scene.KindCornell: "enclosed box with an emissive lamp",
}

// =============================================================================
// KindListModel - Interactive scene kind selection
// =============================================================================

// KindListModel is the bubbletea model for picking a procedural scene kind.
type KindListModel struct {
	Kinds    []scene.Kind
	Cursor   int
	Selected scene.Kind
}

// NewKindListModel creates a new kind list model over all known kinds.
func NewKindListModel() KindListModel {
	return KindListModel{Kinds: scene.Kinds()}
}

func (m KindListModel) Init() tea.Cmd {
	return nil
}

func (m KindListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Kinds)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = m.Kinds[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m KindListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Scene Kind"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, k := range m.Kinds {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%-10s %s", cursor, k, listDimStyle.Render(kindDescriptions[k]))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// pickKind runs the interactive kind picker. It returns the empty kind when
// the user quits without selecting.
func pickKind() (scene.Kind, error) {
	final, err := tea.NewProgram(NewKindListModel()).Run()
	if err != nil {
		return "", err
	}
	model, ok := final.(KindListModel)
	if !ok {
		return "", nil
	}
	return model.Selected, nil
}
