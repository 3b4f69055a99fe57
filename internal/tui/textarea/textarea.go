package textarea

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	focusedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCC"))

	cursorLineStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#224"))
)

// Model is a markdown buffer with no character or line limit.
type Model struct {
	area textarea.Model
}

func New(width, height int) *Model {
	ti := textarea.New()
	ti.Placeholder = "..."
	ti.CharLimit = 0
	ti.MaxHeight = 0
	ti.ShowLineNumbers = false
	ti.FocusedStyle.Text = focusedStyle
	ti.FocusedStyle.CursorLine = cursorLineStyle

	m := &Model{area: ti}
	m.SetSize(width, height)
	return m
}

func (m *Model) SetSize(width, height int) {
	if width > 0 {
		m.area.SetWidth(width)
	}
	if height > 0 {
		m.area.SetHeight(height)
	}
}

func (m *Model) Focus() tea.Cmd {
	return m.area.Focus()
}

func (m *Model) Blur() tea.Cmd {
	m.area.Blur()
	return nil
}

func (m *Model) Focused() bool {
	return m.area.Focused()
}

func (m *Model) SetValue(content string) {
	m.area.SetValue(content)
}

func (m *Model) Value() string {
	return m.area.Value()
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.area, cmd = m.area.Update(msg)
	return cmd
}

func (m *Model) View() string {
	return m.area.View()
}
