package submodels

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	focusedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFF"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0AF"))

	cursorStyle = focusedStyle.Copy()
)

// InputModel is a single line prompt. The parent model decides what enter
// and esc mean.
type InputModel struct {
	Title string
	Input textinput.Model
}

func NewInputModel(title string) InputModel {
	t := textinput.New()
	t.Cursor.Style = cursorStyle
	t.PromptStyle = focusedStyle
	t.TextStyle = focusedStyle
	t.CharLimit = 255
	t.Focus()

	return InputModel{
		Title: title,
		Input: t,
	}
}

// Reset replaces the value and moves the cursor to the end.
func (m *InputModel) Reset(value string) tea.Cmd {
	m.Input.SetValue(value)
	m.Input.CursorEnd()
	return m.Input.Focus()
}

func (m InputModel) Value() string {
	return strings.TrimSpace(m.Input.Value())
}

func (m InputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m InputModel) Update(msg tea.Msg) (InputModel, tea.Cmd) {
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

func (m InputModel) View() string {
	var b strings.Builder
	if m.Title != "" {
		b.WriteString(titleStyle.Render(m.Title))
		b.WriteString("\n")
	}
	b.WriteString(m.Input.View())
	return b.String()
}
