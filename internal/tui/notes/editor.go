package notes

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/colecto/internal/note"
	"github.com/Paintersrp/colecto/internal/tui/textarea"
)

type editorSession struct {
	area            *textarea.Model
	id              string
	originalContent string
	// readOnly is set when the buffer cannot hold the file byte for byte,
	// e.g. tabs or CRLF line endings. Such notes are viewed, never written.
	readOnly bool
}

func newEditorSession(width, height int) *editorSession {
	return &editorSession{area: textarea.New(width, height)}
}

func (s *editorSession) open(n note.Note) tea.Cmd {
	s.id = n.ID
	s.area.SetValue(n.Content)
	s.originalContent = s.area.Value()
	s.readOnly = s.originalContent != n.Content
	return s.area.Focus()
}

func (s *editorSession) close() {
	if s == nil {
		return
	}
	s.area.Blur()
	s.id = ""
	s.originalContent = ""
	s.readOnly = false
	s.area.SetValue("")
}

func (s *editorSession) active() bool {
	return s != nil && s.id != ""
}

// markSaved records content as the last persisted buffer. Typing that
// happened while the save was in flight still counts as a change.
func (s *editorSession) markSaved(id, content string) {
	if s == nil || s.id != id {
		return
	}
	s.originalContent = content
}

// retarget follows a rename of the open note.
func (s *editorSession) retarget(oldID, newID string) {
	if s != nil && s.id == oldID {
		s.id = newID
	}
}

func (s *editorSession) hasChanges() bool {
	if !s.active() || s.readOnly {
		return false
	}
	return s.area.Value() != s.originalContent
}

func (s *editorSession) value() string {
	if s == nil {
		return ""
	}
	return s.area.Value()
}

func (s *editorSession) setSize(width, height int) {
	if s == nil {
		return
	}
	s.area.SetSize(width, height)
}

func (s *editorSession) viewHeader() string {
	if !s.active() {
		return ""
	}
	if s.readOnly {
		return fmt.Sprintf("Viewing %s (read only)", note.TitleFromID(s.id))
	}
	header := fmt.Sprintf("Editing %s", note.TitleFromID(s.id))
	if s.hasChanges() {
		header += " *"
	}
	return header
}
