// Package note defines the Note record and the rules that tie a note's id to
// its file name and title.
package note

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Paintersrp/colecto/internal/constants"
)

// ErrInvalidID is returned when an id or title cannot name a file inside the
// note folder.
var ErrInvalidID = errors.New("invalid note name")

// Note is a snapshot of one note file taken at listing time.
type Note struct {
	// ID is the file name including the extension.
	ID       string    `json:"id"`
	Content  string    `json:"content"`
	Modified time.Time `json:"modified"`
}

// Title returns the id with the note extension removed.
func (n Note) Title() string {
	return TitleFromID(n.ID)
}

// MarshalJSON emits the derived title next to the stored fields.
func (n Note) MarshalJSON() ([]byte, error) {
	type wire struct {
		ID       string    `json:"id"`
		Title    string    `json:"title"`
		Content  string    `json:"content"`
		Modified time.Time `json:"modified"`
	}
	return json.Marshal(wire{
		ID:       n.ID,
		Title:    n.Title(),
		Content:  n.Content,
		Modified: n.Modified,
	})
}

// TitleFromID strips the recognized extension suffix.
func TitleFromID(id string) string {
	return strings.TrimSuffix(id, constants.NoteExt)
}

// IDFromTitle appends the recognized extension.
func IDFromTitle(title string) string {
	return title + constants.NoteExt
}

// NormalizeID appends the extension when the caller omitted it.
func NormalizeID(id string) string {
	if HasNoteExt(id) {
		return id
	}
	return IDFromTitle(id)
}

// HasNoteExt reports whether name carries the recognized extension.
func HasNoteExt(name string) bool {
	return strings.HasSuffix(name, constants.NoteExt)
}

// ValidateName rejects names that would resolve outside the folder or to the
// folder itself.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	switch {
	case trimmed == "":
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidID)
	case trimmed == "." || trimmed == "..":
		return fmt.Errorf("%w: %q", ErrInvalidID, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidID, name)
	case strings.ContainsRune(name, 0):
		return fmt.Errorf("%w: %q contains a NUL byte", ErrInvalidID, name)
	}
	return nil
}

// UntitledID returns the id for the n-th generated note name.
func UntitledID(n int) string {
	return IDFromTitle(fmt.Sprintf("%s %d", constants.UntitledPrefix, n))
}

// Matches reports whether query occurs in the title or the content,
// ignoring case. An empty query matches everything.
func (n Note) Matches(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(n.Title()), query) ||
		strings.Contains(strings.ToLower(n.Content), query)
}
