package cmd

import (
	"fmt"
	"strings"

	"github.com/Paintersrp/colecto/internal/bridge"
	"github.com/Paintersrp/colecto/internal/note"
	"github.com/Paintersrp/colecto/internal/state"
)

// ResolveNote maps a title or id argument to a note id in the active folder.
// The note does not have to exist yet.
func ResolveNote(s *state.State, arg string) (string, string, error) {
	if s == nil || s.Config == nil {
		return "", "", fmt.Errorf("state configuration is not initialized")
	}

	folder, err := s.RequireFolder()
	if err != nil {
		return "", "", err
	}

	id := note.NormalizeID(strings.TrimSpace(arg))
	if err := note.ValidateName(note.TitleFromID(id)); err != nil {
		return "", "", err
	}

	return folder, id, nil
}

// EnsureFolder returns the active folder, asking p for one when none has
// been chosen yet. A newly picked folder is saved as the default.
func EnsureFolder(s *state.State, p bridge.FolderPrompter) (string, error) {
	if folder := s.Folder(); folder != "" {
		return folder, nil
	}

	folder, ok := s.Bridge.SelectFolder(p)
	if !ok {
		return "", fmt.Errorf("no notes folder selected")
	}
	if err := s.Config.SetFolder(folder); err != nil {
		return "", err
	}

	return folder, nil
}
