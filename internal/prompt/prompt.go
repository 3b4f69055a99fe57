// Package prompt holds the small interactive prompts used outside the TUI.
package prompt

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/erikgeiser/promptkit"
	"github.com/erikgeiser/promptkit/confirmation"
	"github.com/erikgeiser/promptkit/textinput"

	"github.com/Paintersrp/colecto/internal/bridge"
)

// FolderPrompt asks for a notes folder on the terminal.
type FolderPrompt struct {
	Initial string
}

func (p FolderPrompt) PromptFolder() (string, error) {
	input := textinput.New("Notes folder:")
	input.Placeholder = "~/notes"
	input.InitialValue = p.Initial
	input.Validate = ValidateFolder

	value, err := input.RunPrompt()
	if errors.Is(err, promptkit.ErrAborted) {
		return "", bridge.ErrCancelled
	}
	if err != nil {
		return "", err
	}

	return ExpandHome(strings.TrimSpace(value)), nil
}

// ValidateFolder accepts existing directories only.
func ValidateFolder(value string) error {
	path := ExpandHome(strings.TrimSpace(value))
	if path == "" {
		return fmt.Errorf("folder cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("folder does not exist")
	}
	if !info.IsDir() {
		return fmt.Errorf("not a folder")
	}

	return nil
}

// ExpandHome resolves a leading "~" to the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Confirm asks a yes/no question defaulting to no.
func Confirm(question string) (bool, error) {
	ok, err := confirmation.New(question, confirmation.No).RunPrompt()
	if errors.Is(err, promptkit.ErrAborted) {
		return false, nil
	}
	return ok, err
}
