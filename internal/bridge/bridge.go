// Package bridge is the request/response boundary between the presentation
// layers (TUI, CLI, HTTP) and the note store. No call returns a Go error:
// failures come back as result values and are logged for the operator.
//
// Callers must re-list after every mutating call to observe the new state.
package bridge

import (
	"errors"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/Paintersrp/colecto/internal/note"
	"github.com/Paintersrp/colecto/internal/store"
)

// ErrCancelled is returned by a FolderPrompter when the user backs out.
var ErrCancelled = errors.New("folder selection cancelled")

// Messages carried in the Error field of failed results.
const (
	MsgExists   = "A note with this name already exists"
	MsgNotFound = "The note no longer exists"
)

// FolderPrompter asks the user for a folder.
type FolderPrompter interface {
	PromptFolder() (string, error)
}

// Result reports the outcome of Save and Delete.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type CreateResult struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Error   string `json:"error,omitempty"`
}

type RenameResult struct {
	Success bool   `json:"success"`
	NewID   string `json:"newId,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Notes is the subset of the store the bridge depends on.
type Notes interface {
	List(folder string) ([]note.Note, error)
	Read(folder, id string) (note.Note, error)
	Save(folder, id, content string) error
	Create(folder string) (string, error)
	Delete(folder, id string) error
	Rename(folder, id, newTitle string) (string, error)
}

type Bridge struct {
	notes Notes
	log   zerolog.Logger
}

func New(notes Notes, logger zerolog.Logger) *Bridge {
	return &Bridge{
		notes: notes,
		log:   logger.With().Str("component", "bridge").Logger(),
	}
}

// SelectFolder asks p for a folder and returns its absolute path. The second
// value is false when the user cancelled or picked something unusable.
func (b *Bridge) SelectFolder(p FolderPrompter) (string, bool) {
	path, err := p.PromptFolder()
	if err != nil {
		if !errors.Is(err, ErrCancelled) {
			b.log.Error().Err(err).Str("op", "select-folder").Msg("folder prompt failed")
		}
		return "", false
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		b.log.Error().Err(err).Str("op", "select-folder").Str("folder", path).Msg("cannot resolve folder")
		return "", false
	}

	return abs, true
}

// GetNotes lists folder. An unreadable folder yields an empty list, which
// callers cannot tell apart from a folder without notes.
func (b *Bridge) GetNotes(folder string) []note.Note {
	notes, err := b.notes.List(folder)
	if err != nil {
		b.log.Error().Err(err).Str("op", "get-notes").Str("folder", folder).Msg("error reading notes")
		return []note.Note{}
	}
	return notes
}

// GetNote reads a single note.
func (b *Bridge) GetNote(folder, id string) (note.Note, error) {
	n, err := b.notes.Read(folder, id)
	if err != nil {
		b.log.Debug().Err(err).Str("op", "get-note").Str("folder", folder).Str("id", id).Msg("error reading note")
	}
	return n, err
}

func (b *Bridge) SaveNote(folder, id, content string) Result {
	if err := b.notes.Save(folder, id, content); err != nil {
		b.log.Error().Err(err).Str("op", "save-note").Str("folder", folder).Str("id", id).Msg("error saving note")
		return Result{Error: describe(err)}
	}

	b.log.Debug().Str("op", "save-note").Str("id", id).Int("bytes", len(content)).Msg("note saved")
	return Result{Success: true}
}

func (b *Bridge) CreateNote(folder string) CreateResult {
	id, err := b.notes.Create(folder)
	if err != nil {
		b.log.Error().Err(err).Str("op", "create-note").Str("folder", folder).Msg("error creating note")
		return CreateResult{Error: describe(err)}
	}

	b.log.Info().Str("op", "create-note").Str("id", id).Msg("note created")
	return CreateResult{Success: true, ID: id}
}

func (b *Bridge) DeleteNote(folder, id string) Result {
	if err := b.notes.Delete(folder, id); err != nil {
		b.log.Error().Err(err).Str("op", "delete-note").Str("folder", folder).Str("id", id).Msg("error deleting note")
		return Result{Error: describe(err)}
	}

	b.log.Info().Str("op", "delete-note").Str("id", id).Msg("note deleted")
	return Result{Success: true}
}

func (b *Bridge) RenameNote(folder, id, newTitle string) RenameResult {
	newID, err := b.notes.Rename(folder, id, newTitle)
	if err != nil {
		b.log.Error().Err(err).Str("op", "rename-note").Str("folder", folder).Str("id", id).Str("title", newTitle).Msg("error renaming note")
		return RenameResult{Error: describe(err)}
	}

	b.log.Info().Str("op", "rename-note").Str("id", id).Str("new_id", newID).Msg("note renamed")
	return RenameResult{Success: true, NewID: newID}
}

// describe turns store errors into messages fit for the user.
func describe(err error) string {
	switch {
	case errors.Is(err, store.ErrExists):
		return MsgExists
	case errors.Is(err, store.ErrNotFound):
		return MsgNotFound
	default:
		return err.Error()
	}
}
