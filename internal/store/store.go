// Package store reads and writes note files inside a single folder. The folder
// is passed on every call; a Store keeps no notion of a current directory.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/Paintersrp/colecto/internal/constants"
	"github.com/Paintersrp/colecto/internal/note"
)

const filePerm = 0o644

var (
	ErrNotFound  = errors.New("note does not exist")
	ErrExists    = errors.New("a note with this name already exists")
	ErrInvalidID = note.ErrInvalidID
)

type Store struct {
	fs  afero.Fs
	log zerolog.Logger
}

// New returns a Store backed by fsys. Pass afero.NewOsFs() for the real disk.
func New(fsys afero.Fs, logger zerolog.Logger) *Store {
	return &Store{
		fs:  fsys,
		log: logger.With().Str("component", "store").Logger(),
	}
}

// List returns every note directly inside folder, most recently modified
// first. Entries that vanish or fail to read between the directory scan and
// the read are skipped.
func (s *Store) List(folder string) ([]note.Note, error) {
	entries, err := afero.ReadDir(s.fs, folder)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder %q: %w", folder, err)
	}

	notes := make([]note.Note, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !note.HasNoteExt(entry.Name()) {
			continue
		}

		path := filepath.Join(folder, entry.Name())
		content, err := afero.ReadFile(s.fs, path)
		if err != nil {
			s.log.Warn().Err(err).Str("path", path).Msg("skipping unreadable note")
			continue
		}

		info, err := s.fs.Stat(path)
		if err != nil {
			s.log.Warn().Err(err).Str("path", path).Msg("skipping note without stat")
			continue
		}

		notes = append(notes, note.Note{
			ID:       entry.Name(),
			Content:  string(content),
			Modified: info.ModTime(),
		})
	}

	sortByModified(notes)
	return notes, nil
}

func sortByModified(notes []note.Note) {
	sort.Slice(notes, func(i, j int) bool {
		if notes[i].Modified.Equal(notes[j].Modified) {
			return notes[i].ID < notes[j].ID
		}
		return notes[i].Modified.After(notes[j].Modified)
	})
}

// Read loads a single note. The extension is appended when missing.
func (s *Store) Read(folder, id string) (note.Note, error) {
	if err := note.ValidateName(id); err != nil {
		return note.Note{}, err
	}

	id = note.NormalizeID(id)
	path := filepath.Join(folder, id)

	info, err := s.fs.Stat(path)
	if err != nil {
		return note.Note{}, notFound(err, id)
	}
	if info.IsDir() {
		return note.Note{}, fmt.Errorf("%w: %s is a directory", ErrNotFound, id)
	}

	content, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return note.Note{}, notFound(err, id)
	}

	return note.Note{ID: id, Content: string(content), Modified: info.ModTime()}, nil
}

// Save overwrites the note file with content, creating it when absent. The
// extension is appended to id when the caller omitted it.
func (s *Store) Save(folder, id, content string) error {
	if err := note.ValidateName(id); err != nil {
		return err
	}

	path := filepath.Join(folder, note.NormalizeID(id))
	if err := afero.WriteFile(s.fs, path, []byte(content), filePerm); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}

	return nil
}

// Create materializes an empty note named "Untitled Note <n>.md" and returns
// its id. The starting n is one past the number of entries already carrying
// the prefix; taken names are skipped.
func (s *Store) Create(folder string) (string, error) {
	entries, err := afero.ReadDir(s.fs, folder)
	if err != nil {
		return "", fmt.Errorf("failed to read folder %q: %w", folder, err)
	}

	taken := make(map[string]struct{}, len(entries))
	untitled := 0
	for _, entry := range entries {
		taken[entry.Name()] = struct{}{}
		if strings.HasPrefix(entry.Name(), constants.UntitledPrefix) {
			untitled++
		}
	}

	counter := untitled + 1
	for {
		id := note.UntitledID(counter)
		if _, exists := taken[id]; exists {
			counter++
			continue
		}

		path := filepath.Join(folder, id)
		f, err := s.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
		if errors.Is(err, fs.ErrExist) {
			// Appeared after the scan.
			taken[id] = struct{}{}
			counter++
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to create %q: %w", path, err)
		}

		if err := f.Close(); err != nil {
			return "", fmt.Errorf("failed to close %q: %w", path, err)
		}

		return id, nil
	}
}

// Delete removes the file named id.
func (s *Store) Delete(folder, id string) error {
	if err := note.ValidateName(id); err != nil {
		return err
	}

	path := filepath.Join(folder, id)
	info, err := s.fs.Stat(path)
	if err != nil {
		return notFound(err, id)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrNotFound, id)
	}

	if err := s.fs.Remove(path); err != nil {
		return notFound(err, id)
	}

	return nil
}

// Rename moves id to newTitle plus the note extension and returns the new id.
// Renaming a note to its current title is a no-op. The existence check and the
// move are separate steps; a file created in between is overwritten.
func (s *Store) Rename(folder, id, newTitle string) (string, error) {
	if err := note.ValidateName(id); err != nil {
		return "", err
	}
	if err := note.ValidateName(newTitle); err != nil {
		return "", err
	}

	newID := note.IDFromTitle(newTitle)
	oldPath := filepath.Join(folder, id)
	newPath := filepath.Join(folder, newID)

	oldInfo, err := s.fs.Stat(oldPath)
	if err != nil {
		return "", notFound(err, id)
	}

	if newID == id {
		return id, nil
	}

	newInfo, err := s.fs.Stat(newPath)
	switch {
	case err == nil:
		// Case-insensitive file systems report the source under the new name.
		if !os.SameFile(oldInfo, newInfo) {
			return "", fmt.Errorf("%w: %s", ErrExists, newID)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("failed to check %q: %w", newPath, err)
	}

	if err := s.fs.Rename(oldPath, newPath); err != nil {
		return "", fmt.Errorf("failed to rename %q to %q: %w", id, newID, err)
	}

	return newID, nil
}

func notFound(err error, id string) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return fmt.Errorf("failed to access %q: %w", id, err)
}
