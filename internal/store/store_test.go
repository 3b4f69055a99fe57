package store

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Paintersrp/colecto/internal/note"
)

const folder = "/notes"

func newMemStore(t *testing.T) (*Store, afero.Fs) {
	t.Helper()

	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll(folder, 0o755))

	return New(fsys, zerolog.Nop()), fsys
}

func writeNote(t *testing.T, fsys afero.Fs, name, content string, modified time.Time) {
	t.Helper()

	path := filepath.Join(folder, name)
	require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0o644))
	require.NoError(t, fsys.Chtimes(path, modified, modified))
}

func ids(notes []note.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.ID
	}
	return out
}

func TestListSelectsOnlyMarkdownFiles(t *testing.T) {
	s, fsys := newMemStore(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	writeNote(t, fsys, "A.md", "alpha", base)
	writeNote(t, fsys, "todo.txt", "not a note", base)
	writeNote(t, fsys, "README", "no extension", base)
	writeNote(t, fsys, "draft.md.bak", "backup", base)
	require.NoError(t, fsys.MkdirAll(filepath.Join(folder, "folder.md"), 0o755))
	require.NoError(t, fsys.MkdirAll(filepath.Join(folder, "sub"), 0o755))
	require.NoError(t, afero.WriteFile(fsys, filepath.Join(folder, "sub", "nested.md"), []byte("x"), 0o644))

	notes, err := s.List(folder)
	require.NoError(t, err)
	assert.Equal(t, []string{"A.md"}, ids(notes))
	assert.Equal(t, "alpha", notes[0].Content)
	assert.Equal(t, "A", notes[0].Title())
}

func TestListSortsByModifiedDescending(t *testing.T) {
	s, fsys := newMemStore(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	writeNote(t, fsys, "old.md", "", base)
	writeNote(t, fsys, "newest.md", "", base.Add(2*time.Hour))
	writeNote(t, fsys, "middle.md", "", base.Add(time.Hour))
	writeNote(t, fsys, "b-tie.md", "", base)

	notes, err := s.List(folder)
	require.NoError(t, err)
	assert.Equal(t, []string{"newest.md", "middle.md", "b-tie.md", "old.md"}, ids(notes))

	for i := 1; i < len(notes); i++ {
		assert.False(t, notes[i].Modified.After(notes[i-1].Modified), "list out of order at %d", i)
	}
}

func TestListMissingFolderReturnsError(t *testing.T) {
	s, _ := newMemStore(t)

	notes, err := s.List("/does-not-exist")
	require.Error(t, err)
	assert.Empty(t, notes)
}

func TestListEmptyFolder(t *testing.T) {
	s, _ := newMemStore(t)

	notes, err := s.List(folder)
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestSaveRoundTrip(t *testing.T) {
	s, _ := newMemStore(t)

	require.NoError(t, s.Save(folder, "A.md", "hello\nworld"))
	require.NoError(t, s.Save(folder, "A.md", "hello\nworld"))

	notes, err := s.List(folder)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "A.md", notes[0].ID)
	assert.Equal(t, "hello\nworld", notes[0].Content)
}

func TestSaveAppendsExtensionAndOverwrites(t *testing.T) {
	s, fsys := newMemStore(t)
	writeNote(t, fsys, "A.md", "a much longer original body", time.Now())

	require.NoError(t, s.Save(folder, "A", "short"))

	data, err := afero.ReadFile(fsys, filepath.Join(folder, "A.md"))
	require.NoError(t, err)
	assert.Equal(t, "short", string(data))

	exists, err := afero.Exists(fsys, filepath.Join(folder, "A"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSaveRejectsInvalidIDs(t *testing.T) {
	s, _ := newMemStore(t)

	for _, id := range []string{"", "../escape.md", "sub/x.md"} {
		err := s.Save(folder, id, "x")
		assert.ErrorIs(t, err, ErrInvalidID, "id %q", id)
	}
}

func TestSaveIntoMissingFolderFails(t *testing.T) {
	s, _ := newMemStore(t)

	err := s.Save("/missing", "A.md", "x")
	require.Error(t, err)
}

func TestScenarioSaveReordersList(t *testing.T) {
	s, fsys := newMemStore(t)
	base := time.Now().Add(-time.Hour)

	writeNote(t, fsys, "A.md", "hello", base)
	writeNote(t, fsys, "B.md", "world", base.Add(time.Minute))

	notes, err := s.List(folder)
	require.NoError(t, err)
	assert.Equal(t, []string{"B.md", "A.md"}, ids(notes))

	require.NoError(t, s.Save(folder, "A.md", "updated"))

	notes, err = s.List(folder)
	require.NoError(t, err)
	assert.Equal(t, []string{"A.md", "B.md"}, ids(notes))
	assert.Equal(t, "updated", notes[0].Content)
}

func TestCreateInEmptyFolder(t *testing.T) {
	s, fsys := newMemStore(t)

	first, err := s.Create(folder)
	require.NoError(t, err)
	assert.Equal(t, "Untitled Note 1.md", first)

	second, err := s.Create(folder)
	require.NoError(t, err)
	assert.Equal(t, "Untitled Note 2.md", second)

	data, err := afero.ReadFile(fsys, filepath.Join(folder, first))
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestCreateManyYieldsDistinctSequentialIDs(t *testing.T) {
	s, _ := newMemStore(t)

	seen := make(map[string]struct{})
	for i := 1; i <= 10; i++ {
		id, err := s.Create(folder)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("Untitled Note %d.md", i), id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, 10)
}

func TestCreateSkipsTakenNamesAfterGaps(t *testing.T) {
	s, fsys := newMemStore(t)
	now := time.Now()

	// One untitled note remains but it is number 2: the count-based candidate
	// collides and must be bumped.
	writeNote(t, fsys, "Untitled Note 2.md", "", now)

	id, err := s.Create(folder)
	require.NoError(t, err)
	assert.Equal(t, "Untitled Note 3.md", id)
}

func TestCreateFillsFromCountNotFromGaps(t *testing.T) {
	s, fsys := newMemStore(t)
	now := time.Now()

	writeNote(t, fsys, "Untitled Note 1.md", "", now)
	writeNote(t, fsys, "Untitled Note 3.md", "", now)

	id, err := s.Create(folder)
	require.NoError(t, err)
	assert.Equal(t, "Untitled Note 4.md", id)
}

func TestCreateNeverOverwrites(t *testing.T) {
	s, fsys := newMemStore(t)
	now := time.Now()

	writeNote(t, fsys, "Untitled Note 1.md", "keep me", now)
	writeNote(t, fsys, "Untitled Note 2.md", "keep me too", now)
	writeNote(t, fsys, "Untitled Note.txt", "counted by prefix", now)

	id, err := s.Create(folder)
	require.NoError(t, err)
	assert.Equal(t, "Untitled Note 4.md", id)

	data, err := afero.ReadFile(fsys, filepath.Join(folder, "Untitled Note 1.md"))
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(data))
}

func TestCreateInMissingFolderFails(t *testing.T) {
	s, _ := newMemStore(t)

	_, err := s.Create("/missing")
	require.Error(t, err)
}

func TestDeleteRemovesNote(t *testing.T) {
	s, fsys := newMemStore(t)
	writeNote(t, fsys, "A.md", "x", time.Now())
	writeNote(t, fsys, "B.md", "y", time.Now())

	require.NoError(t, s.Delete(folder, "A.md"))

	notes, err := s.List(folder)
	require.NoError(t, err)
	assert.Equal(t, []string{"B.md"}, ids(notes))
}

func TestDeleteMissingNote(t *testing.T) {
	s, _ := newMemStore(t)

	err := s.Delete(folder, "ghost.md")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRefusesDirectories(t *testing.T) {
	s, fsys := newMemStore(t)
	require.NoError(t, fsys.MkdirAll(filepath.Join(folder, "dir.md"), 0o755))

	err := s.Delete(folder, "dir.md")
	assert.ErrorIs(t, err, ErrNotFound)

	exists, err := afero.DirExists(fsys, filepath.Join(folder, "dir.md"))
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRenamePreservesContent(t *testing.T) {
	s, fsys := newMemStore(t)
	writeNote(t, fsys, "A.md", "body", time.Now())

	newID, err := s.Rename(folder, "A.md", "Groceries")
	require.NoError(t, err)
	assert.Equal(t, "Groceries.md", newID)

	notes, err := s.List(folder)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Groceries.md", notes[0].ID)
	assert.Equal(t, "Groceries", notes[0].Title())
	assert.Equal(t, "body", notes[0].Content)
}

func TestRenameCollisionLeavesBothFiles(t *testing.T) {
	s, fsys := newMemStore(t)
	writeNote(t, fsys, "A.md", "first", time.Now())
	writeNote(t, fsys, "T.md", "second", time.Now())

	_, err := s.Rename(folder, "A.md", "T")
	assert.ErrorIs(t, err, ErrExists)

	a, err := afero.ReadFile(fsys, filepath.Join(folder, "A.md"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(a))

	b, err := afero.ReadFile(fsys, filepath.Join(folder, "T.md"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(b))
}

func TestRenameToOwnTitleIsNoop(t *testing.T) {
	s, fsys := newMemStore(t)
	writeNote(t, fsys, "A.md", "same", time.Now())

	newID, err := s.Rename(folder, "A.md", "A")
	require.NoError(t, err)
	assert.Equal(t, "A.md", newID)

	data, err := afero.ReadFile(fsys, filepath.Join(folder, "A.md"))
	require.NoError(t, err)
	assert.Equal(t, "same", string(data))
}

func TestRenameMissingSource(t *testing.T) {
	s, _ := newMemStore(t)

	_, err := s.Rename(folder, "ghost.md", "B")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRenameRejectsEscapingTitles(t *testing.T) {
	s, fsys := newMemStore(t)
	writeNote(t, fsys, "A.md", "x", time.Now())

	for _, title := range []string{"", "  ", "../outside", "a/b"} {
		_, err := s.Rename(folder, "A.md", title)
		assert.ErrorIs(t, err, ErrInvalidID, "title %q", title)
	}
}

func TestReadNormalizesID(t *testing.T) {
	s, fsys := newMemStore(t)
	writeNote(t, fsys, "A.md", "hello", time.Now())

	n, err := s.Read(folder, "A")
	require.NoError(t, err)
	assert.Equal(t, "A.md", n.ID)
	assert.Equal(t, "hello", n.Content)

	_, err = s.Read(folder, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreOnDisk(t *testing.T) {
	dir := t.TempDir()
	s := New(afero.NewOsFs(), zerolog.Nop())

	id, err := s.Create(dir)
	require.NoError(t, err)
	require.NoError(t, s.Save(dir, id, "on disk"))

	newID, err := s.Rename(dir, id, "Disk note")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, newID))
	require.NoError(t, err)
	assert.Equal(t, "on disk", string(data))

	require.NoError(t, s.Delete(dir, newID))

	notes, err := s.List(dir)
	require.NoError(t, err)
	assert.Empty(t, notes)
}
