package rm

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/Paintersrp/colecto/internal/config"
	"github.com/Paintersrp/colecto/internal/state"
)

func newTestState(t *testing.T, names ...string) (*state.State, afero.Fs) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	fsys := afero.NewMemMapFs()
	for _, name := range names {
		if err := afero.WriteFile(fsys, "/notes/"+name, []byte(name), 0o644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}
	return state.New(&config.Config{Folder: "/notes"}, t.TempDir(), fsys, zerolog.Nop()), fsys
}

func TestRmCommandRequiresArgument(t *testing.T) {
	s, _ := newTestState(t)
	cmd := NewCmdRm(s)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SilenceUsage = true

	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected an error when no title is provided")
	}
}

func TestRmWithYesDeletesAll(t *testing.T) {
	s, fsys := newTestState(t, "a.md", "b.md", "c.md")

	orig := confirm
	confirm = func(string) (bool, error) {
		t.Fatalf("--yes must not prompt")
		return false, nil
	}
	t.Cleanup(func() { confirm = orig })

	cmd := NewCmdRm(s)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"a", "b.md", "--yes"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("rm returned error: %v", err)
	}

	for name, want := range map[string]bool{"a.md": false, "b.md": false, "c.md": true} {
		if ok, _ := afero.Exists(fsys, "/notes/"+name); ok != want {
			t.Fatalf("%s exists = %v, want %v", name, ok, want)
		}
	}
}

func TestRmDeclinedKeepsNotes(t *testing.T) {
	s, fsys := newTestState(t, "a.md")

	orig := confirm
	var question string
	confirm = func(q string) (bool, error) {
		question = q
		return false, nil
	}
	t.Cleanup(func() { confirm = orig })

	cmd := NewCmdRm(s)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"a"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("rm returned error: %v", err)
	}

	if question != "Delete 1 note(s)?" {
		t.Fatalf("unexpected prompt %q", question)
	}
	if ok, _ := afero.Exists(fsys, "/notes/a.md"); !ok {
		t.Fatalf("declined delete must keep the note")
	}
}

func TestRmMissingNoteFails(t *testing.T) {
	s, _ := newTestState(t, "a.md")

	cmd := NewCmdRm(s)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SilenceUsage = true
	cmd.SetArgs([]string{"a", "ghost", "--yes"})

	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected an error for the missing note")
	}
}
