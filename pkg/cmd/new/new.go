package new

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/colecto/internal/note"
	"github.com/Paintersrp/colecto/internal/state"
	"github.com/Paintersrp/colecto/internal/tui/notes"
	"github.com/Paintersrp/colecto/pkg/shared/flags"
)

// runEditor opens the browser on the new note; tests replace it.
var runEditor = notes.Run

func NewCmdNew(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "new",
		Aliases: []string{"n"},
		Short:   "Create a new note.",
		Long: heredoc.Doc(`
			Creates a new note named "Untitled Note N" in the current folder
			and prints its title. Content can be given with --content,
			taken from the clipboard with --paste or piped in.

			  colecto new
			  colecto new --content "# Groceries"
			  pbpaste | colecto new --edit
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, s)
		},
	}

	flags.AddContent(cmd)
	flags.AddPaste(cmd)
	cmd.Flags().BoolP("edit", "e", false, "Open the new note in the browser")
	return cmd
}

func run(cmd *cobra.Command, s *state.State) error {
	folder, err := s.RequireFolder()
	if err != nil {
		return err
	}

	content, hasContent, err := flags.HandleContent(cmd)
	if err != nil {
		return err
	}

	created := s.Bridge.CreateNote(folder)
	if !created.Success {
		return fmt.Errorf("failed to create note: %s", created.Error)
	}

	if hasContent {
		if res := s.Bridge.SaveNote(folder, created.ID, content); !res.Success {
			return fmt.Errorf("created %s but failed to write content: %s", created.ID, res.Error)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), note.TitleFromID(created.ID))

	edit, _ := cmd.Flags().GetBool("edit")
	if edit {
		return runEditor(s, folder, created.ID)
	}
	return nil
}
