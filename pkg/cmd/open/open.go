package open

import (
	"errors"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/colecto/internal/fzf"
	"github.com/Paintersrp/colecto/internal/prompt"
	"github.com/Paintersrp/colecto/internal/state"
	"github.com/Paintersrp/colecto/internal/tui/notes"
	cmdpkg "github.com/Paintersrp/colecto/pkg/cmd"
)

var (
	pick      = func(f *fzf.FuzzyFinder, query string) (string, error) { return f.Run(query) }
	runEditor = notes.Run
)

func NewCmdOpen(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "open [query]",
		Aliases: []string{"o"},
		Short:   "Pick a note with a fuzzy finder and edit it.",
		Long: heredoc.Doc(`
			Lists the notes in the current folder in a fuzzy finder with a
			rendered preview. The chosen note opens in the editor.

			  colecto open
			  colecto open grocer
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, err := cmdpkg.EnsureFolder(s, prompt.FolderPrompt{})
			if err != nil {
				return err
			}

			var query string
			if len(args) == 1 {
				query = args[0]
			}

			finder := fzf.NewFuzzyFinder(s.Bridge.GetNotes(folder), "Select a note to open.")
			id, err := pick(finder, query)
			if errors.Is(err, fzf.ErrNoSelection) {
				return nil
			}
			if err != nil {
				return err
			}

			return runEditor(s, folder, id)
		},
	}

	return cmd
}
