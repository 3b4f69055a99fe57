package notes

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/colecto/internal/prompt"
	"github.com/Paintersrp/colecto/internal/state"
	notestui "github.com/Paintersrp/colecto/internal/tui/notes"
	cmdpkg "github.com/Paintersrp/colecto/pkg/cmd"
)

func NewCmdNotes(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notes",
		Aliases: []string{"ui"},
		Short:   "Open the note browser.",
		Long: heredoc.Doc(`
			Opens the full screen note browser on the current folder.
			Asks for a folder first when none has been chosen.

			Keys:
			  ↵ edit · n new · r rename · d delete · space select
			  y yank · s sort field · o sort order · / search
			  ctrl+s save · esc close editor · q quit
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, err := cmdpkg.EnsureFolder(s, prompt.FolderPrompt{})
			if err != nil {
				return err
			}
			return notestui.Run(s, folder, "")
		},
	}

	return cmd
}
