package mv

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/colecto/internal/note"
	"github.com/Paintersrp/colecto/internal/state"
	cmdpkg "github.com/Paintersrp/colecto/pkg/cmd"
	"github.com/Paintersrp/colecto/pkg/shared/arg"
)

func NewCmdMv(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mv [title] [new title]",
		Aliases: []string{"rename"},
		Short:   "Rename a note.",
		Long: heredoc.Doc(`
			Renames a note. Fails without changes when another note
			already uses the new title.

			  colecto mv "Untitled Note 1" Groceries
		`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, id, err := cmdpkg.ResolveNote(s, args[0])
			if err != nil {
				return err
			}
			title, err := arg.HandleTitle(args, 1)
			if err != nil {
				return err
			}

			res := s.Bridge.RenameNote(folder, id, note.TitleFromID(title))
			if !res.Success {
				return fmt.Errorf("failed to rename %s: %s", note.TitleFromID(id), res.Error)
			}

			fmt.Fprintf(
				cmd.OutOrStdout(),
				"Renamed %s to %s\n",
				note.TitleFromID(id),
				note.TitleFromID(res.NewID),
			)
			return nil
		},
	}

	return cmd
}
