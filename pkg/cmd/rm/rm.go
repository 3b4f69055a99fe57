package rm

import (
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/colecto/internal/note"
	"github.com/Paintersrp/colecto/internal/prompt"
	"github.com/Paintersrp/colecto/internal/state"
	cmdpkg "github.com/Paintersrp/colecto/pkg/cmd"
)

var confirm = prompt.Confirm

func NewCmdRm(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm [title]...",
		Aliases: []string{"delete"},
		Short:   "Delete notes.",
		Long: heredoc.Doc(`
			Permanently deletes one or more notes from the current folder.
			Asks for confirmation unless --yes is given.

			  colecto rm Groceries "Untitled Note 2"
			  colecto rm Draft --yes
		`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				folder string
				ids    []string
			)
			for _, a := range args {
				f, id, err := cmdpkg.ResolveNote(s, a)
				if err != nil {
					return err
				}
				folder = f
				ids = append(ids, id)
			}

			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				ok, err := confirm(fmt.Sprintf("Delete %d note(s)?", len(ids)))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing deleted.")
					return nil
				}
			}

			var errs []error
			for _, id := range ids {
				res := s.Bridge.DeleteNote(folder, id)
				if !res.Success {
					errs = append(errs, fmt.Errorf("%s: %s", note.TitleFromID(id), res.Error))
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", note.TitleFromID(id))
			}

			return errors.Join(errs...)
		},
	}

	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
