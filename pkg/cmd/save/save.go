package save

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/colecto/internal/note"
	"github.com/Paintersrp/colecto/internal/state"
	cmdpkg "github.com/Paintersrp/colecto/pkg/cmd"
	"github.com/Paintersrp/colecto/pkg/shared/arg"
	"github.com/Paintersrp/colecto/pkg/shared/flags"
)

func NewCmdSave(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save [title]",
		Short: "Replace the content of a note.",
		Long: heredoc.Doc(`
			Overwrites a note with new content, creating it when it does
			not exist. Content comes from --content, --paste or stdin.

			  colecto save Groceries --content "- milk"
			  cat draft.md | colecto save Draft
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, err := arg.HandleTitle(args, 0)
			if err != nil {
				return err
			}
			folder, id, err := cmdpkg.ResolveNote(s, title)
			if err != nil {
				return err
			}

			content, ok, err := flags.HandleContent(cmd)
			if err != nil {
				return err
			}
			if !ok {
				_ = cmd.Help()
				return fmt.Errorf("no content given: use --content, --paste or pipe it in")
			}

			if res := s.Bridge.SaveNote(folder, id, content); !res.Success {
				return fmt.Errorf("failed to save %s: %s", note.TitleFromID(id), res.Error)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", note.TitleFromID(id))
			return nil
		},
	}

	flags.AddContent(cmd)
	flags.AddPaste(cmd)
	return cmd
}
