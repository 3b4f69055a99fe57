package folder

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/colecto/internal/bridge"
	"github.com/Paintersrp/colecto/internal/prompt"
	"github.com/Paintersrp/colecto/internal/state"
)

func NewCmdFolder(s *state.State) *cobra.Command {
	return newCmdFolder(s, nil)
}

func newCmdFolder(s *state.State, p bridge.FolderPrompter) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folder [path]",
		Short: "Choose the notes folder.",
		Long: heredoc.Doc(`
			Sets the folder that holds your notes. Without a path you are
			asked for one. The choice is remembered for later runs.

			  colecto folder ~/notes
			  colecto folder --current
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, _ := cmd.Flags().GetBool("current")
			if current {
				folder, err := s.RequireFolder()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), folder)
				return nil
			}

			var path string
			if len(args) == 1 {
				path = prompt.ExpandHome(args[0])
			} else {
				if p == nil {
					p = prompt.FolderPrompt{Initial: s.Folder()}
				}
				selected, ok := s.Bridge.SelectFolder(p)
				if !ok {
					return fmt.Errorf("folder unchanged")
				}
				path = selected
			}

			if err := s.Config.SetFolder(path); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Notes folder set to %s\n", s.Config.Folder)
			return nil
		},
	}

	cmd.Flags().Bool("current", false, "Print the current folder and exit")
	return cmd
}
