package show

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Paintersrp/colecto/internal/parser"
	"github.com/Paintersrp/colecto/internal/state"
	cmdpkg "github.com/Paintersrp/colecto/pkg/cmd"
	"github.com/Paintersrp/colecto/pkg/shared/arg"
)

const defaultWidth = 80

func NewCmdShow(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "show [title]",
		Aliases: []string{"cat"},
		Short:   "Print a note.",
		Long: heredoc.Doc(`
			Prints a note rendered as markdown for the terminal.
			Use --raw for the file contents as stored.

			  colecto show Groceries
			  colecto show "Untitled Note 1.md" --raw
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

			n, err := s.Bridge.GetNote(folder, id)
			if err != nil {
				return err
			}

			raw, _ := cmd.Flags().GetBool("raw")
			if raw {
				_, err = fmt.Fprint(cmd.OutOrStdout(), n.Content)
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), parser.RenderMarkdown(n.Content, terminalWidth(cmd)))
			return err
		},
	}

	cmd.Flags().Bool("raw", false, "Print the stored markdown without rendering")
	return cmd
}

func terminalWidth(cmd *cobra.Command) int {
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}
