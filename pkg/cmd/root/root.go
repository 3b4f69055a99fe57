package root

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Paintersrp/colecto/internal/constants"
	"github.com/Paintersrp/colecto/internal/state"
	"github.com/Paintersrp/colecto/pkg/cmd/folder"
	"github.com/Paintersrp/colecto/pkg/cmd/list"
	"github.com/Paintersrp/colecto/pkg/cmd/mv"
	"github.com/Paintersrp/colecto/pkg/cmd/new"
	"github.com/Paintersrp/colecto/pkg/cmd/notes"
	"github.com/Paintersrp/colecto/pkg/cmd/open"
	"github.com/Paintersrp/colecto/pkg/cmd/rm"
	"github.com/Paintersrp/colecto/pkg/cmd/save"
	"github.com/Paintersrp/colecto/pkg/cmd/serve"
	"github.com/Paintersrp/colecto/pkg/cmd/show"
)

func NewCmdRoot(s *state.State) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:     constants.AppName,
		Short:   "Browse and edit a folder of markdown notes.",
		Version: constants.Version,
		Long: heredoc.Doc(`
			Colecto keeps plain markdown notes in a single folder.

			Running it without a subcommand opens the note browser. The
			remaining commands work on the same folder from scripts.

			  colecto folder ~/notes
			  colecto new --content "# Groceries"
			  colecto list --search milk
		`),
		SilenceUsage: true,
		RunE:         notes.NewCmdNotes(s).RunE,
	}

	cmd.PersistentFlags().
		StringP(
			"folder",
			"f",
			"",
			"Notes folder to use for this command.",
		)
	viper.BindPFlag("folder", cmd.PersistentFlags().Lookup("folder"))

	cmd.AddCommand(
		folder.NewCmdFolder(s),
		notes.NewCmdNotes(s),
		list.NewCmdList(s),
		show.NewCmdShow(s),
		new.NewCmdNew(s),
		save.NewCmdSave(s),
		rm.NewCmdRm(s),
		mv.NewCmdMv(s),
		open.NewCmdOpen(s),
		serve.NewCmdServe(s),
	)

	return cmd, nil
}
