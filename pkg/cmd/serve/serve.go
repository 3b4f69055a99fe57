package serve

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Paintersrp/colecto/internal/constants"
	"github.com/Paintersrp/colecto/internal/server"
	"github.com/Paintersrp/colecto/internal/state"
)

func NewCmdServe(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the notes folder over a local JSON API.",
		Long: heredoc.Doc(`
			Starts a JSON API over the current folder so other front ends
			can list and edit the same notes. Requests work on the current
			folder; --any-folder lets them name another one.

			Browser pages on other origins are refused unless listed with
			--allow-origin.

			  GET    /api/notes
			  GET    /api/notes/:id
			  PUT    /api/notes/:id
			  POST   /api/notes
			  DELETE /api/notes/:id
			  POST   /api/notes/:id/rename
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := viper.GetString("server.addr")
			if addr == "" {
				addr = constants.DefaultServerAddr
			}

			srv := server.New(s.Bridge, server.Options{
				Folder:         s.Folder,
				AllowOrigins:   viper.GetStringSlice("server.allow_origins"),
				AllowAnyFolder: viper.GetBool("server.allow_any_folder"),
			}, s.Logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			go func() {
				<-ctx.Done()
				if err := srv.Shutdown(); err != nil {
					s.Logger.Error().Err(err).Msg("server shutdown failed")
				}
			}()

			fmt.Fprintf(cmd.OutOrStdout(), "Serving notes on http://%s\n", addr)
			return srv.Run(addr)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (default "+constants.DefaultServerAddr+")")
	cmd.Flags().StringSlice("allow-origin", nil, "Browser origin allowed to call the API (repeatable)")
	cmd.Flags().Bool("any-folder", false, "Let requests name folders other than the current one")
	viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	viper.BindPFlag("server.allow_origins", cmd.Flags().Lookup("allow-origin"))
	viper.BindPFlag("server.allow_any_folder", cmd.Flags().Lookup("any-folder"))
	return cmd
}
