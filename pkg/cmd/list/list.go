package list

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Paintersrp/colecto/internal/config"
	"github.com/Paintersrp/colecto/internal/note"
	"github.com/Paintersrp/colecto/internal/parser"
	"github.com/Paintersrp/colecto/internal/state"
)

const snippetLength = 60

type options struct {
	search string
	sort   string
	asc    bool
	since  string
	json   bool
}

func NewCmdList(s *state.State) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notes in the current folder.",
		Long: heredoc.Doc(`
			Lists the notes in the current folder, newest first by default.

			  colecto list --search milk
			  colecto list --sort title --asc
			  colecto list --since "last monday" --json
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, s, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.search, "search", "q", "", "Only notes whose title or content contains this text")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "Sort field: modified or title (defaults to the configured sort)")
	cmd.Flags().BoolVar(&opts.asc, "asc", false, "Sort ascending")
	cmd.Flags().StringVar(&opts.since, "since", "", "Only notes modified at or after this date")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print notes as JSON")
	return cmd
}

func run(cmd *cobra.Command, s *state.State, opts options) error {
	folder, err := s.RequireFolder()
	if err != nil {
		return err
	}

	var since time.Time
	if opts.since != "" {
		since, err = dateparse.ParseLocal(opts.since)
		if err != nil {
			return fmt.Errorf("invalid --since value %q: %w", opts.since, err)
		}
	}

	field, ascending, err := resolveSort(cmd, opts)
	if err != nil {
		return err
	}

	var matched []note.Note
	for _, n := range s.Bridge.GetNotes(folder) {
		if !n.Matches(opts.search) {
			continue
		}
		if !since.IsZero() && n.Modified.Before(since) {
			continue
		}
		matched = append(matched, n)
	}
	matched = note.Sort(matched, field, ascending)

	out := cmd.OutOrStdout()
	if opts.json {
		if matched == nil {
			matched = []note.Note{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(matched)
	}

	if len(matched) == 0 {
		fmt.Fprintln(out, "No notes found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, n := range matched {
		fmt.Fprintf(
			w,
			"%s\t%s\t%s\n",
			n.Title(),
			n.Modified.Format("2006-01-02 15:04"),
			parser.Snippet(n.Content, snippetLength),
		)
	}
	return w.Flush()
}

// resolveSort falls back to the configured sort unless a flag was given.
func resolveSort(cmd *cobra.Command, opts options) (note.SortField, bool, error) {
	field := strings.ToLower(strings.TrimSpace(opts.sort))
	if field == "" {
		field = viper.GetString("sort.field")
	}
	if field != "" && !config.ValidSortFields[field] {
		return 0, false, fmt.Errorf("invalid --sort value %q: use %s or %s", opts.sort, config.SortModified, config.SortTitle)
	}

	ascending := opts.asc
	if !cmd.Flags().Changed("asc") {
		ascending = viper.GetString("sort.order") == config.OrderAsc
	}

	if field == config.SortTitle {
		return note.ByTitle, ascending, nil
	}
	return note.ByModified, ascending, nil
}
