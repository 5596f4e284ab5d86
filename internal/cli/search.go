package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/opsdash/internal/catalog"
	"github.com/roach88/opsdash/internal/search"
)

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>...",
		Short: "Search routes, suppliers and alerts",
		Long: `Search the catalog the same way the dashboard search box does.

Matching is a case-insensitive substring test. Results are grouped by
type, kept in catalog order and capped at 5 per group. Words are joined
with single spaces.

Examples:
  opsdash search singapore
  opsdash search "port congestion" --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(rootOpts, strings.Join(args, " "), cmd)
		},
	}
	return cmd
}

func runSearch(opts *RootOptions, query string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	cat, err := loadCatalog(opts)
	if err != nil {
		return failCatalog(f, err)
	}
	// Alerts come straight from the catalog: acknowledgment does not
	// affect matching and nothing else mutates them here.
	alerts := cat.Alerts
	idx := search.New(cat.Routes, cat.Suppliers, search.AlertsFunc(func() []catalog.Alert { return alerts }))

	res := idx.Query(query)
	f.VerboseLog("Query %q matched %d record(s)", query, res.Total())
	return f.Render(res, func(w io.Writer) { printResults(w, res) })
}

func printResults(w io.Writer, res search.ResultSet) {
	if res.Empty() {
		fmt.Fprintln(w, "No results.")
		return
	}
	if len(res.Routes) > 0 {
		fmt.Fprintln(w, "Routes:")
		for _, r := range res.Routes {
			fmt.Fprintf(w, "  %s  %s (%s → %s, %s)\n", r.ID, r.Name, r.Origin, r.Destination, r.Carrier)
		}
	}
	if len(res.Suppliers) > 0 {
		fmt.Fprintln(w, "Suppliers:")
		for _, s := range res.Suppliers {
			fmt.Fprintf(w, "  %s  %s (%s)\n", s.ID, s.Name, s.Location)
		}
	}
	if len(res.Alerts) > 0 {
		fmt.Fprintln(w, "Alerts:")
		for _, a := range res.Alerts {
			fmt.Fprintf(w, "  %s  [%s] %s\n", a.ID, a.Severity, a.Title)
		}
	}
}
