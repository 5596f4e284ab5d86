package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/opsdash/internal/alerts"
	"github.com/roach88/opsdash/internal/catalog"
)

// AlertsOptions holds flags for the alerts command.
type AlertsOptions struct {
	*RootOptions
	Severity string
	Unread   bool
}

// AlertsResult is the alerts command payload.
type AlertsResult struct {
	Alerts []catalog.Alert `json:"alerts"`
	Unread int             `json:"unread"`
	Badge  string          `json:"badge"`
}

// NewAlertsCommand creates the alerts command.
func NewAlertsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AlertsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "List alerts and the unread badge",
		Long: `List catalog alerts in catalog order with the notification badge.

Examples:
  opsdash alerts
  opsdash alerts --severity High
  opsdash alerts --unread --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAlerts(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Severity, "severity", "", "only alerts of this severity (High|Medium|Low)")
	cmd.Flags().BoolVar(&opts.Unread, "unread", false, "only unacknowledged alerts")

	return cmd
}

func runAlerts(opts *AlertsOptions, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	sev := catalog.Severity(opts.Severity)
	switch sev {
	case "", catalog.SeverityHigh, catalog.SeverityMedium, catalog.SeverityLow:
	default:
		return f.Fail(ExitCommandError, ErrCodeUsage, fmt.Sprintf("invalid severity %q: must be High, Medium or Low", opts.Severity), nil)
	}

	cat, err := loadCatalog(opts.RootOptions)
	if err != nil {
		return failCatalog(f, err)
	}
	ledger := alerts.NewLedger(cat.Alerts)

	list := ledger.Snapshot()
	if sev != "" {
		list = ledger.BySeverity(sev)
	}
	out := []catalog.Alert{}
	for _, a := range list {
		if opts.Unread && a.Acknowledged {
			continue
		}
		out = append(out, a)
	}

	unread := ledger.UnreadCount()
	res := AlertsResult{Alerts: out, Unread: unread, Badge: alerts.BadgeText(unread)}
	return f.Render(res, func(w io.Writer) {
		if res.Badge != "" {
			fmt.Fprintf(w, "Notifications: %s unread\n", res.Badge)
		} else {
			fmt.Fprintln(w, "Notifications: all read")
		}
		for _, a := range res.Alerts {
			mark := " "
			if !a.Acknowledged {
				mark = "●"
			}
			fmt.Fprintf(w, "%s %s  %-6s  %s", mark, a.ID, a.Severity, a.Title)
			if a.Timestamp != "" {
				fmt.Fprintf(w, " (%s)", a.Timestamp)
			}
			fmt.Fprintln(w)
			if len(a.AffectedRoutes) > 0 {
				fmt.Fprintf(w, "    routes: %s\n", routeNames(cat, a.AffectedRoutes))
			}
		}
	})
}

// routeNames resolves route ids to names. Unknown ids print as is.
func routeNames(cat catalog.Catalog, ids []string) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if r, ok := cat.Route(id); ok {
			names = append(names, r.Name)
			continue
		}
		names = append(names, id)
	}
	return strings.Join(names, ", ")
}

// RoutesOptions holds flags for the routes command.
type RoutesOptions struct {
	*RootOptions
	Region  string
	Carrier string
	Risk    string
}

// NewRoutesCommand creates the routes command.
func NewRoutesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RoutesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List routes, optionally filtered",
		Long: `List catalog routes in catalog order.

--region matches a substring of the origin or destination.
--carrier and --risk match exactly.

Examples:
  opsdash routes --carrier MSC
  opsdash routes --region Hamburg --risk High`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoutes(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Region, "region", "", "origin or destination substring")
	cmd.Flags().StringVar(&opts.Carrier, "carrier", "", "carrier name")
	cmd.Flags().StringVar(&opts.Risk, "risk", "", "risk level (Low|Medium|High)")

	return cmd
}

func runRoutes(opts *RoutesOptions, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	risk := catalog.RiskLevel(opts.Risk)
	switch risk {
	case "", catalog.RiskLow, catalog.RiskMedium, catalog.RiskHigh:
	default:
		return f.Fail(ExitCommandError, ErrCodeUsage, fmt.Sprintf("invalid risk %q: must be Low, Medium or High", opts.Risk), nil)
	}

	cat, err := loadCatalog(opts.RootOptions)
	if err != nil {
		return failCatalog(f, err)
	}

	routes := cat.FilterRoutes(catalog.RouteFilter{Region: opts.Region, Carrier: opts.Carrier, Risk: risk})
	return f.Render(routes, func(w io.Writer) {
		if len(routes) == 0 {
			fmt.Fprintln(w, "No routes.")
			return
		}
		for _, r := range routes {
			fmt.Fprintf(w, "%s  %-20s  %s → %s  %s  %s/%s\n", r.ID, r.Name, r.Origin, r.Destination, r.Carrier, r.RiskLevel, r.Status)
		}
	})
}

// SuppliersOptions holds flags for the suppliers command.
type SuppliersOptions struct {
	*RootOptions
	Sort  string
	Order string
}

// NewSuppliersCommand creates the suppliers command.
func NewSuppliersCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SuppliersOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "suppliers [supplier-id]",
		Short: "List suppliers by risk or name, or show one supplier",
		Long: `List catalog suppliers sorted by risk score or name.

The default is highest risk first. Names sort in collation order. Equal
keys keep catalog order. With a supplier id, print that supplier's
performance details instead.

Examples:
  opsdash suppliers
  opsdash suppliers --sort name --order asc
  opsdash suppliers S004`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuppliers(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Sort, "sort", string(catalog.SortByRisk), "sort field (name|risk)")
	cmd.Flags().StringVar(&opts.Order, "order", string(catalog.SortDesc), "sort order (asc|desc)")

	return cmd
}

func runSuppliers(opts *SuppliersOptions, args []string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	order := catalog.SupplierSort{By: catalog.SortField(opts.Sort), Order: catalog.SortOrder(opts.Order)}
	if err := order.Validate(); err != nil {
		return f.Fail(ExitCommandError, ErrCodeUsage, err.Error(), nil)
	}

	cat, err := loadCatalog(opts.RootOptions)
	if err != nil {
		return failCatalog(f, err)
	}

	if len(args) == 1 {
		sup, ok := cat.Supplier(args[0])
		if !ok {
			return f.Fail(ExitFailure, ErrCodeNotFound, fmt.Sprintf("supplier %q not found", args[0]), nil)
		}
		return f.Render(sup, func(w io.Writer) {
			printSupplierDetails(w, sup)
		})
	}

	list := cat.SortSuppliers(order)
	return f.Render(list, func(w io.Writer) {
		printSuppliers(w, list)
	})
}

func printSuppliers(w io.Writer, list []catalog.Supplier) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No suppliers.")
		return
	}
	for _, s := range list {
		fmt.Fprintf(w, "%s  %-26s  risk %3d  %-8s  %s\n", s.ID, s.Name, s.RiskScore, s.Status, s.Location)
	}
}

func printSupplierDetails(w io.Writer, s catalog.Supplier) {
	fmt.Fprintf(w, "%s  %s (%s)\n", s.ID, s.Name, s.Location)
	fmt.Fprintf(w, "  status:           %s\n", s.Status)
	fmt.Fprintf(w, "  risk score:       %d\n", s.RiskScore)
	fmt.Fprintf(w, "  on-time delivery: %d%%\n", s.Details.OnTimeDelivery)
	fmt.Fprintf(w, "  quality score:    %d%%\n", s.Details.QualityScore)
	fmt.Fprintf(w, "  compliance rate:  %d%%\n", s.Details.ComplianceRate)
}

// ValidationResult is the validate command payload.
type ValidationResult struct {
	Valid     bool `json:"valid"`
	Routes    int  `json:"routes"`
	Suppliers int  `json:"suppliers"`
	Alerts    int  `json:"alerts"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <catalog-file>",
		Short: "Validate a catalog file",
		Long: `Validate a catalog file against the catalog schema.

Supported formats are YAML, JSON and CUE. Record ids must be unique
within each list.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	cat, err := catalog.Load(path)
	if err != nil {
		return failCatalog(f, err)
	}

	res := ValidationResult{
		Valid:     true,
		Routes:    len(cat.Routes),
		Suppliers: len(cat.Suppliers),
		Alerts:    len(cat.Alerts),
	}
	return f.Render(res, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Catalog valid: %d route(s), %d supplier(s), %d alert(s)\n", res.Routes, res.Suppliers, res.Alerts)
	})
}
