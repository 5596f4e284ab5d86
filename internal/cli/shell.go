package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/roach88/opsdash/internal/alerts"
	"github.com/roach88/opsdash/internal/catalog"
	"github.com/roach88/opsdash/internal/credential"
	"github.com/roach88/opsdash/internal/harness"
	"github.com/roach88/opsdash/internal/state"
)

const shellHelp = `Commands:
  login <email> <password>
  signup <email> <password> <name...>
  logout
  sidebar                 toggle the sidebar
  menu open|close         set the mobile menu
  ack <alert-id>          acknowledge one alert
  ack-all                 mark every notification read
  search <query...>
  suppliers [name|risk]   list suppliers; naming a field toggles the sort
  state                   print the current state
  help
  quit`

// NewShellCommand creates the shell command.
func NewShellCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive session over one dashboard store",
		Long: `Start an interactive session. Commands read from stdin act on one
store, so sign-in state, acknowledgments and chrome flags persist until
the session ends. Registered accounts are written to the credential
database.

` + shellHelp,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(rootOpts, cmd.InOrStdin(), cmd)
		},
	}
	return cmd
}

func runShell(opts *RootOptions, in io.Reader, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	w := cmd.OutOrStdout()

	a, err := openApp(cmd.Context(), opts, f)
	if err != nil {
		return err
	}
	defer a.Close()

	text := opts.Format != "json"
	cancel := state.Watch(a.state, state.SelectUnreadCount, func(n int) {
		if text {
			if badge := alerts.BadgeText(n); badge != "" {
				fmt.Fprintf(w, "🔔 %s unread\n", badge)
			} else {
				fmt.Fprintln(w, "🔔 all read")
			}
		}
	})
	defer cancel()

	sh := &shell{
		cmd:    cmd,
		driver: harness.NewDriver(a.state, a.index),
		st:     a.state,
		cat:    a.catalog,
		text:   text,
		enc:    json.NewEncoder(w),
		w:      w,
	}
	scanner := bufio.NewScanner(in)
	if text {
		fmt.Fprint(w, "> ")
	}
	for scanner.Scan() {
		line := strings.TrimLeftFunc(scanner.Text(), unicode.IsSpace)
		quit, err := sh.line(line)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
		if text {
			fmt.Fprint(w, "> ")
		}
	}
	if err := scanner.Err(); err != nil {
		return WrapExitError(ExitCommandError, "read input", err)
	}
	if text {
		fmt.Fprintln(w)
	}
	return nil
}

// shell is one interactive session. Supplier ordering is session-local
// like the chrome flags, but it is not part of the store.
type shell struct {
	cmd    *cobra.Command
	driver *harness.Driver
	st     *state.Store
	cat    catalog.Catalog
	sort   catalog.SupplierSort
	step   int
	text   bool
	enc    *json.Encoder
	w      io.Writer
}

// line handles one input line and reports whether the session ends.
func (sh *shell) line(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	switch fields[0] {
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(sh.w, shellHelp)
		return false, nil
	case "state":
		if !sh.text {
			return false, sh.enc.Encode(sh.st.State())
		}
		printState(sh.w, sh.st.State())
		return false, nil
	case "suppliers":
		return false, sh.suppliers(fields[1:])
	}

	s, err := parseShellCommand(line)
	if err != nil {
		cerr := &CLIError{Code: ErrCodeUsage, Message: err.Error()}
		var pe *credential.PolicyError
		if errors.As(err, &pe) {
			cerr.Code = ErrCodeWeakPassword
			cerr.Details = map[string]string{"rule": string(pe.Rule)}
		}
		return false, sh.fail(cerr)
	}

	ev := sh.driver.Exec(sh.cmd.Context(), sh.step, s)
	sh.step++
	if !sh.text {
		return false, sh.enc.Encode(ev)
	}
	printEvent(sh.w, ev)
	return false, nil
}

func (sh *shell) fail(cerr *CLIError) error {
	if !sh.text {
		return sh.enc.Encode(CLIResponse{Status: "error", Error: cerr})
	}
	fmt.Fprintf(sh.w, "Error [%s]: %s\n", cerr.Code, cerr.Message)
	return nil
}

// suppliers lists suppliers in the session's order. Naming a field works
// like the sort buttons: the current field flips direction, another field
// starts descending.
func (sh *shell) suppliers(args []string) error {
	if len(args) > 1 {
		return sh.fail(&CLIError{Code: ErrCodeUsage, Message: "usage: suppliers [name|risk]"})
	}
	if len(args) == 1 {
		field := catalog.SortField(args[0])
		if err := (catalog.SupplierSort{By: field}).Validate(); err != nil {
			return sh.fail(&CLIError{Code: ErrCodeUsage, Message: err.Error()})
		}
		sh.sort = sh.sort.Toggle(field)
	}

	list := sh.cat.SortSuppliers(sh.sort)
	if !sh.text {
		return sh.enc.Encode(CLIResponse{Status: "ok", Data: list})
	}
	printSuppliers(sh.w, list)
	return nil
}

// parseShellCommand turns a typed command into a harness step. A search
// query is the rest of the line after the separator, spaces included.
func parseShellCommand(line string) (harness.Step, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return harness.Step{}, fmt.Errorf("empty command")
	}
	name, rest := fields[0], fields[1:]
	need := func(n int, usage string) error {
		if len(rest) < n {
			return fmt.Errorf("usage: %s", usage)
		}
		return nil
	}

	switch name {
	case "login":
		if err := need(2, "login <email> <password>"); err != nil {
			return harness.Step{}, err
		}
		return harness.Step{Action: string(state.ActionLogin), Args: map[string]any{"email": rest[0], "password": rest[1]}}, nil
	case "signup":
		if err := need(3, "signup <email> <password> <name...>"); err != nil {
			return harness.Step{}, err
		}
		if err := credential.ValidatePassword(rest[1]); err != nil {
			return harness.Step{}, err
		}
		return harness.Step{Action: string(state.ActionSignup), Args: map[string]any{
			"email":    rest[0],
			"password": rest[1],
			"name":     strings.Join(rest[2:], " "),
		}}, nil
	case "logout":
		return harness.Step{Action: string(state.ActionLogout)}, nil
	case "sidebar":
		return harness.Step{Action: string(state.ActionToggleSidebar)}, nil
	case "menu":
		if err := need(1, "menu open|close"); err != nil {
			return harness.Step{}, err
		}
		switch rest[0] {
		case "open":
			return harness.Step{Action: string(state.ActionSetMobileMenuOpen), Args: map[string]any{"open": true}}, nil
		case "close":
			return harness.Step{Action: string(state.ActionSetMobileMenuOpen), Args: map[string]any{"open": false}}, nil
		}
		return harness.Step{}, fmt.Errorf("usage: menu open|close")
	case "ack":
		if err := need(1, "ack <alert-id>"); err != nil {
			return harness.Step{}, err
		}
		return harness.Step{Action: string(state.ActionAcknowledgeAlert), Args: map[string]any{"id": rest[0]}}, nil
	case "ack-all":
		return harness.Step{Action: string(state.ActionAcknowledgeAll)}, nil
	case "search":
		if err := need(1, "search <query...>"); err != nil {
			return harness.Step{}, err
		}
		return harness.Step{Action: harness.ActionSearch, Args: map[string]any{"query": lineRemainder(line)}}, nil
	}
	return harness.Step{}, fmt.Errorf("unknown command %q (try help)", name)
}

// lineRemainder returns line after its first word and one separator.
func lineRemainder(line string) string {
	line = strings.TrimLeftFunc(line, unicode.IsSpace)
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return ""
	}
	_, size := utf8.DecodeRuneInString(line[i:])
	return line[i+size:]
}

func printEvent(w io.Writer, ev harness.TraceEvent) {
	switch ev.Outcome {
	case harness.OutcomeRejected:
		fmt.Fprintf(w, "✗ %s: %s\n", ev.Action, ev.Error)
	case harness.OutcomeUnchanged:
		if ev.Matches == nil {
			fmt.Fprintf(w, "· %s: no change\n", ev.Action)
		}
	default:
		fmt.Fprintf(w, "✓ %s (v%d)\n", ev.Action, ev.Version)
	}

	if m := ev.Matches; m != nil {
		if len(m.Routes)+len(m.Suppliers)+len(m.Alerts) == 0 {
			fmt.Fprintln(w, "No results.")
			return
		}
		fmt.Fprintf(w, "routes: %s\n", strings.Join(m.Routes, ", "))
		fmt.Fprintf(w, "suppliers: %s\n", strings.Join(m.Suppliers, ", "))
		fmt.Fprintf(w, "alerts: %s\n", strings.Join(m.Alerts, ", "))
	}
}

func printState(w io.Writer, st state.State) {
	user := "(signed out)"
	if st.Session != nil {
		user = fmt.Sprintf("%s <%s>", st.Session.Name, st.Session.Email)
	}
	fmt.Fprintf(w, "version:  %d\n", st.Version)
	fmt.Fprintf(w, "user:     %s\n", user)
	fmt.Fprintf(w, "unread:   %d\n", st.UnreadCount)
	fmt.Fprintf(w, "sidebar:  collapsed=%t\n", st.SidebarCollapsed)
	fmt.Fprintf(w, "menu:     open=%t\n", st.MobileMenuOpen)
}
