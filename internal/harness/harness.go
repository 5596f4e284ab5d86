package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/roach88/opsdash/internal/catalog"
	"github.com/roach88/opsdash/internal/credential"
	"github.com/roach88/opsdash/internal/search"
	"github.com/roach88/opsdash/internal/session"
	"github.com/roach88/opsdash/internal/state"
	"github.com/roach88/opsdash/internal/store"
)

// Option configures a run.
type Option func(*runConfig)

type runConfig struct {
	logger *slog.Logger
	ids    RunIDGenerator
}

// WithLogger sets the run logger (default discards).
func WithLogger(l *slog.Logger) Option {
	return func(c *runConfig) {
		c.logger = l
	}
}

// WithRunIDs sets the run id generator (default UUIDv7).
func WithRunIDs(g RunIDGenerator) Option {
	return func(c *runConfig) {
		c.ids = g
	}
}

// Run executes a scenario against a fresh store and returns the result.
// An error means the scenario could not be executed at all; expect and
// assertion failures are reported through Result.Pass and Result.Errors.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	cfg := runConfig{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		ids:    UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	runID := scenario.RunID
	if runID == "" {
		runID = cfg.ids.Generate()
	}
	logger := cfg.logger.With("scenario", scenario.Name, "run_id", runID)

	cat := catalog.Seed()
	if scenario.Catalog != "" {
		loaded, err := catalog.Load(scenario.Catalog)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		cat = loaded
	}

	kv, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer kv.Close()

	ctx := context.Background()
	creds, err := credential.Open(ctx, kv, credential.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to open credentials: %w", err)
	}
	for i, u := range scenario.Users {
		rec := credential.Record{Name: u.Name, Email: u.Email, Password: u.Password}
		if err := creds.Insert(ctx, rec); err != nil {
			return nil, fmt.Errorf("users[%d]: %w", i, err)
		}
	}

	st := state.New(creds, cat.Alerts, state.WithLogger(logger))
	result := NewResult(runID)
	unsubscribe := st.Subscribe(func(state.State) { result.Notifications++ })
	defer unsubscribe()

	driver := NewDriver(st, search.New(cat.Routes, cat.Suppliers, st))
	for i, step := range scenario.Steps {
		ev := driver.Exec(ctx, i, step)
		result.AddTrace(ev)
		if step.Expect != nil {
			for _, msg := range checkExpect(ev, step.Expect) {
				result.AddError(fmt.Sprintf("steps[%d] %s: %s", i, step.Action, msg))
			}
		}
		logger.Debug("step completed",
			"step", i,
			"action", step.Action,
			"outcome", ev.Outcome,
			"version", ev.Version,
		)
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions, st) {
		result.AddError(msg)
	}

	logger.Info("scenario finished", "pass", result.Pass, "steps", len(result.Trace))
	return result, nil
}

// Driver applies steps to a store. The CLI shell uses it to interpret
// typed commands the same way scenarios do.
type Driver struct {
	store *state.Store
	index *search.Index
}

// NewDriver creates a driver over st. idx answers search steps.
func NewDriver(st *state.Store, idx *search.Index) *Driver {
	return &Driver{store: st, index: idx}
}

// Exec runs one step and returns its trace event. Argument problems are
// reported as a rejected outcome, like any other failed operation.
func (d *Driver) Exec(ctx context.Context, i int, step Step) TraceEvent {
	before := d.store.State().Version
	matches, err := d.apply(ctx, step)

	after := d.store.State()
	ev := TraceEvent{
		Step:          i,
		Action:        step.Action,
		Args:          redact(step.Args),
		Version:       after.Version,
		Unread:        after.UnreadCount,
		Authenticated: after.IsAuthenticated,
		Matches:       matches,
	}
	switch {
	case err != nil:
		ev.Outcome = OutcomeRejected
		ev.Error = errorCode(err)
	case after.Version != before:
		ev.Outcome = OutcomeCommitted
	default:
		ev.Outcome = OutcomeUnchanged
	}
	return ev
}

func (d *Driver) apply(ctx context.Context, step Step) (*Matches, error) {
	a := &argReader{m: step.Args}
	switch step.Action {
	case string(state.ActionLogin):
		email, password := a.str("email"), a.str("password")
		if err := a.err(); err != nil {
			return nil, err
		}
		_, err := d.store.Login(email, password)
		return nil, err
	case string(state.ActionSignup):
		name, email, password := a.str("name"), a.str("email"), a.str("password")
		if err := a.err(); err != nil {
			return nil, err
		}
		_, err := d.store.Signup(ctx, name, email, password)
		return nil, err
	case string(state.ActionLogout):
		d.store.Logout()
	case string(state.ActionToggleSidebar):
		d.store.ToggleSidebar()
	case string(state.ActionSetMobileMenuOpen):
		open := a.boolean("open")
		if err := a.err(); err != nil {
			return nil, err
		}
		d.store.SetMobileMenuOpen(open)
	case string(state.ActionAcknowledgeAlert):
		id := a.str("id")
		if err := a.err(); err != nil {
			return nil, err
		}
		d.store.AcknowledgeAlert(id)
	case string(state.ActionAcknowledgeAll):
		d.store.AcknowledgeAll()
	case ActionSearch:
		query := a.str("query")
		if err := a.err(); err != nil {
			return nil, err
		}
		return matchesOf(d.index.Query(query)), nil
	default:
		return nil, fmt.Errorf("unknown action %q", step.Action)
	}
	return nil, nil
}

func matchesOf(res search.ResultSet) *Matches {
	m := &Matches{
		Routes:    make([]string, 0, len(res.Routes)),
		Suppliers: make([]string, 0, len(res.Suppliers)),
		Alerts:    make([]string, 0, len(res.Alerts)),
	}
	for _, r := range res.Routes {
		m.Routes = append(m.Routes, r.ID)
	}
	for _, s := range res.Suppliers {
		m.Suppliers = append(m.Suppliers, s.ID)
	}
	for _, al := range res.Alerts {
		m.Alerts = append(m.Alerts, al.ID)
	}
	return m
}

func checkExpect(ev TraceEvent, want *Expect) []string {
	var msgs []string
	if want.Outcome != "" && ev.Outcome != want.Outcome {
		msgs = append(msgs, fmt.Sprintf("expected outcome %s, got %s", want.Outcome, ev.Outcome))
	}
	if want.Error != "" && ev.Error != want.Error {
		msgs = append(msgs, fmt.Sprintf("expected error %s, got %q", want.Error, ev.Error))
	}

	groups := []struct {
		name      string
		want, got []string
	}{
		{"routes", want.Routes, nil},
		{"suppliers", want.Suppliers, nil},
		{"alerts", want.Alerts, nil},
	}
	if ev.Matches != nil {
		groups[0].got = ev.Matches.Routes
		groups[1].got = ev.Matches.Suppliers
		groups[2].got = ev.Matches.Alerts
	}
	for _, g := range groups {
		if g.want == nil {
			continue
		}
		if ev.Matches == nil {
			msgs = append(msgs, fmt.Sprintf("expected %s %v, but step returned no search results", g.name, g.want))
			continue
		}
		if !slices.Equal(g.want, g.got) {
			msgs = append(msgs, fmt.Sprintf("expected %s %v, got %v", g.name, g.want, g.got))
		}
	}
	return msgs
}

// errorCode reports a session error by its code and anything else by its
// message.
func errorCode(err error) string {
	var se *session.Error
	if errors.As(err, &se) {
		return string(se.Code)
	}
	return err.Error()
}

// redact copies step args for the trace, hiding passwords.
func redact(in map[string]any) map[string]any {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		if k == "password" {
			v = "[redacted]"
		}
		out[k] = v
	}
	return out
}

// argReader reads typed step arguments, remembering the first problem.
type argReader struct {
	m     map[string]any
	first error
}

func (r *argReader) str(key string) string {
	v, ok := r.m[key]
	if !ok {
		r.fail(fmt.Errorf("missing argument %q", key))
		return ""
	}
	s, ok := v.(string)
	if !ok {
		r.fail(fmt.Errorf("argument %q must be a string, got %T", key, v))
		return ""
	}
	return s
}

func (r *argReader) boolean(key string) bool {
	v, ok := r.m[key]
	if !ok {
		r.fail(fmt.Errorf("missing argument %q", key))
		return false
	}
	b, ok := v.(bool)
	if !ok {
		r.fail(fmt.Errorf("argument %q must be a boolean, got %T", key, v))
		return false
	}
	return b
}

func (r *argReader) fail(err error) {
	if r.first == nil {
		r.first = err
	}
}

func (r *argReader) err() error { return r.first }
