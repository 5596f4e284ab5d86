package state

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/roach88/opsdash/internal/alerts"
	"github.com/roach88/opsdash/internal/catalog"
	"github.com/roach88/opsdash/internal/chrome"
	"github.com/roach88/opsdash/internal/session"
)

// Action names the operation that produced a State.
type Action string

const (
	ActionInit              Action = "init"
	ActionLogin             Action = "login"
	ActionSignup            Action = "signup"
	ActionLogout            Action = "logout"
	ActionToggleSidebar     Action = "toggleSidebar"
	ActionSetMobileMenuOpen Action = "setMobileMenuOpen"
	ActionAcknowledgeAlert  Action = "acknowledgeAlert"
	ActionAcknowledgeAll    Action = "markNotificationsAsRead"
)

// State is the full read model handed to listeners. It shares no memory
// with the store.
type State struct {
	// Version counts committed transitions; the state it is stamped on was
	// produced by transition Version. 0 means nothing has been committed.
	Version int64  `json:"version"`
	Action  Action `json:"action"`

	Session         *session.Session `json:"user"`
	IsAuthenticated bool             `json:"isAuthenticated"`

	Alerts      []catalog.Alert `json:"alerts"`
	UnreadCount int             `json:"unreadNotifications"`

	chrome.Flags
}

// Listener receives the full state after every committed transition.
type Listener func(State)

type listenerEntry struct {
	id    int
	since int64 // deliver only versions after this
	fn    Listener
}

// Store is the reactive state container. Safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	sessions *session.Manager
	ledger   *alerts.Ledger
	flags    chrome.Flags
	version  int64
	action   Action

	listeners   []listenerEntry
	nextID      int
	pending     []State
	dispatching bool

	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger (default slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// New creates a store over the given credentials, seeding the alert ledger
// from seed. Nobody is signed in and both chrome flags are false.
func New(creds session.Credentials, seed []catalog.Alert, opts ...Option) *Store {
	s := &Store{
		action: ActionInit,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.sessions = session.NewManager(creds, s.logger)
	s.ledger = alerts.NewLedger(seed)
	return s
}

// State returns the current read model.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Session returns the signed-in identity, or nil.
func (s *Store) Session() *session.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions.Current()
}

// Alerts returns the alert records in seed order. It satisfies
// search.AlertSource.
func (s *Store) Alerts() []catalog.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Snapshot()
}

// Alert returns one alert record.
func (s *Store) Alert(id string) (catalog.Alert, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Get(id)
}

// AlertsBySeverity returns the alerts of one severity in seed order.
func (s *Store) AlertsBySeverity(sev catalog.Severity) []catalog.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.BySeverity(sev)
}

// UnreadCount returns the number of unacknowledged alerts.
func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.UnreadCount()
}

// Flags returns the UI chrome flags.
func (s *Store) Flags() chrome.Flags {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flags
}

// Login authenticates and replaces the session. On failure the state is
// unchanged and session.IsAuthenticationFailed(err) is true.
func (s *Store) Login(email, password string) (session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Authenticate(email, password)
	if err != nil {
		return session.Session{}, err
	}
	s.commitLocked(ActionLogin)
	s.flushLocked()
	return sess, nil
}

// Signup registers a new account and signs it in. On failure the state is
// unchanged; a taken email gives session.IsAlreadyExists(err).
func (s *Store) Signup(ctx context.Context, name, email, password string) (session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Register(ctx, name, email, password)
	if err != nil {
		return session.Session{}, err
	}
	s.commitLocked(ActionSignup)
	s.flushLocked()
	return sess, nil
}

// Logout clears the session. A no-op when nobody is signed in.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.sessions.Terminate() {
		return
	}
	s.commitLocked(ActionLogout)
	s.flushLocked()
}

// ToggleSidebar flips the sidebar collapsed flag.
func (s *Store) ToggleSidebar() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.flags.ToggleSidebar()
	s.commitLocked(ActionToggleSidebar)
	s.flushLocked()
}

// SetMobileMenuOpen sets the mobile menu flag to open.
func (s *Store) SetMobileMenuOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.flags.SetMobileMenuOpen(open) {
		return
	}
	s.commitLocked(ActionSetMobileMenuOpen)
	s.flushLocked()
}

// AcknowledgeAlert marks one alert read. Unknown or already-read ids are
// silent no-ops.
func (s *Store) AcknowledgeAlert(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ledger.Acknowledge(id) {
		s.logger.Debug("acknowledge ignored", "alert_id", id)
		return
	}
	s.commitLocked(ActionAcknowledgeAlert)
	s.flushLocked()
}

// AcknowledgeAll marks every alert read.
func (s *Store) AcknowledgeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ledger.AcknowledgeAll() {
		return
	}
	s.commitLocked(ActionAcknowledgeAll)
	s.flushLocked()
}

// Subscribe registers fn for every transition committed from now on.
// The returned function removes it; calling it more than once is safe.
// A listener removed while a delivery round is in flight still receives
// that round.
//
// Listeners run on the goroutine that commits a transition, before the
// mutating call returns. The exception is concurrent use: if another
// goroutine is already delivering, a mutation returns once committed and
// that goroutine delivers it. Each listener still sees every transition
// once, in version order.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, _ := s.subscribeLocked(fn)
	return s.unsubscriber(id)
}

func (s *Store) subscribeLocked(fn Listener) (int, State) {
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listenerEntry{id: id, since: s.version, fn: fn})
	return id, s.snapshotLocked()
}

func (s *Store) unsubscriber(id int) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.listeners = slices.DeleteFunc(s.listeners, func(e listenerEntry) bool { return e.id == id })
		})
	}
}

// snapshotLocked builds a State. Caller holds s.mu.
func (s *Store) snapshotLocked() State {
	cur := s.sessions.Current()
	return State{
		Version:         s.version,
		Action:          s.action,
		Session:         cur,
		IsAuthenticated: cur != nil,
		Alerts:          s.ledger.Snapshot(),
		UnreadCount:     s.ledger.UnreadCount(),
		Flags:           s.flags,
	}
}

// commitLocked stamps a transition and queues it for delivery.
// Caller holds s.mu and has already applied the mutation.
func (s *Store) commitLocked(action Action) {
	s.version++
	s.action = action
	snap := s.snapshotLocked()
	s.pending = append(s.pending, snap)

	s.logger.Debug("state committed",
		"action", action,
		"version", snap.Version,
		"authenticated", snap.IsAuthenticated,
		"unread", snap.UnreadCount,
	)
}

// flushLocked delivers pending transitions in FIFO order. Caller holds
// s.mu; the lock is released around each listener call and held again on
// return. If another call is already delivering, flushLocked returns and
// that call delivers the new transition.
func (s *Store) flushLocked() {
	if s.dispatching {
		return
	}
	s.dispatching = true
	defer func() { s.dispatching = false }()

	for len(s.pending) > 0 {
		next := s.pending[0]
		s.pending[0] = State{}
		s.pending = s.pending[1:]
		targets := slices.Clone(s.listeners)

		s.mu.Unlock()
		for _, l := range targets {
			if next.Version <= l.since {
				continue
			}
			s.notify(l, next)
		}
		s.mu.Lock()
	}
	s.pending = nil
}

// notify calls one listener. A panicking listener is logged and skipped
// so the remaining listeners still see the transition.
func (s *Store) notify(l listenerEntry, st State) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("listener panicked",
				"listener", l.id,
				"action", st.Action,
				"version", st.Version,
				"panic", fmt.Sprint(r),
			)
		}
	}()
	// Listeners get independent copies.
	st.Alerts = catalog.CloneAlerts(st.Alerts)
	if st.Session != nil {
		sess := *st.Session
		st.Session = &sess
	}
	l.fn(st)
}
