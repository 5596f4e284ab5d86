package state

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/opsdash/internal/catalog"
	"github.com/roach88/opsdash/internal/chrome"
	"github.com/roach88/opsdash/internal/credential"
	"github.com/roach88/opsdash/internal/session"
	"github.com/roach88/opsdash/internal/testutil"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	creds, err := credential.Open(context.Background(), testutil.NewMemoryBackend(), credential.WithLogger(quietLogger()))
	require.NoError(t, err)
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	return New(creds, catalog.Seed().Alerts, opts...)
}

// recorder collects delivered states.
type recorder struct {
	mu     sync.Mutex
	states []State
}

func (r *recorder) listen(st State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, st)
}

func (r *recorder) all() []State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]State(nil), r.states...)
}

func (r *recorder) actions() []Action {
	var out []Action
	for _, st := range r.all() {
		out = append(out, st.Action)
	}
	return out
}

func unreadIn(st State) int {
	n := 0
	for _, a := range st.Alerts {
		if !a.Acknowledged {
			n++
		}
	}
	return n
}

func TestNew_InitialState(t *testing.T) {
	s := newTestStore(t)
	st := s.State()

	assert.Equal(t, int64(0), st.Version)
	assert.Equal(t, ActionInit, st.Action)
	assert.Nil(t, st.Session)
	assert.False(t, st.IsAuthenticated)
	assert.Len(t, st.Alerts, 8)
	assert.Equal(t, 5, st.UnreadCount)
	assert.Equal(t, chrome.Flags{}, st.Flags)
}

func TestVersion_CountsCommits(t *testing.T) {
	s := newTestStore(t)
	s.ToggleSidebar()
	s.SetMobileMenuOpen(false)
	s.AcknowledgeAlert("A001")
	assert.Equal(t, int64(2), s.State().Version)
}

func TestSignup_ThenLogin(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sess, err := s.Signup(ctx, "A", "a@x.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, session.Session{Name: "A", Email: "a@x.com", Company: session.Company}, sess)
	assert.True(t, s.State().IsAuthenticated)

	s.Logout()
	assert.Nil(t, s.Session())

	sess, err = s.Login("a@x.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "A", sess.Name)
	assert.Equal(t, "a@x.com", sess.Email)

	st := s.State()
	require.NotNil(t, st.Session)
	assert.Equal(t, sess, *st.Session)
	assert.Equal(t, ActionLogin, st.Action)
}

func TestLogin_FailureLeavesStateUnchanged(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Signup(context.Background(), "A", "a@x.com", "pw1")
	require.NoError(t, err)

	rec := &recorder{}
	s.Subscribe(rec.listen)
	before := s.State()

	_, err = s.Login("a@x.com", "wrong")
	require.Error(t, err)
	assert.True(t, session.IsAuthenticationFailed(err))

	assert.Equal(t, before, s.State())
	assert.Empty(t, rec.all())
}

func TestSignup_DuplicateLeavesSessionUntouched(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Signup(ctx, "A", "a@x.com", "pw1")
	require.NoError(t, err)
	before := s.State()

	_, err = s.Signup(ctx, "B", "a@x.com", "pw2")
	require.Error(t, err)
	assert.True(t, session.IsAlreadyExists(err))
	assert.Equal(t, before, s.State())

	// The original password still works, the rejected one does not.
	s.Logout()
	_, err = s.Login("a@x.com", "pw2")
	assert.True(t, session.IsAuthenticationFailed(err))
	_, err = s.Login("a@x.com", "pw1")
	assert.NoError(t, err)
}

func TestSubscribe_ReceivesFullStateAfterEachOperation(t *testing.T) {
	s := newTestStore(t)
	rec := &recorder{}
	s.Subscribe(rec.listen)

	_, err := s.Signup(context.Background(), "A", "a@x.com", "pw1")
	require.NoError(t, err)
	s.AcknowledgeAlert("A001")
	s.ToggleSidebar()
	s.SetMobileMenuOpen(true)
	s.AcknowledgeAll()
	s.Logout()

	got := rec.all()
	require.Len(t, got, 6)
	assert.Equal(t, []Action{
		ActionSignup,
		ActionAcknowledgeAlert,
		ActionToggleSidebar,
		ActionSetMobileMenuOpen,
		ActionAcknowledgeAll,
		ActionLogout,
	}, rec.actions())

	for i, st := range got {
		assert.Equal(t, int64(i+1), st.Version)
		assert.Len(t, st.Alerts, 8)
		assert.Equal(t, unreadIn(st), st.UnreadCount, "unread invariant at version %d", st.Version)
	}

	assert.True(t, got[0].IsAuthenticated)
	assert.Equal(t, 4, got[1].UnreadCount)
	assert.True(t, got[2].SidebarCollapsed)
	assert.True(t, got[3].MobileMenuOpen)
	assert.True(t, got[3].SidebarCollapsed)
	assert.Equal(t, 0, got[4].UnreadCount)
	assert.False(t, got[5].IsAuthenticated)
	assert.Nil(t, got[5].Session)
}

func TestNoopOperations_DoNotNotify(t *testing.T) {
	s := newTestStore(t)
	rec := &recorder{}
	s.Subscribe(rec.listen)

	s.Logout()
	s.AcknowledgeAlert("A003") // already acknowledged in seed
	s.AcknowledgeAlert("A999")
	s.SetMobileMenuOpen(false)

	assert.Empty(t, rec.all())
	assert.Equal(t, int64(0), s.State().Version)
}

func TestAcknowledge_Idempotent(t *testing.T) {
	for _, id := range []string{"A001", "A003", "missing"} {
		t.Run(id, func(t *testing.T) {
			once := newTestStore(t)
			once.AcknowledgeAlert(id)

			twice := newTestStore(t)
			twice.AcknowledgeAlert(id)
			twice.AcknowledgeAlert(id)

			assert.Equal(t, once.State(), twice.State())
		})
	}
}

func TestAcknowledgeAll_Scenario(t *testing.T) {
	s := newTestStore(t)

	a, ok := s.Alert("A001")
	require.True(t, ok)
	require.False(t, a.Acknowledged)
	assert.Equal(t, unreadIn(s.State()), s.UnreadCount())

	s.AcknowledgeAll()
	assert.Equal(t, 0, s.UnreadCount())
	for _, a := range s.Alerts() {
		assert.True(t, a.Acknowledged, a.ID)
	}

	// Nothing left to acknowledge: no further transition.
	v := s.State().Version
	s.AcknowledgeAll()
	assert.Equal(t, v, s.State().Version)
}

func TestAlertsBySeverity(t *testing.T) {
	s := newTestStore(t)
	s.AcknowledgeAlert("A002")

	medium := s.AlertsBySeverity(catalog.SeverityMedium)
	require.Len(t, medium, 3)
	assert.Equal(t, "A002", medium[0].ID)
	assert.True(t, medium[0].Acknowledged)
}

func TestState_IsDetached(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Signup(context.Background(), "A", "a@x.com", "pw1")
	require.NoError(t, err)

	st := s.State()
	st.Alerts[0].Acknowledged = true
	st.Session.Name = "changed"

	assert.Equal(t, 5, s.UnreadCount())
	assert.Equal(t, "A", s.Session().Name)
}

func TestListeners_GetIndependentCopies(t *testing.T) {
	s := newTestStore(t)
	var second State
	s.Subscribe(func(st State) { st.Alerts[0].Acknowledged = true })
	s.Subscribe(func(st State) { second = st })

	s.ToggleSidebar()
	assert.False(t, second.Alerts[0].Acknowledged)
	assert.Equal(t, 5, s.UnreadCount())
}

func TestUnsubscribe(t *testing.T) {
	s := newTestStore(t)
	rec := &recorder{}
	unsubscribe := s.Subscribe(rec.listen)

	s.ToggleSidebar()
	unsubscribe()
	unsubscribe()
	s.ToggleSidebar()

	assert.Len(t, rec.all(), 1)
}

func TestReentrantMutation_DeliveredInOrder(t *testing.T) {
	s := newTestStore(t)

	// First listener reacts to the menu opening by toggling the sidebar.
	s.Subscribe(func(st State) {
		if st.Action == ActionSetMobileMenuOpen && st.MobileMenuOpen {
			s.ToggleSidebar()
		}
	})
	rec := &recorder{}
	s.Subscribe(rec.listen)

	s.SetMobileMenuOpen(true)

	got := rec.all()
	require.Len(t, got, 2)
	assert.Equal(t, ActionSetMobileMenuOpen, got[0].Action)
	assert.False(t, got[0].SidebarCollapsed, "first transition must not show the nested mutation")
	assert.Equal(t, ActionToggleSidebar, got[1].Action)
	assert.True(t, got[1].SidebarCollapsed)
	assert.Less(t, got[0].Version, got[1].Version)
}

func TestListenerPanic_DoesNotBreakDelivery(t *testing.T) {
	s := newTestStore(t)
	s.Subscribe(func(State) { panic("boom") })
	rec := &recorder{}
	s.Subscribe(rec.listen)

	s.ToggleSidebar()
	s.ToggleSidebar()

	assert.Len(t, rec.all(), 2)
	assert.False(t, s.Flags().SidebarCollapsed)
}

func TestSubscribeDuringDelivery_SeesOnlyLaterTransitions(t *testing.T) {
	s := newTestStore(t)
	late := &recorder{}
	var once sync.Once
	s.Subscribe(func(State) {
		once.Do(func() { s.Subscribe(late.listen) })
	})

	s.ToggleSidebar()
	s.ToggleSidebar()

	got := late.all()
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].Version)
}

func TestConcurrentMutations_SerializedAndOrdered(t *testing.T) {
	s := newTestStore(t)
	rec := &recorder{}
	s.Subscribe(rec.listen)

	const workers = 8
	const perWorker = 25
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				s.ToggleSidebar()
			}
		}()
	}
	wg.Wait()

	got := rec.all()
	require.Len(t, got, workers*perWorker)
	for i, st := range got {
		assert.Equal(t, int64(i+1), st.Version, "transitions delivered out of order")
	}
	// An even number of toggles returns to the start.
	assert.False(t, s.Flags().SidebarCollapsed)
}

func TestConcurrentAcknowledge_SameID(t *testing.T) {
	s := newTestStore(t)
	rec := &recorder{}
	s.Subscribe(rec.listen)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AcknowledgeAlert("A001")
		}()
	}
	wg.Wait()

	assert.Len(t, rec.all(), 1)
	assert.Equal(t, 4, s.UnreadCount())
}

func TestConcurrentMixedMutations_WithWatch(t *testing.T) {
	s := newTestStore(t)
	rec := &recorder{}
	s.Subscribe(rec.listen)

	var unreadIDs []string
	for _, a := range s.Alerts() {
		if !a.Acknowledged {
			unreadIDs = append(unreadIDs, a.ID)
		}
	}
	require.Len(t, unreadIDs, 5)

	var mu sync.Mutex
	var seen []int
	cancel := Watch(s, SelectUnreadCount, func(n int) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, n)
	})
	defer cancel()

	const workers = 8
	const perWorker = 50
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				switch i % 5 {
				case 0:
					s.ToggleSidebar()
				case 1:
					s.SetMobileMenuOpen(i%2 == 0)
				case 2:
					s.AcknowledgeAlert(unreadIDs[(w+i/5)%len(unreadIDs)])
				case 3:
					s.Logout()
				default:
					_ = s.State()
				}
			}
		}()
	}
	wg.Wait()

	got := rec.all()
	require.NotEmpty(t, got)
	for i := 1; i < len(got); i++ {
		assert.Greater(t, got[i].Version, got[i-1].Version, "versions must strictly increase")
	}
	assert.Equal(t, got[len(got)-1].Version, s.State().Version)
	assert.Equal(t, 0, s.UnreadCount())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{4, 3, 2, 1, 0}, seen)
}
