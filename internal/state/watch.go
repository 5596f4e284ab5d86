package state

// WatchFunc calls fn with selector(state) whenever a committed transition
// changes the selected value according to equal. The starting value is
// taken when WatchFunc is called and is not delivered.
func WatchFunc[T any](s *Store, selector func(State) T, equal func(a, b T) bool, fn func(T)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var last T
	id, initial := s.subscribeLocked(func(st State) {
		next := selector(st)
		if equal(last, next) {
			return
		}
		last = next
		fn(next)
	})
	last = selector(initial)
	return s.unsubscriber(id)
}

// Watch is WatchFunc for comparable values, using ==.
func Watch[T comparable](s *Store, selector func(State) T, fn func(T)) (cancel func()) {
	return WatchFunc(s, selector, func(a, b T) bool { return a == b }, fn)
}

// Common selectors.

// SelectUnreadCount selects the unread alert count.
func SelectUnreadCount(st State) int { return st.UnreadCount }

// SelectAuthenticated selects whether anyone is signed in.
func SelectAuthenticated(st State) bool { return st.IsAuthenticated }

// SelectSidebarCollapsed selects the sidebar flag.
func SelectSidebarCollapsed(st State) bool { return st.SidebarCollapsed }

// SelectMobileMenuOpen selects the mobile menu flag.
func SelectMobileMenuOpen(st State) bool { return st.MobileMenuOpen }

// SelectEmail selects the signed-in email, or "".
func SelectEmail(st State) string {
	if st.Session == nil {
		return ""
	}
	return st.Session.Email
}
