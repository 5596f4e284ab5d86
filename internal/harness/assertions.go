package harness

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/opsdash/internal/state"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, ev := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s -> %s (v%d)\n", ev.Step, ev.Action, ev.Outcome, ev.Version)
		}
	}
	return buf.String()
}

// EvaluateAssertions checks every assertion against the final store state
// and returns one message per failure.
func EvaluateAssertions(result *Result, assertions []Assertion, st *state.Store) []string {
	final := st.State()
	var errs []string
	for i, a := range assertions {
		if err := evaluate(a, final, result); err != nil {
			var ae *AssertionError
			if errors.As(err, &ae) {
				ae.Trace = result.Trace
			}
			errs = append(errs, fmt.Sprintf("assertions[%d]: %s", i, err.Error()))
		}
	}
	return errs
}

func evaluate(a Assertion, final state.State, result *Result) error {
	switch a.Type {
	case AssertUnreadCount:
		return assertUnreadCount(final, a)
	case AssertNotifications:
		return assertNotifications(result, a)
	case AssertSession:
		return assertSession(final, a)
	case AssertAcknowledged:
		return assertAcknowledged(final, a)
	case AssertFlags:
		return assertFlags(final, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func assertUnreadCount(final state.State, a Assertion) error {
	if a.Count == nil || final.UnreadCount == *a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertUnreadCount,
		Expected: fmt.Sprintf("%d unread alerts", *a.Count),
		Actual:   fmt.Sprintf("%d unread alerts", final.UnreadCount),
	}
}

func assertNotifications(result *Result, a Assertion) error {
	if a.Count == nil || result.Notifications == *a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertNotifications,
		Expected: fmt.Sprintf("%d notifications", *a.Count),
		Actual:   fmt.Sprintf("%d notifications", result.Notifications),
	}
}

func assertSession(final state.State, a Assertion) error {
	if a.Authenticated != nil && final.IsAuthenticated != *a.Authenticated {
		return &AssertionError{
			Type:     AssertSession,
			Expected: fmt.Sprintf("authenticated=%t", *a.Authenticated),
			Actual:   fmt.Sprintf("authenticated=%t", final.IsAuthenticated),
		}
	}
	if a.Email == "" {
		return nil
	}
	got := state.SelectEmail(final)
	if got != a.Email {
		return &AssertionError{
			Type:     AssertSession,
			Expected: fmt.Sprintf("session email %q", a.Email),
			Actual:   fmt.Sprintf("session email %q", got),
		}
	}
	return nil
}

func assertAcknowledged(final state.State, a Assertion) error {
	want := a.Acknowledged != nil && *a.Acknowledged
	byID := make(map[string]bool, len(final.Alerts))
	for _, al := range final.Alerts {
		byID[al.ID] = al.Acknowledged
	}

	var wrong []string
	for _, id := range a.IDs {
		got, ok := byID[id]
		if !ok {
			return &AssertionError{
				Type:     AssertAcknowledged,
				Expected: fmt.Sprintf("alert %s to exist", id),
				Actual:   "alert not found",
			}
		}
		if got != want {
			wrong = append(wrong, id)
		}
	}
	if len(wrong) == 0 {
		return nil
	}
	return &AssertionError{
		Type:     AssertAcknowledged,
		Expected: fmt.Sprintf("acknowledged=%t for %v", want, a.IDs),
		Actual:   fmt.Sprintf("acknowledged=%t for %v", !want, wrong),
	}
}

func assertFlags(final state.State, a Assertion) error {
	if a.SidebarCollapsed != nil && final.SidebarCollapsed != *a.SidebarCollapsed {
		return &AssertionError{
			Type:     AssertFlags,
			Expected: fmt.Sprintf("sidebar_collapsed=%t", *a.SidebarCollapsed),
			Actual:   fmt.Sprintf("sidebar_collapsed=%t", final.SidebarCollapsed),
		}
	}
	if a.MobileMenuOpen != nil && final.MobileMenuOpen != *a.MobileMenuOpen {
		return &AssertionError{
			Type:     AssertFlags,
			Expected: fmt.Sprintf("mobile_menu_open=%t", *a.MobileMenuOpen),
			Actual:   fmt.Sprintf("mobile_menu_open=%t", final.MobileMenuOpen),
		}
	}
	return nil
}
