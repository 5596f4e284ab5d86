// Package alerts implements the alert ledger: the mutable list of alert
// records and their acknowledgment flags.
//
// INVARIANTS:
//   - Record order is the seed order and never changes
//   - Acknowledged is the only field that changes, and only false -> true
//   - UnreadCount is computed from the records on every call; there is no
//     separately stored counter that could drift
//
// Ledger is not safe for concurrent use on its own; the reactive state
// store serializes access.
package alerts

import (
	"strconv"

	"github.com/roach88/opsdash/internal/catalog"
)

// Ledger owns the alert records.
type Ledger struct {
	records []catalog.Alert
}

// NewLedger seeds a ledger from the alert catalog. The seed is deep
// copied; later changes to it do not affect the ledger.
func NewLedger(seed []catalog.Alert) *Ledger {
	records := catalog.CloneAlerts(seed)
	if records == nil {
		records = []catalog.Alert{}
	}
	return &Ledger{records: records}
}

// Acknowledge marks the alert read. Unknown and already-acknowledged ids
// are no-ops. Returns true if the ledger changed.
func (l *Ledger) Acknowledge(id string) bool {
	for i := range l.records {
		if l.records[i].ID != id {
			continue
		}
		if l.records[i].Acknowledged {
			return false
		}
		l.records[i].Acknowledged = true
		return true
	}
	return false
}

// AcknowledgeAll marks every alert read. Returns true if any changed.
func (l *Ledger) AcknowledgeAll() bool {
	changed := false
	for i := range l.records {
		if !l.records[i].Acknowledged {
			l.records[i].Acknowledged = true
			changed = true
		}
	}
	return changed
}

// Snapshot returns a deep copy of the records in seed order.
func (l *Ledger) Snapshot() []catalog.Alert {
	return catalog.CloneAlerts(l.records)
}

// UnreadCount returns the number of unacknowledged records.
func (l *Ledger) UnreadCount() int {
	n := 0
	for _, a := range l.records {
		if !a.Acknowledged {
			n++
		}
	}
	return n
}

// Get returns a copy of the alert with the given id.
func (l *Ledger) Get(id string) (catalog.Alert, bool) {
	for _, a := range l.records {
		if a.ID == id {
			return a.Clone(), true
		}
	}
	return catalog.Alert{}, false
}

// BySeverity returns copies of the alerts with the given severity, in
// seed order.
func (l *Ledger) BySeverity(sev catalog.Severity) []catalog.Alert {
	out := []catalog.Alert{}
	for _, a := range l.records {
		if a.Severity == sev {
			out = append(out, a.Clone())
		}
	}
	return out
}

// Len returns the number of records.
func (l *Ledger) Len() int {
	return len(l.records)
}

// BadgeText renders an unread count for the notification bell: empty for
// zero, "9+" above nine.
func BadgeText(unread int) string {
	switch {
	case unread <= 0:
		return ""
	case unread > 9:
		return "9+"
	default:
		return strconv.Itoa(unread)
	}
}
