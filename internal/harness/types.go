package harness

// Step outcomes recorded in the trace.
const (
	OutcomeCommitted = "committed" // the store committed a transition
	OutcomeUnchanged = "unchanged" // the step succeeded without changing state
	OutcomeRejected  = "rejected"  // the step returned an error
)

// Matches holds the ids a search step returned, per group.
type Matches struct {
	Routes    []string `json:"routes"`
	Suppliers []string `json:"suppliers"`
	Alerts    []string `json:"alerts"`
}

// TraceEvent records one executed step and the state it left behind.
type TraceEvent struct {
	Step          int            `json:"step"`
	Action        string         `json:"action"`
	Args          map[string]any `json:"args,omitempty"`
	Outcome       string         `json:"outcome"`
	Error         string         `json:"error,omitempty"`
	Version       int64          `json:"version"`
	Unread        int            `json:"unread"`
	Authenticated bool           `json:"authenticated"`
	Matches       *Matches       `json:"matches,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expect clause and assertion held.
	Pass bool `json:"pass"`

	// RunID identifies this execution in logs.
	RunID string `json:"run_id"`

	Trace []TraceEvent `json:"trace"`

	// Errors holds expect and assertion failures. Empty if Pass.
	Errors []string `json:"errors,omitempty"`

	// Notifications counts states delivered to the harness listener.
	Notifications int `json:"notifications"`
}

// NewResult creates a new passing result.
func NewResult(runID string) *Result {
	return &Result{
		Pass:   true,
		RunID:  runID,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends an event.
func (r *Result) AddTrace(ev TraceEvent) {
	r.Trace = append(r.Trace, ev)
}
