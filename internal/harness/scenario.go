package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/opsdash/internal/state"
)

// Scenario defines a store scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Catalog is an optional catalog file. Relative paths resolve against
	// the scenario file. Empty means the built-in seed catalog.
	Catalog string `yaml:"catalog,omitempty"`

	// Users are registered before the first step. They are not signed in.
	Users []User `yaml:"users,omitempty"`

	// Steps run in order against one store.
	Steps []Step `yaml:"steps"`

	// Assertions are checked against the final state.
	Assertions []Assertion `yaml:"assertions"`

	// RunID is an optional fixed run id. It is written into the golden
	// snapshot, so scenarios with golden files should set it or leave it
	// empty, never rely on a generated one.
	RunID string `yaml:"run_id,omitempty"`
}

// User is a pre-registered credential.
type User struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// Step invokes one store operation or a search query.
type Step struct {
	// Action is a store action name (login, signup, logout,
	// toggleSidebar, setMobileMenuOpen, acknowledgeAlert,
	// markNotificationsAsRead) or "search".
	Action string `yaml:"action"`

	Args map[string]any `yaml:"args,omitempty"`

	// Expect is optional; nil means the step is not checked.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect checks a single step. Empty fields are not checked.
type Expect struct {
	// Outcome is one of committed, unchanged, rejected.
	Outcome string `yaml:"outcome,omitempty"`

	// Error is the expected session error code, e.g. ALREADY_EXISTS.
	Error string `yaml:"error,omitempty"`

	// Routes, Suppliers and Alerts are the expected search ids in order.
	// A nil list is not checked; an empty list expects no matches.
	Routes    []string `yaml:"routes,omitempty"`
	Suppliers []string `yaml:"suppliers,omitempty"`
	Alerts    []string `yaml:"alerts,omitempty"`
}

// Assertion validates the final state.
type Assertion struct {
	// Type is one of unread_count, notifications, session, acknowledged, flags.
	Type string `yaml:"type"`

	// Count is used by unread_count and notifications.
	Count *int `yaml:"count,omitempty"`

	// Authenticated and Email are used by session. Email is only
	// checked when set.
	Authenticated *bool  `yaml:"authenticated,omitempty"`
	Email         string `yaml:"email,omitempty"`

	// IDs and Acknowledged are used by acknowledged.
	IDs          []string `yaml:"ids,omitempty"`
	Acknowledged *bool    `yaml:"acknowledged,omitempty"`

	// SidebarCollapsed and MobileMenuOpen are used by flags.
	SidebarCollapsed *bool `yaml:"sidebar_collapsed,omitempty"`
	MobileMenuOpen   *bool `yaml:"mobile_menu_open,omitempty"`
}

// Assertion type constants.
const (
	AssertUnreadCount   = "unread_count"
	AssertNotifications = "notifications"
	AssertSession       = "session"
	AssertAcknowledged  = "acknowledged"
	AssertFlags         = "flags"
)

// ActionSearch runs a search query instead of a store operation.
const ActionSearch = "search"

var knownActions = map[string]bool{
	string(state.ActionLogin):             true,
	string(state.ActionSignup):            true,
	string(state.ActionLogout):            true,
	string(state.ActionToggleSidebar):     true,
	string(state.ActionSetMobileMenuOpen): true,
	string(state.ActionAcknowledgeAlert):  true,
	string(state.ActionAcknowledgeAll):    true,
	ActionSearch:                          true,
}

// LoadScenario reads and parses a scenario YAML file. Unknown fields are
// rejected so typos fail loudly.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.Catalog != "" && !filepath.IsAbs(scenario.Catalog) {
		scenario.Catalog = filepath.Join(filepath.Dir(path), scenario.Catalog)
	}
	if scenario.Catalog != "" {
		if _, err := os.Stat(scenario.Catalog); err != nil {
			return nil, fmt.Errorf("invalid scenario: catalog file not found: %s", scenario.Catalog)
		}
	}
	return scenario, nil
}

// ParseScenario parses scenario YAML. Catalog paths are left as written.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, u := range s.Users {
		if u.Email == "" {
			return fmt.Errorf("users[%d]: email is required", i)
		}
	}

	for i, step := range s.Steps {
		if step.Action == "" {
			return fmt.Errorf("steps[%d]: action is required", i)
		}
		if !knownActions[step.Action] {
			return fmt.Errorf("steps[%d]: unknown action %q", i, step.Action)
		}
		if step.Expect == nil {
			continue
		}
		switch step.Expect.Outcome {
		case "", OutcomeCommitted, OutcomeUnchanged, OutcomeRejected:
		default:
			return fmt.Errorf("steps[%d].expect: unknown outcome %q", i, step.Expect.Outcome)
		}
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertUnreadCount, AssertNotifications:
		if a.Count == nil {
			return fmt.Errorf("assertions[%d]: count is required for %s", index, a.Type)
		}
		if *a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
	case AssertSession:
		if a.Authenticated == nil {
			return fmt.Errorf("assertions[%d]: authenticated is required for session", index)
		}
	case AssertAcknowledged:
		if len(a.IDs) == 0 {
			return fmt.Errorf("assertions[%d]: ids list is required for acknowledged", index)
		}
		if a.Acknowledged == nil {
			return fmt.Errorf("assertions[%d]: acknowledged is required for acknowledged", index)
		}
	case AssertFlags:
		if a.SidebarCollapsed == nil && a.MobileMenuOpen == nil {
			return fmt.Errorf("assertions[%d]: flags needs sidebar_collapsed or mobile_menu_open", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
