// Package harness runs YAML scenarios against a fresh dashboard store.
//
// A scenario registers users, drives the store through a list of steps
// (login, signup, alert acknowledgment, chrome toggles, search) and then
// checks assertions against the final state. Every step is recorded in a
// trace; the trace can be compared against a golden file so behavior
// changes show up as diffs.
//
// Each run gets its own in-memory SQLite database for the credential list,
// so scenarios are isolated and deterministic. The trace records logical
// versions, never wall-clock time.
//
// Scenario format:
//
//	name: acknowledge_flow
//	description: Sign in and clear the notification bell
//	users:
//	  - {name: Ada, email: ada@mooj.tech, password: "Secret#123"}
//	steps:
//	  - action: login
//	    args: {email: ada@mooj.tech, password: "Secret#123"}
//	    expect: {outcome: committed}
//	  - action: markNotificationsAsRead
//	assertions:
//	  - type: unread_count
//	    count: 0
package harness
