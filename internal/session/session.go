// Package session owns the single authenticated identity of the process.
//
// Manager is not safe for concurrent use on its own; it is embedded in the
// reactive state store, which serializes every call.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/opsdash/internal/credential"
)

// Company is the organization name attached to every session.
const Company = "Mooj-Tech Logistics"

// Session is the authenticated identity.
type Session struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
}

// Credentials is the account lookup the manager depends on.
// *credential.Store satisfies it.
type Credentials interface {
	Insert(ctx context.Context, rec credential.Record) error
	Find(email, password string) (credential.Record, bool)
}

// Manager establishes and clears the current Session.
type Manager struct {
	creds   Credentials
	current *Session
	logger  *slog.Logger
}

// NewManager creates a manager with no active session.
func NewManager(creds Credentials, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{creds: creds, logger: logger}
}

// Current returns a copy of the active session, or nil.
func (m *Manager) Current() *Session {
	if m.current == nil {
		return nil
	}
	s := *m.current
	return &s
}

// Register creates an account and signs it in. On failure the prior
// session, if any, is unchanged.
func (m *Manager) Register(ctx context.Context, name, email, password string) (Session, error) {
	err := m.creds.Insert(ctx, credential.Record{Name: name, Email: email, Password: password})
	if errors.Is(err, credential.ErrAlreadyExists) {
		m.logger.Info("registration rejected", "email", email, "reason", ErrCodeAlreadyExists)
		return Session{}, newAlreadyExists(err)
	}
	if err != nil {
		return Session{}, fmt.Errorf("register %s: %w", email, err)
	}

	s := m.establish(name, email)
	m.logger.Info("account registered", "email", email)
	return s, nil
}

// Authenticate signs in an existing account. An unknown email and a wrong
// password produce the same error.
func (m *Manager) Authenticate(email, password string) (Session, error) {
	rec, ok := m.creds.Find(email, password)
	if !ok {
		m.logger.Info("authentication failed", "email", email)
		return Session{}, newAuthenticationFailed()
	}

	s := m.establish(rec.Name, rec.Email)
	m.logger.Info("session established", "email", rec.Email)
	return s, nil
}

// Terminate clears the session. Returns false if there was none.
func (m *Manager) Terminate() bool {
	if m.current == nil {
		return false
	}
	m.logger.Info("session terminated", "email", m.current.Email)
	m.current = nil
	return true
}

func (m *Manager) establish(name, email string) Session {
	s := Session{Name: name, Email: email, Company: Company}
	m.current = &s
	return s
}
