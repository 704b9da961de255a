package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/persistence"
)

// SessionKey is the storage key of the stored session credential.
const SessionKey = "hms_session"

// State is the resolution state of a session.
type State int

const (
	StateUnresolved State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUnresolved:
		return "unresolved"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Session is a read-only snapshot of who is acting. Subject and Role are set
// only when State is StateAuthenticated.
type Session struct {
	State    State     `json:"state"`
	Subject  string    `json:"subject,omitempty"`
	Role     Role      `json:"role,omitempty"`
	TokenID  string    `json:"-"`
	IssuedAt time.Time `json:"issuedAt,omitempty"`
}

// Authenticated reports whether the session carries an identity.
func (s Session) Authenticated() bool { return s.State == StateAuthenticated }

// Anonymous is the resolved session of nobody.
func Anonymous() Session { return Session{State: StateUnauthenticated} }

func sessionFromClaims(c Claims) Session {
	s := Session{
		State:   StateAuthenticated,
		Subject: c.Subject,
		Role:    c.Role,
		TokenID: c.ID,
	}
	if c.IssuedAt != nil {
		s.IssuedAt = c.IssuedAt.Time.UTC()
	}
	return s
}

// Manager owns the single local session. It starts unresolved, resolves
// from the stored credential and moves between unauthenticated and
// authenticated on Login and Logout.
type Manager struct {
	mu       sync.Mutex
	storage  Storage
	tokens   *Tokens
	accounts *Directory
	revoked  *TokenRevocationStore
	logger   zerolog.Logger

	current Session
}

func NewManager(storage Storage, tokens *Tokens, accounts *Directory, revoked *TokenRevocationStore, logger zerolog.Logger) *Manager {
	return &Manager{
		storage:  storage,
		tokens:   tokens,
		accounts: accounts,
		revoked:  revoked,
		logger:   logger,
		current:  Session{State: StateUnresolved},
	}
}

// Current returns the session as it stands.
func (m *Manager) Current() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Resolve reads the stored credential. A missing, invalid or revoked
// credential resolves to an unauthenticated session and is cleared. A
// storage failure also resolves unauthenticated and is returned.
func (m *Manager) Resolve(ctx context.Context) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	err := m.resolve(ctx)
	return m.current, err
}

func (m *Manager) resolve(ctx context.Context) error {
	m.current = Anonymous()
	blob, err := m.storage.Load(ctx, SessionKey)
	if errors.Is(err, persistence.ErrAbsent) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	claims, err := m.tokens.Verify(strings.TrimSpace(string(blob)))
	if err == nil && m.revoked.IsRevoked(claims.ID) {
		err = errors.New("token revoked")
	}
	if err != nil {
		m.logger.Warn().Err(err).Msg("discarding stored session credential")
		if delErr := m.storage.Delete(ctx, SessionKey); delErr != nil {
			return fmt.Errorf("clear session: %w", delErr)
		}
		return nil
	}
	m.current = sessionFromClaims(claims)
	return nil
}

// Login authenticates identifier with secret as role. An unresolved manager
// resolves first; an authenticated one has its session replaced on success
// and kept on failure. It returns the new session and its signed token.
func (m *Manager) Login(ctx context.Context, identifier, secret string, role Role) (Session, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current.State == StateUnresolved {
		if err := m.resolve(ctx); err != nil {
			return m.current, "", err
		}
	}
	acct, err := m.accounts.Authenticate(identifier, secret, role)
	if err != nil {
		m.logger.Info().Str("identifier", identifier).Str("role", string(role)).Err(err).Msg("login rejected")
		return m.current, "", err
	}
	raw, claims, err := m.tokens.Issue(acct.Identifier, role)
	if err != nil {
		return m.current, "", err
	}
	if err := m.storage.Save(ctx, SessionKey, []byte(raw)); err != nil {
		return m.current, "", fmt.Errorf("save session: %w", err)
	}
	if prev := m.current; prev.Authenticated() {
		if err := m.revoked.RevokeForUser(ctx, prev.TokenID, prev.Subject); err != nil {
			m.logger.Warn().Err(err).Str("jti", prev.TokenID).Msg("revoke replaced session")
		}
	}
	m.current = sessionFromClaims(claims)
	m.logger.Info().Str("subject", acct.Identifier).Str("role", string(role)).Msg("login")
	return m.current, raw, nil
}

// Logout ends the session: the token is revoked and the stored credential
// deleted. Logging out while unauthenticated only clears storage.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current.State == StateUnresolved {
		if err := m.resolve(ctx); err != nil {
			return err
		}
	}
	if prev := m.current; prev.Authenticated() {
		if err := m.revoked.RevokeForUser(ctx, prev.TokenID, prev.Subject); err != nil {
			return err
		}
		m.logger.Info().Str("subject", prev.Subject).Msg("logout")
	}
	if err := m.storage.Delete(ctx, SessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	m.current = Anonymous()
	return nil
}
