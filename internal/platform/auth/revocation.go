package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/persistence"
)

// Storage is the slice of persistence.Medium the session layer writes to.
type Storage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, blob []byte) error
	Delete(ctx context.Context, key string) error
}

// RevokedKey is the storage key of the revocation list.
const RevokedKey = "hms_revoked"

// RevocationInfo is one revoked token.
type RevocationInfo struct {
	JTI       string    `json:"jti"`
	UserID    string    `json:"userId,omitempty"`
	RevokedAt time.Time `json:"revokedAt"`
}

// TokenRevocationStore tracks revoked token ids. Tokens never expire, so
// entries are kept for good and the list is written through to storage on
// every revocation. Safe for concurrent use.
type TokenRevocationStore struct {
	mu      sync.RWMutex
	entries map[string]RevocationInfo // JTI -> entry
	storage Storage
	now     func() time.Time
}

// NewTokenRevocationStore returns a store persisted in storage. A nil storage
// keeps the list in memory only.
func NewTokenRevocationStore(storage Storage) *TokenRevocationStore {
	return &TokenRevocationStore{
		entries: make(map[string]RevocationInfo),
		storage: storage,
		now:     time.Now,
	}
}

// Load reads the persisted list. A missing or unreadable list leaves the
// store empty; only medium failures are returned.
func (s *TokenRevocationStore) Load(ctx context.Context) error {
	if s.storage == nil {
		return nil
	}
	blob, err := s.storage.Load(ctx, RevokedKey)
	if errors.Is(err, persistence.ErrAbsent) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load revocations: %w", err)
	}
	var list []RevocationInfo
	if err := json.Unmarshal(blob, &list); err != nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range list {
		if e.JTI != "" {
			s.entries[e.JTI] = e
		}
	}
	return nil
}

// Revoke adds a token's JTI to the revocation list.
func (s *TokenRevocationStore) Revoke(ctx context.Context, jti string) error {
	return s.RevokeForUser(ctx, jti, "")
}

// RevokeForUser adds a token's JTI to the list and records its subject.
func (s *TokenRevocationStore) RevokeForUser(ctx context.Context, jti, userID string) error {
	if jti == "" {
		return errors.New("revoke: empty token id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[jti]; ok {
		return nil
	}
	next := make(map[string]RevocationInfo, len(s.entries)+1)
	for k, v := range s.entries {
		next[k] = v
	}
	next[jti] = RevocationInfo{JTI: jti, UserID: userID, RevokedAt: s.now().UTC()}
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.entries = next
	return nil
}

// IsRevoked checks if a token JTI has been revoked.
func (s *TokenRevocationStore) IsRevoked(jti string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.entries[jti]
	return ok
}

// Count returns the number of revoked tokens.
func (s *TokenRevocationStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// Entries returns a snapshot of every entry ordered by revocation time.
func (s *TokenRevocationStore) Entries() []RevocationInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedEntries(s.entries)
}

func (s *TokenRevocationStore) persist(ctx context.Context, entries map[string]RevocationInfo) error {
	if s.storage == nil {
		return nil
	}
	blob, err := json.Marshal(sortedEntries(entries))
	if err != nil {
		return fmt.Errorf("encode revocations: %w", err)
	}
	if err := s.storage.Save(ctx, RevokedKey, blob); err != nil {
		return fmt.Errorf("save revocations: %w", err)
	}
	return nil
}

func sortedEntries(entries map[string]RevocationInfo) []RevocationInfo {
	out := make([]RevocationInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RevokedAt.Equal(out[j].RevokedAt) {
			return out[i].JTI < out[j].JTI
		}
		return out[i].RevokedAt.Before(out[j].RevokedAt)
	})
	return out
}
