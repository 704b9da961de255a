// Package store holds the generic write-through collection the hospital data
// store is built from. A Collection owns one ordered slice of records, mints
// their ids, validates them and mirrors the full slice to a persistence
// medium before any mutation returns.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/persistence"
)

// Record is satisfied by the pointer type of every entity a Collection holds.
type Record[E any] interface {
	*E
	GetID() string
	SetID(id string)
}

// Validator is implemented by records that check their own invariants.
type Validator interface {
	Validate() error
}

// Defaulter is implemented by records that fill in unset fields when they
// are first added, before validation.
type Defaulter interface {
	Defaults(now time.Time)
}

// Deriver is implemented by records with fields computed from other
// fields. Derive runs on every add and update, before validation.
type Deriver interface {
	Derive()
}

// Stamper is implemented by records that carry mutation timestamps.
type Stamper interface {
	Stamp(now time.Time, created bool)
}

// Medium is the part of persistence.Medium a collection needs.
type Medium interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, blob []byte) error
}

// Collection is an ordered, id-unique set of records of one entity kind.
type Collection[E any, P Record[E]] struct {
	mu       sync.RWMutex
	name     string
	key      string
	tag      string
	items    []E
	medium   Medium
	observer Observer
	now      func() time.Time
	newToken func() string
}

// Option customizes a Collection.
type Option func(*settings)

type settings struct {
	observer Observer
	now      func() time.Time
	newToken func() string
}

// WithObserver registers an observer notified after every committed mutation.
func WithObserver(o Observer) Option {
	return func(s *settings) { s.observer = o }
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// WithTokenSource overrides the random part of minted ids.
func WithTokenSource(fn func() string) Option {
	return func(s *settings) { s.newToken = fn }
}

// NewCollection returns an empty collection persisted under key. Minted ids
// are tag + "-" + a UUID v4.
func NewCollection[E any, P Record[E]](name, key, tag string, medium Medium, opts ...Option) *Collection[E, P] {
	s := settings{now: time.Now, newToken: uuid.NewString}
	for _, opt := range opts {
		opt(&s)
	}
	return &Collection[E, P]{
		name:     name,
		key:      key,
		tag:      tag,
		medium:   medium,
		observer: s.observer,
		now:      s.now,
		newToken: s.newToken,
	}
}

// Name returns the collection name, e.g. "patients".
func (c *Collection[E, P]) Name() string { return c.name }

// Key returns the persistence key.
func (c *Collection[E, P]) Key() string { return c.key }

// Add assigns a fresh id, fills defaults and timestamps where the record
// carries them, validates, appends and writes the collection through.
func (c *Collection[E, P]) Add(ctx context.Context, rec E) (E, error) {
	var zero E
	c.mu.Lock()
	defer c.mu.Unlock()

	rec = c.clone(rec)
	p := P(&rec)
	p.SetID(c.mintID())
	now := c.now().UTC()
	if d, ok := any(p).(Defaulter); ok {
		d.Defaults(now)
	}
	if s, ok := any(p).(Stamper); ok {
		s.Stamp(now, true)
	}
	if d, ok := any(p).(Deriver); ok {
		d.Derive()
	}
	if err := c.validate(p); err != nil {
		return zero, err
	}

	next := make([]E, len(c.items), len(c.items)+1)
	copy(next, c.items)
	next = append(next, rec)
	if err := c.commit(ctx, next); err != nil {
		return zero, err
	}
	c.notify(ActionCreated, p.GetID())
	return c.clone(rec), nil
}

// Update shallow-merges patch into the record with id. It never creates a
// record; an unknown id yields ErrNotFound and leaves the collection as is.
func (c *Collection[E, P]) Update(ctx context.Context, id string, patch Patch) (E, error) {
	var zero E
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(id)
	if idx < 0 {
		return zero, fmt.Errorf("%s %s: %w", c.name, id, ErrNotFound)
	}
	merged, err := merge(c.items[idx], patch)
	if err != nil {
		return zero, c.named(err)
	}
	p := P(&merged)
	p.SetID(id)
	if s, ok := any(p).(Stamper); ok {
		s.Stamp(c.now().UTC(), false)
	}
	if d, ok := any(p).(Deriver); ok {
		d.Derive()
	}
	if err := c.validate(p); err != nil {
		return zero, err
	}

	next := make([]E, len(c.items))
	copy(next, c.items)
	next[idx] = merged
	if err := c.commit(ctx, next); err != nil {
		return zero, err
	}
	c.notify(ActionUpdated, id)
	return c.clone(merged), nil
}

// Delete removes the record with id and reports whether one was removed.
func (c *Collection[E, P]) Delete(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	next := make([]E, 0, len(c.items)-1)
	next = append(next, c.items[:idx]...)
	next = append(next, c.items[idx+1:]...)
	if err := c.commit(ctx, next); err != nil {
		return false, err
	}
	c.notify(ActionDeleted, id)
	return true, nil
}

// DeleteWhere removes every record matching pred with a single write and
// returns how many were removed.
func (c *Collection[E, P]) DeleteWhere(ctx context.Context, pred func(E) bool) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]E, 0, len(c.items))
	var removed []string
	for _, item := range c.items {
		if pred(item) {
			removed = append(removed, P(&item).GetID())
			continue
		}
		next = append(next, item)
	}
	if len(removed) == 0 {
		return 0, nil
	}
	if err := c.commit(ctx, next); err != nil {
		return 0, err
	}
	for _, id := range removed {
		c.notify(ActionDeleted, id)
	}
	return len(removed), nil
}

// Get returns the record with id or ErrNotFound.
func (c *Collection[E, P]) Get(id string) (E, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx := c.indexOf(id)
	if idx < 0 {
		var zero E
		return zero, fmt.Errorf("%s %s: %w", c.name, id, ErrNotFound)
	}
	return c.clone(c.items[idx]), nil
}

// All returns every record in collection order.
func (c *Collection[E, P]) All() []E {
	return c.Filter(nil)
}

// Filter returns the records matching pred in collection order. A nil pred
// matches everything. The result is never nil.
func (c *Collection[E, P]) Filter(pred func(E) bool) []E {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]E, 0, len(c.items))
	for _, item := range c.items {
		if pred == nil || pred(item) {
			out = append(out, c.clone(item))
		}
	}
	return out
}

// Any reports whether at least one record matches pred.
func (c *Collection[E, P]) Any(pred func(E) bool) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if pred(item) {
			return true
		}
	}
	return false
}

// Len returns the number of records.
func (c *Collection[E, P]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Source tells where Hydrate took the records from.
type Source string

const (
	SourceMedium   Source = "medium"
	SourceSeed     Source = "seed"
	SourceReseeded Source = "reseeded" // stored blob was unreadable
)

// HydrateResult describes one collection's startup load.
type HydrateResult struct {
	Collection string
	Source     Source
	Count      int
	// Corruption is the decode failure that forced a re-seed, if any.
	Corruption error
}

// Hydrate fills the collection from the medium. When nothing is stored, or
// the stored blob cannot be decoded, the seed records are used instead and
// saved immediately so memory and medium agree.
func (c *Collection[E, P]) Hydrate(ctx context.Context, seed []E) (HydrateResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res := HydrateResult{Collection: c.name}
	blob, err := c.medium.Load(ctx, c.key)
	switch {
	case err == nil:
		items, decErr := c.decode(blob)
		if decErr == nil {
			c.items = items
			res.Source = SourceMedium
			res.Count = len(items)
			return res, nil
		}
		res.Corruption = decErr
		res.Source = SourceReseeded
	case errors.Is(err, persistence.ErrAbsent):
		res.Source = SourceSeed
	default:
		return res, fmt.Errorf("load %s: %w", c.key, err)
	}

	items := make([]E, len(seed))
	for i, s := range seed {
		items[i] = c.clone(s)
	}
	if err := c.commit(ctx, items); err != nil {
		return res, err
	}
	res.Count = len(items)
	return res, nil
}

// Reset replaces the whole collection with records and writes it through.
func (c *Collection[E, P]) Reset(ctx context.Context, records []E) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]E, len(records))
	for i, r := range records {
		items[i] = c.clone(r)
	}
	return c.commit(ctx, items)
}

// commit persists next and only then makes it the live slice, so a failed
// write leaves memory and medium in agreement.
func (c *Collection[E, P]) commit(ctx context.Context, next []E) error {
	blob, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.name, err)
	}
	if err := c.medium.Save(ctx, c.key, blob); err != nil {
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	c.items = next
	return nil
}

func (c *Collection[E, P]) decode(blob []byte) ([]E, error) {
	dec := json.NewDecoder(bytes.NewReader(blob))
	var items []E
	if err := dec.Decode(&items); err != nil {
		return nil, err
	}
	if items == nil {
		// a stored JSON null is not a collection
		if bytes.Equal(bytes.TrimSpace(blob), []byte("null")) {
			return nil, errors.New("stored value is null")
		}
		items = []E{}
	}
	seen := make(map[string]bool, len(items))
	for i := range items {
		id := P(&items[i]).GetID()
		if id == "" {
			return nil, fmt.Errorf("record %d has no id", i)
		}
		if seen[id] {
			return nil, fmt.Errorf("duplicate id %q", id)
		}
		seen[id] = true
	}
	return items, nil
}

func (c *Collection[E, P]) mintID() string {
	for {
		id := c.tag + "-" + c.newToken()
		if c.indexOf(id) < 0 {
			return id
		}
	}
}

func (c *Collection[E, P]) indexOf(id string) int {
	for i := range c.items {
		if P(&c.items[i]).GetID() == id {
			return i
		}
	}
	return -1
}

func (c *Collection[E, P]) validate(p P) error {
	v, ok := any(p).(Validator)
	if !ok {
		return nil
	}
	return c.named(v.Validate())
}

// named stamps the collection name onto validation errors.
func (c *Collection[E, P]) named(err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) && ve.Collection == "" {
		ve.Collection = c.name
	}
	return err
}

// clone copies rec, deep-copying slices for records that know how.
func (c *Collection[E, P]) clone(rec E) E {
	if cl, ok := any(P(&rec)).(interface{ Clone() E }); ok {
		return cl.Clone()
	}
	return rec
}

func (c *Collection[E, P]) notify(action Action, id string) {
	if c.observer == nil {
		return
	}
	c.observer.Changed(ChangeEvent{
		Collection: c.name,
		Action:     action,
		ID:         id,
		At:         c.now().UTC(),
	})
}
