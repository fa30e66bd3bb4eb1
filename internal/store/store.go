// Package store contains the in-process social store persisted as a single document.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/notos/internal/entities"
	"github.com/Decentr-net/notos/internal/generator"
	"github.com/Decentr-net/notos/internal/storage"
)

var log = logrus.WithField("layer", "store").WithField("package", "store")

// ErrNotFound is returned when a user required by the operation doesn't exist.
var ErrNotFound = fmt.Errorf("not found")

// ErrCorruptSnapshot is returned when the persisted document can't be loaded.
var ErrCorruptSnapshot = fmt.Errorf("corrupt snapshot")

// ErrSelfFollow is returned when a user tries to follow themselves.
var ErrSelfFollow = fmt.Errorf("user can't follow themselves")

// ErrAlreadyExists is returned when an entity with the same id is already stored.
var ErrAlreadyExists = fmt.Errorf("already exists")

const (
	// DefaultKey is the storage key of the snapshot document.
	DefaultKey = "notos_db_v4_full_sim"
	// DefaultMinUsers is the population the store tops up to on load.
	DefaultMinUsers = 100

	seedNotesThreshold = 50
	seedNotesCount     = 30
	usernameAttempts   = 5
	trendingWindow     = 100
)

// Option configures Store.
type Option func(s *Store)

// WithLatency adds an artificial delay to every operation.
func WithLatency(d time.Duration) Option {
	return func(s *Store) {
		s.latency = d
	}
}

// WithKey sets storage key of the snapshot.
func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

// WithClock sets time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithMinUsers sets the population threshold used by LoadOrInit.
func WithMinUsers(n int) Option {
	return func(s *Store) {
		s.minUsers = n
	}
}

// Store keeps users, notes and notifications in memory and writes the whole
// document to storage after every mutation. Every public method is atomic.
type Store struct {
	mu sync.Mutex

	st  storage.Storage
	gen *generator.Generator

	key      string
	latency  time.Duration
	minUsers int
	now      func() time.Time

	users         []entities.User
	notes         []entities.Note
	notifications []entities.Notification
}

// New returns new instance of Store. LoadOrInit should be called before use.
func New(st storage.Storage, gen *generator.Generator, opts ...Option) *Store {
	s := &Store{
		st:       st,
		gen:      gen,
		key:      DefaultKey,
		minUsers: DefaultMinUsers,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// lock acquires the store and waits for the configured latency.
// The caller must call s.mu.Unlock when err is nil.
func (s *Store) lock(ctx context.Context) error {
	s.mu.Lock()

	if s.latency <= 0 {
		return nil
	}

	t := time.NewTimer(s.latency)
	defer t.Stop()

	select {
	case <-ctx.Done():
		s.mu.Unlock()
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (s *Store) timestamp() int64 {
	return s.now().UnixMilli()
}

// LoadOrInit reads the snapshot and tops up the synthetic population when it is too small.
func (s *Store) LoadOrInit(ctx context.Context) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()

	b, err := s.st.Get(ctx, s.key)
	switch {
	case err == nil:
		snap, err := decodeSnapshot(b)
		if err != nil {
			return err
		}
		s.users, s.notes, s.notifications = snap.Users, snap.Notes, snap.Notifications
	case errors.Is(err, storage.ErrNotFound):
		s.users, s.notes, s.notifications = nil, nil, nil
	default:
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	if len(s.users) >= s.minUsers {
		log.WithField("users", len(s.users)).WithField("notes", len(s.notes)).Info("snapshot loaded")
		return nil
	}

	s.seedUsers(s.minUsers - len(s.users))
	if len(s.notes) < seedNotesThreshold {
		s.seedNotes(seedNotesCount)
	}

	log.WithField("users", len(s.users)).WithField("notes", len(s.notes)).Info("snapshot seeded")

	return s.persist(ctx)
}

func (s *Store) seedUsers(n int) {
	taken := make(map[string]struct{}, len(s.users)+n)
	for _, u := range s.users {
		taken[u.Username] = struct{}{}
	}

	for i := 0; i < n; i++ {
		var u entities.User
		for attempt := 0; attempt < usernameAttempts; attempt++ {
			u = s.gen.GenerateUser()
			if _, ok := taken[u.Username]; !ok {
				break
			}
		}

		normalizeUser(&u)
		taken[u.Username] = struct{}{}
		s.users = append(s.users, u)
	}
}

func (s *Store) seedNotes(n int) {
	if len(s.users) == 0 {
		return
	}

	for i := 0; i < n; i++ {
		author := s.users[s.gen.Intn(len(s.users))]
		n := s.gen.GenerateNote(author, true)
		normalizeNote(&n)
		s.notes = append(s.notes, n)
	}

	sortNewestFirst(s.notes)
}

// Save writes the current state to storage.
func (s *Store) Save(ctx context.Context) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()

	return s.persist(ctx)
}

func (s *Store) persist(ctx context.Context) error {
	b, err := encodeSnapshot(snapshot{
		Users:         s.users,
		Notes:         s.notes,
		Notifications: s.notifications,
	})
	if err != nil {
		return err
	}

	if err := s.st.Put(ctx, s.key, b); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	return nil
}

// Ping checks the underlying storage.
func (s *Store) Ping(ctx context.Context) error {
	return s.st.Ping(ctx)
}
