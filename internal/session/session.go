// Package session keeps the current user of the local backend.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/notos/internal/entities"
	"github.com/Decentr-net/notos/internal/storage"
	"github.com/Decentr-net/notos/internal/store"
)

var log = logrus.WithField("layer", "session").WithField("package", "session")

// ErrNotAuthenticated is returned when there is no current user.
var ErrNotAuthenticated = fmt.Errorf("not authenticated")

// Key is the storage key of the current user id.
const Key = "notos_current_user_id"

// Defaults of a freshly created profile.
const (
	DefaultAvatarURL = "https://images.unsplash.com/photo-1535713875002-d1d0cf377fde?w=200&fit=crop&q=80"
	DefaultCoverURL  = "https://images.unsplash.com/photo-1550684848-fac1c5b4e853?w=800&q=80"
	DefaultBio       = "Just joined Notos."
)

// Store is the part of store.Store the session works with.
type Store interface {
	GetUser(ctx context.Context, id string) (*entities.User, error)
	FindUser(ctx context.Context, email, username string) (*entities.User, error)
	CreateUser(ctx context.Context, u entities.User) (*entities.User, error)
}

// Session resolves the current user of the local backend.
type Session struct {
	st    storage.Storage
	store Store
}

// New returns new instance of Session.
func New(st storage.Storage, s Store) *Session {
	return &Session{
		st:    st,
		store: s,
	}
}

// Current returns the current user.
func (s *Session) Current(ctx context.Context) (*entities.User, error) {
	id, err := s.st.Get(ctx, Key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to get current user id: %w", err)
	}

	u, err := s.store.GetUser(ctx, string(id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.WithField("user", string(id)).Warn("current user doesn't exist")
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	return u, nil
}

// Login finds a user by email or username and makes them current.
// Unknown identities get a new minimal profile.
func (s *Session) Login(ctx context.Context, email, username string) (*entities.User, error) {
	u, err := s.store.FindUser(ctx, email, username)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrNotFound):
		if u, err = s.store.CreateUser(ctx, NewProfile(email, username)); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		log.WithField("user", u.ID).Info("user created")
	default:
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.st.Put(ctx, Key, []byte(u.ID)); err != nil {
		return nil, fmt.Errorf("failed to set current user: %w", err)
	}

	return u, nil
}

// Logout forgets the current user.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.st.Delete(ctx, Key); err != nil {
		return fmt.Errorf("failed to delete current user id: %w", err)
	}

	return nil
}

// NewProfile returns a profile of a user who just signed up.
// Empty username is taken from the local part of email.
func NewProfile(email, username string) entities.User {
	if username == "" {
		username, _, _ = strings.Cut(email, "@")
	}

	return entities.User{
		Username:     username,
		DisplayName:  username,
		Email:        email,
		AvatarURL:    DefaultAvatarURL,
		CoverURL:     DefaultCoverURL,
		FollowingIDs: []string{},
		Bio:          DefaultBio,
		Badges:       []string{},
		NotificationSettings: entities.NotificationSettings{
			Likes:    true,
			Follows:  true,
			NewPosts: true,
		},
	}
}
