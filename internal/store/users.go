package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/Decentr-net/notos/internal/entities"
)

// GetUsers returns all users.
func (s *Store) GetUsers(ctx context.Context) ([]entities.User, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	out := make([]entities.User, len(s.users))
	for i, u := range s.users {
		out[i] = u.Clone()
	}

	return out, nil
}

// GetUser returns user by id.
func (s *Store) GetUser(ctx context.Context, id string) (*entities.User, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	u := s.user(id)
	if u == nil {
		return nil, ErrNotFound
	}

	c := u.Clone()
	return &c, nil
}

// FindUser returns the first user with the given email or username.
// Empty values never match. It returns ErrNotFound when nobody matches.
func (s *Store) FindUser(ctx context.Context, email, username string) (*entities.User, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	for i := range s.users {
		u := &s.users[i]
		if (email != "" && u.Email == email) || (username != "" && u.Username == username) {
			c := u.Clone()
			return &c, nil
		}
	}

	return nil, ErrNotFound
}

// CreateUser stores a new user. Empty id is generated.
func (s *Store) CreateUser(ctx context.Context, u entities.User) (*entities.User, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	if u.ID == "" {
		u.ID = "user_" + uuid.NewString()
	} else if s.user(u.ID) != nil {
		return nil, fmt.Errorf("%w: user %s", ErrAlreadyExists, u.ID)
	}

	u = u.Clone()
	normalizeUser(&u)
	s.users = append(s.users, u)

	if err := s.persist(ctx); err != nil {
		return nil, err
	}

	c := u.Clone()
	return &c, nil
}

// UpdateUser merges the update into the user and refreshes every embedded snapshot of them.
func (s *Store) UpdateUser(ctx context.Context, id string, upd entities.UserUpdate) (*entities.User, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	u := s.user(id)
	if u == nil {
		return nil, fmt.Errorf("failed to update user %s: %w", id, ErrNotFound)
	}

	upd.Apply(u, s.timestamp())
	normalizeUser(u)
	s.syncSnapshots(u)

	if err := s.persist(ctx); err != nil {
		return nil, err
	}

	c := u.Clone()
	return &c, nil
}

// MarkTutorialSeen sets the onboarding flag. Unknown users are ignored.
func (s *Store) MarkTutorialSeen(ctx context.Context, id string) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()

	u := s.user(id)
	if u == nil || u.HasSeenTutorial {
		return nil
	}

	u.HasSeenTutorial = true
	s.syncSnapshots(u)

	return s.persist(ctx)
}

// ToggleFollow adds or removes the follow edge from followerID to targetID and
// returns both users after the change.
func (s *Store) ToggleFollow(ctx context.Context, followerID, targetID string) (*entities.User, *entities.User, error) {
	if err := s.lock(ctx); err != nil {
		return nil, nil, err
	}
	defer s.mu.Unlock()

	if followerID == targetID {
		return nil, nil, ErrSelfFollow
	}

	follower, target := s.user(followerID), s.user(targetID)
	if follower == nil {
		return nil, nil, fmt.Errorf("failed to find follower %s: %w", followerID, ErrNotFound)
	}
	if target == nil {
		return nil, nil, fmt.Errorf("failed to find target %s: %w", targetID, ErrNotFound)
	}

	if follower.IsFollowing(targetID) {
		follower.FollowingIDs = slices.DeleteFunc(follower.FollowingIDs, func(id string) bool {
			return id == targetID
		})
		follower.Following = decrement(follower.Following)
		target.Followers = decrement(target.Followers)
	} else {
		follower.FollowingIDs = append(follower.FollowingIDs, targetID)
		follower.Following++
		target.Followers++

		s.notify(entities.Notification{
			Type:     entities.FollowNotificationType,
			FromUser: follower.Clone(),
			ToUserID: targetID,
		})
	}

	s.syncSnapshots(follower)
	s.syncSnapshots(target)

	if err := s.persist(ctx); err != nil {
		return nil, nil, err
	}

	f, t := follower.Clone(), target.Clone()
	return &f, &t, nil
}

func (s *Store) user(id string) *entities.User {
	for i := range s.users {
		if s.users[i].ID == id {
			return &s.users[i]
		}
	}

	return nil
}

// syncSnapshots refreshes every denormalized copy of u.
func (s *Store) syncSnapshots(u *entities.User) {
	for i := range s.notes {
		if s.notes[i].UserID == u.ID {
			s.notes[i].Author = u.Clone()
		}
	}

	for i := range s.notifications {
		if s.notifications[i].FromUser.ID == u.ID {
			s.notifications[i].FromUser = u.Clone()
		}
	}
}

func decrement(v int) int {
	if v <= 0 {
		return 0
	}
	return v - 1
}
