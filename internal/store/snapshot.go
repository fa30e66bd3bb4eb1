package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/Decentr-net/notos/internal/entities"
)

type snapshot struct {
	Users         []entities.User         `json:"users"`
	Notes         []entities.Note         `json:"notes"`
	Notifications []entities.Notification `json:"notifications"`
}

func encodeSnapshot(s snapshot) ([]byte, error) {
	if s.Users == nil {
		s.Users = []entities.User{}
	}
	if s.Notes == nil {
		s.Notes = []entities.Note{}
	}
	if s.Notifications == nil {
		s.Notifications = []entities.Notification{}
	}

	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	return b, nil
}

func decodeSnapshot(b []byte) (snapshot, error) {
	var s snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return snapshot{}, fmt.Errorf("%w: %s", ErrCorruptSnapshot, err)
	}

	for i := range s.Users {
		normalizeUser(&s.Users[i])
	}

	for i := range s.Notes {
		if err := s.Notes[i].Validate(); err != nil {
			return snapshot{}, fmt.Errorf("%w: note %s: %s", ErrCorruptSnapshot, s.Notes[i].ID, err)
		}
		normalizeNote(&s.Notes[i])
	}

	for i := range s.Notifications {
		if err := s.Notifications[i].Validate(); err != nil {
			return snapshot{}, fmt.Errorf("%w: notification %s: %s", ErrCorruptSnapshot, s.Notifications[i].ID, err)
		}
		normalizeUser(&s.Notifications[i].FromUser)
	}

	return s, nil
}

func normalizeUser(u *entities.User) {
	if u.FollowingIDs == nil {
		u.FollowingIDs = []string{}
	}
	if u.Badges == nil {
		u.Badges = []string{}
	}
}

func normalizeNote(n *entities.Note) {
	normalizeUser(&n.Author)

	if n.LikedBy == nil {
		n.LikedBy = []string{}
	}
	if n.Comments == nil {
		n.Comments = []entities.Comment{}
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}

	for i := range n.Comments {
		if n.Comments[i].LikedBy == nil {
			n.Comments[i].LikedBy = []string{}
		}
	}
}

func sortNewestFirst(notes []entities.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Timestamp > notes[j].Timestamp
	})
}

// Export is a deep copy of the whole social graph.
type Export struct {
	Users         []entities.User
	Notes         []entities.Note
	Notifications []entities.Notification
}

// Export returns a copy of every collection in storage order.
func (s *Store) Export(ctx context.Context) (*Export, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	e := &Export{
		Users:         make([]entities.User, len(s.users)),
		Notes:         make([]entities.Note, len(s.notes)),
		Notifications: make([]entities.Notification, len(s.notifications)),
	}

	for i, u := range s.users {
		e.Users[i] = u.Clone()
	}
	for i, n := range s.notes {
		e.Notes[i] = n.Clone()
	}
	for i, n := range s.notifications {
		e.Notifications[i] = n.Clone()
	}

	return e, nil
}
