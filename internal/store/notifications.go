package store

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/google/uuid"

	"github.com/Decentr-net/notos/internal/entities"
)

// GetNotifications returns notifications addressed to userID, newest first.
func (s *Store) GetNotifications(ctx context.Context, userID string) ([]entities.Notification, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	out := make([]entities.Notification, 0)
	for _, n := range s.notifications {
		if n.ToUserID == userID {
			out = append(out, n.Clone())
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})

	return out, nil
}

// MarkNotificationsRead marks every notification of userID as read.
func (s *Store) MarkNotificationsRead(ctx context.Context, userID string) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()

	var changed bool
	for i := range s.notifications {
		if s.notifications[i].ToUserID == userID && !s.notifications[i].Read {
			s.notifications[i].Read = true
			changed = true
		}
	}

	if !changed {
		return nil
	}

	return s.persist(ctx)
}

// CreateNotification puts the notification in front of the collection.
func (s *Store) CreateNotification(ctx context.Context, n entities.Notification) (*entities.Notification, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	if n.ID != "" && slices.ContainsFunc(s.notifications, func(v entities.Notification) bool { return v.ID == n.ID }) {
		return nil, fmt.Errorf("%w: notification %s", ErrAlreadyExists, n.ID)
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}

	created := s.notify(n.Clone())

	if err := s.persist(ctx); err != nil {
		return nil, err
	}

	c := created.Clone()
	return &c, nil
}

// notify prepends n filling id and timestamp when missing.
func (s *Store) notify(n entities.Notification) entities.Notification {
	if n.ID == "" {
		n.ID = "notification_" + uuid.NewString()
	}
	if n.Timestamp == 0 {
		n.Timestamp = s.timestamp()
	}
	normalizeUser(&n.FromUser)

	s.notifications = append([]entities.Notification{n}, s.notifications...)

	return n
}
