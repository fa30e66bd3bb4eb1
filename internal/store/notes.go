package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/Decentr-net/notos/internal/entities"
	"github.com/Decentr-net/notos/internal/tags"
)

// GetNotes returns notes ordered newest first. Notes with equal timestamps keep insertion order.
func (s *Store) GetNotes(ctx context.Context) ([]entities.Note, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	return s.sortedNotes(), nil
}

// CreateNote validates the note and puts it in front of the collection.
// Missing id, timestamp and tags are filled in, the author snapshot is taken from the stored user.
func (s *Store) CreateNote(ctx context.Context, n entities.Note) (*entities.Note, error) {
	if err := n.Validate(); err != nil {
		return nil, err
	}

	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	n = n.Clone()
	if n.ID == "" {
		n.ID = "note_" + uuid.NewString()
	} else if s.note(n.ID) != nil {
		return nil, fmt.Errorf("%w: note %s", ErrAlreadyExists, n.ID)
	}
	if n.Timestamp == 0 {
		n.Timestamp = s.timestamp()
	}
	if len(n.Tags) == 0 {
		n.Tags = tags.Extract(n.Content)
	}
	if u := s.user(n.UserID); u != nil {
		n.Author = u.Clone()
	}

	normalizeNote(&n)
	n.Likes = len(n.LikedBy)
	for i := range n.Comments {
		n.Comments[i].Likes = len(n.Comments[i].LikedBy)
	}

	s.notes = slices.Insert(s.notes, 0, n)

	if err := s.persist(ctx); err != nil {
		return nil, err
	}

	c := n.Clone()
	return &c, nil
}

// ToggleLike likes the note on behalf of userID or removes the like.
// A new like from somebody other than the author notifies the author.
// It returns nil note when the note doesn't exist.
func (s *Store) ToggleLike(ctx context.Context, noteID, userID string) (*entities.Note, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	n := s.note(noteID)
	if n == nil {
		log.WithField("note", noteID).Debug("like of missing note ignored")
		return nil, nil
	}

	if n.IsLikedBy(userID) {
		n.LikedBy = remove(n.LikedBy, userID)
		n.Likes = decrement(n.Likes)
	} else {
		n.LikedBy = append(n.LikedBy, userID)
		n.Likes++

		if from := s.user(userID); from != nil && n.UserID != userID {
			s.notify(entities.Notification{
				Type:     entities.LikeNotificationType,
				FromUser: from.Clone(),
				ToUserID: n.UserID,
				NoteID:   n.ID,
			})
		}
	}

	if err := s.persist(ctx); err != nil {
		return nil, err
	}

	c := n.Clone()
	return &c, nil
}

// ToggleCommentLike likes the comment on behalf of userID or removes the like.
// It returns nil note when the note or the comment doesn't exist.
func (s *Store) ToggleCommentLike(ctx context.Context, noteID, commentID, userID string) (*entities.Note, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	n := s.note(noteID)
	if n == nil {
		return nil, nil
	}

	cm := n.Comment(commentID)
	if cm == nil {
		log.WithField("note", noteID).WithField("comment", commentID).Debug("like of missing comment ignored")
		return nil, nil
	}

	if cm.IsLikedBy(userID) {
		cm.LikedBy = remove(cm.LikedBy, userID)
		cm.Likes = decrement(cm.Likes)
	} else {
		cm.LikedBy = append(cm.LikedBy, userID)
		cm.Likes++

		if from := s.user(userID); from != nil && cm.UserID != userID {
			s.notify(entities.Notification{
				Type:      entities.LikeNotificationType,
				FromUser:  from.Clone(),
				ToUserID:  cm.UserID,
				NoteID:    n.ID,
				CommentID: cm.ID,
			})
		}
	}

	if err := s.persist(ctx); err != nil {
		return nil, err
	}

	c := n.Clone()
	return &c, nil
}

// AddComment appends the comment to the note. It doesn't notify anybody.
// It returns nil note when the note doesn't exist.
func (s *Store) AddComment(ctx context.Context, noteID string, cm entities.Comment) (*entities.Note, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	n := s.note(noteID)
	if n == nil {
		return nil, nil
	}

	if cm.ID == "" {
		cm.ID = "comment_" + uuid.NewString()
	} else if n.Comment(cm.ID) != nil {
		return nil, fmt.Errorf("%w: comment %s", ErrAlreadyExists, cm.ID)
	}
	if cm.Timestamp == 0 {
		cm.Timestamp = s.timestamp()
	}

	cm.LikedBy = slices.Clone(cm.LikedBy)
	if cm.LikedBy == nil {
		cm.LikedBy = []string{}
	}
	cm.Likes = len(cm.LikedBy)

	n.Comments = append(n.Comments, cm)

	if err := s.persist(ctx); err != nil {
		return nil, err
	}

	c := n.Clone()
	return &c, nil
}

func (s *Store) note(id string) *entities.Note {
	for i := range s.notes {
		if s.notes[i].ID == id {
			return &s.notes[i]
		}
	}

	return nil
}

func (s *Store) sortedNotes() []entities.Note {
	out := make([]entities.Note, len(s.notes))
	for i, n := range s.notes {
		out[i] = n.Clone()
	}

	sortNewestFirst(out)

	return out
}

func remove(list []string, v string) []string {
	return slices.DeleteFunc(list, func(s string) bool {
		return s == v
	})
}
