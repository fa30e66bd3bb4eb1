// Package simulator keeps the synthetic world busy with ghost activity.
package simulator

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/notos/internal/entities"
	"github.com/Decentr-net/notos/internal/generator"
)

//go:generate mockgen -destination=./mock/simulator.go -package=mock -source=simulator.go

var log = logrus.WithField("layer", "simulator").WithField("package", "simulator")

// Store is the part of store.Store the simulator works with.
type Store interface {
	GetUsers(ctx context.Context) ([]entities.User, error)
	GetNotes(ctx context.Context) ([]entities.Note, error)
	CreateNote(ctx context.Context, n entities.Note) (*entities.Note, error)
	ToggleFollow(ctx context.Context, followerID, targetID string) (*entities.User, *entities.User, error)
	ToggleLike(ctx context.Context, noteID, userID string) (*entities.Note, error)
	AddComment(ctx context.Context, noteID string, c entities.Comment) (*entities.Note, error)
	CreateNotification(ctx context.Context, n entities.Notification) (*entities.Notification, error)
}

// Kind is a kind of a visible ghost action.
type Kind string

const (
	// PostKind ...
	PostKind Kind = "POST"
	// FollowKind ...
	FollowKind Kind = "FOLLOW"
	// LikeKind ...
	LikeKind Kind = "LIKE"
	// CommentKind ...
	CommentKind Kind = "COMMENT"
)

// Cumulative upper bounds of the action bands.
const (
	postBand   = 0.30
	followBand = 0.45
	likeBand   = 0.80
)

// ActionResult describes what a ghost did to the current user. It isn't persisted.
type ActionResult struct {
	Kind Kind          `json:"type"`
	Text string        `json:"text"`
	User entities.User `json:"user"`
}

// Option configures Simulator.
type Option func(s *Simulator)

// WithRoll replaces the source of the band draw.
func WithRoll(roll func() float64) Option {
	return func(s *Simulator) {
		s.roll = roll
	}
}

// Simulator performs ghost activity steps against Store.
type Simulator struct {
	st   Store
	gen  *generator.Generator
	roll func() float64
}

// New returns new instance of Simulator.
func New(st Store, gen *generator.Generator, opts ...Option) *Simulator {
	s := &Simulator{
		st:   st,
		gen:  gen,
		roll: gen.Float64,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run performs a step every interval until ctx is done.
// It returns nil without simulating when currentUserID is unknown.
func (s *Simulator) Run(ctx context.Context, currentUserID string, interval time.Duration) error {
	l := log.WithField("user", currentUserID)

	users, err := s.st.GetUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to get users: %w", err)
	}
	if !slices.ContainsFunc(users, func(u entities.User) bool { return u.ID == currentUserID }) {
		l.Warn("unknown user, simulator disabled")
		return nil
	}

	t := time.NewTicker(interval)
	defer t.Stop()

	l.WithField("interval", interval).Info("simulator started")

	for {
		select {
		case <-ctx.Done():
			l.Info("simulator stopped")
			return nil
		case <-t.C:
			res, err := s.Step(ctx, currentUserID)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("failed to simulate: %w", err)
			}

			if res != nil {
				l.WithField("kind", res.Kind).WithField("actor", res.User.Username).Info(res.Text)
			}
		}
	}
}

// Step performs at most one action visible to currentUserID and one background interaction
// between two other users. It returns nil result when the visible action didn't happen.
func (s *Simulator) Step(ctx context.Context, currentUserID string) (*ActionResult, error) {
	if currentUserID == "" {
		return nil, nil
	}

	users, err := s.st.GetUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	others := make([]entities.User, 0, len(users))
	for _, u := range users {
		if u.ID != currentUserID {
			others = append(others, u)
		}
	}

	if len(others) == 0 {
		return nil, nil
	}

	notes, err := s.st.GetNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get notes: %w", err)
	}

	r := s.roll()
	actor := others[s.gen.Intn(len(others))]

	res, err := s.act(ctx, r, actor, currentUserID, notesOf(notes, currentUserID))
	if err != nil {
		return nil, err
	}

	if err := s.background(ctx, others, notes); err != nil {
		return nil, err
	}

	return res, nil
}

func (s *Simulator) act(ctx context.Context, r float64, actor entities.User, currentUserID string, own []entities.Note) (*ActionResult, error) {
	switch {
	case r < postBand:
		n := s.gen.GenerateNote(actor, false)
		n.Timestamp = 0
		if _, err := s.st.CreateNote(ctx, n); err != nil {
			return nil, fmt.Errorf("failed to create note: %w", err)
		}

		return &ActionResult{Kind: PostKind, Text: "posted a new note", User: actor}, nil

	case r < followBand:
		if actor.IsFollowing(currentUserID) {
			return nil, nil
		}

		if _, _, err := s.st.ToggleFollow(ctx, actor.ID, currentUserID); err != nil {
			return nil, fmt.Errorf("failed to follow: %w", err)
		}

		return &ActionResult{Kind: FollowKind, Text: "started following you", User: actor}, nil

	case r < likeBand:
		if len(own) == 0 {
			return nil, nil
		}

		n := own[s.gen.Intn(len(own))]
		if n.IsLikedBy(actor.ID) {
			return nil, nil
		}

		if _, err := s.st.ToggleLike(ctx, n.ID, actor.ID); err != nil {
			return nil, fmt.Errorf("failed to like: %w", err)
		}

		return &ActionResult{Kind: LikeKind, Text: "liked your note", User: actor}, nil

	default:
		if len(own) == 0 {
			return nil, nil
		}

		n := own[s.gen.Intn(len(own))]
		c := s.gen.GenerateComment(actor.ID)

		if _, err := s.st.AddComment(ctx, n.ID, c); err != nil {
			return nil, fmt.Errorf("failed to comment: %w", err)
		}

		if _, err := s.st.CreateNotification(ctx, entities.Notification{
			Type:      entities.CommentNotificationType,
			FromUser:  actor,
			ToUserID:  currentUserID,
			NoteID:    n.ID,
			CommentID: c.ID,
		}); err != nil {
			return nil, fmt.Errorf("failed to notify: %w", err)
		}

		return &ActionResult{Kind: CommentKind, Text: fmt.Sprintf("commented: \"%s\"", c.Text), User: actor}, nil
	}
}

// background makes one of two distinct ghosts like a note of the other one.
func (s *Simulator) background(ctx context.Context, others []entities.User, notes []entities.Note) error {
	if len(others) < 2 {
		return nil
	}

	i := s.gen.Intn(len(others))
	j := s.gen.Intn(len(others) - 1)
	if j >= i {
		j++
	}

	liker, author := others[i], others[j]

	target := notesOf(notes, author.ID)
	if len(target) == 0 {
		return nil
	}

	n := target[s.gen.Intn(len(target))]
	if n.IsLikedBy(liker.ID) {
		return nil
	}

	if _, err := s.st.ToggleLike(ctx, n.ID, liker.ID); err != nil {
		return fmt.Errorf("failed to like in background: %w", err)
	}

	log.WithField("liker", liker.ID).WithField("note", n.ID).Debug("background like")

	return nil
}

func notesOf(notes []entities.Note, userID string) []entities.Note {
	var out []entities.Note
	for _, n := range notes {
		if n.UserID == userID {
			out = append(out, n)
		}
	}

	return out
}
