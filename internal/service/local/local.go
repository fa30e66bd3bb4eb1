// Package local is implementation of service interface over the simulated local store.
package local

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/notos/internal/entities"
	"github.com/Decentr-net/notos/internal/service"
	"github.com/Decentr-net/notos/internal/session"
	"github.com/Decentr-net/notos/internal/store"
	"github.com/Decentr-net/notos/internal/suggest"
	"github.com/Decentr-net/notos/internal/upload"
)

var log = logrus.WithField("layer", "service").WithField("package", "local")

type srv struct {
	st   *store.Store
	sess *session.Session
	sg   suggest.Suggester
	up   upload.Uploader
}

// New creates new instance of local service. Upload failures fall back to ephemeral urls.
func New(st *store.Store, sess *session.Session, sg suggest.Suggester, up upload.Uploader) service.Service {
	if sg == nil {
		sg = suggest.Noop()
	}

	return srv{
		st:   st,
		sess: sess,
		sg:   sg,
		up:   upload.WithFallback(up),
	}
}

// mapErr translates store and session errors to service ones keeping the original in the chain.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, session.ErrNotAuthenticated):
		return fmt.Errorf("%w: %w", service.ErrNotAuthenticated, err)
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("%w: %w", service.ErrNotFound, err)
	case errors.Is(err, store.ErrSelfFollow):
		return fmt.Errorf("%w: %w", service.ErrSelfFollow, err)
	case errors.Is(err, store.ErrAlreadyExists):
		return fmt.Errorf("%w: %w", service.ErrAlreadyExists, err)
	case errors.Is(err, entities.ErrInvalidNote), errors.Is(err, entities.ErrUnknownEnum):
		return fmt.Errorf("%w: %w", service.ErrInvalidArgument, err)
	default:
		return err
	}
}

func (s srv) CurrentUser(ctx context.Context) (*entities.User, error) {
	u, err := s.sess.Current(ctx)
	return u, mapErr(err)
}

// Signup behaves like Login, the local backend keeps no passwords.
func (s srv) Signup(ctx context.Context, c service.Credentials) (*entities.User, error) {
	return s.Login(ctx, c)
}

// Login finds the user by email or username or creates a new one.
func (s srv) Login(ctx context.Context, c service.Credentials) (*entities.User, error) {
	if c.Email == "" && c.Username == "" {
		return nil, fmt.Errorf("%w: email or username is required", service.ErrInvalidArgument)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	u, err := s.sess.Login(ctx, c.Email, c.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to login: %w", mapErr(err))
	}

	return u, nil
}

func (s srv) Logout(ctx context.Context) error {
	return s.sess.Logout(ctx)
}

func (s srv) GetUsers(ctx context.Context) ([]entities.User, error) {
	return s.st.GetUsers(ctx)
}

func (s srv) GetNotes(ctx context.Context) ([]entities.Note, error) {
	return s.st.GetNotes(ctx)
}

func (s srv) GetNotifications(ctx context.Context, userID string) ([]entities.Notification, error) {
	return s.st.GetNotifications(ctx, userID)
}

func (s srv) MarkNotificationsRead(ctx context.Context, userID string) error {
	return s.st.MarkNotificationsRead(ctx, userID)
}

func (s srv) CreateNote(ctx context.Context, userID string, n service.NewNote) (*entities.Note, error) {
	n = service.Enrich(ctx, s.sg, n)

	note, err := s.st.CreateNote(ctx, entities.Note{
		UserID:        userID,
		Content:       n.Content,
		AudioURL:      n.AudioURL,
		AudioDuration: n.AudioDuration,
		Type:          n.Type,
		Style:         n.Style,
		Tags:          n.Tags,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", mapErr(err))
	}

	return note, nil
}

func (s srv) ToggleLike(ctx context.Context, noteID, userID string) (*entities.Note, error) {
	return s.st.ToggleLike(ctx, noteID, userID)
}

func (s srv) ToggleCommentLike(ctx context.Context, noteID, commentID, userID string) (*entities.Note, error) {
	return s.st.ToggleCommentLike(ctx, noteID, commentID, userID)
}

// AddComment appends the comment and notifies the author of the note.
func (s srv) AddComment(ctx context.Context, noteID string, c entities.Comment) (*entities.Note, error) {
	n, err := s.st.AddComment(ctx, noteID, c)
	if err != nil || n == nil {
		return n, mapErr(err)
	}

	added := n.Comments[len(n.Comments)-1]
	if n.UserID == added.UserID {
		return n, nil
	}

	from, err := s.st.GetUser(ctx, added.UserID)
	if err != nil {
		log.WithError(err).WithField("user", added.UserID).Warn("unknown commenter, notification skipped")
		return n, nil
	}

	if _, err := s.st.CreateNotification(ctx, entities.Notification{
		Type:      entities.CommentNotificationType,
		FromUser:  *from,
		ToUserID:  n.UserID,
		NoteID:    n.ID,
		CommentID: added.ID,
	}); err != nil {
		return nil, fmt.Errorf("failed to notify: %w", err)
	}

	return n, nil
}

func (s srv) ToggleFollow(ctx context.Context, followerID, targetID string) (*entities.User, *entities.User, error) {
	f, t, err := s.st.ToggleFollow(ctx, followerID, targetID)
	return f, t, mapErr(err)
}

func (s srv) UpdateUser(ctx context.Context, id string, upd entities.UserUpdate) (*entities.User, error) {
	u, err := s.st.UpdateUser(ctx, id, upd)
	return u, mapErr(err)
}

func (s srv) MarkTutorialSeen(ctx context.Context, id string) error {
	return s.st.MarkTutorialSeen(ctx, id)
}

func (s srv) UploadFile(ctx context.Context, data []byte, contentType string) (string, error) {
	return s.up.Upload(ctx, data, contentType)
}

func (s srv) Search(ctx context.Context, query string) (*service.SearchResult, error) {
	res, err := s.st.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	return &service.SearchResult{Users: res.Users, Notes: res.Notes}, nil
}

func (s srv) GetTrendingTags(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = service.DefaultTrendingTagsLimit
	}

	return s.st.GetTrendingTags(ctx, limit)
}
