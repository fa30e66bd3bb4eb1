// Package service contains interface of the notos backend consumed by presentation.
package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/Decentr-net/notos/internal/entities"
)

// ErrNotAuthenticated is returned when there is no current user.
var ErrNotAuthenticated = fmt.Errorf("not authenticated")

// ErrInvalidCredentials is returned when login credentials don't match any account.
var ErrInvalidCredentials = fmt.Errorf("invalid credentials")

// ErrAlreadyExists is returned on signup with a taken email or username.
var ErrAlreadyExists = fmt.Errorf("already exists")

// ErrNotFound is returned when a user required by the operation doesn't exist.
var ErrNotFound = fmt.Errorf("not found")

// ErrSelfFollow is returned when a user tries to follow themselves.
var ErrSelfFollow = fmt.Errorf("user can't follow themselves")

// ErrInvalidArgument is returned on malformed input.
var ErrInvalidArgument = fmt.Errorf("invalid argument")

// DefaultTrendingTagsLimit ...
const DefaultTrendingTagsLimit = 8

// nolint:gochecknoglobals
var validate = validator.New()

// Credentials ...
type Credentials struct {
	Email    string `validate:"omitempty,email"`
	Password string `validate:"omitempty,min=6"`
	Username string `validate:"omitempty,max=32,excludesall=@"`
}

// Validate checks format of non-empty fields.
func (c Credentials) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidArgument, err.Error())
	}

	return nil
}

// NewNote is a note written by the current user.
type NewNote struct {
	Content       string
	Type          entities.NoteType
	AudioURL      string
	AudioDuration float64
	Style         entities.Style
	Tags          []string
}

// SearchResult ...
type SearchResult struct {
	Users []entities.User `json:"users"`
	Notes []entities.Note `json:"notes"`
}

// Service is the backend of the app. Local and postgres implementations are interchangeable.
type Service interface {
	CurrentUser(ctx context.Context) (*entities.User, error)
	Signup(ctx context.Context, c Credentials) (*entities.User, error)
	Login(ctx context.Context, c Credentials) (*entities.User, error)
	Logout(ctx context.Context) error

	GetUsers(ctx context.Context) ([]entities.User, error)
	GetNotes(ctx context.Context) ([]entities.Note, error)
	GetNotifications(ctx context.Context, userID string) ([]entities.Notification, error)
	MarkNotificationsRead(ctx context.Context, userID string) error

	CreateNote(ctx context.Context, userID string, n NewNote) (*entities.Note, error)
	ToggleLike(ctx context.Context, noteID, userID string) (*entities.Note, error)
	ToggleCommentLike(ctx context.Context, noteID, commentID, userID string) (*entities.Note, error)
	AddComment(ctx context.Context, noteID string, c entities.Comment) (*entities.Note, error)

	// ToggleFollow returns the follower and the target after the change.
	ToggleFollow(ctx context.Context, followerID, targetID string) (*entities.User, *entities.User, error)
	UpdateUser(ctx context.Context, id string, upd entities.UserUpdate) (*entities.User, error)
	MarkTutorialSeen(ctx context.Context, id string) error

	UploadFile(ctx context.Context, data []byte, contentType string) (string, error)
	Search(ctx context.Context, query string) (*SearchResult, error)
	GetTrendingTags(ctx context.Context, limit int) ([]string, error)
}
