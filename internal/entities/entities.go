// Package entities contains main entities of service.
package entities

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownEnum is returned when a closed enumeration receives a value it doesn't know.
var ErrUnknownEnum = errors.New("unknown enum value")

// ErrInvalidNote is returned when a note breaks its type requirements.
var ErrInvalidNote = errors.New("invalid note")

// NoteType ...
type NoteType string

const (
	// TextNoteType ...
	TextNoteType NoteType = "TEXT"
	// AudioNoteType requires AudioURL and positive AudioDuration.
	AudioNoteType NoteType = "AUDIO"
)

// UnmarshalJSON rejects values outside of the closed set.
func (t *NoteType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	switch v := NoteType(s); v {
	case TextNoteType, AudioNoteType:
		*t = v
		return nil
	default:
		return fmt.Errorf("%w: note type %q", ErrUnknownEnum, s)
	}
}

// NotificationType ...
type NotificationType string

const (
	// LikeNotificationType is sent when a note or a comment is liked.
	LikeNotificationType NotificationType = "LIKE"
	// FollowNotificationType ...
	FollowNotificationType NotificationType = "FOLLOW"
	// MentionNotificationType ...
	MentionNotificationType NotificationType = "MENTION"
	// CommentNotificationType is sent when somebody comments a note.
	CommentNotificationType NotificationType = "COMMENT"
)

// UnmarshalJSON rejects values outside of the closed set.
func (t *NotificationType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	switch v := NotificationType(s); v {
	case LikeNotificationType, FollowNotificationType, MentionNotificationType, CommentNotificationType:
		*t = v
		return nil
	default:
		return fmt.Errorf("%w: notification type %q", ErrUnknownEnum, s)
	}
}

// FontStyle is a presentational hint, the core doesn't interpret it.
type FontStyle string

// Known font styles.
const (
	SansFont  FontStyle = "font-sans"
	SerifFont FontStyle = "font-serif"
	MonoFont  FontStyle = "font-mono"
	HandFont  FontStyle = "font-hand"
)

// NoteColor is a presentational hint, the core doesn't interpret it.
type NoteColor string

// Known note colors.
const (
	WhiteColor          NoteColor = "WHITE"
	DarkColor           NoteColor = "DARK"
	YellowColor         NoteColor = "YELLOW"
	BlueColor           NoteColor = "BLUE"
	RoseColor           NoteColor = "ROSE"
	EmeraldColor        NoteColor = "EMERALD"
	VioletColor         NoteColor = "VIOLET"
	GradientSunsetColor NoteColor = "GRADIENT_SUNSET"
	GradientOceanColor  NoteColor = "GRADIENT_OCEAN"
	GradientMysticColor NoteColor = "GRADIENT_MYSTIC"
	GradientNatureColor NoteColor = "GRADIENT_NATURE"
	VelvetRedColor      NoteColor = "VELVET_RED"
	VelvetMidnightColor NoteColor = "VELVET_MIDNIGHT"
	VelvetRoyalColor    NoteColor = "VELVET_ROYAL"
	GlassFrostColor     NoteColor = "GLASS_FROST"
	GlassObsidianColor  NoteColor = "GLASS_OBSIDIAN"
	CanvasWarmColor     NoteColor = "CANVAS_WARM"
	CanvasGreyColor     NoteColor = "CANVAS_GREY"
	PaintTealColor      NoteColor = "PAINT_TEAL"
	PaintCoralColor     NoteColor = "PAINT_CORAL"
	PaintMustardColor   NoteColor = "PAINT_MUSTARD"
)

// NotificationSettings ...
type NotificationSettings struct {
	Likes    bool `json:"likes"`
	Follows  bool `json:"follows"`
	NewPosts bool `json:"newPosts"`
}

// User ...
type User struct {
	ID                   string               `json:"id"`
	Username             string               `json:"username"`
	DisplayName          string               `json:"displayName"`
	Email                string               `json:"email,omitempty"`
	PhoneNumber          string               `json:"phoneNumber,omitempty"`
	LastUsernameChange   int64                `json:"lastUsernameChange,omitempty"`
	AvatarURL            string               `json:"avatarUrl"`
	CoverURL             string               `json:"coverUrl"`
	Followers            int                  `json:"followers"`
	Following            int                  `json:"following"`
	FollowingIDs         []string             `json:"followingIds"`
	Bio                  string               `json:"bio"`
	Badges               []string             `json:"badges"`
	IsPrivate            bool                 `json:"isPrivate"`
	NotificationSettings NotificationSettings `json:"notificationSettings"`
	HasSeenTutorial      bool                 `json:"hasSeenTutorial,omitempty"`
}

// IsFollowing reports whether the user follows id.
func (u *User) IsFollowing(id string) bool {
	return slices.Contains(u.FollowingIDs, id)
}

// Clone returns a deep copy of the user.
func (u User) Clone() User {
	u.FollowingIDs = slices.Clone(u.FollowingIDs)
	u.Badges = slices.Clone(u.Badges)
	return u
}

// UserUpdate holds the fields of a partial profile update; nil fields are left untouched.
// Social counters and follow edges are deliberately absent: only ToggleFollow changes them.
type UserUpdate struct {
	Username             *string
	DisplayName          *string
	Email                *string
	PhoneNumber          *string
	Bio                  *string
	AvatarURL            *string
	CoverURL             *string
	Badges               *[]string
	IsPrivate            *bool
	NotificationSettings *NotificationSettings
	HasSeenTutorial      *bool
}

// Apply merges the update into u. lastChange is stored when the username changes.
func (p UserUpdate) Apply(u *User, lastChange int64) {
	if p.Username != nil && *p.Username != u.Username {
		u.Username = *p.Username
		u.LastUsernameChange = lastChange
	}
	if p.DisplayName != nil {
		u.DisplayName = *p.DisplayName
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.PhoneNumber != nil {
		u.PhoneNumber = *p.PhoneNumber
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.AvatarURL != nil {
		u.AvatarURL = *p.AvatarURL
	}
	if p.CoverURL != nil {
		u.CoverURL = *p.CoverURL
	}
	if p.Badges != nil {
		u.Badges = slices.Clone(*p.Badges)
	}
	if p.IsPrivate != nil {
		u.IsPrivate = *p.IsPrivate
	}
	if p.NotificationSettings != nil {
		u.NotificationSettings = *p.NotificationSettings
	}
	if p.HasSeenTutorial != nil {
		u.HasSeenTutorial = *p.HasSeenTutorial
	}
}

// Style ...
type Style struct {
	Font  FontStyle `json:"font"`
	Color NoteColor `json:"color"`
	Icon  string    `json:"icon,omitempty"`
}

// Comment ...
type Comment struct {
	ID        string   `json:"id"`
	UserID    string   `json:"userId"`
	Text      string   `json:"text"`
	Timestamp int64    `json:"timestamp"`
	Likes     int      `json:"likes"`
	LikedBy   []string `json:"likedBy"`
	ParentID  string   `json:"parentId,omitempty"`
}

// IsLikedBy ...
func (c *Comment) IsLikedBy(userID string) bool {
	return slices.Contains(c.LikedBy, userID)
}

// Note ...
type Note struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Author        User      `json:"author"`
	Content       string    `json:"content"`
	AudioURL      string    `json:"audioUrl,omitempty"`
	AudioDuration float64   `json:"audioDuration,omitempty"`
	Type          NoteType  `json:"type"`
	Timestamp     int64     `json:"timestamp"`
	Likes         int       `json:"likes"`
	LikedBy       []string  `json:"likedBy"`
	Comments      []Comment `json:"comments"`
	Style         Style     `json:"style"`
	Tags          []string  `json:"tags"`
}

// IsLikedBy ...
func (n *Note) IsLikedBy(userID string) bool {
	return slices.Contains(n.LikedBy, userID)
}

// Comment returns the comment with the given id or nil.
func (n *Note) Comment(id string) *Comment {
	for i := range n.Comments {
		if n.Comments[i].ID == id {
			return &n.Comments[i]
		}
	}

	return nil
}

// Validate checks type specific requirements.
func (n *Note) Validate() error {
	switch n.Type {
	case TextNoteType:
	case AudioNoteType:
		if n.AudioURL == "" {
			return fmt.Errorf("%w: audio note without audio url", ErrInvalidNote)
		}
		if n.AudioDuration <= 0 {
			return fmt.Errorf("%w: audio note with non-positive duration", ErrInvalidNote)
		}
	default:
		return fmt.Errorf("%w: note type %q", ErrUnknownEnum, n.Type)
	}

	return nil
}

// Clone returns a deep copy of the note.
func (n Note) Clone() Note {
	n.Author = n.Author.Clone()
	n.LikedBy = slices.Clone(n.LikedBy)
	n.Tags = slices.Clone(n.Tags)

	if n.Comments != nil {
		comments := make([]Comment, len(n.Comments))
		for i, c := range n.Comments {
			c.LikedBy = slices.Clone(c.LikedBy)
			comments[i] = c
		}
		n.Comments = comments
	}

	return n
}

// Notification ...
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	FromUser  User             `json:"fromUser"`
	ToUserID  string           `json:"toUserId"`
	NoteID    string           `json:"noteId,omitempty"`
	CommentID string           `json:"commentId,omitempty"`
	Timestamp int64            `json:"timestamp"`
	Read      bool             `json:"read"`
}

// Clone returns a deep copy of the notification.
func (n Notification) Clone() Notification {
	n.FromUser = n.FromUser.Clone()
	return n
}

// Validate rejects notifications with a missing or unknown type.
func (n *Notification) Validate() error {
	switch n.Type {
	case LikeNotificationType, FollowNotificationType, MentionNotificationType, CommentNotificationType:
		return nil
	default:
		return fmt.Errorf("%w: notification type %q", ErrUnknownEnum, n.Type)
	}
}
