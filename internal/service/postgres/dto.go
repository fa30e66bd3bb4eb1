package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/Decentr-net/notos/internal/entities"
)

const profileColumns = `
	p.id, p.username, COALESCE(p.display_name, p.username) AS display_name,
	COALESCE(p.email, '') AS email, COALESCE(p.phone_number, '') AS phone_number, p.last_username_change,
	COALESCE(p.avatar_url, '') AS avatar_url, COALESCE(p.cover_url, '') AS cover_url, p.bio,
	p.followers_count, p.following_count, p.is_private, p.badges,
	p.notification_likes, p.notification_follows, p.notification_new_posts, p.has_seen_tutorial,
	ARRAY(SELECT f.following_id FROM follows f WHERE f.follower_id = p.id ORDER BY f.created_at) AS following_ids
`

const noteColumns = `
	n.id, n.user_id, n.content, n.note_type, COALESCE(n.audio_url, '') AS audio_url,
	COALESCE(n.audio_duration, 0) AS audio_duration, n.style_color, COALESCE(n.style_icon, '') AS style_icon,
	n.style_font, n.tags, n.likes_count, n.created_at
`

type profileDTO struct {
	ID                   string         `db:"id"`
	Username             string         `db:"username"`
	DisplayName          string         `db:"display_name"`
	Email                string         `db:"email"`
	PhoneNumber          string         `db:"phone_number"`
	LastUsernameChange   sql.NullTime   `db:"last_username_change"`
	AvatarURL            string         `db:"avatar_url"`
	CoverURL             string         `db:"cover_url"`
	Bio                  string         `db:"bio"`
	FollowersCount       int            `db:"followers_count"`
	FollowingCount       int            `db:"following_count"`
	IsPrivate            bool           `db:"is_private"`
	Badges               pq.StringArray `db:"badges"`
	NotificationLikes    bool           `db:"notification_likes"`
	NotificationFollows  bool           `db:"notification_follows"`
	NotificationNewPosts bool           `db:"notification_new_posts"`
	HasSeenTutorial      bool           `db:"has_seen_tutorial"`
	FollowingIDs         pq.StringArray `db:"following_ids"`
}

type noteDTO struct {
	ID            string         `db:"id"`
	UserID        string         `db:"user_id"`
	Content       string         `db:"content"`
	Type          string         `db:"note_type"`
	AudioURL      string         `db:"audio_url"`
	AudioDuration float64        `db:"audio_duration"`
	StyleColor    string         `db:"style_color"`
	StyleIcon     string         `db:"style_icon"`
	StyleFont     string         `db:"style_font"`
	Tags          pq.StringArray `db:"tags"`
	LikesCount    int            `db:"likes_count"`
	CreatedAt     time.Time      `db:"created_at"`
}

type commentDTO struct {
	ID         string    `db:"id"`
	NoteID     string    `db:"note_id"`
	UserID     string    `db:"user_id"`
	ParentID   string    `db:"parent_id"`
	Text       string    `db:"text"`
	LikesCount int       `db:"likes_count"`
	CreatedAt  time.Time `db:"created_at"`
}

type likeDTO struct {
	TargetID string `db:"target_id"`
	UserID   string `db:"user_id"`
}

type notificationDTO struct {
	ID         string    `db:"id"`
	Type       string    `db:"type"`
	FromUserID string    `db:"from_user_id"`
	ToUserID   string    `db:"to_user_id"`
	NoteID     string    `db:"note_id"`
	CommentID  string    `db:"comment_id"`
	Read       bool      `db:"read"`
	CreatedAt  time.Time `db:"created_at"`
}

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func (p profileDTO) toEntity() entities.User {
	u := entities.User{
		ID:           p.ID,
		Username:     p.Username,
		DisplayName:  p.DisplayName,
		Email:        p.Email,
		PhoneNumber:  p.PhoneNumber,
		AvatarURL:    p.AvatarURL,
		CoverURL:     p.CoverURL,
		Followers:    p.FollowersCount,
		Following:    p.FollowingCount,
		FollowingIDs: []string(p.FollowingIDs),
		Bio:          p.Bio,
		Badges:       []string(p.Badges),
		IsPrivate:    p.IsPrivate,
		NotificationSettings: entities.NotificationSettings{
			Likes:    p.NotificationLikes,
			Follows:  p.NotificationFollows,
			NewPosts: p.NotificationNewPosts,
		},
		HasSeenTutorial: p.HasSeenTutorial,
	}

	if p.LastUsernameChange.Valid {
		u.LastUsernameChange = toMillis(p.LastUsernameChange.Time)
	}
	if u.FollowingIDs == nil {
		u.FollowingIDs = []string{}
	}
	if u.Badges == nil {
		u.Badges = []string{}
	}

	return u
}

func (n noteDTO) toEntity(author entities.User) entities.Note {
	tags := []string(n.Tags)
	if tags == nil {
		tags = []string{}
	}

	return entities.Note{
		ID:            n.ID,
		UserID:        n.UserID,
		Author:        author,
		Content:       n.Content,
		AudioURL:      n.AudioURL,
		AudioDuration: n.AudioDuration,
		Type:          entities.NoteType(n.Type),
		Timestamp:     toMillis(n.CreatedAt),
		Likes:         n.LikesCount,
		LikedBy:       []string{},
		Comments:      []entities.Comment{},
		Style: entities.Style{
			Font:  entities.FontStyle(n.StyleFont),
			Color: entities.NoteColor(n.StyleColor),
			Icon:  n.StyleIcon,
		},
		Tags: tags,
	}
}

func (c commentDTO) toEntity() entities.Comment {
	return entities.Comment{
		ID:        c.ID,
		UserID:    c.UserID,
		Text:      c.Text,
		Timestamp: toMillis(c.CreatedAt),
		Likes:     c.LikesCount,
		LikedBy:   []string{},
		ParentID:  c.ParentID,
	}
}

func (n notificationDTO) toEntity(from entities.User) entities.Notification {
	return entities.Notification{
		ID:        n.ID,
		Type:      entities.NotificationType(n.Type),
		FromUser:  from,
		ToUserID:  n.ToUserID,
		NoteID:    n.NoteID,
		CommentID: n.CommentID,
		Timestamp: toMillis(n.CreatedAt),
		Read:      n.Read,
	}
}

func stringsUnique(s []string) []string {
	m := make(map[string]struct{}, len(s))
	out := make([]string, 0, len(s))

	for _, v := range s {
		if _, ok := m[v]; !ok {
			m[v] = struct{}{}
			out = append(out, v)
		}
	}

	return out
}
