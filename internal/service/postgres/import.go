package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Decentr-net/notos/internal/entities"
)

// Snapshot is a social graph exported from the local backend.
type Snapshot struct {
	Users         []entities.User
	Notes         []entities.Note
	Notifications []entities.Notification
}

// ImportStats ...
type ImportStats struct {
	Users         int
	Notes         int
	Comments      int
	Follows       int
	Notifications int
}

// Import copies the snapshot into the database in one transaction keeping ids, timestamps and counters.
// Rows already present are left untouched. Colliding usernames and emails of different users get
// disambiguated since the relational schema keeps them unique.
func Import(ctx context.Context, db *sql.DB, snap Snapshot) (ImportStats, error) {
	var stats ImportStats

	s := pg{ext: sqlx.NewDb(db, "postgres"), sess: &session{}}

	err := s.withTx(ctx, func(s pg) error {
		known := make(map[string]struct{}, len(snap.Users))
		usernames := make(map[string]struct{}, len(snap.Users))
		emails := make(map[string]struct{}, len(snap.Users))

		for _, u := range snap.Users {
			username := u.Username
			if _, ok := usernames[username]; ok {
				username = fmt.Sprintf("%s_%s", username, shortID(u.ID))
				log.WithField("user", u.ID).Warnf("username %s is taken, imported as %s", u.Username, username)
			}
			usernames[username] = struct{}{}

			email := u.Email
			if _, ok := emails[email]; ok && email != "" {
				email = ""
			}
			emails[email] = struct{}{}

			if err := s.importUser(ctx, u, username, email); err != nil {
				return err
			}
			known[u.ID] = struct{}{}
			stats.Users++
		}

		for _, u := range snap.Users {
			for _, id := range u.FollowingIDs {
				if _, ok := known[id]; !ok || id == u.ID {
					continue
				}
				if _, err := s.ext.ExecContext(ctx, `
					INSERT INTO follows (follower_id, following_id) VALUES ($1, $2) ON CONFLICT DO NOTHING
				`, u.ID, id); err != nil {
					return fmt.Errorf("failed to import follow: %w", err)
				}
				stats.Follows++
			}
		}

		notes := make(map[string]struct{}, len(snap.Notes))
		comments := make(map[string]struct{})

		for _, n := range snap.Notes {
			if _, ok := known[n.UserID]; !ok {
				log.WithField("note", n.ID).Warn("note of unknown user skipped")
				continue
			}

			if err := s.importNote(ctx, n, known); err != nil {
				return err
			}
			notes[n.ID] = struct{}{}
			stats.Notes++

			for _, c := range n.Comments {
				if _, ok := known[c.UserID]; !ok {
					continue
				}
				if err := s.importComment(ctx, n.ID, c, known); err != nil {
					return err
				}
				comments[c.ID] = struct{}{}
				stats.Comments++
			}
		}

		for _, n := range snap.Notifications {
			_, from := known[n.FromUser.ID]
			_, to := known[n.ToUserID]
			if !from || !to {
				continue
			}

			noteID, commentID := n.NoteID, n.CommentID
			if _, ok := notes[noteID]; !ok {
				noteID = ""
			}
			if _, ok := comments[commentID]; !ok {
				commentID = ""
			}

			if _, err := s.ext.ExecContext(ctx, `
				INSERT INTO notifications (id, type, from_user_id, to_user_id, note_id, comment_id, read, created_at)
				VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8)
				ON CONFLICT DO NOTHING
			`, n.ID, string(n.Type), n.FromUser.ID, n.ToUserID, noteID, commentID, n.Read, fromMillis(n.Timestamp)); err != nil {
				return fmt.Errorf("failed to import notification %s: %w", n.ID, err)
			}
			stats.Notifications++
		}

		return nil
	})

	return stats, err
}

func (s pg) importUser(ctx context.Context, u entities.User, username, email string) error {
	var lastChange sql.NullTime
	if u.LastUsernameChange > 0 {
		lastChange = sql.NullTime{Time: fromMillis(u.LastUsernameChange), Valid: true}
	}

	badges := pq.StringArray(u.Badges)
	if badges == nil {
		badges = pq.StringArray{}
	}

	if _, err := s.ext.ExecContext(ctx, `
		INSERT INTO profiles (
			id, username, display_name, email, phone_number, last_username_change, avatar_url, cover_url, bio,
			followers_count, following_count, is_private, badges,
			notification_likes, notification_follows, notification_new_posts, has_seen_tutorial
		) VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (id) DO NOTHING
	`,
		u.ID, username, u.DisplayName, email, u.PhoneNumber, lastChange, u.AvatarURL, u.CoverURL, u.Bio,
		max(u.Followers, 0), max(u.Following, 0), u.IsPrivate, badges,
		u.NotificationSettings.Likes, u.NotificationSettings.Follows, u.NotificationSettings.NewPosts, u.HasSeenTutorial,
	); err != nil {
		return fmt.Errorf("failed to import user %s: %w", u.ID, err)
	}

	return nil
}

func (s pg) importNote(ctx context.Context, n entities.Note, known map[string]struct{}) error {
	var audioURL sql.NullString
	var audioDuration sql.NullFloat64
	if n.Type == entities.AudioNoteType {
		audioURL = sql.NullString{String: n.AudioURL, Valid: true}
		audioDuration = sql.NullFloat64{Float64: n.AudioDuration, Valid: true}
	}

	tags := pq.StringArray(n.Tags)
	if tags == nil {
		tags = pq.StringArray{}
	}

	font, color := n.Style.Font, n.Style.Color
	if font == "" {
		font = entities.SansFont
	}
	if color == "" {
		color = entities.WhiteColor
	}

	if _, err := s.ext.ExecContext(ctx, `
		INSERT INTO notes (
			id, user_id, content, note_type, audio_url, audio_duration, style_color, style_icon, style_font,
			tags, likes_count, comments_count, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO NOTHING
	`,
		n.ID, n.UserID, n.Content, string(n.Type), audioURL, audioDuration, string(color), n.Style.Icon, string(font),
		tags, max(n.Likes, 0), len(n.Comments), fromMillis(n.Timestamp),
	); err != nil {
		return fmt.Errorf("failed to import note %s: %w", n.ID, err)
	}

	for _, id := range n.LikedBy {
		if _, ok := known[id]; !ok {
			continue
		}
		if _, err := s.ext.ExecContext(ctx, `
			INSERT INTO note_likes (note_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING
		`, n.ID, id); err != nil {
			return fmt.Errorf("failed to import like of note %s: %w", n.ID, err)
		}
	}

	return nil
}

func (s pg) importComment(ctx context.Context, noteID string, c entities.Comment, known map[string]struct{}) error {
	if _, err := s.ext.ExecContext(ctx, `
		INSERT INTO comments (id, note_id, user_id, parent_id, text, likes_count, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`, c.ID, noteID, c.UserID, c.ParentID, c.Text, max(c.Likes, 0), fromMillis(c.Timestamp)); err != nil {
		return fmt.Errorf("failed to import comment %s: %w", c.ID, err)
	}

	for _, id := range c.LikedBy {
		if _, ok := known[id]; !ok {
			continue
		}
		if _, err := s.ext.ExecContext(ctx, `
			INSERT INTO comment_likes (comment_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING
		`, c.ID, id); err != nil {
			return fmt.Errorf("failed to import like of comment %s: %w", c.ID, err)
		}
	}

	return nil
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func shortID(id string) string {
	if len(id) <= 6 {
		return id
	}
	return id[len(id)-6:]
}
