package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/Decentr-net/notos/internal/entities"
	"github.com/Decentr-net/notos/internal/service"
	"github.com/Decentr-net/notos/internal/session"
)

func (s pg) CurrentUser(ctx context.Context) (*entities.User, error) {
	s.sess.mu.RLock()
	id := s.sess.current
	s.sess.mu.RUnlock()

	if id == "" {
		return nil, service.ErrNotAuthenticated
	}

	u, err := s.getUser(ctx, id)
	if errors.Is(err, service.ErrNotFound) {
		return nil, fmt.Errorf("%w: %w", service.ErrNotAuthenticated, err)
	}

	return u, err
}

func (s pg) setCurrent(id string) {
	s.sess.mu.Lock()
	s.sess.current = id
	s.sess.mu.Unlock()
}

// Signup creates an account with hashed password and signs it in.
func (s pg) Signup(ctx context.Context, c service.Credentials) (*entities.User, error) {
	if c.Email == "" || c.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", service.ErrInvalidArgument)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	p := session.NewProfile(c.Email, c.Username)

	var id string
	if err := sqlx.GetContext(ctx, s.ext, &id, `
		INSERT INTO profiles (username, display_name, email, password_hash, avatar_url, cover_url, bio)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, p.Username, p.DisplayName, p.Email, string(hash), p.AvatarURL, p.CoverURL, p.Bio); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", mapErr(err))
	}

	u, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}

	s.setCurrent(id)

	return u, nil
}

// Login checks the password of the account found by email, or by username when email is empty.
func (s pg) Login(ctx context.Context, c service.Credentials) (*entities.User, error) {
	if c.Email == "" && c.Username == "" {
		return nil, fmt.Errorf("%w: email or username is required", service.ErrInvalidArgument)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	column, value := "email", c.Email
	if value == "" {
		column, value = "username", c.Username
	}

	var row struct {
		ID   string `db:"id"`
		Hash string `db:"password_hash"`
	}

	if err := sqlx.GetContext(ctx, s.ext, &row,
		fmt.Sprintf(`SELECT id, password_hash FROM profiles WHERE %s = $1`, column), value,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, service.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	if row.Hash == "" || bcrypt.CompareHashAndPassword([]byte(row.Hash), []byte(c.Password)) != nil {
		return nil, service.ErrInvalidCredentials
	}

	u, err := s.getUser(ctx, row.ID)
	if err != nil {
		return nil, err
	}

	s.setCurrent(row.ID)

	return u, nil
}

func (s pg) Logout(_ context.Context) error {
	s.setCurrent("")
	return nil
}

func (s pg) GetUsers(ctx context.Context) ([]entities.User, error) {
	return s.queryProfiles(ctx, `ORDER BY p.created_at`)
}

func (s pg) queryProfiles(ctx context.Context, tail string, args ...interface{}) ([]entities.User, error) {
	var p []profileDTO

	if err := sqlx.SelectContext(ctx, s.ext, &p,
		fmt.Sprintf(`SELECT %s FROM profiles p %s`, profileColumns, tail), args...,
	); err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}

	out := make([]entities.User, len(p))
	for i, v := range p {
		out[i] = v.toEntity()
	}

	return out, nil
}

func (s pg) getUser(ctx context.Context, id string) (*entities.User, error) {
	u, err := s.queryProfiles(ctx, `WHERE p.id = $1`, id)
	if err != nil {
		return nil, err
	}

	if len(u) == 0 {
		return nil, fmt.Errorf("%w: user %s", service.ErrNotFound, id)
	}

	return &u[0], nil
}

// getProfiles returns profiles keyed by id. Unknown ids are omitted.
func (s pg) getProfiles(ctx context.Context, ids []string) (map[string]entities.User, error) {
	ids = stringsUnique(ids)
	out := make(map[string]entities.User, len(ids))

	if len(ids) == 0 {
		return out, nil
	}

	query, args, err := sqlx.In(
		fmt.Sprintf(`SELECT %s FROM profiles p WHERE p.id IN (?)`, profileColumns), ids,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to construct IN clause: %w", err)
	}

	var p []profileDTO
	if err := sqlx.SelectContext(ctx, s.ext, &p, s.ext.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	for _, v := range p {
		out[v.ID] = v.toEntity()
	}

	return out, nil
}

// ToggleFollow adds or removes the edge and adjusts both counters in one transaction.
func (s pg) ToggleFollow(ctx context.Context, followerID, targetID string) (*entities.User, *entities.User, error) {
	if followerID == targetID {
		return nil, nil, service.ErrSelfFollow
	}

	var follower, target *entities.User

	if err := s.withTx(ctx, func(s pg) error {
		var locked []string
		if err := sqlx.SelectContext(ctx, s.ext, &locked, `
			SELECT id FROM profiles WHERE id = ANY($1) ORDER BY id FOR UPDATE
		`, pq.StringArray{followerID, targetID}); err != nil {
			return fmt.Errorf("failed to lock profiles: %w", err)
		}
		if len(locked) != 2 {
			return fmt.Errorf("%w: follower %s or target %s", service.ErrNotFound, followerID, targetID)
		}

		res, err := s.ext.ExecContext(ctx, `
			DELETE FROM follows WHERE follower_id = $1 AND following_id = $2
		`, followerID, targetID)
		if err != nil {
			return fmt.Errorf("failed to delete follow: %w", err)
		}

		removed, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get affected rows: %w", err)
		}

		delta := 1
		if removed > 0 {
			delta = -1
		} else if _, err := s.ext.ExecContext(ctx, `
			INSERT INTO follows (follower_id, following_id) VALUES ($1, $2)
		`, followerID, targetID); err != nil {
			return fmt.Errorf("failed to insert follow: %w", mapErr(err))
		}

		if _, err := s.ext.ExecContext(ctx, `
			UPDATE profiles SET following_count = GREATEST(following_count + $2, 0), updated_at = now() WHERE id = $1
		`, followerID, delta); err != nil {
			return fmt.Errorf("failed to update following count: %w", err)
		}
		if _, err := s.ext.ExecContext(ctx, `
			UPDATE profiles SET followers_count = GREATEST(followers_count + $2, 0), updated_at = now() WHERE id = $1
		`, targetID, delta); err != nil {
			return fmt.Errorf("failed to update followers count: %w", err)
		}

		if delta > 0 {
			if err := s.notify(ctx, entities.FollowNotificationType, followerID, targetID, "", ""); err != nil {
				return err
			}
		}

		if follower, err = s.getUser(ctx, followerID); err != nil {
			return err
		}
		if target, err = s.getUser(ctx, targetID); err != nil {
			return err
		}

		return nil
	}); err != nil {
		return nil, nil, err
	}

	return follower, target, nil
}

// UpdateUser writes non-nil fields of the update. Changing username stamps last_username_change.
func (s pg) UpdateUser(ctx context.Context, id string, upd entities.UserUpdate) (*entities.User, error) {
	var (
		set  []string
		args = []interface{}{id}
	)

	add := func(expr string, v interface{}) {
		args = append(args, v)
		set = append(set, fmt.Sprintf(expr, len(args)))
	}

	if upd.Username != nil {
		add(`last_username_change = CASE WHEN username <> $%[1]d THEN now() ELSE last_username_change END, username = $%[1]d`, *upd.Username)
	}
	if upd.DisplayName != nil {
		add(`display_name = $%d`, *upd.DisplayName)
	}
	if upd.Email != nil {
		add(`email = NULLIF($%d, '')`, *upd.Email)
	}
	if upd.PhoneNumber != nil {
		add(`phone_number = NULLIF($%d, '')`, *upd.PhoneNumber)
	}
	if upd.Bio != nil {
		add(`bio = $%d`, *upd.Bio)
	}
	if upd.AvatarURL != nil {
		add(`avatar_url = $%d`, *upd.AvatarURL)
	}
	if upd.CoverURL != nil {
		add(`cover_url = $%d`, *upd.CoverURL)
	}
	if upd.Badges != nil {
		badges := pq.StringArray(*upd.Badges)
		if badges == nil {
			badges = pq.StringArray{}
		}
		add(`badges = $%d`, badges)
	}
	if upd.IsPrivate != nil {
		add(`is_private = $%d`, *upd.IsPrivate)
	}
	if upd.NotificationSettings != nil {
		add(`notification_likes = $%d`, upd.NotificationSettings.Likes)
		add(`notification_follows = $%d`, upd.NotificationSettings.Follows)
		add(`notification_new_posts = $%d`, upd.NotificationSettings.NewPosts)
	}
	if upd.HasSeenTutorial != nil {
		add(`has_seen_tutorial = $%d`, *upd.HasSeenTutorial)
	}

	if len(set) > 0 {
		set = append(set, `updated_at = now()`)

		res, err := s.ext.ExecContext(ctx,
			fmt.Sprintf(`UPDATE profiles SET %s WHERE id = $1`, strings.Join(set, ", ")), args...,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", mapErr(err))
		}

		if n, err := res.RowsAffected(); err != nil {
			return nil, fmt.Errorf("failed to get affected rows: %w", err)
		} else if n == 0 {
			return nil, fmt.Errorf("%w: user %s", service.ErrNotFound, id)
		}
	}

	return s.getUser(ctx, id)
}

func (s pg) MarkTutorialSeen(ctx context.Context, id string) error {
	if _, err := s.ext.ExecContext(ctx, `
		UPDATE profiles SET has_seen_tutorial = TRUE, updated_at = now() WHERE id = $1
	`, id); err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

func (s pg) GetNotifications(ctx context.Context, userID string) ([]entities.Notification, error) {
	var n []notificationDTO

	if err := sqlx.SelectContext(ctx, s.ext, &n, `
		SELECT id, type, from_user_id, to_user_id, COALESCE(note_id, '') AS note_id,
			COALESCE(comment_id, '') AS comment_id, read, created_at
		FROM notifications
		WHERE to_user_id = $1
		ORDER BY created_at DESC, seq DESC
	`, userID); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	from := make([]string, len(n))
	for i, v := range n {
		from[i] = v.FromUserID
	}

	profiles, err := s.getProfiles(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("failed to get profiles: %w", err)
	}

	out := make([]entities.Notification, len(n))
	for i, v := range n {
		out[i] = v.toEntity(profiles[v.FromUserID])
	}

	return out, nil
}

func (s pg) MarkNotificationsRead(ctx context.Context, userID string) error {
	if _, err := s.ext.ExecContext(ctx, `
		UPDATE notifications SET read = TRUE WHERE to_user_id = $1 AND NOT read
	`, userID); err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

func (s pg) notify(ctx context.Context, typ entities.NotificationType, from, to, noteID, commentID string) error {
	if _, err := s.ext.ExecContext(ctx, `
		INSERT INTO notifications (type, from_user_id, to_user_id, note_id, comment_id)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''))
	`, string(typ), from, to, noteID, commentID); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}
