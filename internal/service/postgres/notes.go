package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Decentr-net/notos/internal/entities"
	"github.com/Decentr-net/notos/internal/service"
)

func (s pg) GetNotes(ctx context.Context) ([]entities.Note, error) {
	return s.queryNotes(ctx, `ORDER BY n.created_at DESC, n.seq DESC`)
}

func (s pg) getNote(ctx context.Context, id string) (*entities.Note, error) {
	n, err := s.queryNotes(ctx, `WHERE n.id = $1`, id)
	if err != nil {
		return nil, err
	}

	if len(n) == 0 {
		return nil, nil
	}

	return &n[0], nil
}

// queryNotes selects notes and hydrates authors, likes and comments with one query per relation.
func (s pg) queryNotes(ctx context.Context, tail string, args ...interface{}) ([]entities.Note, error) {
	var n []noteDTO

	if err := sqlx.SelectContext(ctx, s.ext, &n,
		fmt.Sprintf(`SELECT %s FROM notes n %s`, noteColumns, tail), args...,
	); err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}

	if len(n) == 0 {
		return []entities.Note{}, nil
	}

	ids := make([]string, len(n))
	authors := make([]string, len(n))
	for i, v := range n {
		ids[i] = v.ID
		authors[i] = v.UserID
	}

	profiles, err := s.getProfiles(ctx, authors)
	if err != nil {
		return nil, fmt.Errorf("failed to get authors: %w", err)
	}

	noteLikes, err := s.getLikes(ctx, `SELECT note_id AS target_id, user_id FROM note_likes WHERE note_id IN (?) ORDER BY created_at`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get note likes: %w", err)
	}

	comments, err := s.getComments(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	out := make([]entities.Note, len(n))
	for i, v := range n {
		note := v.toEntity(profiles[v.UserID])
		if l := noteLikes[v.ID]; l != nil {
			note.LikedBy = l
		}
		if c := comments[v.ID]; c != nil {
			note.Comments = c
		}
		out[i] = note
	}

	return out, nil
}

func (s pg) getLikes(ctx context.Context, query string, ids []string) (map[string][]string, error) {
	query, args, err := sqlx.In(query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to construct IN clause: %w", err)
	}

	var l []likeDTO
	if err := sqlx.SelectContext(ctx, s.ext, &l, s.ext.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	out := make(map[string][]string)
	for _, v := range l {
		out[v.TargetID] = append(out[v.TargetID], v.UserID)
	}

	return out, nil
}

func (s pg) getComments(ctx context.Context, noteIDs []string) (map[string][]entities.Comment, error) {
	query, args, err := sqlx.In(`
		SELECT id, note_id, user_id, COALESCE(parent_id, '') AS parent_id, text, likes_count, created_at
		FROM comments WHERE note_id IN (?) ORDER BY seq
	`, noteIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to construct IN clause: %w", err)
	}

	var c []commentDTO
	if err := sqlx.SelectContext(ctx, s.ext, &c, s.ext.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	out := make(map[string][]entities.Comment)
	if len(c) == 0 {
		return out, nil
	}

	ids := make([]string, len(c))
	for i, v := range c {
		ids[i] = v.ID
	}

	likes, err := s.getLikes(ctx, `SELECT comment_id AS target_id, user_id FROM comment_likes WHERE comment_id IN (?) ORDER BY created_at`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get comment likes: %w", err)
	}

	for _, v := range c {
		comment := v.toEntity()
		if l := likes[v.ID]; l != nil {
			comment.LikedBy = l
		}
		out[v.NoteID] = append(out[v.NoteID], comment)
	}

	return out, nil
}

// CreateNote enriches the note and stores it on behalf of userID.
func (s pg) CreateNote(ctx context.Context, userID string, nn service.NewNote) (*entities.Note, error) {
	nn = service.Enrich(ctx, s.sg, nn)

	probe := entities.Note{Type: nn.Type, AudioURL: nn.AudioURL, AudioDuration: nn.AudioDuration}
	if err := probe.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", service.ErrInvalidArgument, err)
	}

	var audioURL sql.NullString
	var audioDuration sql.NullFloat64
	if nn.Type == entities.AudioNoteType {
		audioURL = sql.NullString{String: nn.AudioURL, Valid: true}
		audioDuration = sql.NullFloat64{Float64: nn.AudioDuration, Valid: true}
	}

	var id string
	if err := sqlx.GetContext(ctx, s.ext, &id, `
		INSERT INTO notes (user_id, content, note_type, audio_url, audio_duration, style_color, style_icon, style_font, tags)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9)
		RETURNING id
	`,
		userID, nn.Content, string(nn.Type), audioURL, audioDuration,
		string(nn.Style.Color), nn.Style.Icon, string(nn.Style.Font), pq.StringArray(nn.Tags),
	); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", mapErr(err))
	}

	return s.getNote(ctx, id)
}

// ToggleLike likes or unlikes the note and notifies its author on like. Missing note is a no-op.
func (s pg) ToggleLike(ctx context.Context, noteID, userID string) (*entities.Note, error) {
	var found bool

	if err := s.withTx(ctx, func(s pg) error {
		var author string
		if err := sqlx.GetContext(ctx, s.ext, &author, `
			SELECT user_id FROM notes WHERE id = $1 FOR UPDATE
		`, noteID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("failed to lock note: %w", err)
		}
		found = true

		liked, err := s.toggle(ctx, "note_likes", "note_id", noteID, userID)
		if err != nil {
			return err
		}

		if _, err := s.ext.ExecContext(ctx, `
			UPDATE notes SET likes_count = GREATEST(likes_count + $2, 0), updated_at = now() WHERE id = $1
		`, noteID, delta(liked)); err != nil {
			return fmt.Errorf("failed to update likes count: %w", err)
		}

		if liked && author != userID {
			return s.notify(ctx, entities.LikeNotificationType, userID, author, noteID, "")
		}

		return nil
	}); err != nil {
		return nil, err
	}

	if !found {
		return nil, nil
	}

	return s.getNote(ctx, noteID)
}

// ToggleCommentLike likes or unlikes a comment of the note. Missing note or comment is a no-op.
func (s pg) ToggleCommentLike(ctx context.Context, noteID, commentID, userID string) (*entities.Note, error) {
	var found bool

	if err := s.withTx(ctx, func(s pg) error {
		var author string
		if err := sqlx.GetContext(ctx, s.ext, &author, `
			SELECT user_id FROM comments WHERE id = $1 AND note_id = $2 FOR UPDATE
		`, commentID, noteID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("failed to lock comment: %w", err)
		}
		found = true

		liked, err := s.toggle(ctx, "comment_likes", "comment_id", commentID, userID)
		if err != nil {
			return err
		}

		if _, err := s.ext.ExecContext(ctx, `
			UPDATE comments SET likes_count = GREATEST(likes_count + $2, 0) WHERE id = $1
		`, commentID, delta(liked)); err != nil {
			return fmt.Errorf("failed to update likes count: %w", err)
		}

		if liked && author != userID {
			return s.notify(ctx, entities.LikeNotificationType, userID, author, noteID, commentID)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	if !found {
		return nil, nil
	}

	return s.getNote(ctx, noteID)
}

// toggle removes the like row if it exists or inserts it otherwise. It reports whether the row was inserted.
func (s pg) toggle(ctx context.Context, table, column, targetID, userID string) (bool, error) {
	res, err := s.ext.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND user_id = $2`, table, column), targetID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete like: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	if _, err := s.ext.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (%s, user_id) VALUES ($1, $2)`, table, column), targetID, userID,
	); err != nil {
		return false, fmt.Errorf("failed to insert like: %w", mapErr(err))
	}

	return true, nil
}

func delta(added bool) int {
	if added {
		return 1
	}
	return -1
}

// AddComment appends the comment and notifies the author of the note. Missing note is a no-op.
func (s pg) AddComment(ctx context.Context, noteID string, c entities.Comment) (*entities.Note, error) {
	var found bool

	if err := s.withTx(ctx, func(s pg) error {
		var author string
		if err := sqlx.GetContext(ctx, s.ext, &author, `
			SELECT user_id FROM notes WHERE id = $1 FOR UPDATE
		`, noteID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("failed to lock note: %w", err)
		}
		found = true

		var id string
		if err := sqlx.GetContext(ctx, s.ext, &id, `
			INSERT INTO comments (note_id, user_id, parent_id, text) VALUES ($1, $2, NULLIF($3, ''), $4)
			RETURNING id
		`, noteID, c.UserID, c.ParentID, c.Text); err != nil {
			return fmt.Errorf("failed to insert comment: %w", mapErr(err))
		}

		if _, err := s.ext.ExecContext(ctx, `
			UPDATE notes SET comments_count = comments_count + 1, updated_at = now() WHERE id = $1
		`, noteID); err != nil {
			return fmt.Errorf("failed to update comments count: %w", err)
		}

		if author != c.UserID {
			return s.notify(ctx, entities.CommentNotificationType, c.UserID, author, noteID, id)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	if !found {
		return nil, nil
	}

	return s.getNote(ctx, noteID)
}
