// Package postgres is implementation of service interface over postgres.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/notos/internal/entities"
	"github.com/Decentr-net/notos/internal/service"
	"github.com/Decentr-net/notos/internal/suggest"
	"github.com/Decentr-net/notos/internal/tags"
	"github.com/Decentr-net/notos/internal/upload"
)

var log = logrus.WithField("layer", "service").WithField("package", "postgres")

var errBeginCalledWithinTx = errors.New("can not begin tx within tx")

const (
	foreignKeyViolation = "23503"
	uniqueViolation     = "23505"

	trendingWindow = 100
)

// session holds the id of the signed in user. It is shared between pg copies bound to transactions.
type session struct {
	mu      sync.RWMutex
	current string
}

type pg struct {
	ext  sqlx.ExtContext
	sess *session
	sg   suggest.Suggester
	up   upload.Uploader
}

// New creates new instance of postgres service.
func New(db *sql.DB, sg suggest.Suggester, up upload.Uploader) service.Service {
	if sg == nil {
		sg = suggest.Noop()
	}

	return pg{
		ext:  sqlx.NewDb(db, "postgres"),
		sess: &session{},
		sg:   sg,
		up:   upload.WithFallback(up),
	}
}

func (s pg) withTx(ctx context.Context, f func(s pg) error) error {
	db, ok := s.ext.(*sqlx.DB)
	if !ok {
		return errBeginCalledWithinTx
	}

	tx, err := db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to create tx: %w", err)
	}

	txs := s
	txs.ext = tx

	if err := f(txs); err != nil {
		if err := tx.Rollback(); err != nil {
			log.WithError(err).Error("failed to rollback tx")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tx: %w", err)
	}

	return nil
}

func pqCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

// mapErr translates constraint violations to service errors.
func mapErr(err error) error {
	switch pqCode(err) {
	case uniqueViolation:
		return fmt.Errorf("%w: %w", service.ErrAlreadyExists, err)
	case foreignKeyViolation:
		return fmt.Errorf("%w: %w", service.ErrNotFound, err)
	default:
		return err
	}
}

func (s pg) UploadFile(ctx context.Context, data []byte, contentType string) (string, error) {
	return s.up.Upload(ctx, data, contentType)
}

// Search matches users by username or display name and notes by content or tag, case-insensitively.
func (s pg) Search(ctx context.Context, query string) (*service.SearchResult, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		users, err := s.GetUsers(ctx)
		if err != nil {
			return nil, err
		}
		return &service.SearchResult{Users: users, Notes: []entities.Note{}}, nil
	}

	pattern := "%" + escapeLike(q) + "%"

	users, err := s.queryProfiles(ctx, `WHERE p.username ILIKE $1 OR p.display_name ILIKE $1 ORDER BY p.created_at`, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	notes, err := s.queryNotes(ctx, `
		WHERE n.content ILIKE $1 OR EXISTS (SELECT 1 FROM unnest(n.tags) t WHERE t ILIKE $1)
		ORDER BY n.created_at DESC, n.seq DESC
	`, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search notes: %w", err)
	}

	return &service.SearchResult{Users: users, Notes: notes}, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// GetTrendingTags counts tags of the latest notes.
func (s pg) GetTrendingTags(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = service.DefaultTrendingTagsLimit
	}

	var rows []pq.StringArray
	if err := sqlx.SelectContext(ctx, s.ext, &rows, `
		SELECT tags FROM notes ORDER BY created_at DESC, seq DESC LIMIT $1
	`, trendingWindow); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	lists := make([][]string, len(rows))
	for i, v := range rows {
		lists[i] = v
	}

	return tags.Trending(lists, limit), nil
}
