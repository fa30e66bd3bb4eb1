package postgres

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/Decentr-net/notos/internal/entities"
	"github.com/Decentr-net/notos/internal/service"
)

func TestStringsUnique(t *testing.T) {
	require.Equal(t, []string{"a", "b", "c"}, stringsUnique([]string{"a", "b", "a", "c", "b"}))
	require.Empty(t, stringsUnique(nil))
}

func TestEscapeLike(t *testing.T) {
	tt := []struct {
		name string
		in   string
		out  string
	}{
		{name: "plain", in: "notos", out: "notos"},
		{name: "percent", in: "100%", out: `100\%`},
		{name: "underscore", in: "a_b", out: `a\_b`},
		{name: "backslash", in: `a\b`, out: `a\\b`},
	}

	for i := range tt {
		tc := tt[i]
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.out, escapeLike(tc.in))
		})
	}
}

func TestMapErr(t *testing.T) {
	tt := []struct {
		name string
		err  error
		is   error
	}{
		{name: "unique", err: &pq.Error{Code: uniqueViolation}, is: service.ErrAlreadyExists},
		{name: "foreign key", err: &pq.Error{Code: foreignKeyViolation}, is: service.ErrNotFound},
	}

	for i := range tt {
		tc := tt[i]
		t.Run(tc.name, func(t *testing.T) {
			err := mapErr(tc.err)
			require.ErrorIs(t, err, tc.is)

			var pqErr *pq.Error
			require.True(t, errors.As(err, &pqErr))
		})
	}

	other := errors.New("boom")
	require.Equal(t, other, mapErr(other))
}

func TestProfileDTO_toEntity(t *testing.T) {
	changed := time.Unix(1700000000, 0)

	u := profileDTO{
		ID:                 "id",
		Username:           "ann",
		DisplayName:        "Ann",
		LastUsernameChange: sql.NullTime{Time: changed, Valid: true},
		FollowersCount:     2,
		NotificationLikes:  true,
		FollowingIDs:       pq.StringArray{"bob"},
	}.toEntity()

	require.Equal(t, "ann", u.Username)
	require.Equal(t, changed.UnixMilli(), u.LastUsernameChange)
	require.Equal(t, []string{"bob"}, u.FollowingIDs)
	require.Equal(t, []string{}, u.Badges)
	require.Equal(t, 2, u.Followers)
	require.True(t, u.NotificationSettings.Likes)
	require.False(t, u.NotificationSettings.Follows)

	require.Zero(t, profileDTO{}.toEntity().LastUsernameChange)
	require.Equal(t, []string{}, profileDTO{}.toEntity().FollowingIDs)
}

func TestNoteDTO_toEntity(t *testing.T) {
	created := time.Unix(1700000000, 0)
	author := entities.User{ID: "ann", Username: "ann"}

	n := noteDTO{
		ID:         "n1",
		UserID:     "ann",
		Content:    "hi #go",
		Type:       "TEXT",
		StyleColor: "BLUE",
		StyleFont:  "font-mono",
		LikesCount: 3,
		CreatedAt:  created,
	}.toEntity(author)

	require.Equal(t, entities.TextNoteType, n.Type)
	require.Equal(t, author, n.Author)
	require.Equal(t, created.UnixMilli(), n.Timestamp)
	require.Equal(t, entities.Style{Font: entities.MonoFont, Color: entities.BlueColor}, n.Style)
	require.Equal(t, []string{}, n.Tags)
	require.Equal(t, []string{}, n.LikedBy)
	require.Equal(t, []entities.Comment{}, n.Comments)
	require.Equal(t, 3, n.Likes)
}

func TestShortID(t *testing.T) {
	require.Equal(t, "abc", shortID("abc"))
	require.Equal(t, "456789", shortID("ghost_0123456789"))
}

func TestFromMillis(t *testing.T) {
	ts := fromMillis(1700000000123)
	require.Equal(t, int64(1700000000123), toMillis(ts))
	require.Equal(t, time.UTC, ts.Location())
}
