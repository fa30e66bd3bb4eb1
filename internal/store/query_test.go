package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Decentr-net/notos/internal/entities"
	"github.com/Decentr-net/notos/internal/storage/memory"
)

func TestStore_GetTrendingTags(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memory.New())

	mustCreateNote(t, s, "n1", "u1", 50, "#a", "#b")
	mustCreateNote(t, s, "n2", "u1", 40, "#a", "#c")
	mustCreateNote(t, s, "n3", "u1", 30, "#a", "#b")
	mustCreateNote(t, s, "n4", "u1", 20, "#a", "#c")
	mustCreateNote(t, s, "n5", "u1", 10, "#a", "#b", "#c")

	got, err := s.GetTrendingTags(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, []string{"#a", "#b"}, got)

	got, err = s.GetTrendingTags(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, []string{"#a", "#b", "#c"}, got)
}

func TestStore_GetTrendingTags_Window(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memory.New())

	for i := 0; i < 3; i++ {
		mustCreateNote(t, s, "", "u1", int64(i+1), "#old")
	}
	for i := 0; i < trendingWindow; i++ {
		mustCreateNote(t, s, "", "u1", int64(1000+i), "#new")
	}
	mustCreateNote(t, s, "", "u1", 5000, "#fresh")

	got, err := s.GetTrendingTags(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, []string{"#new", "#fresh"}, got)
}

func TestStore_Search(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memory.New())

	for _, u := range []entities.User{
		{ID: "u1", Username: "straße_fan", DisplayName: "Anna Müller"},
		{ID: "u2", Username: "omar_hassan", DisplayName: "عمر حسن"},
		{ID: "u3", Username: "zed", DisplayName: "Zed"},
	} {
		_, err := s.CreateUser(ctx, u)
		require.NoError(t, err)
	}

	_, err := s.CreateNote(ctx, entities.Note{ID: "n1", UserID: "u1", Type: entities.TextNoteType, Content: "Coffee in the MORNING"})
	require.NoError(t, err)
	_, err = s.CreateNote(ctx, entities.Note{ID: "n2", UserID: "u2", Type: entities.TextNoteType, Content: "plain", Tags: []string{"#Travel"}})
	require.NoError(t, err)

	tt := []struct {
		name  string
		query string
		users []string
		notes []string
	}{
		{name: "empty", query: "", users: []string{"u1", "u2", "u3"}, notes: []string{}},
		{name: "blank", query: "  ", users: []string{"u1", "u2", "u3"}, notes: []string{}},
		{name: "username case", query: "OMAR", users: []string{"u2"}, notes: []string{}},
		{name: "display name unicode", query: "MÜLLER", users: []string{"u1"}, notes: []string{}},
		{name: "arabic", query: "حسن", users: []string{"u2"}, notes: []string{}},
		{name: "content", query: "morning", users: []string{}, notes: []string{"n1"}},
		{name: "tag", query: "travel", users: []string{}, notes: []string{"n2"}},
		{name: "nothing", query: "qwerty", users: []string{}, notes: []string{}},
	}

	for i := range tt {
		tc := tt[i]
		t.Run(tc.name, func(t *testing.T) {
			res, err := s.Search(ctx, tc.query)
			require.NoError(t, err)

			users := make([]string, 0, len(res.Users))
			for _, u := range res.Users {
				users = append(users, u.ID)
			}
			notes := make([]string, 0, len(res.Notes))
			for _, n := range res.Notes {
				notes = append(notes, n.ID)
			}

			assert.Equal(t, tc.users, users)
			assert.Equal(t, tc.notes, notes)
		})
	}
}
