package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Decentr-net/notos/internal/entities"
	"github.com/Decentr-net/notos/internal/storage/memory"
)

func TestStore_CreateNote(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memory.New())
	mustCreateUsers(t, s, "u1")

	tt := []struct {
		name string
		note entities.Note
		err  error
		tags []string
	}{
		{
			name: "tags extracted",
			note: entities.Note{UserID: "u1", Content: "hello #go and #مرحبا", Type: entities.TextNoteType},
			tags: []string{"#go", "#مرحبا"},
		},
		{
			name: "tags kept",
			note: entities.Note{UserID: "u1", Content: "hello #go", Type: entities.TextNoteType, Tags: []string{"#mine"}},
			tags: []string{"#mine"},
		},
		{
			name: "no tags",
			note: entities.Note{UserID: "u1", Content: "hello", Type: entities.TextNoteType},
			tags: []string{},
		},
		{
			name: "audio",
			note: entities.Note{UserID: "u1", Type: entities.AudioNoteType, AudioURL: "blob:notos/1", AudioDuration: 2.5},
			tags: []string{},
		},
		{
			name: "audio without duration",
			note: entities.Note{UserID: "u1", Type: entities.AudioNoteType, AudioURL: "blob:notos/1"},
			err:  entities.ErrInvalidNote,
		},
		{
			name: "unknown type",
			note: entities.Note{UserID: "u1", Type: "VIDEO"},
			err:  entities.ErrUnknownEnum,
		},
	}

	for i := range tt {
		tc := tt[i]
		t.Run(tc.name, func(t *testing.T) {
			n, err := s.CreateNote(ctx, tc.note)
			if tc.err != nil {
				require.True(t, errors.Is(err, tc.err), err)
				return
			}
			require.NoError(t, err)

			assert.NotEmpty(t, n.ID)
			assert.Equal(t, testTime.UnixMilli(), n.Timestamp)
			assert.Equal(t, tc.tags, n.Tags)
			assert.Equal(t, "u1", n.Author.ID)
			assert.Equal(t, 0, n.Likes)
			assert.NotNil(t, n.LikedBy)
			assert.NotNil(t, n.Comments)

			notes, err := s.GetNotes(ctx)
			require.NoError(t, err)
			assert.Equal(t, n.ID, notes[0].ID, "new note goes first")
		})
	}
}

func TestStore_CreateNote_LikesFollowLikers(t *testing.T) {
	s := newTestStore(t, memory.New())

	n, err := s.CreateNote(context.Background(), entities.Note{
		UserID: "u1",
		Type:   entities.TextNoteType,
		Likes:  100,
	})
	require.NoError(t, err)
	require.Equal(t, 0, n.Likes)
}

func TestStore_CreateNote_DuplicateID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memory.New())
	mustCreateUsers(t, s, "u1")
	mustCreateNote(t, s, "n1", "u1", 10)

	_, err := s.CreateNote(ctx, entities.Note{
		ID:      "n1",
		UserID:  "u1",
		Content: "second",
		Type:    entities.TextNoteType,
	})
	require.True(t, errors.Is(err, ErrAlreadyExists), err)

	notes, err := s.GetNotes(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "content of n1", notes[0].Content)
}

func TestStore_CreateNotification_DuplicateID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memory.New())
	mustCreateUsers(t, s, "u1", "u2")

	n := entities.Notification{
		ID:       "x1",
		Type:     entities.MentionNotificationType,
		FromUser: testUser("u2"),
		ToUserID: "u1",
	}
	_, err := s.CreateNotification(ctx, n)
	require.NoError(t, err)

	_, err = s.CreateNotification(ctx, n)
	require.True(t, errors.Is(err, ErrAlreadyExists), err)

	_, err = s.CreateNotification(ctx, entities.Notification{FromUser: testUser("u2"), ToUserID: "u1"})
	require.True(t, errors.Is(err, entities.ErrUnknownEnum), err)

	list, err := s.GetNotifications(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestStore_GetNotes_Order(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memory.New())

	mustCreateNote(t, s, "old", "u1", 10)
	mustCreateNote(t, s, "tie1", "u1", 20)
	mustCreateNote(t, s, "tie2", "u1", 20)
	mustCreateNote(t, s, "new", "u1", 30)
	mustCreateNote(t, s, "older", "u1", 5)

	notes, err := s.GetNotes(ctx)
	require.NoError(t, err)

	ids := make([]string, len(notes))
	for i, n := range notes {
		ids[i] = n.ID
	}
	require.Equal(t, []string{"new", "tie2", "tie1", "old", "older"}, ids)
}

func TestStore_GetNotes_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memory.New())
	mustCreateNote(t, s, "n1", "u1", 0, "#a")

	notes, err := s.GetNotes(ctx)
	require.NoError(t, err)
	notes[0].Tags[0] = "#changed"
	notes[0].LikedBy = append(notes[0].LikedBy, "intruder")

	notes, err = s.GetNotes(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"#a"}, notes[0].Tags)
	require.Empty(t, notes[0].LikedBy)
}

func TestStore_ToggleLike(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memory.New())
	mustCreateUsers(t, s, "u1", "u2")
	mustCreateNote(t, s, "n1", "u1", 0)

	before, err := s.GetNotes(ctx)
	require.NoError(t, err)

	n, err := s.ToggleLike(ctx, "n1", "u2")
	require.NoError(t, err)
	require.Equal(t, 1, n.Likes)

	n, err = s.ToggleLike(ctx, "n1", "u2")
	require.NoError(t, err)
	require.Equal(t, before[0].Likes, n.Likes)
	require.Equal(t, before[0].LikedBy, n.LikedBy)

	notifications, err := s.GetNotifications(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, notifications, 1, "removal doesn't notify")

	n, err = s.ToggleLike(ctx, "n1", "u1")
	require.NoError(t, err)
	require.Equal(t, []string{"u1"}, n.LikedBy)

	notifications, err = s.GetNotifications(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, notifications, 1, "own like doesn't notify")

	n, err = s.ToggleLike(ctx, "missing", "u2")
	require.NoError(t, err)
	require.Nil(t, n)
}

func TestStore_ToggleLike_SeedNote(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	require.NoError(t, st.Put(ctx, DefaultKey, []byte(`{"users":[],"notes":[
		{"id":"n1","userId":"ghost","type":"TEXT","timestamp":1,"likes":120,"likedBy":[]}
	],"notifications":[]}`)))

	s := newTestStore(t, st)

	n, err := s.ToggleLike(ctx, "n1", "u1")
	require.NoError(t, err)
	require.Equal(t, 121, n.Likes)

	n, err = s.ToggleLike(ctx, "n1", "u1")
	require.NoError(t, err)
	require.Equal(t, 120, n.Likes)
	require.Empty(t, n.LikedBy)
}

func TestStore_ToggleCommentLike(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memory.New())
	mustCreateUsers(t, s, "u1", "u2", "u3")
	mustCreateNote(t, s, "n1", "u1", 0)

	_, err := s.AddComment(ctx, "n1", entities.Comment{ID: "c1", UserID: "u2", Text: "nice"})
	require.NoError(t, err)

	n, err := s.ToggleCommentLike(ctx, "n1", "c1", "u3")
	require.NoError(t, err)
	require.Equal(t, 1, n.Comments[0].Likes)
	require.Equal(t, []string{"u3"}, n.Comments[0].LikedBy)

	notifications, err := s.GetNotifications(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, entities.LikeNotificationType, notifications[0].Type)
	assert.Equal(t, "c1", notifications[0].CommentID)
	assert.Equal(t, "n1", notifications[0].NoteID)
	assert.Equal(t, "u3", notifications[0].FromUser.ID)

	n, err = s.ToggleCommentLike(ctx, "n1", "c1", "u3")
	require.NoError(t, err)
	require.Equal(t, 0, n.Comments[0].Likes)
	require.Empty(t, n.Comments[0].LikedBy)

	for _, args := range [][2]string{{"missing", "c1"}, {"n1", "missing"}} {
		n, err := s.ToggleCommentLike(ctx, args[0], args[1], "u3")
		require.NoError(t, err)
		require.Nil(t, n)
	}
}

func TestStore_ToggleCommentLike_Floor(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	require.NoError(t, st.Put(ctx, DefaultKey, []byte(`{"users":[],"notes":[
		{"id":"n1","userId":"u1","type":"TEXT","timestamp":1,"likes":0,"likedBy":[],"comments":[
			{"id":"c1","userId":"u2","text":"x","timestamp":1,"likes":0,"likedBy":["u3","u4"]}
		]}
	],"notifications":[]}`)))

	s := newTestStore(t, st)

	for _, u := range []string{"u3", "u4"} {
		n, err := s.ToggleCommentLike(ctx, "n1", "c1", u)
		require.NoError(t, err)
		require.Equal(t, 0, n.Comments[0].Likes)
	}

	n, err := s.ToggleCommentLike(ctx, "n1", "c1", "u3")
	require.NoError(t, err)
	require.Equal(t, 1, n.Comments[0].Likes)
	require.Equal(t, []string{"u3"}, n.Comments[0].LikedBy)
}

func TestStore_AddComment(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memory.New())
	mustCreateUsers(t, s, "u1", "u2")
	mustCreateNote(t, s, "n1", "u1", 0)

	n, err := s.AddComment(ctx, "n1", entities.Comment{UserID: "u2", Text: "first"})
	require.NoError(t, err)
	require.Len(t, n.Comments, 1)
	root := n.Comments[0]
	assert.NotEmpty(t, root.ID)
	assert.Equal(t, testTime.UnixMilli(), root.Timestamp)
	assert.NotNil(t, root.LikedBy)

	n, err = s.AddComment(ctx, "n1", entities.Comment{UserID: "u1", Text: "reply", ParentID: root.ID})
	require.NoError(t, err)
	require.Len(t, n.Comments, 2)
	assert.Equal(t, "first", n.Comments[0].Text)
	assert.Equal(t, root.ID, n.Comments[1].ParentID)

	n, err = s.AddComment(ctx, "n1", entities.Comment{UserID: "u1", Text: "orphan", ParentID: "gone"})
	require.NoError(t, err)
	require.Len(t, n.Comments, 3)

	_, err = s.AddComment(ctx, "n1", entities.Comment{ID: root.ID, UserID: "u1"})
	require.True(t, errors.Is(err, ErrAlreadyExists))

	notifications, err := s.GetNotifications(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, notifications)

	n, err = s.AddComment(ctx, "missing", entities.Comment{UserID: "u1"})
	require.NoError(t, err)
	require.Nil(t, n)
}
