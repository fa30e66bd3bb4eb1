//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	m "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Decentr-net/notos/internal/entities"
	"github.com/Decentr-net/notos/internal/service"
)

var (
	db  *sql.DB
	ctx = context.Background()
)

func TestMain(m *testing.M) {
	shutdown := setup()

	code := m.Run()
	shutdown()
	os.Exit(code)
}

func setup() func() {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16",
		Env:          map[string]string{"POSTGRES_PASSWORD": "root"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		logrus.WithError(err).Fatalf("failed to create container")
	}

	host, err := c.Host(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("failed to get host")
	}

	port, err := c.MappedPort(ctx, "5432")
	if err != nil {
		logrus.WithError(err).Fatal("failed to map port")
	}

	dsn := fmt.Sprintf("host=%s port=%d user=postgres password=root sslmode=disable", host, port.Int())

	db, err = sql.Open("postgres", dsn)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open connection")
	}

	if err := db.Ping(); err != nil {
		logrus.WithError(err).Fatal("failed to ping postgres")
	}

	migrate("postgres", "root", host, "postgres", port.Int())

	return func() {
		if err := c.Terminate(ctx); err != nil {
			logrus.WithError(err).Error("failed to terminate container")
		}
	}
}

func migrate(username, password, hostname, dbname string, port int) {
	_, currFile, _, ok := runtime.Caller(0)
	if !ok {
		logrus.Fatal("failed to get current file location")
	}

	migrations := filepath.Join(currFile, "../../../../scripts/migrations/postgres/")

	migrator, err := m.New(
		fmt.Sprintf("file://%s", migrations),
		fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			username, password, hostname, port, dbname),
	)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create migrator")
	}
	defer migrator.Close()

	if err := migrator.Up(); err != nil {
		logrus.WithError(err).Fatal("failed to migrate")
	}
}

func cleanup(t *testing.T) {
	_, err := db.ExecContext(ctx, `TRUNCATE profiles CASCADE`)
	require.NoError(t, err)
}

func signup(t *testing.T, s service.Service, email string) *entities.User {
	u, err := s.Signup(ctx, service.Credentials{Email: email, Password: "secret"})
	require.NoError(t, err)
	return u
}

func TestPg_SignupLogin(t *testing.T) {
	defer cleanup(t)

	s := New(db, nil, nil)

	_, err := s.CurrentUser(ctx)
	require.ErrorIs(t, err, service.ErrNotAuthenticated)

	u := signup(t, s, "ann@notos.app")
	assert.Equal(t, "ann", u.Username)
	assert.Equal(t, "ann@notos.app", u.Email)
	assert.Equal(t, []string{}, u.FollowingIDs)
	assert.True(t, u.NotificationSettings.Likes)

	cur, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, u.ID, cur.ID)

	_, err = s.Signup(ctx, service.Credentials{Email: "ann@notos.app", Password: "other", Username: "ann2"})
	require.ErrorIs(t, err, service.ErrAlreadyExists)

	require.NoError(t, s.Logout(ctx))
	_, err = s.CurrentUser(ctx)
	require.ErrorIs(t, err, service.ErrNotAuthenticated)

	_, err = s.Login(ctx, service.Credentials{Email: "ann@notos.app", Password: "wrong"})
	require.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = s.Login(ctx, service.Credentials{Email: "nobody@notos.app", Password: "secret"})
	require.ErrorIs(t, err, service.ErrInvalidCredentials)

	l, err := s.Login(ctx, service.Credentials{Username: "ann", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, l.ID)
}

func TestPg_ToggleFollow(t *testing.T) {
	defer cleanup(t)

	s := New(db, nil, nil)
	ann := signup(t, s, "ann@notos.app")
	bob := signup(t, s, "bob@notos.app")

	f, tg, err := s.ToggleFollow(ctx, ann.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{bob.ID}, f.FollowingIDs)
	assert.Equal(t, 1, f.Following)
	assert.Equal(t, 1, tg.Followers)

	n, err := s.GetNotifications(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, n, 1)
	assert.Equal(t, entities.FollowNotificationType, n[0].Type)
	assert.Equal(t, ann.ID, n[0].FromUser.ID)
	assert.False(t, n[0].Read)

	f, tg, err = s.ToggleFollow(ctx, ann.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{}, f.FollowingIDs)
	assert.Equal(t, 0, f.Following)
	assert.Equal(t, 0, tg.Followers)

	_, _, err = s.ToggleFollow(ctx, ann.ID, ann.ID)
	require.ErrorIs(t, err, service.ErrSelfFollow)

	_, _, err = s.ToggleFollow(ctx, ann.ID, "missing")
	require.ErrorIs(t, err, service.ErrNotFound)

	require.NoError(t, s.MarkNotificationsRead(ctx, bob.ID))
	n, err = s.GetNotifications(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, n, 1)
	assert.True(t, n[0].Read)
}

func TestPg_Notes(t *testing.T) {
	defer cleanup(t)

	s := New(db, nil, nil)
	ann := signup(t, s, "ann@notos.app")
	bob := signup(t, s, "bob@notos.app")

	first, err := s.CreateNote(ctx, ann.ID, service.NewNote{Content: "first #go"})
	require.NoError(t, err)
	assert.Equal(t, entities.TextNoteType, first.Type)
	assert.Equal(t, []string{"#go"}, first.Tags)
	assert.Equal(t, entities.WhiteColor, first.Style.Color)
	assert.Equal(t, entities.SansFont, first.Style.Font)
	assert.Equal(t, ann.ID, first.Author.ID)

	second, err := s.CreateNote(ctx, bob.ID, service.NewNote{Content: "second"})
	require.NoError(t, err)

	notes, err := s.GetNotes(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, second.ID, notes[0].ID)
	assert.Equal(t, first.ID, notes[1].ID)

	_, err = s.CreateNote(ctx, ann.ID, service.NewNote{Content: "voice", Type: entities.AudioNoteType})
	require.ErrorIs(t, err, service.ErrInvalidArgument)

	_, err = s.CreateNote(ctx, "missing", service.NewNote{Content: "ghost"})
	require.ErrorIs(t, err, service.ErrNotFound)

	liked, err := s.ToggleLike(ctx, first.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, liked.Likes)
	assert.Equal(t, []string{bob.ID}, liked.LikedBy)

	unliked, err := s.ToggleLike(ctx, first.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, unliked.Likes)
	assert.Equal(t, []string{}, unliked.LikedBy)

	missing, err := s.ToggleLike(ctx, "missing", bob.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	commented, err := s.AddComment(ctx, first.ID, entities.Comment{UserID: bob.ID, Text: "nice"})
	require.NoError(t, err)
	require.Len(t, commented.Comments, 1)
	c := commented.Comments[0]
	assert.Equal(t, "nice", c.Text)
	assert.Equal(t, []string{}, c.LikedBy)

	withLike, err := s.ToggleCommentLike(ctx, first.ID, c.ID, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, withLike.Comments[0].Likes)
	assert.Equal(t, []string{ann.ID}, withLike.Comments[0].LikedBy)

	missing, err = s.ToggleCommentLike(ctx, first.ID, "missing", ann.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	missing, err = s.AddComment(ctx, "missing", entities.Comment{UserID: bob.ID, Text: "lost"})
	require.NoError(t, err)
	assert.Nil(t, missing)

	n, err := s.GetNotifications(ctx, ann.ID)
	require.NoError(t, err)
	require.Len(t, n, 2)
	assert.Equal(t, entities.CommentNotificationType, n[0].Type)
	assert.Equal(t, c.ID, n[0].CommentID)
	assert.Equal(t, entities.LikeNotificationType, n[1].Type)
	assert.Empty(t, n[1].CommentID)

	n, err = s.GetNotifications(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, n, 1)
	assert.Equal(t, c.ID, n[0].CommentID)
}

func TestPg_UpdateUser(t *testing.T) {
	defer cleanup(t)

	s := New(db, nil, nil)
	ann := signup(t, s, "ann@notos.app")
	signup(t, s, "bob@notos.app")

	bio := "hello"
	u, err := s.UpdateUser(ctx, ann.ID, entities.UserUpdate{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "hello", u.Bio)
	assert.Zero(t, u.LastUsernameChange)

	name := "annie"
	u, err = s.UpdateUser(ctx, ann.ID, entities.UserUpdate{Username: &name})
	require.NoError(t, err)
	assert.Equal(t, "annie", u.Username)
	assert.NotZero(t, u.LastUsernameChange)

	taken := "bob"
	_, err = s.UpdateUser(ctx, ann.ID, entities.UserUpdate{Username: &taken})
	require.ErrorIs(t, err, service.ErrAlreadyExists)

	_, err = s.UpdateUser(ctx, "missing", entities.UserUpdate{Bio: &bio})
	require.ErrorIs(t, err, service.ErrNotFound)

	require.NoError(t, s.MarkTutorialSeen(ctx, ann.ID))
	u, err = s.CurrentUser(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, ann.ID, u.ID)

	users, err := s.GetUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.True(t, users[0].HasSeenTutorial)
}

func TestPg_SearchAndTrending(t *testing.T) {
	defer cleanup(t)

	s := New(db, nil, nil)
	ann := signup(t, s, "ann@notos.app")
	signup(t, s, "bob@notos.app")

	for _, c := range []string{"morning #coffee", "evening #coffee #tea", "100% #focus"} {
		_, err := s.CreateNote(ctx, ann.ID, service.NewNote{Content: c})
		require.NoError(t, err)
	}

	res, err := s.Search(ctx, "ANN")
	require.NoError(t, err)
	require.Len(t, res.Users, 1)
	assert.Equal(t, ann.ID, res.Users[0].ID)
	assert.Empty(t, res.Notes)

	res, err = s.Search(ctx, "#Coffee")
	require.NoError(t, err)
	assert.Len(t, res.Notes, 2)

	res, err = s.Search(ctx, "%")
	require.NoError(t, err)
	assert.Len(t, res.Notes, 1)

	res, err = s.Search(ctx, "  ")
	require.NoError(t, err)
	assert.Len(t, res.Users, 2)
	assert.Empty(t, res.Notes)

	trending, err := s.GetTrendingTags(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"#coffee", "#focus", "#tea"}, trending)
}

func TestPg_ConcurrentLikes(t *testing.T) {
	defer cleanup(t)

	s := New(db, nil, nil)
	ann := signup(t, s, "ann@notos.app")

	n, err := s.CreateNote(ctx, ann.ID, service.NewNote{Content: "popular"})
	require.NoError(t, err)

	var likers []string
	for i := 0; i < 8; i++ {
		likers = append(likers, signup(t, s, fmt.Sprintf("user%d@notos.app", i)).ID)
	}

	var wg sync.WaitGroup
	for _, id := range likers {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := s.ToggleLike(ctx, n.ID, id)
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	notes, err := s.GetNotes(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, len(likers), notes[0].Likes)
	assert.ElementsMatch(t, likers, notes[0].LikedBy)
}

func TestImport(t *testing.T) {
	defer cleanup(t)

	snap := Snapshot{
		Users: []entities.User{
			{ID: "ghost_1", Username: "ann", DisplayName: "Ann", Email: "ann@notos.fake", Followers: 40, FollowingIDs: []string{"ghost_2", "ghost_missing"}, Badges: []string{"verified"}},
			{ID: "ghost_2", Username: "bob", DisplayName: "Bob", Email: "bob@notos.fake"},
			{ID: "ghost_3", Username: "ann", DisplayName: "Ann Two", Email: "ann@notos.fake"},
		},
		Notes: []entities.Note{
			{
				ID: "note_1", UserID: "ghost_1", Content: "hello #go", Type: entities.TextNoteType, Timestamp: 1700000000000,
				Likes: 12, LikedBy: []string{"ghost_2"}, Tags: []string{"#go"},
				Comments: []entities.Comment{{ID: "comment_1", UserID: "ghost_2", Text: "hi", Timestamp: 1700000001000, LikedBy: []string{"ghost_1"}, Likes: 1}},
			},
			{ID: "note_orphan", UserID: "ghost_missing", Content: "lost", Type: entities.TextNoteType},
		},
		Notifications: []entities.Notification{
			{ID: "notification_1", Type: entities.CommentNotificationType, FromUser: entities.User{ID: "ghost_2"}, ToUserID: "ghost_1", NoteID: "note_1", CommentID: "comment_1", Timestamp: 1700000001000},
			{ID: "notification_2", Type: entities.LikeNotificationType, FromUser: entities.User{ID: "ghost_2"}, ToUserID: "ghost_1", NoteID: "note_orphan", Timestamp: 1700000002000},
		},
	}

	stats, err := Import(ctx, db, snap)
	require.NoError(t, err)
	assert.Equal(t, ImportStats{Users: 3, Notes: 1, Comments: 1, Follows: 1, Notifications: 2}, stats)

	again, err := Import(ctx, db, snap)
	require.NoError(t, err)
	assert.Equal(t, stats, again)

	s := New(db, nil, nil)

	users, err := s.GetUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)

	byID := make(map[string]entities.User)
	for _, u := range users {
		byID[u.ID] = u
	}
	assert.Equal(t, 40, byID["ghost_1"].Followers)
	assert.Equal(t, []string{"ghost_2"}, byID["ghost_1"].FollowingIDs)
	assert.Equal(t, []string{"verified"}, byID["ghost_1"].Badges)
	assert.Equal(t, "ann_host_3", byID["ghost_3"].Username)
	assert.Empty(t, byID["ghost_3"].Email)

	notes, err := s.GetNotes(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, int64(1700000000000), notes[0].Timestamp)
	assert.Equal(t, 12, notes[0].Likes)
	assert.Equal(t, []string{"ghost_2"}, notes[0].LikedBy)
	require.Len(t, notes[0].Comments, 1)
	assert.Equal(t, []string{"ghost_1"}, notes[0].Comments[0].LikedBy)

	n, err := s.GetNotifications(ctx, "ghost_1")
	require.NoError(t, err)
	require.Len(t, n, 2)
	assert.Empty(t, n[0].NoteID)
	assert.Equal(t, "comment_1", n[1].CommentID)
	assert.Equal(t, "Bob", n[1].FromUser.DisplayName)
}
