// Package generator synthesizes ghost users, notes and comments from fixed pools.
package generator

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/Decentr-net/notos/internal/entities"
)

const (
	maxUsernameSuffix = 9999
	verifiedChance    = 0.15
	seedNoteMaxAge    = 3 * 24 * time.Hour
	seedNoteMaxLikes  = 199
)

// Generator is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	f   *gofakeit.Faker
	now func() time.Time
}

// Option configures Generator.
type Option func(g *Generator)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// New creates new instance of Generator. Zero seed picks a random one.
func New(seed int64, opts ...Option) *Generator {
	g := &Generator{
		f:   gofakeit.New(seed),
		now: time.Now,
	}

	for _, o := range opts {
		o(g)
	}

	return g
}

// Float64 returns a number in [0, 1).
func (g *Generator) Float64() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.f.Float64()
}

// Intn returns a number in [0, n). n must be positive.
func (g *Generator) Intn(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.f.Number(0, n-1)
}

// GenerateUser returns a ghost user.
// Followers and Following are random while FollowingIDs stay empty: the counters are
// "ambient popularity" and are never reconciled with real edges.
func (g *Generator) GenerateUser() entities.User {
	g.mu.Lock()
	defer g.mu.Unlock()

	first, last := latinFirstNames, latinLastNames
	if g.f.Bool() {
		first, last = arabicFirstNames, arabicLastNames
	}

	firstName, lastName := g.f.RandomString(first), g.f.RandomString(last)
	username := fmt.Sprintf("%s_%s_%d",
		strings.ToLower(firstName), strings.ToLower(lastName), g.f.Number(0, maxUsernameSuffix),
	)

	var badges []string
	if g.f.Float64() < verifiedChance {
		badges = []string{"verified"}
	}

	return entities.User{
		ID:           "ghost_" + uuid.NewString(),
		Username:     username,
		DisplayName:  firstName + " " + lastName,
		Email:        username + "@notos.fake",
		AvatarURL:    g.f.RandomString(avatars),
		CoverURL:     fmt.Sprintf("https://images.unsplash.com/photo-%d?w=800&q=80", g.f.Number(0, 999)),
		Followers:    g.f.Number(50, 1049),
		Following:    g.f.Number(20, 519),
		FollowingIDs: []string{},
		Bio:          g.f.RandomString(bios),
		Badges:       badges,
		NotificationSettings: entities.NotificationSettings{
			Likes:    true,
			Follows:  true,
			NewPosts: true,
		},
	}
}

// GenerateNote returns a text note authored by author.
// Seed notes are backdated up to three days and carry random likes without likers.
func (g *Generator) GenerateNote(author entities.User, seed bool) entities.Note {
	g.mu.Lock()
	defer g.mu.Unlock()

	t := templates[g.f.Number(0, len(templates)-1)]

	n := entities.Note{
		ID:        "note_" + uuid.NewString(),
		UserID:    author.ID,
		Author:    author.Clone(),
		Content:   t.text,
		Type:      entities.TextNoteType,
		Timestamp: g.now().UnixMilli(),
		LikedBy:   []string{},
		Comments:  []entities.Comment{},
		Style:     t.style,
		Tags:      append([]string(nil), t.tags...),
	}

	if seed {
		n.Timestamp -= int64(g.f.Number(0, int(seedNoteMaxAge/time.Millisecond)-1))
		n.Likes = g.f.Number(0, seedNoteMaxLikes)
	}

	return n
}

// GenerateComment returns a comment written by userID.
func (g *Generator) GenerateComment(userID string) entities.Comment {
	g.mu.Lock()
	defer g.mu.Unlock()

	return entities.Comment{
		ID:        "comment_" + uuid.NewString(),
		UserID:    userID,
		Text:      g.f.RandomString(comments),
		Timestamp: g.now().UnixMilli(),
		LikedBy:   []string{},
	}
}
