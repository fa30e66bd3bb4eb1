package store

import (
	"context"
	"strings"

	"golang.org/x/text/cases"

	"github.com/Decentr-net/notos/internal/entities"
	"github.com/Decentr-net/notos/internal/tags"
)

// SearchResult ...
type SearchResult struct {
	Users []entities.User `json:"users"`
	Notes []entities.Note `json:"notes"`
}

// GetTrendingTags returns up to limit most frequent tags of the latest notes.
func (s *Store) GetTrendingTags(ctx context.Context, limit int) ([]string, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	notes := s.sortedNotes()
	if len(notes) > trendingWindow {
		notes = notes[:trendingWindow]
	}

	lists := make([][]string, len(notes))
	for i, n := range notes {
		lists[i] = n.Tags
	}

	return tags.Trending(lists, limit), nil
}

// Search matches query against usernames and display names of users and against content
// and tags of notes, ignoring case. Empty query returns every user and no notes.
func (s *Store) Search(ctx context.Context, query string) (*SearchResult, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	res := SearchResult{
		Users: []entities.User{},
		Notes: []entities.Note{},
	}

	fold := cases.Fold()
	q := fold.String(strings.TrimSpace(query))

	match := func(v string) bool {
		return strings.Contains(fold.String(v), q)
	}

	for _, u := range s.users {
		if q == "" || match(u.Username) || match(u.DisplayName) {
			res.Users = append(res.Users, u.Clone())
		}
	}

	if q == "" {
		return &res, nil
	}

	for _, n := range s.sortedNotes() {
		if match(n.Content) || matchAny(n.Tags, match) {
			res.Notes = append(res.Notes, n)
		}
	}

	return &res, nil
}

func matchAny(list []string, match func(string) bool) bool {
	for _, v := range list {
		if match(v) {
			return true
		}
	}

	return false
}
