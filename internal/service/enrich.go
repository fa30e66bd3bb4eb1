package service

import (
	"context"
	"slices"

	"github.com/Decentr-net/notos/internal/entities"
	"github.com/Decentr-net/notos/internal/suggest"
	"github.com/Decentr-net/notos/internal/tags"
)

// Enrich fills tags and style of a note the user left empty.
// Tags are the hashtags of the content followed by suggested tags not already present.
// Mood picks color and icon when no color is set.
func Enrich(ctx context.Context, s suggest.Suggester, n NewNote) NewNote {
	n.Tags = slices.Clone(n.Tags)

	if len(n.Tags) == 0 && n.Content != "" {
		n.Tags = tags.Extract(n.Content)
		for _, t := range s.SuggestTags(ctx, n.Content) {
			if !slices.Contains(n.Tags, t) {
				n.Tags = append(n.Tags, t)
			}
		}
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}

	if n.Style.Font == "" {
		n.Style.Font = entities.SansFont
	}

	if n.Style.Color == "" {
		n.Style.Color = entities.WhiteColor
		if m, ok := s.AnalyzeMood(ctx, n.Content); ok {
			n.Style.Color = m.Color
			if n.Style.Icon == "" {
				n.Style.Icon = m.Icon
			}
		}
	}

	if n.Type == "" {
		n.Type = entities.TextNoteType
	}

	return n
}
