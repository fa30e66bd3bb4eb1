// Package suggest contains optional AI enhancements of note creation.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/notos/internal/entities"
)

var log = logrus.WithField("layer", "suggest").WithField("package", "suggest")

const (
	maxTags       = 3
	minMoodLength = 10

	defaultIcon = "Star"
)

var moodColors = map[string]entities.NoteColor{
	"white":   entities.WhiteColor,
	"yellow":  entities.YellowColor,
	"blue":    entities.BlueColor,
	"rose":    entities.RoseColor,
	"emerald": entities.EmeraldColor,
	"violet":  entities.VioletColor,
	"dark":    entities.DarkColor,
}

var moodIcons = []string{
	"Star", "Feather", "Mic", "Music", "Plane", "Camera", "Palette", "Code",
	"Cpu", "Newspaper", "Flame", "Zap", "Globe", "Smile", "Moon", "Sun",
}

// Mood is a style picked for a text.
type Mood struct {
	Color entities.NoteColor
	Icon  string
}

// Suggester suggests tags and mood of a note. Failures are never returned to the caller.
type Suggester interface {
	// SuggestTags returns up to 3 hashtags for the text, empty on failure.
	SuggestTags(ctx context.Context, text string) []string
	// AnalyzeMood returns style for the text. It returns false on failure or too short text.
	AnalyzeMood(ctx context.Context, text string) (Mood, bool)
}

// Model generates a text response for prompt.
type Model interface {
	Generate(ctx context.Context, prompt string, jsonOutput bool) (string, error)
}

type suggester struct {
	m Model
}

// New returns Suggester over the model.
func New(m Model) Suggester {
	return suggester{m: m}
}

func (s suggester) SuggestTags(ctx context.Context, text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	raw, err := s.m.Generate(ctx, fmt.Sprintf(
		"Analyze this text: %q. Suggest 3 relevant, trending social media hashtags. "+
			"Return ONLY the hashtags separated by spaces. Example output: #art #design #colors", text,
	), false)
	if err != nil {
		log.WithError(err).Warn("failed to suggest tags")
		return []string{}
	}

	return parseTags(raw)
}

func (s suggester) AnalyzeMood(ctx context.Context, text string) (Mood, bool) {
	if strings.TrimSpace(text) == "" || utf8.RuneCountInString(text) < minMoodLength {
		return Mood{}, false
	}

	raw, err := s.m.Generate(ctx, fmt.Sprintf(
		"Analyze the sentiment and theme of this text: %q.\n"+
			"Return a JSON object with two fields:\n"+
			"1. \"color\": Choose one strictly from [%s].\n"+
			"2. \"icon\": Choose one strictly from [%s].\n"+
			"Example: {\"color\": \"blue\", \"icon\": \"Plane\"}",
		text, "white, yellow, blue, rose, emerald, violet, dark", strings.Join(moodIcons, ", "),
	), true)
	if err != nil {
		log.WithError(err).Warn("failed to analyze mood")
		return Mood{}, false
	}

	m, err := parseMood(raw)
	if err != nil {
		log.WithError(err).Warn("failed to parse mood")
		return Mood{}, false
	}

	return m, true
}

func parseTags(raw string) []string {
	out := make([]string, 0, maxTags)
	for _, f := range strings.Fields(raw) {
		if len(out) == maxTags {
			break
		}
		if strings.HasPrefix(f, "#") && len(f) > 1 {
			out = append(out, f)
		}
	}

	return out
}

func parseMood(raw string) (Mood, error) {
	var v struct {
		Color string `json:"color"`
		Icon  string `json:"icon"`
	}

	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimSuffix(strings.TrimPrefix(raw, "```"), "```")

	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return Mood{}, fmt.Errorf("failed to unmarshal mood: %w", err)
	}

	m := Mood{Color: entities.WhiteColor, Icon: defaultIcon}
	if c, ok := moodColors[strings.ToLower(strings.TrimSpace(v.Color))]; ok {
		m.Color = c
	}
	for _, icon := range moodIcons {
		if strings.EqualFold(icon, strings.TrimSpace(v.Icon)) {
			m.Icon = icon
		}
	}

	return m, nil
}

type noop struct{}

// Noop returns Suggester which never suggests anything.
func Noop() Suggester {
	return noop{}
}

func (noop) SuggestTags(context.Context, string) []string {
	return []string{}
}

func (noop) AnalyzeMood(context.Context, string) (Mood, bool) {
	return Mood{}, false
}
