// Package tags contains hashtag helpers shared by the backends.
package tags

import (
	"regexp"
	"sort"
	"strings"
)

var hashtag = regexp.MustCompile(`#[\p{L}\p{N}_]+`)

// Extract returns hashtags found in text in order of appearance without duplicates.
func Extract(text string) []string {
	found := hashtag.FindAllString(text, -1)
	if len(found) == 0 {
		return nil
	}

	out := make([]string, 0, len(found))
	seen := make(map[string]struct{}, len(found))

	for _, v := range found {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}

	return out
}

// Trending tallies tags case-sensitively and returns up to limit of them ordered by
// descending frequency; equal frequencies keep the order the tags were first met.
func Trending(lists [][]string, limit int) []string {
	if limit <= 0 {
		return []string{}
	}

	var order []string
	counts := make(map[string]int)

	for _, list := range lists {
		for _, tag := range list {
			t := strings.TrimSpace(tag)
			if t == "" {
				continue
			}
			if _, ok := counts[t]; !ok {
				order = append(order, t)
			}
			counts[t]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > limit {
		order = order[:limit]
	}

	if order == nil {
		return []string{}
	}

	return order
}
