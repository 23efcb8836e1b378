package search

import (
	"strings"

	"github.com/matan1995el-lgtm/aliexpres/internal/models"
)

// Autocomplete limits.
const (
	minSuggestionQueryLen = 2
	DefaultSuggestionCap  = 5
)

// Suggestions returns autocomplete candidates for a partial query: the
// union of matching history queries, product names, categories and favorite
// tags, case-insensitive, de-duplicated, insertion-ordered and capped.
func Suggestions(snap Snapshot, history []models.SearchHistoryEntry, partial string, limit int) []string {
	if len([]rune(partial)) < minSuggestionQueryLen {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSuggestionCap
	}

	q := strings.ToLower(partial)
	seen := make(map[string]bool)
	var out []string

	add := func(s string) {
		if s == "" || seen[s] || !strings.Contains(strings.ToLower(s), q) {
			return
		}
		seen[s] = true
		if len(out) < limit {
			out = append(out, s)
		}
	}

	for _, h := range history {
		add(h.Query)
	}
	for _, p := range snap.Products {
		add(p.Name)
	}
	for _, p := range snap.Products {
		add(p.Category)
	}
	for _, f := range snap.Favorites {
		add(f.Category)
	}
	for _, f := range snap.Favorites {
		for _, tag := range f.Tags {
			add(tag)
		}
	}

	return out
}
