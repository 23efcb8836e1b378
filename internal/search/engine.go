// Package search implements free-text, relevance-ranked and fuzzy search
// over the tracker's collections, plus query history and autocomplete.
package search

import (
	"sort"
	"strings"

	"github.com/matan1995el-lgtm/aliexpres/internal/catalog"
	"github.com/matan1995el-lgtm/aliexpres/internal/models"
)

// DefaultFuzzyThreshold is the minimum name similarity for a fuzzy match.
const DefaultFuzzyThreshold = 0.6

// Relevance point values per matched field.
const (
	pointsExactName   = 100
	pointsPartialName = 50
	pointsCategory    = 30
	pointsTags        = 20
	pointsNotes       = 10
	pointsHighPrio    = 15
)

// Snapshot is a read-only view of the collections a search runs over.
type Snapshot struct {
	Products  []models.Product
	Favorites []models.Favorite
	Profiles  []models.Profile
}

// Options tunes a global or relevance search.
type Options struct {
	SearchIn      []string // subset of "products", "favorites", "profiles"; empty means all
	CaseSensitive bool
	ExactMatch    bool
	Criteria      *models.Criteria // extra product predicates, AND-combined
}

// Results groups per-collection substring matches.
type Results struct {
	Products  []models.Product  `json:"products"`
	Favorites []models.Favorite `json:"favorites"`
	Profiles  []models.Profile  `json:"profiles"`
	Total     int               `json:"total"`
}

// ScoredProduct is a product with its search relevance attached.
type ScoredProduct struct {
	models.Product
	Relevance float64 `json:"relevance"`
}

// ScoredFavorite is a favorite with its search relevance attached.
type ScoredFavorite struct {
	models.Favorite
	Relevance float64 `json:"relevance"`
}

// ScoredProfile is a profile with its search relevance attached.
type ScoredProfile struct {
	models.Profile
	Relevance float64 `json:"relevance"`
}

// ScoredResults groups relevance-ranked matches, each collection ordered
// by descending relevance with stable ties.
type ScoredResults struct {
	Products  []ScoredProduct  `json:"products"`
	Favorites []ScoredFavorite `json:"favorites"`
	Profiles  []ScoredProfile  `json:"profiles"`
	Total     int              `json:"total"`
}

// FuzzyProduct is a product with its name similarity to the query.
type FuzzyProduct struct {
	models.Product
	Similarity float64 `json:"similarity"`
}

// FuzzyFavorite is a favorite with its name similarity to the query.
type FuzzyFavorite struct {
	models.Favorite
	Similarity float64 `json:"similarity"`
}

// FuzzyResults groups fuzzy matches ordered by descending similarity.
type FuzzyResults struct {
	Products  []FuzzyProduct  `json:"products"`
	Favorites []FuzzyFavorite `json:"favorites"`
}

// Recorder receives every successful (non-blank) query for history keeping.
type Recorder interface {
	Record(query string, resultsCount int)
}

// Engine runs searches over collection snapshots. The optional recorder is
// notified of every non-blank global query.
type Engine struct {
	history Recorder
}

// NewEngine constructs a search engine. history may be nil.
func NewEngine(history Recorder) *Engine {
	return &Engine{history: history}
}

// Global performs a substring search (case-insensitive unless requested
// otherwise) across name, notes, category and tag fields of the selected
// collections, applying any extra criteria to products and favorites.
func (e *Engine) Global(snap Snapshot, query string, opts Options) Results {
	q := query
	if !opts.CaseSensitive {
		q = strings.ToLower(q)
	}

	match := func(text string) bool {
		if text == "" {
			return false
		}
		if !opts.CaseSensitive {
			text = strings.ToLower(text)
		}
		if opts.ExactMatch {
			return text == q
		}
		return strings.Contains(text, q)
	}

	var res Results

	if searchIn(opts, "products") {
		for _, p := range snap.Products {
			if opts.Criteria != nil && !catalog.Matches(p, *opts.Criteria) {
				continue
			}
			if match(p.Name) || match(p.Notes) || match(p.Category) || match(p.ShippingFrom) {
				res.Products = append(res.Products, p)
			}
		}
	}

	if searchIn(opts, "favorites") {
		for _, f := range snap.Favorites {
			if opts.Criteria != nil && !favoriteMatchesCriteria(f, *opts.Criteria) {
				continue
			}
			if match(f.Name) || match(f.Notes) || match(f.Category) || match(strings.Join(f.Tags, " ")) {
				res.Favorites = append(res.Favorites, f)
			}
		}
	}

	if searchIn(opts, "profiles") {
		for _, p := range snap.Profiles {
			if match(p.Name) || match(p.Notes) || matchCriteriaCategory(p.Criteria, match) {
				res.Profiles = append(res.Profiles, p)
			}
		}
	}

	res.Total = len(res.Products) + len(res.Favorites) + len(res.Profiles)

	if e.history != nil && strings.TrimSpace(query) != "" {
		e.history.Record(query, res.Total)
	}

	return res
}

// Relevance runs a global search and ranks each collection's matches by a
// weighted relevance score.
func (e *Engine) Relevance(snap Snapshot, query string, opts Options) ScoredResults {
	base := e.Global(snap, query, opts)
	q := strings.ToLower(query)

	scored := ScoredResults{Total: base.Total}

	for _, p := range base.Products {
		rel := relevanceOf(p.Name, p.Category, p.Notes, nil, q)
		rel += float64(p.Score) * 0.1
		scored.Products = append(scored.Products, ScoredProduct{Product: p, Relevance: rel})
	}
	for _, f := range base.Favorites {
		rel := relevanceOf(f.Name, f.Category, f.Notes, f.Tags, q)
		if f.Priority == models.PriorityHigh {
			rel += pointsHighPrio
		}
		scored.Favorites = append(scored.Favorites, ScoredFavorite{Favorite: f, Relevance: rel})
	}
	for _, p := range base.Profiles {
		category := ""
		if p.Criteria.Category != nil {
			category = *p.Criteria.Category
		}
		rel := relevanceOf(p.Name, category, p.Notes, nil, q)
		scored.Profiles = append(scored.Profiles, ScoredProfile{Profile: p, Relevance: rel})
	}

	sort.SliceStable(scored.Products, func(i, j int) bool { return scored.Products[i].Relevance > scored.Products[j].Relevance })
	sort.SliceStable(scored.Favorites, func(i, j int) bool { return scored.Favorites[i].Relevance > scored.Favorites[j].Relevance })
	sort.SliceStable(scored.Profiles, func(i, j int) bool { return scored.Profiles[i].Relevance > scored.Profiles[j].Relevance })

	return scored
}

// Fuzzy matches items whose name similarity to the query meets the
// threshold, ordered by descending similarity.
func (e *Engine) Fuzzy(snap Snapshot, query string, threshold float64) FuzzyResults {
	if threshold <= 0 {
		threshold = DefaultFuzzyThreshold
	}
	q := strings.ToLower(query)

	var res FuzzyResults
	for _, p := range snap.Products {
		if sim := Similarity(q, strings.ToLower(p.Name)); sim >= threshold {
			res.Products = append(res.Products, FuzzyProduct{Product: p, Similarity: sim})
		}
	}
	for _, f := range snap.Favorites {
		if sim := Similarity(q, strings.ToLower(f.Name)); sim >= threshold {
			res.Favorites = append(res.Favorites, FuzzyFavorite{Favorite: f, Similarity: sim})
		}
	}

	sort.SliceStable(res.Products, func(i, j int) bool { return res.Products[i].Similarity > res.Products[j].Similarity })
	sort.SliceStable(res.Favorites, func(i, j int) bool { return res.Favorites[i].Similarity > res.Favorites[j].Similarity })

	return res
}

// relevanceOf sums field-match points for one item. An item can collect
// several bonuses at once; an exact name match outranks a partial one.
func relevanceOf(name, category, notes string, tags []string, q string) float64 {
	var rel float64

	if n := strings.ToLower(name); strings.Contains(n, q) {
		if n == q {
			rel += pointsExactName
		} else {
			rel += pointsPartialName
		}
	}
	if category != "" && strings.Contains(strings.ToLower(category), q) {
		rel += pointsCategory
	}
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), q) {
			rel += pointsTags
			break
		}
	}
	if notes != "" && strings.Contains(strings.ToLower(notes), q) {
		rel += pointsNotes
	}
	return rel
}

func searchIn(opts Options, collection string) bool {
	if len(opts.SearchIn) == 0 {
		return true
	}
	for _, c := range opts.SearchIn {
		if c == collection {
			return true
		}
	}
	return false
}

// favoriteMatchesCriteria applies the product criteria fields that make
// sense for favorites: price bounds on the current price, category
// equality and tag intersection.
func favoriteMatchesCriteria(f models.Favorite, c models.Criteria) bool {
	if c.MinPrice != nil && f.CurrentPrice < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && f.CurrentPrice > *c.MaxPrice {
		return false
	}
	if c.Category != nil {
		if f.Category == "" || !strings.EqualFold(f.Category, *c.Category) {
			return false
		}
	}
	if len(c.Tags) > 0 {
		if !anyTagMatch(f.Tags, c.Tags) {
			return false
		}
	}
	return true
}

func anyTagMatch(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

func matchCriteriaCategory(c models.Criteria, match func(string) bool) bool {
	return c.Category != nil && match(*c.Category)
}
