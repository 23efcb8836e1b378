package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/matan1995el-lgtm/aliexpres/internal/models"
	"github.com/matan1995el-lgtm/aliexpres/internal/repository"
	"github.com/matan1995el-lgtm/aliexpres/internal/search"
	"github.com/matan1995el-lgtm/aliexpres/internal/utils"
)

// SearchService runs searches over live collection snapshots and manages
// query history and saved searches.
type SearchService struct {
	engine       *search.Engine
	productRepo  *repository.ProductRepository
	favoriteRepo *repository.FavoriteRepository
	profileRepo  *repository.ProfileRepository
	historyRepo  *repository.SearchHistoryRepository
	savedRepo    *repository.SavedSearchRepository
}

// NewSearchService constructs a SearchService.
func NewSearchService(
	productRepo *repository.ProductRepository,
	favoriteRepo *repository.FavoriteRepository,
	profileRepo *repository.ProfileRepository,
	historyRepo *repository.SearchHistoryRepository,
	savedRepo *repository.SavedSearchRepository,
) *SearchService {
	return &SearchService{
		engine:       search.NewEngine(historyRepo),
		productRepo:  productRepo,
		favoriteRepo: favoriteRepo,
		profileRepo:  profileRepo,
		historyRepo:  historyRepo,
		savedRepo:    savedRepo,
	}
}

func (s *SearchService) snapshot() search.Snapshot {
	return search.Snapshot{
		Products:  s.productRepo.GetAll(),
		Favorites: s.favoriteRepo.GetAll(),
		Profiles:  s.profileRepo.GetAll(),
	}
}

// Global performs a substring search across the collections.
func (s *SearchService) Global(query string, opts search.Options) (search.Results, error) {
	if strings.TrimSpace(query) == "" {
		return search.Results{}, fmt.Errorf("%w: query must not be blank", utils.ErrEmptyQuery)
	}
	return s.engine.Global(s.snapshot(), query, opts), nil
}

// Relevance performs a relevance-ranked search across the collections.
func (s *SearchService) Relevance(query string, opts search.Options) (search.ScoredResults, error) {
	if strings.TrimSpace(query) == "" {
		return search.ScoredResults{}, fmt.Errorf("%w: query must not be blank", utils.ErrEmptyQuery)
	}
	return s.engine.Relevance(s.snapshot(), query, opts), nil
}

// Fuzzy performs a similarity search on item names.
func (s *SearchService) Fuzzy(query string, threshold float64) (search.FuzzyResults, error) {
	if strings.TrimSpace(query) == "" {
		return search.FuzzyResults{}, fmt.Errorf("%w: query must not be blank", utils.ErrEmptyQuery)
	}
	return s.engine.Fuzzy(s.snapshot(), query, threshold), nil
}

// Suggestions returns autocomplete candidates for a partial query.
func (s *SearchService) Suggestions(partial string, limit int) []string {
	return search.Suggestions(s.snapshot(), s.historyRepo.Recent(0), partial, limit)
}

// Recent returns the latest history entries, most recently used first.
func (s *SearchService) Recent(limit int) []models.SearchHistoryEntry {
	return s.historyRepo.Recent(limit)
}

// Popular returns history entries ordered by use count.
func (s *SearchService) Popular(limit int) []models.SearchHistoryEntry {
	return s.historyRepo.Popular(limit)
}

// ClearHistory empties the search history.
func (s *SearchService) ClearHistory(ctx context.Context) error {
	return s.historyRepo.Clear(ctx)
}

// SaveSearch stores a named query plus criteria for later reuse.
func (s *SearchService) SaveSearch(ctx context.Context, name, query string, criteria models.Criteria) (models.SavedSearch, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(query) == "" {
		return models.SavedSearch{}, fmt.Errorf("%w: name and query are required", utils.ErrValidation)
	}
	return s.savedRepo.Add(ctx, models.SavedSearch{Name: name, Query: query, Criteria: criteria})
}

// SavedSearches lists the stored searches.
func (s *SearchService) SavedSearches() []models.SavedSearch {
	return s.savedRepo.GetAll()
}

// DeleteSavedSearch removes a stored search.
func (s *SearchService) DeleteSavedSearch(ctx context.Context, id string) error {
	return s.savedRepo.Delete(ctx, id)
}

// UseSavedSearch bumps the usage counter of a stored search and re-runs it
// as a relevance search with its criteria.
func (s *SearchService) UseSavedSearch(ctx context.Context, id string) (search.ScoredResults, error) {
	saved, err := s.savedRepo.Use(ctx, id)
	if err != nil {
		return search.ScoredResults{}, err
	}
	return s.engine.Relevance(s.snapshot(), saved.Query, search.Options{Criteria: &saved.Criteria}), nil
}
