package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/matan1995el-lgtm/aliexpres/internal/models"
	"github.com/matan1995el-lgtm/aliexpres/internal/store"
)

// Search history is capped to the most recent distinct queries.
const historyCap = 50

// SearchHistoryRepository keeps distinct search queries in most-recently-
// used order. Repeating a query increments its counter and moves it to the
// front.
type SearchHistoryRepository struct {
	mu      sync.RWMutex
	store   store.Store
	entries []models.SearchHistoryEntry
}

// NewSearchHistoryRepository creates a SearchHistoryRepository.
func NewSearchHistoryRepository(s store.Store) *SearchHistoryRepository {
	return &SearchHistoryRepository{store: s}
}

// Load reads the persisted history.
func (r *SearchHistoryRepository) Load(ctx context.Context) error {
	raw, err := r.store.Get(ctx, store.KeySearchHistory)
	if err == store.ErrKeyNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	var entries []models.SearchHistoryEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return fmt.Errorf("corrupt search history document: %w", err)
	}

	r.mu.Lock()
	r.entries = entries
	r.mu.Unlock()
	return nil
}

// Record notes one executed query. The persistence write is fire-and-forget:
// a failure is logged, not retried.
func (r *SearchHistoryRepository) Record(query string, resultsCount int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	for i := range r.entries {
		if r.entries[i].Query == query {
			e := r.entries[i]
			e.Count++
			e.ResultsCount = resultsCount
			e.LastSearched = now
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			r.entries = append([]models.SearchHistoryEntry{e}, r.entries...)
			r.persist()
			return
		}
	}

	r.entries = append([]models.SearchHistoryEntry{{
		Query:        query,
		Count:        1,
		ResultsCount: resultsCount,
		LastSearched: now,
	}}, r.entries...)
	if len(r.entries) > historyCap {
		r.entries = r.entries[:historyCap]
	}
	r.persist()
}

// Recent returns up to limit entries in most-recently-used order.
func (r *SearchHistoryRepository) Recent(limit int) []models.SearchHistoryEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit <= 0 || limit > len(r.entries) {
		limit = len(r.entries)
	}
	out := make([]models.SearchHistoryEntry, limit)
	copy(out, r.entries[:limit])
	return out
}

// Popular returns up to limit entries ordered by descending use count.
func (r *SearchHistoryRepository) Popular(limit int) []models.SearchHistoryEntry {
	r.mu.RLock()
	all := make([]models.SearchHistoryEntry, len(r.entries))
	copy(all, r.entries)
	r.mu.RUnlock()

	sort.SliceStable(all, func(i, j int) bool { return all[i].Count > all[j].Count })
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}

// Clear empties the history.
func (r *SearchHistoryRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
	raw, err := json.Marshal(r.entries)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, store.KeySearchHistory, raw)
}

func (r *SearchHistoryRepository) persist() {
	raw, err := json.Marshal(r.entries)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal search history")
		return
	}
	if err := r.store.Put(context.Background(), store.KeySearchHistory, raw); err != nil {
		log.Error().Err(err).Msg("Failed to persist search history")
	}
}
