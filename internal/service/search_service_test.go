package service

import (
	"context"
	"errors"
	"testing"

	"github.com/matan1995el-lgtm/aliexpres/internal/models"
	"github.com/matan1995el-lgtm/aliexpres/internal/repository"
	"github.com/matan1995el-lgtm/aliexpres/internal/search"
	"github.com/matan1995el-lgtm/aliexpres/internal/store"
	"github.com/matan1995el-lgtm/aliexpres/internal/utils"
)

type searchFixture struct {
	svc      *SearchService
	products *repository.ProductRepository
}

func newSearchFixture() *searchFixture {
	st := store.NewMemoryStore()
	productRepo := repository.NewProductRepository(st)
	favoriteRepo := repository.NewFavoriteRepository(st)
	profileRepo := repository.NewProfileRepository(st)
	historyRepo := repository.NewSearchHistoryRepository(st)
	savedRepo := repository.NewSavedSearchRepository(st)
	return &searchFixture{
		svc:      NewSearchService(productRepo, favoriteRepo, profileRepo, historyRepo, savedRepo),
		products: productRepo,
	}
}

func TestSearchBlankQueryRejected(t *testing.T) {
	fix := newSearchFixture()

	if _, err := fix.svc.Global("", search.Options{}); !errors.Is(err, utils.ErrEmptyQuery) {
		t.Errorf("Global(\"\") error = %v, want ErrEmptyQuery", err)
	}
	if _, err := fix.svc.Global("   ", search.Options{}); !errors.Is(err, utils.ErrEmptyQuery) {
		t.Errorf("Global(blank) error = %v, want ErrEmptyQuery", err)
	}
	if _, err := fix.svc.Relevance("\t", search.Options{}); !errors.Is(err, utils.ErrEmptyQuery) {
		t.Errorf("Relevance(blank) error = %v, want ErrEmptyQuery", err)
	}
	if _, err := fix.svc.Fuzzy("", 0.6); !errors.Is(err, utils.ErrEmptyQuery) {
		t.Errorf("Fuzzy(\"\") error = %v, want ErrEmptyQuery", err)
	}
}

func TestSearchRecordsHistory(t *testing.T) {
	ctx := context.Background()
	fix := newSearchFixture()

	if _, err := fix.products.Add(ctx, models.Product{Name: "Earbuds", Price: 10}); err != nil {
		t.Fatalf("Add product: %v", err)
	}

	if _, err := fix.svc.Global("earbuds", search.Options{}); err != nil {
		t.Fatalf("Global() error = %v", err)
	}

	recent := fix.svc.Recent(0)
	if len(recent) != 1 || recent[0].Query != "earbuds" {
		t.Fatalf("history = %+v, want the executed query", recent)
	}
	if recent[0].ResultsCount != 1 {
		t.Errorf("ResultsCount = %d, want 1", recent[0].ResultsCount)
	}
}

func TestSavedSearchLifecycle(t *testing.T) {
	ctx := context.Background()
	fix := newSearchFixture()

	if _, err := fix.products.Add(ctx, models.Product{Name: "Wireless Earbuds", Price: 10, Rating: 4.5, Orders: 100}); err != nil {
		t.Fatalf("Add product: %v", err)
	}

	saved, err := fix.svc.SaveSearch(ctx, "cheap audio", "earbuds", models.Criteria{})
	if err != nil {
		t.Fatalf("SaveSearch() error = %v", err)
	}
	if saved.ID == "" || saved.UsageCount != 0 {
		t.Errorf("saved = %+v, want assigned id and zero usage", saved)
	}

	results, err := fix.svc.UseSavedSearch(ctx, saved.ID)
	if err != nil {
		t.Fatalf("UseSavedSearch() error = %v", err)
	}
	if len(results.Products) != 1 {
		t.Errorf("re-run found %d products, want 1", len(results.Products))
	}

	all := fix.svc.SavedSearches()
	if len(all) != 1 || all[0].UsageCount != 1 {
		t.Errorf("saved searches = %+v, want usage count bumped", all)
	}

	if err := fix.svc.DeleteSavedSearch(ctx, saved.ID); err != nil {
		t.Fatalf("DeleteSavedSearch() error = %v", err)
	}
	if len(fix.svc.SavedSearches()) != 0 {
		t.Error("saved search must be gone after delete")
	}
}

func TestSaveSearchValidation(t *testing.T) {
	fix := newSearchFixture()
	ctx := context.Background()

	if _, err := fix.svc.SaveSearch(ctx, "", "earbuds", models.Criteria{}); !errors.Is(err, utils.ErrValidation) {
		t.Errorf("empty name error = %v, want ErrValidation", err)
	}
	if _, err := fix.svc.SaveSearch(ctx, "audio", "  ", models.Criteria{}); !errors.Is(err, utils.ErrValidation) {
		t.Errorf("blank query error = %v, want ErrValidation", err)
	}
}

func TestUseSavedSearchUnknownID(t *testing.T) {
	fix := newSearchFixture()
	if _, err := fix.svc.UseSavedSearch(context.Background(), "missing"); !errors.Is(err, utils.ErrNotFound) {
		t.Errorf("UseSavedSearch() error = %v, want ErrNotFound", err)
	}
}
