package repository

import (
	"context"
	"testing"

	"github.com/matan1995el-lgtm/aliexpres/internal/models"
	"github.com/matan1995el-lgtm/aliexpres/internal/store"
)

func TestFavoriteRepositoryAddSeedsHistory(t *testing.T) {
	ctx := context.Background()
	repo := NewFavoriteRepository(store.NewMemoryStore())

	got, err := repo.Add(ctx, models.Favorite{Name: "Earbuds", CurrentPrice: 30})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if len(got.PriceHistory) != 1 {
		t.Fatalf("PriceHistory length = %d, want 1", len(got.PriceHistory))
	}
	if got.PriceHistory[0].Price != 30 {
		t.Errorf("seeded history price = %v, want 30", got.PriceHistory[0].Price)
	}
	if got.Priority != models.PriorityMedium {
		t.Errorf("default priority = %q, want medium", got.Priority)
	}
}

func TestFavoriteRepositoryPriceHistoryGrowsOnlyOnChange(t *testing.T) {
	ctx := context.Background()
	repo := NewFavoriteRepository(store.NewMemoryStore())

	added, _ := repo.Add(ctx, models.Favorite{Name: "Earbuds", CurrentPrice: 30})

	// Same price: no new entry.
	same, err := repo.Update(ctx, added.ID, models.FavoritePatch{CurrentPrice: floatP(30)})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(same.PriceHistory) != 1 {
		t.Errorf("unchanged price grew history to %d entries", len(same.PriceHistory))
	}

	// Changed price: exactly one new entry.
	changed, err := repo.Update(ctx, added.ID, models.FavoritePatch{CurrentPrice: floatP(25)})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(changed.PriceHistory) != 2 {
		t.Fatalf("changed price history length = %d, want 2", len(changed.PriceHistory))
	}
	if changed.PriceHistory[1].Price != 25 {
		t.Errorf("latest history price = %v, want 25", changed.PriceHistory[1].Price)
	}
	if changed.CurrentPrice != 25 {
		t.Errorf("CurrentPrice = %v, want 25", changed.CurrentPrice)
	}

	// An unrelated patch leaves the history alone.
	noted, err := repo.Update(ctx, added.ID, models.FavoritePatch{Notes: strP("check again friday")})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(noted.PriceHistory) != 2 {
		t.Errorf("unrelated patch grew history to %d entries", len(noted.PriceHistory))
	}
}

func TestFavoriteRepositoryExplicitPriorityKept(t *testing.T) {
	ctx := context.Background()
	repo := NewFavoriteRepository(store.NewMemoryStore())

	got, err := repo.Add(ctx, models.Favorite{Name: "Earbuds", Priority: models.PriorityHigh})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if got.Priority != models.PriorityHigh {
		t.Errorf("Priority = %q, want high", got.Priority)
	}
}
