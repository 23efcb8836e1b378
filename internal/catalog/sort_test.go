package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matan1995el-lgtm/aliexpres/internal/models"
)

func TestSort(t *testing.T) {
	products := []models.Product{
		{ID: "a", RealPrice: 30, Rating: 4.0, Orders: 500, Score: 60},
		{ID: "b", RealPrice: 10, Rating: 4.8, Orders: 9000, Score: 90},
		{ID: "c", RealPrice: 20, Rating: 4.5, Orders: 1000, Score: 75},
	}

	tests := []struct {
		name    string
		key     SortKey
		wantIDs []string
	}{
		{name: "price ascending", key: SortPriceAsc, wantIDs: []string{"b", "c", "a"}},
		{name: "price descending", key: SortPriceDesc, wantIDs: []string{"a", "c", "b"}},
		{name: "rating descending", key: SortRatingDesc, wantIDs: []string{"b", "c", "a"}},
		{name: "orders descending", key: SortOrdersDesc, wantIDs: []string{"b", "c", "a"}},
		{name: "score descending", key: SortScoreDesc, wantIDs: []string{"b", "c", "a"}},
		{name: "unknown key falls back to score", key: SortKey("bogus"), wantIDs: []string{"b", "c", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sort(products, tt.key)
			ids := make([]string, len(got))
			for i, p := range got {
				ids[i] = p.ID
			}
			if diff := cmp.Diff(tt.wantIDs, ids); diff != "" {
				t.Errorf("Sort(%s) order mismatch (-want +got):\n%s", tt.key, diff)
			}
		})
	}
}

func TestSortStableOnTies(t *testing.T) {
	products := []models.Product{
		{ID: "first", Score: 50},
		{ID: "second", Score: 50},
		{ID: "third", Score: 50},
	}

	got := Sort(products, SortScoreDesc)
	ids := make([]string, len(got))
	for i, p := range got {
		ids[i] = p.ID
	}
	if diff := cmp.Diff([]string{"first", "second", "third"}, ids); diff != "" {
		t.Errorf("ties must keep collection order (-want +got):\n%s", diff)
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	products := []models.Product{
		{ID: "a", RealPrice: 30},
		{ID: "b", RealPrice: 10},
	}
	Sort(products, SortPriceAsc)
	if products[0].ID != "a" || products[1].ID != "b" {
		t.Error("Sort mutated its input slice")
	}
}
