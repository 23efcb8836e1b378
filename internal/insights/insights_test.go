package insights

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matan1995el-lgtm/aliexpres/internal/models"
)

func ip(v int) *int         { return &v }
func fp(v float64) *float64 { return &v }

func TestBadges(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	old := now.Add(-30 * 24 * time.Hour)

	tests := []struct {
		name     string
		product  models.Product
		avgPrice float64
		want     []Badge
	}{
		{
			name: "solid performer earns no labels",
			product: models.Product{
				RealPrice: 100, Rating: 4.5, Orders: 1000, Score: 70, CreatedAt: old,
			},
			avgPrice: 100,
			want:     nil,
		},
		{
			name: "hot deal under 80 percent of average",
			product: models.Product{
				RealPrice: 70, Rating: 4.5, Orders: 1000, Score: 70, CreatedAt: old,
			},
			avgPrice: 100,
			want:     []Badge{BadgeHotDeal},
		},
		{
			name: "fast shipping within ten days",
			product: models.Product{
				RealPrice: 100, Rating: 4.5, Orders: 1000, Score: 70, CreatedAt: old,
				DeliveryDays: ip(10),
			},
			avgPrice: 100,
			want:     []Badge{BadgeFastShipping},
		},
		{
			name: "recommended at score 85",
			product: models.Product{
				RealPrice: 100, Rating: 4.5, Orders: 1000, Score: 85, CreatedAt: old,
			},
			avgPrice: 100,
			want:     []Badge{BadgeRecommended},
		},
		{
			name: "bestseller at 5000 orders",
			product: models.Product{
				RealPrice: 100, Rating: 4.5, Orders: 5000, Score: 70, CreatedAt: old,
			},
			avgPrice: 100,
			want:     []Badge{BadgeBestseller},
		},
		{
			name: "warning on low rating",
			product: models.Product{
				RealPrice: 100, Rating: 3.9, Orders: 1000, Score: 70, CreatedAt: old,
			},
			avgPrice: 100,
			want:     []Badge{BadgeWarning},
		},
		{
			name: "warning on few orders",
			product: models.Product{
				RealPrice: 100, Rating: 4.5, Orders: 99, Score: 70, CreatedAt: old,
			},
			avgPrice: 100,
			want:     []Badge{BadgeWarning},
		},
		{
			name: "new within seven days",
			product: models.Product{
				RealPrice: 100, Rating: 4.5, Orders: 1000, Score: 70,
				CreatedAt: now.Add(-6 * 24 * time.Hour),
			},
			avgPrice: 100,
			want:     []Badge{BadgeNew},
		},
		{
			name: "exactly seven days old is no longer new",
			product: models.Product{
				RealPrice: 100, Rating: 4.5, Orders: 1000, Score: 70,
				CreatedAt: now.Add(-7 * 24 * time.Hour),
			},
			avgPrice: 100,
			want:     nil,
		},
		{
			name: "badges accumulate",
			product: models.Product{
				RealPrice: 50, Rating: 4.9, Orders: 8000, Score: 92,
				DeliveryDays: ip(7), CreatedAt: now.Add(-time.Hour),
			},
			avgPrice: 100,
			want:     []Badge{BadgeHotDeal, BadgeFastShipping, BadgeRecommended, BadgeBestseller, BadgeNew},
		},
		{
			name: "empty collection average disables hot deal",
			product: models.Product{
				RealPrice: 1, Rating: 4.5, Orders: 1000, Score: 70, CreatedAt: old,
			},
			avgPrice: 0,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Badges(tt.product, tt.avgPrice, now)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Badges() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAveragePrice(t *testing.T) {
	if got := AveragePrice(nil); got != 0 {
		t.Errorf("AveragePrice(nil) = %v, want 0", got)
	}
	products := []models.Product{{RealPrice: 10}, {RealPrice: 20}, {RealPrice: 30}}
	if got := AveragePrice(products); got != 20 {
		t.Errorf("AveragePrice = %v, want 20", got)
	}
}

func TestRecommendationsOrderingAndCap(t *testing.T) {
	old := time.Now().UTC().Add(-90 * 24 * time.Hour)

	// One balanced product, one weak, one strong: warnings must surface
	// before positives, positives before info.
	products := []models.Product{
		{ID: "mid", Name: "Mid", RealPrice: 100, Rating: 4.5, Orders: 1000, Score: 70, CreatedAt: old},
		{ID: "weak", Name: "Weak", RealPrice: 130, Rating: 3.5, Orders: 50, Score: 20, CreatedAt: old},
		{ID: "strong", Name: "Strong", RealPrice: 70, Rating: 4.8, Orders: 9000, Score: 95, DeliveryDays: ip(5), CreatedAt: old},
	}

	got := Recommendations(products)
	if len(got) == 0 {
		t.Fatal("expected insights")
	}

	lastKind := KindWarning
	for i, ins := range got {
		if ins.Kind < lastKind {
			t.Errorf("insight %d of kind %d appears after kind %d", i, ins.Kind, lastKind)
		}
		if ins.Kind > lastKind {
			lastKind = ins.Kind
		}
	}

	if got[0].Kind != KindWarning {
		t.Errorf("first insight kind = %d, want warning", got[0].Kind)
	}
}

func TestRecommendationsCap(t *testing.T) {
	old := time.Now().UTC().Add(-90 * 24 * time.Hour)
	var products []models.Product
	for i := 0; i < 20; i++ {
		// Every product is overpriced relative to a cheap anchor, producing
		// far more insights than the cap.
		products = append(products, models.Product{
			ID: "p", Name: "P", RealPrice: 200, Rating: 3.0, Orders: 10, CreatedAt: old,
		})
	}
	products = append(products, models.Product{
		ID: "cheap", Name: "Cheap", RealPrice: 1, Rating: 4.5, Orders: 1000, CreatedAt: old,
	})

	got := Recommendations(products)
	if len(got) > 10 {
		t.Errorf("got %d insights, cap is 10", len(got))
	}
}

func TestRecommendationsEmpty(t *testing.T) {
	if got := Recommendations(nil); got != nil {
		t.Errorf("Recommendations(nil) = %v, want nil", got)
	}
}

func TestAggregate(t *testing.T) {
	products := []models.Product{
		{RealPrice: 10, Rating: 4.0, Category: "Electronics"},
		{RealPrice: 30, Rating: 5.0, Category: "Electronics"},
	}
	favorites := []models.Favorite{
		{Category: "Home", CurrentPrice: 40, TargetPrice: fp(50)},
		{CurrentPrice: 60, TargetPrice: fp(50)}, // above target, no savings
		{CurrentPrice: 10},                      // no target, no savings
	}

	want := Stats{
		TotalProducts:  2,
		TotalFavorites: 3,
		AveragePrice:   20,
		AverageRating:  4.5,
		TotalSavings:   10,
		CategoryCounts: map[string]int{"Electronics": 2, "Home": 1},
	}

	got := Aggregate(products, favorites)
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("Aggregate() mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregateEmpty(t *testing.T) {
	got := Aggregate(nil, nil)
	want := Stats{CategoryCounts: map[string]int{}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Aggregate(nil, nil) mismatch (-want +got):\n%s", diff)
	}
}
