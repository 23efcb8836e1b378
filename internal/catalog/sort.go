package catalog

import (
	"sort"

	"github.com/matan1995el-lgtm/aliexpres/internal/models"
)

// SortKey names a product ordering.
type SortKey string

const (
	SortPriceAsc   SortKey = "price-asc"
	SortPriceDesc  SortKey = "price-desc"
	SortRatingDesc SortKey = "rating-desc"
	SortOrdersDesc SortKey = "orders-desc"
	SortScoreDesc  SortKey = "score-desc"
)

// Sort returns a new slice ordered by the given key. Unknown keys fall
// back to score descending. The sort is stable: ties keep the original
// collection order.
func Sort(products []models.Product, key SortKey) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)

	var less func(a, b models.Product) bool
	switch key {
	case SortPriceAsc:
		less = func(a, b models.Product) bool { return a.RealPrice < b.RealPrice }
	case SortPriceDesc:
		less = func(a, b models.Product) bool { return a.RealPrice > b.RealPrice }
	case SortRatingDesc:
		less = func(a, b models.Product) bool { return a.Rating > b.Rating }
	case SortOrdersDesc:
		less = func(a, b models.Product) bool { return a.Orders > b.Orders }
	default:
		less = func(a, b models.Product) bool { return a.Score > b.Score }
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
