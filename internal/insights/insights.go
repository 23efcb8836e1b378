// Package insights derives badges and textual recommendations from a
// product against the aggregate statistics of the whole collection.
package insights

import (
	"fmt"
	"sort"
	"time"

	"github.com/matan1995el-lgtm/aliexpres/internal/models"
)

// Badge is a rule-derived label for a single product.
type Badge string

const (
	BadgeHotDeal      Badge = "hot-deal"
	BadgeFastShipping Badge = "fast-shipping"
	BadgeRecommended  Badge = "recommended"
	BadgeBestseller   Badge = "bestseller"
	BadgeWarning      Badge = "warning"
	BadgeNew          Badge = "new"
)

// Canonical badge thresholds.
const (
	hotDealRatio        = 0.8
	fastShippingMaxDays = 10
	recommendedMinScore = 85
	bestsellerMinOrders = 5000
	warningMinRating    = 4.0
	warningMinOrders    = 100
	newMaxAgeDays       = 7
)

// InsightKind orders insights: warnings surface before positives, positives
// before informational notes.
type InsightKind int

const (
	KindWarning InsightKind = iota
	KindPositive
	KindInfo
)

// Insight is a textual recommendation about one product.
type Insight struct {
	Kind      InsightKind `json:"-"`
	Type      string      `json:"type"`
	Title     string      `json:"title"`
	Message   string      `json:"message"`
	ProductID string      `json:"productId"`
}

// Insight cap and relative price thresholds.
const (
	maxInsights     = 10
	overpricedRatio = 1.2
	goodDealRatio   = 0.8
)

// AveragePrice returns the mean real price of the collection, 0 if empty.
func AveragePrice(products []models.Product) float64 {
	if len(products) == 0 {
		return 0
	}
	var sum float64
	for _, p := range products {
		sum += p.RealPrice
	}
	return sum / float64(len(products))
}

// Badges evaluates the badge rules for one product. avgPrice is the
// collection average real price; now anchors the "new" age check.
func Badges(p models.Product, avgPrice float64, now time.Time) []Badge {
	var badges []Badge

	if avgPrice > 0 && p.RealPrice < avgPrice*hotDealRatio {
		badges = append(badges, BadgeHotDeal)
	}
	if p.DeliveryDays != nil && *p.DeliveryDays <= fastShippingMaxDays {
		badges = append(badges, BadgeFastShipping)
	}
	if p.Score >= recommendedMinScore {
		badges = append(badges, BadgeRecommended)
	}
	if p.Orders >= bestsellerMinOrders {
		badges = append(badges, BadgeBestseller)
	}
	if p.Rating < warningMinRating || p.Orders < warningMinOrders {
		badges = append(badges, BadgeWarning)
	}
	if now.Sub(p.CreatedAt) < newMaxAgeDays*24*time.Hour {
		badges = append(badges, BadgeNew)
	}

	return badges
}

// Recommendations compares every product to the collection average and
// flags outliers, strong and weak rating/orders combinations, the highest
// scores and fast deliveries. Warnings come first; the list is capped.
func Recommendations(products []models.Product) []Insight {
	if len(products) == 0 {
		return nil
	}

	avg := AveragePrice(products)
	var out []Insight

	for _, p := range products {
		if avg > 0 && p.RealPrice > avg*overpricedRatio {
			pct := int((p.RealPrice/avg - 1) * 100)
			out = append(out, Insight{
				Kind: KindWarning, Type: "warning", Title: "Price above average",
				Message:   fmt.Sprintf("%s costs %d%% more than the collection average", p.Name, pct),
				ProductID: p.ID,
			})
		}
		if avg > 0 && p.RealPrice < avg*goodDealRatio {
			pct := int((1 - p.RealPrice/avg) * 100)
			out = append(out, Insight{
				Kind: KindPositive, Type: "positive", Title: "Good deal",
				Message:   fmt.Sprintf("%s is %d%% cheaper than the collection average", p.Name, pct),
				ProductID: p.ID,
			})
		}
		if p.Rating >= 4.7 && p.Orders >= bestsellerMinOrders {
			out = append(out, Insight{
				Kind: KindPositive, Type: "positive", Title: "Highly recommended",
				Message:   fmt.Sprintf("%s has a high rating with many orders", p.Name),
				ProductID: p.ID,
			})
		}
		if p.Rating < warningMinRating && p.Orders < warningMinOrders {
			out = append(out, Insight{
				Kind: KindWarning, Type: "warning", Title: "Caution",
				Message:   fmt.Sprintf("%s has a low rating and few orders", p.Name),
				ProductID: p.ID,
			})
		}
		if p.Score >= 90 {
			out = append(out, Insight{
				Kind: KindPositive, Type: "positive", Title: "Excellent pick",
				Message:   fmt.Sprintf("%s scored %d/100", p.Name, p.Score),
				ProductID: p.ID,
			})
		}
		if p.DeliveryDays != nil && *p.DeliveryDays <= fastShippingMaxDays {
			out = append(out, Insight{
				Kind: KindInfo, Type: "info", Title: "Fast shipping",
				Message:   fmt.Sprintf("%s arrives in only %d days", p.Name, *p.DeliveryDays),
				ProductID: p.ID,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })

	if len(out) > maxInsights {
		out = out[:maxInsights]
	}
	return out
}

// Stats aggregates collection-level numbers for the reports view.
type Stats struct {
	TotalProducts  int            `json:"totalProducts"`
	TotalFavorites int            `json:"totalFavorites"`
	AveragePrice   float64        `json:"averagePrice"`
	AverageRating  float64        `json:"averageRating"`
	TotalSavings   float64        `json:"totalSavings"`
	CategoryCounts map[string]int `json:"categoryCounts"`
}

// Aggregate computes the report statistics. TotalSavings sums, over
// favorites with a target price, how far the current price has dropped
// below the target.
func Aggregate(products []models.Product, favorites []models.Favorite) Stats {
	stats := Stats{
		TotalProducts:  len(products),
		TotalFavorites: len(favorites),
		AveragePrice:   AveragePrice(products),
		CategoryCounts: make(map[string]int),
	}

	var ratingSum float64
	for _, p := range products {
		ratingSum += p.Rating
		if p.Category != "" {
			stats.CategoryCounts[p.Category]++
		}
	}
	if len(products) > 0 {
		stats.AverageRating = ratingSum / float64(len(products))
	}

	for _, f := range favorites {
		if f.Category != "" {
			stats.CategoryCounts[f.Category]++
		}
		if f.TargetPrice != nil && f.CurrentPrice < *f.TargetPrice {
			stats.TotalSavings += *f.TargetPrice - f.CurrentPrice
		}
	}

	return stats
}
