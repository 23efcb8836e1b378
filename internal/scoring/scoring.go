// Package scoring computes the 0-100 recommendation score for tracked
// products from their real price, rating and order count.
package scoring

import (
	"fmt"
	"math"

	"github.com/matan1995el-lgtm/aliexpres/internal/utils"
)

// Weights of the three sub-scores. They sum to 1.0.
const (
	priceWeight  = 0.3
	ratingWeight = 0.4
	ordersWeight = 0.3
)

// Score computes the weighted recommendation score. The price sub-score
// falls linearly and saturates at 0 once realPrice reaches 200; the orders
// sub-score rises linearly and saturates at 100 from 10,000 orders. The
// result is rounded to the nearest integer and clamped to [0,100].
func Score(realPrice, rating float64, orders int) int {
	priceScore := math.Max(0, 100-realPrice/2)
	ratingScore := rating / 5 * 100
	ordersScore := math.Min(100, float64(orders)/100)

	raw := priceScore*priceWeight + ratingScore*ratingWeight + ordersScore*ordersWeight
	s := int(math.Round(raw))
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// Validate rejects numeric inputs outside their domain before they can
// reach a derived field. Non-finite values are treated as invalid.
func Validate(price, shippingCost, rating float64, orders int) error {
	switch {
	case !isFinite(price) || price < 0:
		return fmt.Errorf("%w: price must be a non-negative number", utils.ErrValidation)
	case !isFinite(shippingCost) || shippingCost < 0:
		return fmt.Errorf("%w: shipping cost must be a non-negative number", utils.ErrValidation)
	case !isFinite(rating) || rating < 0 || rating > 5:
		return fmt.Errorf("%w: rating must be between 0 and 5", utils.ErrValidation)
	case orders < 0:
		return fmt.Errorf("%w: orders must be non-negative", utils.ErrValidation)
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
