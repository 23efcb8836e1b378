// Package catalog applies declarative filter criteria and orderings to
// product collections. All functions return new slices and leave their
// input untouched.
package catalog

import (
	"strings"

	"github.com/matan1995el-lgtm/aliexpres/internal/models"
)

// Filter returns the products satisfying every set criterion. An unset
// criterion is no constraint; a criterion naming a field the product does
// not carry (e.g. no delivery days) is a non-match.
func Filter(products []models.Product, c models.Criteria) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if Matches(p, c) {
			out = append(out, p)
		}
	}
	return out
}

// Matches evaluates a single product against the criteria.
func Matches(p models.Product, c models.Criteria) bool {
	if c.MinPrice != nil && p.RealPrice < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && p.RealPrice > *c.MaxPrice {
		return false
	}
	if c.MinRating != nil && p.Rating < *c.MinRating {
		return false
	}
	if c.MinOrders != nil && p.Orders < *c.MinOrders {
		return false
	}
	if c.Category != nil {
		if p.Category == "" || !strings.EqualFold(p.Category, *c.Category) {
			return false
		}
	}
	if len(c.Tags) > 0 {
		// Products carry no tags; a tag criterion can only match favorites.
		return false
	}
	if c.FreeShipping != nil && *c.FreeShipping && p.ShippingCost > 0 {
		return false
	}
	if c.MaxDeliveryDays != nil {
		if p.DeliveryDays == nil || *p.DeliveryDays > *c.MaxDeliveryDays {
			return false
		}
	}
	if c.ShippingFrom != nil {
		if p.ShippingFrom == "" || !strings.EqualFold(p.ShippingFrom, *c.ShippingFrom) {
			return false
		}
	}
	if c.MinScore != nil && p.Score < *c.MinScore {
		return false
	}
	if c.TopSeller != nil && *c.TopSeller && p.Orders < 5000 {
		return false
	}
	if c.ChoiceProduct != nil && *c.ChoiceProduct && p.Score < 85 {
		return false
	}
	return true
}
