package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/matan1995el-lgtm/aliexpres/internal/models"
	"github.com/matan1995el-lgtm/aliexpres/internal/utils"
)

// respondError maps core errors to HTTP statuses and the standard envelope.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, utils.ErrNotFound):
		utils.Error(c, 404, "NOT_FOUND", "Resource not found")
	case errors.Is(err, utils.ErrValidation):
		utils.Error(c, 400, "VALIDATION_FAILED", err.Error())
	case errors.Is(err, utils.ErrMalformedImport):
		utils.Error(c, 400, "MALFORMED_IMPORT", err.Error())
	case errors.Is(err, utils.ErrMalformedCSV):
		utils.Error(c, 400, "MALFORMED_CSV", err.Error())
	case errors.Is(err, utils.ErrEmptyQuery):
		utils.Error(c, 400, "EMPTY_QUERY", "Search query must not be blank")
	default:
		utils.Error(c, 500, "INTERNAL_ERROR", "Internal server error")
	}
}

// parseCriteria reads filter criteria from query parameters. Absent
// parameters stay nil and impose no constraint.
func parseCriteria(c *gin.Context) models.Criteria {
	var criteria models.Criteria

	if v := c.Query("minPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			criteria.MinPrice = &f
		}
	}
	if v := c.Query("maxPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			criteria.MaxPrice = &f
		}
	}
	if v := c.Query("minRating"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			criteria.MinRating = &f
		}
	}
	if v := c.Query("minOrders"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			criteria.MinOrders = &n
		}
	}
	if v := c.Query("category"); v != "" {
		criteria.Category = &v
	}
	if v := c.Query("tags"); v != "" {
		criteria.Tags = strings.Split(v, ",")
	}
	if v := c.Query("freeShipping"); v != "" {
		b := v == "true"
		criteria.FreeShipping = &b
	}
	if v := c.Query("maxDeliveryDays"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			criteria.MaxDeliveryDays = &n
		}
	}
	if v := c.Query("shippingFrom"); v != "" {
		criteria.ShippingFrom = &v
	}
	if v := c.Query("minScore"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			criteria.MinScore = &n
		}
	}
	if v := c.Query("topSeller"); v != "" {
		b := v == "true"
		criteria.TopSeller = &b
	}
	if v := c.Query("choiceProduct"); v != "" {
		b := v == "true"
		criteria.ChoiceProduct = &b
	}

	return criteria
}
