package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/matan1995el-lgtm/aliexpres/internal/service"
	"github.com/matan1995el-lgtm/aliexpres/internal/utils"
)

// InsightHandler handles badge, recommendation and stats HTTP endpoints.
type InsightHandler struct {
	insightService *service.InsightService
}

// NewInsightHandler constructs an InsightHandler.
func NewInsightHandler(insightService *service.InsightService) *InsightHandler {
	return &InsightHandler{insightService: insightService}
}

// Badges handles GET /v1/insights/badges
func (h *InsightHandler) Badges(c *gin.Context) {
	utils.Success(c, 200, "Badges retrieved", h.insightService.AllBadges())
}

// ProductBadges handles GET /v1/products/:id/badges
func (h *InsightHandler) ProductBadges(c *gin.Context) {
	badges, err := h.insightService.ProductBadges(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Badges retrieved", badges)
}

// Recommendations handles GET /v1/insights/recommendations
func (h *InsightHandler) Recommendations(c *gin.Context) {
	utils.Success(c, 200, "Recommendations retrieved", h.insightService.Recommendations())
}

// Stats handles GET /v1/insights/stats
func (h *InsightHandler) Stats(c *gin.Context) {
	utils.Success(c, 200, "Stats retrieved", h.insightService.Stats())
}

// TopProduct handles GET /v1/insights/top-product
func (h *InsightHandler) TopProduct(c *gin.Context) {
	p, ok := h.insightService.TopProduct()
	if !ok {
		utils.Error(c, 404, "NOT_FOUND", "No products tracked yet")
		return
	}
	utils.Success(c, 200, "Top product retrieved", p)
}
