package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/matan1995el-lgtm/aliexpres/internal/models"
	"github.com/matan1995el-lgtm/aliexpres/internal/search"
	"github.com/matan1995el-lgtm/aliexpres/internal/service"
	"github.com/matan1995el-lgtm/aliexpres/internal/utils"
)

// SearchHandler handles search, history and saved-search HTTP endpoints.
type SearchHandler struct {
	searchService *service.SearchService
}

// NewSearchHandler constructs a SearchHandler.
func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

func parseSearchOptions(c *gin.Context) search.Options {
	opts := search.Options{
		CaseSensitive: c.Query("caseSensitive") == "true",
		ExactMatch:    c.Query("exact") == "true",
	}
	if v := c.Query("in"); v != "" {
		opts.SearchIn = strings.Split(v, ",")
	}
	criteria := parseCriteria(c)
	if !criteriaEmpty(criteria) {
		opts.Criteria = &criteria
	}
	return opts
}

func criteriaEmpty(cr models.Criteria) bool {
	return cr.MinPrice == nil && cr.MaxPrice == nil && cr.MinRating == nil &&
		cr.MinOrders == nil && cr.Category == nil && len(cr.Tags) == 0 &&
		cr.FreeShipping == nil && cr.MaxDeliveryDays == nil && cr.ShippingFrom == nil &&
		cr.MinScore == nil && cr.TopSeller == nil && cr.ChoiceProduct == nil
}

// Global handles GET /v1/search
func (h *SearchHandler) Global(c *gin.Context) {
	results, err := h.searchService.Global(c.Query("q"), parseSearchOptions(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Search completed", results)
}

// Relevance handles GET /v1/search/relevance
func (h *SearchHandler) Relevance(c *gin.Context) {
	results, err := h.searchService.Relevance(c.Query("q"), parseSearchOptions(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Search completed", results)
}

// Fuzzy handles GET /v1/search/fuzzy
func (h *SearchHandler) Fuzzy(c *gin.Context) {
	threshold := search.DefaultFuzzyThreshold
	if v := c.Query("threshold"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			threshold = f
		}
	}

	results, err := h.searchService.Fuzzy(c.Query("q"), threshold)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Search completed", results)
}

// Suggest handles GET /v1/search/suggestions
func (h *SearchHandler) Suggest(c *gin.Context) {
	limit := search.DefaultSuggestionCap
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	utils.Success(c, 200, "Suggestions retrieved", h.searchService.Suggestions(c.Query("q"), limit))
}

// Recent handles GET /v1/search/history
func (h *SearchHandler) Recent(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	utils.Success(c, 200, "History retrieved", h.searchService.Recent(limit))
}

// Popular handles GET /v1/search/history/popular
func (h *SearchHandler) Popular(c *gin.Context) {
	limit := 10
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	utils.Success(c, 200, "Popular queries retrieved", h.searchService.Popular(limit))
}

// ClearHistory handles DELETE /v1/search/history
func (h *SearchHandler) ClearHistory(c *gin.Context) {
	if err := h.searchService.ClearHistory(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "History cleared", nil)
}

type savedSearchRequest struct {
	Name     string          `json:"name" binding:"required"`
	Query    string          `json:"query" binding:"required"`
	Criteria models.Criteria `json:"criteria"`
}

// SaveSearch handles POST /v1/search/saved
func (h *SearchHandler) SaveSearch(c *gin.Context) {
	var req savedSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_BODY", "Invalid request body")
		return
	}

	saved, err := h.searchService.SaveSearch(c.Request.Context(), req.Name, req.Query, req.Criteria)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 201, "Search saved", saved)
}

// SavedSearches handles GET /v1/search/saved
func (h *SearchHandler) SavedSearches(c *gin.Context) {
	utils.Success(c, 200, "Saved searches retrieved", h.searchService.SavedSearches())
}

// DeleteSavedSearch handles DELETE /v1/search/saved/:id
func (h *SearchHandler) DeleteSavedSearch(c *gin.Context) {
	if err := h.searchService.DeleteSavedSearch(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Saved search deleted", nil)
}

// UseSavedSearch handles POST /v1/search/saved/:id/use
func (h *SearchHandler) UseSavedSearch(c *gin.Context) {
	results, err := h.searchService.UseSavedSearch(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Saved search executed", results)
}
