package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/matan1995el-lgtm/aliexpres/internal/models"
	"github.com/matan1995el-lgtm/aliexpres/internal/service"
	"github.com/matan1995el-lgtm/aliexpres/internal/utils"
)

// SettingsHandler handles settings and customs-quote HTTP endpoints.
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler constructs a SettingsHandler.
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get handles GET /v1/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	utils.Success(c, 200, "Settings retrieved", h.settingsService.Get())
}

// Save handles PUT /v1/settings
func (h *SettingsHandler) Save(c *gin.Context) {
	var settings models.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		utils.Error(c, 400, "INVALID_BODY", "Invalid request body")
		return
	}

	saved, err := h.settingsService.Save(c.Request.Context(), settings)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Settings saved", saved)
}

// Price is a pointer so an explicit zero passes the required binding.
type quoteRequest struct {
	Price    *float64 `json:"price" binding:"required"`
	Shipping float64  `json:"shipping"`
}

// Quote handles POST /v1/customs/quote
func (h *SettingsHandler) Quote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_BODY", "Invalid request body")
		return
	}

	breakdown, err := h.settingsService.Quote(*req.Price, req.Shipping)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Quote computed", breakdown)
}
