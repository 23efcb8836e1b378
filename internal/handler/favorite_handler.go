package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/matan1995el-lgtm/aliexpres/internal/models"
	"github.com/matan1995el-lgtm/aliexpres/internal/service"
	"github.com/matan1995el-lgtm/aliexpres/internal/utils"
)

// FavoriteHandler handles favorite CRUD HTTP endpoints.
type FavoriteHandler struct {
	favoriteService *service.FavoriteService
}

// NewFavoriteHandler constructs a FavoriteHandler.
func NewFavoriteHandler(favoriteService *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// List handles GET /v1/favorites
func (h *FavoriteHandler) List(c *gin.Context) {
	utils.Success(c, 200, "Favorites retrieved", h.favoriteService.GetAll())
}

// Create handles POST /v1/favorites
func (h *FavoriteHandler) Create(c *gin.Context) {
	var in service.FavoriteInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, 400, "INVALID_BODY", "Invalid request body")
		return
	}

	f, err := h.favoriteService.Add(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 201, "Favorite created", f)
}

// Get handles GET /v1/favorites/:id
func (h *FavoriteHandler) Get(c *gin.Context) {
	f, err := h.favoriteService.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Favorite retrieved", f)
}

// Update handles PUT /v1/favorites/:id
func (h *FavoriteHandler) Update(c *gin.Context) {
	var patch models.FavoritePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.Error(c, 400, "INVALID_BODY", "Invalid request body")
		return
	}

	f, err := h.favoriteService.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Favorite updated", f)
}

// Delete handles DELETE /v1/favorites/:id
func (h *FavoriteHandler) Delete(c *gin.Context) {
	if err := h.favoriteService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Favorite deleted", nil)
}

// History handles GET /v1/favorites/:id/history
func (h *FavoriteHandler) History(c *gin.Context) {
	f, err := h.favoriteService.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Price history retrieved", f.PriceHistory)
}
