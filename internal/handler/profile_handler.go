package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/matan1995el-lgtm/aliexpres/internal/catalog"
	"github.com/matan1995el-lgtm/aliexpres/internal/models"
	"github.com/matan1995el-lgtm/aliexpres/internal/service"
	"github.com/matan1995el-lgtm/aliexpres/internal/utils"
)

// ProfileHandler handles filter-profile HTTP endpoints.
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler constructs a ProfileHandler.
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// List handles GET /v1/profiles
func (h *ProfileHandler) List(c *gin.Context) {
	utils.Success(c, 200, "Profiles retrieved", h.profileService.GetAll())
}

// Create handles POST /v1/profiles
func (h *ProfileHandler) Create(c *gin.Context) {
	var in service.ProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, 400, "INVALID_BODY", "Invalid request body")
		return
	}

	p, err := h.profileService.Add(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 201, "Profile created", p)
}

// Get handles GET /v1/profiles/:id
func (h *ProfileHandler) Get(c *gin.Context) {
	p, err := h.profileService.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Profile retrieved", p)
}

// Update handles PUT /v1/profiles/:id
func (h *ProfileHandler) Update(c *gin.Context) {
	var patch models.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.Error(c, 400, "INVALID_BODY", "Invalid request body")
		return
	}

	p, err := h.profileService.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Profile updated", p)
}

// Delete handles DELETE /v1/profiles/:id
func (h *ProfileHandler) Delete(c *gin.Context) {
	if err := h.profileService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Profile deleted", nil)
}

// Apply handles GET /v1/profiles/:id/apply
func (h *ProfileHandler) Apply(c *gin.Context) {
	sortBy := catalog.SortKey(c.DefaultQuery("sort", string(catalog.SortScoreDesc)))

	products, err := h.profileService.Apply(c.Param("id"), sortBy)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Profile applied", products)
}
