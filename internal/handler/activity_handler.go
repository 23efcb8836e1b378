package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/matan1995el-lgtm/aliexpres/internal/repository"
	"github.com/matan1995el-lgtm/aliexpres/internal/utils"
)

// ActivityHandler exposes the recent-activity feed.
type ActivityHandler struct {
	activityRepo *repository.ActivityRepository
}

// NewActivityHandler constructs an ActivityHandler.
func NewActivityHandler(activityRepo *repository.ActivityRepository) *ActivityHandler {
	return &ActivityHandler{activityRepo: activityRepo}
}

// List handles GET /v1/activities
func (h *ActivityHandler) List(c *gin.Context) {
	utils.Success(c, 200, "Activities retrieved", h.activityRepo.GetAll())
}

// Clear handles DELETE /v1/activities
func (h *ActivityHandler) Clear(c *gin.Context) {
	if err := h.activityRepo.Clear(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Activities cleared", nil)
}
