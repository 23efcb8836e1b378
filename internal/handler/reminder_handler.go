package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/matan1995el-lgtm/aliexpres/internal/models"
	"github.com/matan1995el-lgtm/aliexpres/internal/service"
	"github.com/matan1995el-lgtm/aliexpres/internal/utils"
)

// ReminderHandler handles reminder HTTP endpoints.
type ReminderHandler struct {
	reminderService *service.ReminderService
}

// NewReminderHandler constructs a ReminderHandler.
func NewReminderHandler(reminderService *service.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService}
}

// List handles GET /v1/reminders
func (h *ReminderHandler) List(c *gin.Context) {
	utils.Success(c, 200, "Reminders retrieved", h.reminderService.GetAll())
}

// Create handles POST /v1/reminders
func (h *ReminderHandler) Create(c *gin.Context) {
	var in service.ReminderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, 400, "INVALID_BODY", "Invalid request body")
		return
	}

	rem, err := h.reminderService.Add(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 201, "Reminder created", rem)
}

// Update handles PUT /v1/reminders/:id
func (h *ReminderHandler) Update(c *gin.Context) {
	var patch models.ReminderPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.Error(c, 400, "INVALID_BODY", "Invalid request body")
		return
	}

	rem, err := h.reminderService.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Reminder updated", rem)
}

// Delete handles DELETE /v1/reminders/:id
func (h *ReminderHandler) Delete(c *gin.Context) {
	if err := h.reminderService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Reminder deleted", nil)
}

type snoozeRequest struct {
	Minutes int `json:"minutes"`
}

// Snooze handles POST /v1/reminders/:id/snooze
func (h *ReminderHandler) Snooze(c *gin.Context) {
	var req snoozeRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.Error(c, 400, "INVALID_BODY", "Invalid request body")
		return
	}

	rem, err := h.reminderService.Snooze(c.Request.Context(), c.Param("id"), req.Minutes)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Reminder snoozed", rem)
}
