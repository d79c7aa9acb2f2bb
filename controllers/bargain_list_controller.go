package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/furnikart/FurniBargain/bargain"
	"github.com/furnikart/FurniBargain/middleware"
	"github.com/furnikart/FurniBargain/models"
	"github.com/furnikart/FurniBargain/utils"
)

// ListMyBargains pages the calling participant's own activities
func ListMyBargains(c *gin.Context) {
	utils.LogInfo("ListMyBargains called")

	participantID, ok := middleware.Participant(c)
	if !ok {
		utils.LogError("Participant not found in context")
		utils.Unauthorized(c, "Participant not found")
		return
	}

	pagination := utils.NewPagination(c)
	filter := bargain.ActivityFilter{
		CreatedBy: participantID,
		Status:    models.ActivityStatus(c.Query("status")),
		Limit:     pagination.Limit,
		Offset:    pagination.Offset,
	}

	activities, total, err := bargainService.ListActivities(c.Request.Context(), filter)
	if err != nil {
		utils.LogError("Failed to list bargains for %s: %v", participantID, err)
		utils.InternalServerError(c, "Failed to list bargains", nil)
		return
	}

	pagination.SetTotal(total)
	utils.SendPaginatedResponse(c, activities, pagination)
}
