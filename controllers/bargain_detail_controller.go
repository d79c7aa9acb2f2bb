package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/furnikart/FurniBargain/utils"
)

// GetBargain returns an activity plus its derived pricing snapshot
func GetBargain(c *gin.Context) {
	utils.LogInfo("GetBargain called")

	activityID, ok := activityIDParam(c)
	if !ok {
		return
	}

	view, err := bargainService.Get(c.Request.Context(), activityID)
	if err != nil {
		respondBargainError(c, err)
		return
	}

	utils.Success(c, "Bargain activity retrieved", view)
}

// ListBargainContributions pages the "who helped" list for an activity
func ListBargainContributions(c *gin.Context) {
	utils.LogInfo("ListBargainContributions called")

	activityID, ok := activityIDParam(c)
	if !ok {
		return
	}

	pagination := utils.NewPagination(c)
	contributions, total, err := bargainService.ListContributions(c.Request.Context(), activityID, pagination.Limit, pagination.Offset)
	if err != nil {
		respondBargainError(c, err)
		return
	}

	pagination.SetTotal(total)
	utils.SendPaginatedResponse(c, contributions, pagination)
}
