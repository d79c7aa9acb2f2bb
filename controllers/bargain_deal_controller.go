package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/furnikart/FurniBargain/middleware"
	"github.com/furnikart/FurniBargain/utils"
)

// DealBargain locks in the purchase at the current price. Creator only.
func DealBargain(c *gin.Context) {
	utils.LogInfo("DealBargain called")

	participantID, ok := middleware.Participant(c)
	if !ok {
		utils.LogError("Participant not found in context")
		utils.Unauthorized(c, "Participant not found")
		return
	}

	activityID, ok := activityIDParam(c)
	if !ok {
		return
	}

	view, err := bargainService.Deal(c.Request.Context(), activityID, participantID)
	if err != nil {
		utils.LogError("Deal on %s by %s rejected: %v", activityID, participantID, err)
		respondBargainError(c, err)
		return
	}

	utils.LogInfo("Participant %s dealt bargain %s at %s", participantID, activityID, view.Snapshot.DealPrice)
	utils.Success(c, "Deal locked in", view)
}

// CancelBargain closes an activity before its deadline. Creator only.
func CancelBargain(c *gin.Context) {
	utils.LogInfo("CancelBargain called")

	participantID, ok := middleware.Participant(c)
	if !ok {
		utils.LogError("Participant not found in context")
		utils.Unauthorized(c, "Participant not found")
		return
	}

	activityID, ok := activityIDParam(c)
	if !ok {
		return
	}

	view, err := bargainService.Cancel(c.Request.Context(), activityID, participantID)
	if err != nil {
		utils.LogError("Cancel of %s by %s rejected: %v", activityID, participantID, err)
		respondBargainError(c, err)
		return
	}

	utils.LogInfo("Participant %s cancelled bargain %s", participantID, activityID)
	utils.Success(c, "Bargain cancelled", view)
}
