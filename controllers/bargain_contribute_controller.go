package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/furnikart/FurniBargain/middleware"
	"github.com/furnikart/FurniBargain/utils"
)

// ContributeToBargain applies one cut from the calling participant
func ContributeToBargain(c *gin.Context) {
	utils.LogInfo("ContributeToBargain called")

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

	result, err := bargainService.Contribute(c.Request.Context(), activityID, participantID)
	if err != nil {
		utils.LogError("Contribution by %s to %s rejected: %v", participantID, activityID, err)
		respondBargainError(c, err)
		return
	}

	utils.LogInfo("Participant %s cut %s off bargain %s (progress %d%%)",
		participantID, result.Accepted.Amount, activityID, result.Snapshot.ProgressPercent)
	utils.Success(c, "Contribution accepted", gin.H{
		"cut_amount":       result.Snapshot.CutAmount,
		"current_price":    result.Snapshot.CurrentPrice,
		"progress_percent": result.Snapshot.ProgressPercent,
		"can_deal":         result.Snapshot.CanDeal,
		"deal_price":       result.Snapshot.DealPrice,
		"accepted_amount":  result.Accepted.Amount,
		"status":           result.Activity.Status,
	})
}
