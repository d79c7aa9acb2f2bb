package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/furnikart/FurniBargain/middleware"
	"github.com/furnikart/FurniBargain/utils"
)

// CreateBargainRequest represents the request body for opening a bargain
type CreateBargainRequest struct {
	ProductID            uint   `json:"product_id" binding:"required"`
	DealThresholdPercent int    `json:"deal_threshold_percent"`
	Duration             string `json:"duration"`
}

// CreateBargain opens a new price-cutting activity for a product
func CreateBargain(c *gin.Context) {
	utils.LogInfo("CreateBargain called")

	participantID, ok := middleware.Participant(c)
	if !ok {
		utils.LogError("Participant not found in context")
		utils.Unauthorized(c, "Participant not found")
		return
	}

	var req CreateBargainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format from participant %s: %v", participantID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var duration time.Duration
	if req.Duration != "" {
		parsed, err := time.ParseDuration(req.Duration)
		if err != nil || parsed <= 0 {
			utils.LogError("Invalid duration %q from participant %s", req.Duration, participantID)
			utils.BadRequest(c, "Invalid duration", nil)
			return
		}
		duration = parsed
	}

	view, err := bargainService.CreateActivity(c.Request.Context(), participantID, req.ProductID, req.DealThresholdPercent, duration)
	if err != nil {
		respondBargainError(c, err)
		return
	}

	utils.LogInfo("Participant %s opened bargain %s for product %d", participantID, view.Activity.ID, req.ProductID)
	utils.Created(c, "Bargain activity created", view)
}
