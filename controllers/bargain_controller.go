package controllers

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/furnikart/FurniBargain/bargain"
	"github.com/furnikart/FurniBargain/utils"
)

var bargainService *bargain.Service

// InitBargain wires the bargain service used by the HTTP controllers.
func InitBargain(svc *bargain.Service) {
	bargainService = svc
}

// activityIDParam parses the :id path parameter. A false return means the
// response has already been written.
func activityIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid activity id %q: %v", c.Param("id"), err)
		utils.BadRequest(c, "Invalid activity id", err.Error())
		return uuid.Nil, false
	}
	return id, true
}

// respondBargainError maps domain errors onto the standard responses.
func respondBargainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, bargain.ErrNotFound):
		utils.NotFound(c, "Bargain activity not found")
	case errors.Is(err, bargain.ErrExpired):
		utils.Gone(c, "Bargain activity has expired")
	case errors.Is(err, bargain.ErrNotActive):
		utils.Conflict(c, "Bargain activity is already closed", nil)
	case errors.Is(err, bargain.ErrAlreadyContributed):
		utils.Conflict(c, "You have already helped with this bargain", nil)
	case errors.Is(err, bargain.ErrInvalidAmount):
		utils.BadRequest(c, "Nothing left to cut on this bargain", nil)
	case errors.Is(err, bargain.ErrForbidden):
		utils.Forbidden(c, "Only the bargain's creator may do this")
	case errors.Is(err, bargain.ErrThresholdNotMet):
		utils.BadRequest(c, "Bargain has not reached the deal threshold yet", nil)
	case errors.Is(err, bargain.ErrInvalidTerms):
		utils.BadRequest(c, "Invalid bargain terms", nil)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		utils.Error(c, 503, "Bargain is busy, please retry", nil)
	default:
		utils.LogError("Bargain operation failed: %v", err)
		utils.InternalServerError(c, "Something went wrong", nil)
	}
}
