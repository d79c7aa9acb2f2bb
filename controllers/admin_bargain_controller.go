package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/furnikart/FurniBargain/config"
	"github.com/furnikart/FurniBargain/models"
	"github.com/furnikart/FurniBargain/utils"
)

// AdminListBargains lists all activities with filter and pagination
func AdminListBargains(c *gin.Context) {
	utils.LogInfo("AdminListBargains called")

	query := config.DB.Model(&models.BargainActivity{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
		utils.LogDebug("Applied status filter: %s", status)
	}
	if creator := c.Query("creator"); creator != "" {
		query = query.Where("created_by = ?", creator)
		utils.LogDebug("Applied creator filter: %s", creator)
	}
	if productID := c.Query("product_id"); productID != "" {
		query = query.Where("product_id = ?", productID)
		utils.LogDebug("Applied product filter: %s", productID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count activities: %v", err)
		utils.InternalServerError(c, "Failed to list activities", nil)
		return
	}

	pagination := utils.NewPagination(c)
	var activities []models.BargainActivity
	if err := query.Order("created_at DESC").Limit(pagination.Limit).Offset(pagination.Offset).Find(&activities).Error; err != nil {
		utils.LogError("Failed to fetch activities: %v", err)
		utils.InternalServerError(c, "Failed to list activities", nil)
		return
	}

	pagination.SetTotal(total)
	utils.SendPaginatedResponse(c, activities, pagination)
}

// bargainReportRow is one activity with its ledger totals for reporting
type bargainReportRow struct {
	Activity      models.BargainActivity
	CutAmount     decimal.Decimal
	Contributions int64
}

// bargainReportSummary aggregates outcomes across a report window
type bargainReportSummary struct {
	TotalActivities    int
	Dealt              int
	FullyCut           int
	Expired            int
	Cancelled          int
	Active             int
	TotalCut           decimal.Decimal
	TotalContributions int64
}

// loadBargainReport fetches activities in a window plus their ledger sums
func loadBargainReport(startDate, endDate time.Time) ([]bargainReportRow, bargainReportSummary, error) {
	var activities []models.BargainActivity
	err := config.DB.
		Where("created_at >= ? AND created_at <= ?", startDate, endDate).
		Order("created_at DESC").
		Find(&activities).Error
	if err != nil {
		return nil, bargainReportSummary{}, err
	}

	summary := bargainReportSummary{TotalCut: decimal.Zero}
	rows := make([]bargainReportRow, 0, len(activities))
	for _, activity := range activities {
		var totals struct {
			Total decimal.Decimal
			Count int64
		}
		err := config.DB.Model(&models.Contribution{}).
			Select("COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
			Where("activity_id = ?", activity.ID).
			Scan(&totals).Error
		if err != nil {
			return nil, bargainReportSummary{}, err
		}

		rows = append(rows, bargainReportRow{
			Activity:      activity,
			CutAmount:     totals.Total,
			Contributions: totals.Count,
		})

		summary.TotalActivities++
		summary.TotalCut = summary.TotalCut.Add(totals.Total)
		summary.TotalContributions += totals.Count
		switch activity.Status {
		case models.ActivityDealt:
			summary.Dealt++
		case models.ActivityFullyCut:
			summary.FullyCut++
		case models.ActivityExpired:
			summary.Expired++
		case models.ActivityCancelled:
			summary.Cancelled++
		default:
			summary.Active++
		}
	}
	return rows, summary, nil
}

// AdminBargainSummary returns aggregated bargain outcomes for a period
func AdminBargainSummary(c *gin.Context) {
	utils.LogInfo("AdminBargainSummary called")

	startDate, endDate, ok := reportPeriodBounds(c)
	if !ok {
		return
	}

	_, summary, err := loadBargainReport(startDate, endDate)
	if err != nil {
		utils.LogError("Failed to build bargain summary: %v", err)
		utils.InternalServerError(c, "Failed to build summary", nil)
		return
	}

	utils.Success(c, "Bargain summary generated", gin.H{
		"total_activities":    summary.TotalActivities,
		"dealt":               summary.Dealt,
		"fully_cut":           summary.FullyCut,
		"expired":             summary.Expired,
		"cancelled":           summary.Cancelled,
		"active":              summary.Active,
		"total_cut":           summary.TotalCut,
		"total_contributions": summary.TotalContributions,
	})
}
