package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"

	"github.com/furnikart/FurniBargain/utils"
)

// reportPeriodBounds resolves the period query param to a date window. A
// false return means the response has already been written.
func reportPeriodBounds(c *gin.Context) (time.Time, time.Time, bool) {
	period := c.DefaultQuery("period", "day")
	now := time.Now()

	switch period {
	case "day":
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
		return start, end, true
	case "week":
		end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
		start := end.AddDate(0, 0, -6)
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
		return start, end, true
	case "month":
		start := now.AddDate(0, 0, -30).Truncate(24 * time.Hour)
		end := now.Add(24 * time.Hour)
		return start, end, true
	default:
		utils.LogError("Invalid period specified: %s", period)
		utils.BadRequest(c, "Invalid period", "Period must be day, week, or month")
		return time.Time{}, time.Time{}, false
	}
}

// Admin: Download bargain activity report as Excel
func DownloadBargainReportExcel(c *gin.Context) {
	utils.LogInfo("DownloadBargainReportExcel called")

	period := c.DefaultQuery("period", "day")
	startDate, endDate, ok := reportPeriodBounds(c)
	if !ok {
		return
	}

	rows, summary, err := loadBargainReport(startDate, endDate)
	if err != nil {
		utils.LogError("Failed to fetch activities: %v", err)
		utils.InternalServerError(c, "Failed to fetch activities", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d activities for Excel report", len(rows))

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Bargain Report")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}

	companyRow := sheet.AddRow()
	companyRow.AddCell().SetString("FURNIKART - Bargain Activity Report")
	companyRow = sheet.AddRow()
	companyRow.AddCell().SetString("45 Teak Avenue")
	companyRow = sheet.AddRow()
	companyRow.AddCell().SetString("Woodville, WV 67890")
	companyRow = sheet.AddRow()
	companyRow.AddCell().SetString("Email: support@furnikart.com")
	companyRow = sheet.AddRow()
	companyRow.AddCell().SetString("Period: " + strings.ToUpper(period) + " | " + startDate.Format("2006-01-02") + " to " + endDate.Format("2006-01-02"))
	sheet.AddRow() // spacing

	headers := []string{"Activity ID", "Product", "Creator", "Created", "Origin Price", "Floor Price", "Cut Amount", "Helpers", "Status"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	for _, row := range rows {
		r := sheet.AddRow()
		r.AddCell().SetString(row.Activity.ID.String())
		r.AddCell().SetString(row.Activity.ProductName)
		r.AddCell().SetString(row.Activity.CreatedBy)
		r.AddCell().SetString(row.Activity.CreatedAt.Format("2006-01-02 15:04"))
		r.AddCell().SetString(row.Activity.OriginPrice.StringFixed(2))
		r.AddCell().SetString(row.Activity.TargetPrice.StringFixed(2))
		r.AddCell().SetString(row.CutAmount.StringFixed(2))
		r.AddCell().SetInt(int(row.Contributions))
		r.AddCell().SetString(string(row.Activity.Status))
	}

	sheet.AddRow() // spacing

	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString("Summary")
	style := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	style.Font = *font
	summaryRow.Cells[0].SetStyle(style)

	summaryData := [][]string{
		{"Total Activities", fmt.Sprintf("%d", summary.TotalActivities)},
		{"Dealt", fmt.Sprintf("%d", summary.Dealt)},
		{"Fully Cut", fmt.Sprintf("%d", summary.FullyCut)},
		{"Expired", fmt.Sprintf("%d", summary.Expired)},
		{"Cancelled", fmt.Sprintf("%d", summary.Cancelled)},
		{"Still Active", fmt.Sprintf("%d", summary.Active)},
		{"Total Cut", summary.TotalCut.StringFixed(2)},
		{"Total Contributions", fmt.Sprintf("%d", summary.TotalContributions)},
	}
	for _, data := range summaryData {
		row := sheet.AddRow()
		row.AddCell().SetString(data[0])
		row.AddCell().SetString(data[1])
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=bargain_report_%s.xlsx", period))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated Excel report for period %s", period)
}

// Admin: Download bargain activity report as PDF
func DownloadBargainReportPDF(c *gin.Context) {
	utils.LogInfo("DownloadBargainReportPDF called")

	period := c.DefaultQuery("period", "day")
	startDate, endDate, ok := reportPeriodBounds(c)
	if !ok {
		return
	}

	rows, summary, err := loadBargainReport(startDate, endDate)
	if err != nil {
		utils.LogError("Failed to fetch activities: %v", err)
		utils.InternalServerError(c, "Failed to fetch activities", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d activities for PDF report", len(rows))

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(0, 12, "FURNIKART - Bargain Activity Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, "Furniture Storefront")
	pdf.Ln(6)
	pdf.Cell(0, 8, "Period: "+strings.ToUpper(period)+" | "+startDate.Format("2006-01-02")+" to "+endDate.Format("2006-01-02"))
	pdf.Ln(10)

	headers := []string{"Activity ID", "Product", "Creator", "Created", "Origin", "Floor", "Cut", "Helpers", "Status"}
	colWidths := []float64{55, 45, 35, 30, 22, 22, 22, 18, 26}
	pdf.SetFont("Arial", "B", 11)
	for i, h := range headers {
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(colWidths[i], 9, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	fill := false
	for _, row := range rows {
		pdf.SetFillColor(245, 245, 245)
		if fill {
			pdf.SetFillColor(230, 240, 255)
		}
		fill = !fill
		pdf.CellFormat(colWidths[0], 8, row.Activity.ID.String(), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[1], 8, row.Activity.ProductName, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[2], 8, row.Activity.CreatedBy, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[3], 8, row.Activity.CreatedAt.Format("2006-01-02"), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[4], 8, row.Activity.OriginPrice.StringFixed(2), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colWidths[5], 8, row.Activity.TargetPrice.StringFixed(2), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colWidths[6], 8, row.CutAmount.StringFixed(2), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colWidths[7], 8, fmt.Sprintf("%d", row.Contributions), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[8], 8, string(row.Activity.Status), "1", 0, "C", fill, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 10, "Summary")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	summaryLines := []string{
		fmt.Sprintf("Total Activities: %d", summary.TotalActivities),
		fmt.Sprintf("Dealt: %d  Fully Cut: %d  Expired: %d  Cancelled: %d  Still Active: %d",
			summary.Dealt, summary.FullyCut, summary.Expired, summary.Cancelled, summary.Active),
		fmt.Sprintf("Total Cut: %s across %d contributions", summary.TotalCut.StringFixed(2), summary.TotalContributions),
	}
	for _, line := range summaryLines {
		pdf.Cell(0, 7, line)
		pdf.Ln(6)
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=bargain_report_%s.pdf", period))
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to write PDF file: %v", err)
		utils.InternalServerError(c, "Failed to write PDF file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated PDF report for period %s", period)
}
