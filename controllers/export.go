package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"applicant-review-api/config"
	"applicant-review-api/models"

	"github.com/gin-gonic/gin"
)

// ExportProgressCSV streams a flat per-applicant projection: identity,
// category, assigned reviewer, and the final-selection aggregates.
func ExportProgressCSV(c *gin.Context) {
	site := config.SiteName()

	var applicants []models.Applicant
	if err := config.DB.Where("site_name = ?", site).
		Order("applicant_id ASC").Find(&applicants).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "Failed to fetch applicants")
		return
	}

	var assignments []models.ApplicantAssignment
	if err := config.DB.Where("site_name = ?", site).Find(&assignments).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "Failed to fetch assignments")
		return
	}
	assignedReviewer := make(map[int]string, len(assignments))
	for _, a := range assignments {
		assignedReviewer[a.ApplicantID] = a.ReviewerName
	}

	var selections []models.FinalSelection
	if err := config.DB.Where("site_name = ?", site).Find(&selections).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "Failed to fetch final selections")
		return
	}
	selectionByApplicant := make(map[int]models.FinalSelection, len(selections))
	for _, s := range selections {
		selectionByApplicant[s.ApplicantID] = s
	}

	filename := fmt.Sprintf("review-progress-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	header := []string{
		"external_id", "name", "category", "assigned_reviewer",
		"reviewer_count", "average_score", "admin_decision",
	}
	if err := writer.Write(header); err != nil {
		return
	}

	for _, applicant := range applicants {
		reviewerCount := "0"
		averageScore := "0.00"
		adminDecision := models.AdminDecisionPending
		if selection, ok := selectionByApplicant[applicant.ApplicantID]; ok {
			reviewerCount = strconv.Itoa(selection.ReviewerCount)
			averageScore = fmt.Sprintf("%.2f", selection.AverageScore)
			adminDecision = selection.AdminDecision
		}

		record := []string{
			applicant.ExternalID,
			applicant.Name,
			applicant.Category,
			assignedReviewer[applicant.ApplicantID],
			reviewerCount,
			averageScore,
			adminDecision,
		}
		if err := writer.Write(record); err != nil {
			return
		}
	}
}
