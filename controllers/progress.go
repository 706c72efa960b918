package controllers

import (
	"net/http"

	"applicant-review-api/services"

	"github.com/gin-gonic/gin"
)

// GetOverallProgress reports completed reviews against the expected
// full-coverage total.
func GetOverallProgress(c *gin.Context) {
	svc := services.NewProgressService(nil)
	progress, err := svc.GetOverallProgress()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, progress)
}

// GetProgressByReviewer reports per-reviewer completion lines.
func GetProgressByReviewer(c *gin.Context) {
	svc := services.NewProgressService(nil)
	progress, err := svc.GetProgressByReviewer()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"reviewers": progress})
}

// GetReviewerProgress reports a single reviewer's completion, with their
// assigned applicant queue.
func GetReviewerProgress(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		respondError(c, http.StatusBadRequest, "validation_error", "Reviewer name is required")
		return
	}

	progressSvc := services.NewProgressService(nil)
	progress, err := progressSvc.GetReviewerProgress(name)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	distributionSvc := services.NewDistributionService(nil)
	assigned, err := distributionSvc.AssignedTo(name)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"progress":   progress,
		"applicants": assigned,
	})
}

// GetDashboard returns the admin dashboard summary.
func GetDashboard(c *gin.Context) {
	svc := services.NewProgressService(nil)
	summary, err := svc.GetDashboardSummary()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, summary)
}

// GetStatsAggregate returns decision and category breakdowns.
func GetStatsAggregate(c *gin.Context) {
	svc := services.NewProgressService(nil)
	stats, err := svc.GetStatsAggregate()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, stats)
}
