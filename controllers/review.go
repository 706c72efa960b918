package controllers

import (
	"net/http"
	"strconv"

	"applicant-review-api/services"

	"github.com/gin-gonic/gin"
)

// GetReviews lists reviews filtered by applicant_id and/or reviewer_name
// query params.
func GetReviews(c *gin.Context) {
	var applicantID *int
	if raw := c.Query("applicant_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "Invalid applicant_id")
			return
		}
		applicantID = &id
	}

	var reviewerName *string
	if raw := c.Query("reviewer_name"); raw != "" {
		reviewerName = &raw
	}

	svc := services.NewReviewService(nil)
	reviews, err := svc.ListReviews(applicantID, reviewerName)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"reviews": reviews,
		"total":   len(reviews),
	})
}

// GetReview returns one review by ID.
func GetReview(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "Invalid review id")
		return
	}

	svc := services.NewReviewService(nil)
	review, err := svc.GetReviewByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"review": review})
}

// SubmitReview upserts the caller's review for an applicant: the first
// submission creates the row, later ones merge into it. Admins may
// submit on behalf of another reviewer via reviewer_name.
func SubmitReview(c *gin.Context) {
	type SubmitReviewRequest struct {
		ApplicantID  int     `json:"applicant_id" binding:"required"`
		ReviewerName *string `json:"reviewer_name"`
		services.ReviewPatch
	}

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	reviewerName, ok := reviewerFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", "Reviewer identity missing")
		return
	}

	if req.ReviewerName != nil && *req.ReviewerName != "" && *req.ReviewerName != reviewerName {
		isAdmin, _ := c.Get("isAdmin")
		if isAdmin != true {
			respondError(c, http.StatusForbidden, "forbidden", "Cannot submit a review for another reviewer")
			return
		}
		reviewerName = *req.ReviewerName
	}

	svc := services.NewReviewService(nil)
	review, err := svc.UpsertReview(req.ApplicantID, reviewerName, req.ReviewPatch)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"review": review})
}

// UpdateReview merges a patch into an existing review addressed by ID.
func UpdateReview(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "Invalid review id")
		return
	}

	var patch services.ReviewPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	svc := services.NewReviewService(nil)
	existing, err := svc.GetReviewByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	reviewerName, ok := reviewerFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", "Reviewer identity missing")
		return
	}
	if existing.ReviewerName != reviewerName {
		isAdmin, _ := c.Get("isAdmin")
		if isAdmin != true {
			respondError(c, http.StatusForbidden, "forbidden", "Cannot edit another reviewer's review")
			return
		}
	}

	review, err := svc.UpsertReview(existing.ApplicantID, existing.ReviewerName, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"review": review})
}

// DeleteReview removes a review; the applicant's aggregates are
// refreshed as a side effect.
func DeleteReview(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "Invalid review id")
		return
	}

	svc := services.NewReviewService(nil)
	existing, err := svc.GetReviewByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	reviewerName, ok := reviewerFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", "Reviewer identity missing")
		return
	}
	if existing.ReviewerName != reviewerName {
		isAdmin, _ := c.Get("isAdmin")
		if isAdmin != true {
			respondError(c, http.StatusForbidden, "forbidden", "Cannot delete another reviewer's review")
			return
		}
	}

	if err := svc.DeleteReview(id); err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"deleted": true})
}
