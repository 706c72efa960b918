package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"applicant-review-api/config"
	"applicant-review-api/models"
	"applicant-review-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetReviewers returns all reviewers for this site.
func GetReviewers(c *gin.Context) {
	var reviewers []models.Reviewer
	if err := config.DB.Where("site_name = ?", config.SiteName()).
		Order("reviewer_id ASC").Find(&reviewers).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "Failed to fetch reviewers")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"reviewers": reviewers,
		"total":     len(reviewers),
	})
}

// GetAdminReviewers lists reviewers with admin access.
func GetAdminReviewers(c *gin.Context) {
	var reviewers []models.Reviewer
	if err := config.DB.Where("is_admin = ? AND site_name = ?", true, config.SiteName()).
		Order("reviewer_id ASC").Find(&reviewers).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "Failed to fetch reviewers")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"reviewers": reviewers,
		"total":     len(reviewers),
	})
}

// GetReviewer returns a single reviewer by ID.
func GetReviewer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "Invalid reviewer id")
		return
	}

	var reviewer models.Reviewer
	if err := config.DB.Where("reviewer_id = ? AND site_name = ?", id, config.SiteName()).
		First(&reviewer).Error; err != nil {
		respondError(c, http.StatusNotFound, "not_found", "Reviewer not found")
		return
	}

	respondData(c, http.StatusOK, gin.H{"reviewer": reviewer})
}

// CreateReviewer adds a reviewer. Name is unique per site.
func CreateReviewer(c *gin.Context) {
	type CreateReviewerRequest struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email"`
		Password string `json:"password" binding:"required"`
		IsAdmin  bool   `json:"is_admin"`
	}

	var req CreateReviewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if req.Email != "" && !utils.ValidateEmail(req.Email) {
		respondError(c, http.StatusBadRequest, "validation_error", "Invalid email address")
		return
	}
	if ok, msg := utils.ValidatePassword(req.Password); !ok {
		respondError(c, http.StatusBadRequest, "validation_error", msg)
		return
	}

	site := config.SiteName()
	name := utils.SanitizeInput(req.Name)

	var existing models.Reviewer
	err := config.DB.Where("name = ? AND site_name = ?", name, site).First(&existing).Error
	if err == nil {
		respondError(c, http.StatusConflict, "conflict", "Reviewer with this name already exists")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusInternalServerError, "internal_error", "Failed to check existing reviewers")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "Failed to hash password")
		return
	}

	now := time.Now()
	reviewer := models.Reviewer{
		Name:         name,
		Email:        req.Email,
		PasswordHash: hash,
		IsAdmin:      req.IsAdmin,
		SiteName:     site,
		CreateAt:     &now,
		UpdateAt:     &now,
	}

	if err := config.DB.Create(&reviewer).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "Failed to create reviewer")
		return
	}

	respondData(c, http.StatusCreated, gin.H{"reviewer": reviewer})
}

// UpdateReviewer edits email or admin flag.
func UpdateReviewer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "Invalid reviewer id")
		return
	}

	type UpdateReviewerRequest struct {
		Email   *string `json:"email"`
		IsAdmin *bool   `json:"is_admin"`
	}

	var req UpdateReviewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	var reviewer models.Reviewer
	if err := config.DB.Where("reviewer_id = ? AND site_name = ?", id, config.SiteName()).
		First(&reviewer).Error; err != nil {
		respondError(c, http.StatusNotFound, "not_found", "Reviewer not found")
		return
	}

	if req.Email != nil {
		if *req.Email != "" && !utils.ValidateEmail(*req.Email) {
			respondError(c, http.StatusBadRequest, "validation_error", "Invalid email address")
			return
		}
		reviewer.Email = *req.Email
	}
	if req.IsAdmin != nil {
		reviewer.IsAdmin = *req.IsAdmin
	}

	now := time.Now()
	reviewer.UpdateAt = &now

	if err := config.DB.Save(&reviewer).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "Failed to update reviewer")
		return
	}

	respondData(c, http.StatusOK, gin.H{"reviewer": reviewer})
}

// DeleteReviewer removes a reviewer and their assignments. Their past
// reviews stay; they remain part of applicant aggregates.
func DeleteReviewer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "Invalid reviewer id")
		return
	}

	site := config.SiteName()

	var reviewer models.Reviewer
	if err := config.DB.Where("reviewer_id = ? AND site_name = ?", id, site).
		First(&reviewer).Error; err != nil {
		respondError(c, http.StatusNotFound, "not_found", "Reviewer not found")
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("reviewer_name = ? AND site_name = ?", reviewer.Name, site).
			Delete(&models.ApplicantAssignment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&reviewer).Error
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "Failed to delete reviewer")
		return
	}

	respondData(c, http.StatusOK, gin.H{"deleted": true})
}
