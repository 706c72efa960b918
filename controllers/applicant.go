package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"applicant-review-api/config"
	"applicant-review-api/models"
	"applicant-review-api/services"
	"applicant-review-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetApplicants returns the applicant list, optionally filtered by
// category.
func GetApplicants(c *gin.Context) {
	query := config.DB.Where("site_name = ?", config.SiteName())

	if category := c.Query("category"); category != "" {
		if !models.ValidCategory(category) {
			respondError(c, http.StatusBadRequest, "validation_error", "Unknown category")
			return
		}
		query = query.Where("category = ?", category)
	}

	var applicants []models.Applicant
	if err := query.Order("applicant_id ASC").Find(&applicants).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "Failed to fetch applicants")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"applicants": applicants,
		"total":      len(applicants),
	})
}

// GetRegularApplicants lists applicants eligible for distribution.
func GetRegularApplicants(c *gin.Context) {
	listApplicantsByCategory(c, models.CategoryRegular)
}

// GetISubApplicants lists the separate unassigned i-sub pool.
func GetISubApplicants(c *gin.Context) {
	listApplicantsByCategory(c, models.CategoryISub)
}

func listApplicantsByCategory(c *gin.Context, category string) {
	var applicants []models.Applicant
	if err := config.DB.Where("category = ? AND site_name = ?", category, config.SiteName()).
		Order("applicant_id ASC").Find(&applicants).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "Failed to fetch applicants")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"applicants": applicants,
		"total":      len(applicants),
	})
}

// GetApplicant returns a single applicant by ID.
func GetApplicant(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "Invalid applicant id")
		return
	}

	var applicant models.Applicant
	if err := config.DB.Where("applicant_id = ? AND site_name = ?", id, config.SiteName()).
		First(&applicant).Error; err != nil {
		respondError(c, http.StatusNotFound, "not_found", "Applicant not found")
		return
	}

	respondData(c, http.StatusOK, gin.H{"applicant": applicant})
}

// CreateApplicant handles manual applicant entry. external_id defaults
// to a fresh UUID; a duplicate (external_id, site) pair is a conflict.
func CreateApplicant(c *gin.Context) {
	type CreateApplicantRequest struct {
		ExternalID string  `json:"external_id"`
		Name       string  `json:"name" binding:"required"`
		Category   string  `json:"category"`
		Details    *string `json:"details"`
	}

	var req CreateApplicantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if req.Category == "" {
		req.Category = models.CategoryRegular
	}
	if !models.ValidCategory(req.Category) {
		respondError(c, http.StatusBadRequest, "validation_error", "Unknown category")
		return
	}
	if req.ExternalID == "" {
		req.ExternalID = uuid.NewString()
	}

	site := config.SiteName()

	var existing models.Applicant
	err := config.DB.Where("external_id = ? AND site_name = ?", req.ExternalID, site).
		First(&existing).Error
	if err == nil {
		respondError(c, http.StatusConflict, "conflict", "Applicant with this external_id already exists")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusInternalServerError, "internal_error", "Failed to check existing applicants")
		return
	}

	now := time.Now()
	applicant := models.Applicant{
		ExternalID: req.ExternalID,
		Name:       utils.SanitizeInput(req.Name),
		Category:   req.Category,
		Details:    req.Details,
		SiteName:   site,
		CreateAt:   &now,
		UpdateAt:   &now,
	}

	if err := config.DB.Create(&applicant).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "Failed to create applicant")
		return
	}

	respondData(c, http.StatusCreated, gin.H{"applicant": applicant})
}

// UpdateApplicant edits name, details, or category.
func UpdateApplicant(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "Invalid applicant id")
		return
	}

	type UpdateApplicantRequest struct {
		Name     *string `json:"name"`
		Category *string `json:"category"`
		Details  *string `json:"details"`
	}

	var req UpdateApplicantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	var applicant models.Applicant
	if err := config.DB.Where("applicant_id = ? AND site_name = ?", id, config.SiteName()).
		First(&applicant).Error; err != nil {
		respondError(c, http.StatusNotFound, "not_found", "Applicant not found")
		return
	}

	if req.Category != nil {
		if !models.ValidCategory(*req.Category) {
			respondError(c, http.StatusBadRequest, "validation_error", "Unknown category")
			return
		}
		applicant.Category = *req.Category
	}
	if req.Name != nil {
		applicant.Name = utils.SanitizeInput(*req.Name)
	}
	if req.Details != nil {
		applicant.Details = req.Details
	}

	now := time.Now()
	applicant.UpdateAt = &now

	if err := config.DB.Save(&applicant).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "Failed to update applicant")
		return
	}

	respondData(c, http.StatusOK, gin.H{"applicant": applicant})
}

// DeleteApplicant removes an applicant and cascades to its reviews,
// assignment, and final selection in one transaction.
func DeleteApplicant(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "Invalid applicant id")
		return
	}

	site := config.SiteName()

	var applicant models.Applicant
	if err := config.DB.Where("applicant_id = ? AND site_name = ?", id, site).
		First(&applicant).Error; err != nil {
		respondError(c, http.StatusNotFound, "not_found", "Applicant not found")
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("applicant_id = ? AND site_name = ?", id, site).
			Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("applicant_id = ? AND site_name = ?", id, site).
			Delete(&models.ApplicantAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("applicant_id = ? AND site_name = ?", id, site).
			Delete(&models.FinalSelection{}).Error; err != nil {
			return err
		}
		return tx.Delete(&applicant).Error
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "Failed to delete applicant")
		return
	}

	respondData(c, http.StatusOK, gin.H{"deleted": true})
}

// GetDistribution returns the persisted reviewer-to-applicants
// distribution.
func GetDistribution(c *gin.Context) {
	svc := services.NewDistributionService(nil)
	distribution, err := svc.ListAssignments()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"distribution": distribution})
}

// Redistribute recomputes and persists the round-robin distribution.
// Explicit and idempotent; listing never triggers it.
func Redistribute(c *gin.Context) {
	svc := services.NewDistributionService(nil)
	distribution, err := svc.Redistribute()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"distribution": distribution})
}
