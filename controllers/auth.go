package controllers

import (
	"net/http"
	"time"

	"applicant-review-api/config"
	"applicant-review-api/middleware"
	"applicant-review-api/models"
	"applicant-review-api/utils"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token    string          `json:"token"`
	Reviewer models.Reviewer `json:"reviewer"`
}

// Login authenticates a reviewer by name or email and issues a session
// token.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if req.Name == "" && req.Email == "" {
		respondError(c, http.StatusBadRequest, "validation_error", "name or email is required")
		return
	}

	query := config.DB.Where("site_name = ?", config.SiteName())
	if req.Name != "" {
		query = query.Where("name = ?", req.Name)
	} else {
		query = query.Where("email = ?", req.Email)
	}

	var reviewer models.Reviewer
	if err := query.First(&reviewer).Error; err != nil {
		respondError(c, http.StatusUnauthorized, "unauthorized", "Invalid credentials")
		return
	}

	if !utils.CheckPassword(req.Password, reviewer.PasswordHash) {
		respondError(c, http.StatusUnauthorized, "unauthorized", "Invalid credentials")
		return
	}

	token, err := middleware.GenerateToken(reviewer)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "Failed to generate token")
		return
	}

	respondData(c, http.StatusOK, LoginResponse{
		Token:    token,
		Reviewer: reviewer,
	})
}

// GetProfile returns the authenticated reviewer.
func GetProfile(c *gin.Context) {
	reviewerID, _ := c.Get("reviewerID")

	var reviewer models.Reviewer
	if err := config.DB.Where("reviewer_id = ? AND site_name = ?", reviewerID, config.SiteName()).
		First(&reviewer).Error; err != nil {
		respondError(c, http.StatusNotFound, "not_found", "Reviewer not found")
		return
	}

	respondData(c, http.StatusOK, gin.H{"reviewer": reviewer})
}

// ChangePassword handles password change for the authenticated reviewer.
func ChangePassword(c *gin.Context) {
	type PasswordChangeRequest struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
	}

	var req PasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if ok, msg := utils.ValidatePassword(req.NewPassword); !ok {
		respondError(c, http.StatusBadRequest, "validation_error", msg)
		return
	}

	reviewerID, _ := c.Get("reviewerID")

	var reviewer models.Reviewer
	if err := config.DB.Where("reviewer_id = ? AND site_name = ?", reviewerID, config.SiteName()).
		First(&reviewer).Error; err != nil {
		respondError(c, http.StatusNotFound, "not_found", "Reviewer not found")
		return
	}

	if !utils.CheckPassword(req.CurrentPassword, reviewer.PasswordHash) {
		respondError(c, http.StatusUnauthorized, "unauthorized", "Current password is incorrect")
		return
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "Failed to hash password")
		return
	}

	now := time.Now()
	reviewer.PasswordHash = hash
	reviewer.UpdateAt = &now

	if err := config.DB.Save(&reviewer).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "Failed to update password")
		return
	}

	respondData(c, http.StatusOK, gin.H{"changed": true})
}
