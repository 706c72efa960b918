package controllers

import (
	"net/http"
	"strconv"

	"applicant-review-api/services"

	"github.com/gin-gonic/gin"
)

// GetFinalSelections lists all final selections with their applicants.
func GetFinalSelections(c *gin.Context) {
	svc := services.NewSelectionService(nil)
	selections, err := svc.ListSelections()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"final_selections": selections,
		"total":            len(selections),
	})
}

// GetFinalSelection returns the final selection for one applicant.
func GetFinalSelection(c *gin.Context) {
	applicantID, err := strconv.Atoi(c.Param("applicant_id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "Invalid applicant id")
		return
	}

	svc := services.NewSelectionService(nil)
	selection, err := svc.GetSelection(applicantID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"final_selection": selection})
}

// SetAdminDecision records the admin outcome for one applicant.
func SetAdminDecision(c *gin.Context) {
	applicantID, err := strconv.Atoi(c.Param("applicant_id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "Invalid applicant id")
		return
	}

	type AdminDecisionRequest struct {
		AdminDecision   string  `json:"admin_decision" binding:"required"`
		SelectionReason *string `json:"selection_reason"`
	}

	var req AdminDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	svc := services.NewSelectionService(nil)
	selection, err := svc.SetAdminDecision(applicantID, req.AdminDecision, req.SelectionReason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"final_selection": selection})
}
