package controllers

import (
	"net/http"
	"os"

	"applicant-review-api/config"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports liveness plus config presence. Only booleans are
// exposed, never the configured values.
func HealthCheck(c *gin.Context) {
	dbOK := false
	if config.DB != nil {
		if sqlDB, err := config.DB.DB(); err == nil {
			dbOK = sqlDB.Ping() == nil
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"site_name": config.SiteName(),
		"config": gin.H{
			"database_configured": os.Getenv("DB_HOST") != "",
			"database_reachable":  dbOK,
			"jwt_configured":      os.Getenv("JWT_SECRET") != "",
			"smtp_configured":     config.MailConfigured(),
		},
	})
}
