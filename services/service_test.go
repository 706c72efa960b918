package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"applicant-review-api/config"
	"applicant-review-api/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database and migrates the full
// schema. Each test gets its own named database so state never leaks
// between tests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Applicant{},
		&models.Reviewer{},
		&models.Review{},
		&models.FinalSelection{},
		&models.ApplicantAssignment{},
	))

	return db
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func createApplicant(t *testing.T, db *gorm.DB, externalID, name, category string) models.Applicant {
	t.Helper()

	now := time.Now()
	applicant := models.Applicant{
		ExternalID: externalID,
		Name:       name,
		Category:   category,
		SiteName:   config.SiteName(),
		CreateAt:   &now,
		UpdateAt:   &now,
	}
	require.NoError(t, db.Create(&applicant).Error)
	return applicant
}

func createReviewer(t *testing.T, db *gorm.DB, name, email string, isAdmin bool) models.Reviewer {
	t.Helper()

	now := time.Now()
	reviewer := models.Reviewer{
		Name:     name,
		Email:    email,
		IsAdmin:  isAdmin,
		SiteName: config.SiteName(),
		CreateAt: &now,
		UpdateAt: &now,
	}
	require.NoError(t, db.Create(&reviewer).Error)
	return reviewer
}
