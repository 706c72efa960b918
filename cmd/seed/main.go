// Seed loader: imports reviewers and applicants from CSV files.
// cmd/seed/main.go
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"applicant-review-api/config"
	"applicant-review-api/models"
	"applicant-review-api/utils"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	reviewersPath := flag.String("reviewers", "", "CSV of reviewers: name,email,password,is_admin")
	applicantsPath := flag.String("applicants", "", "CSV of applicants: external_id,name,category,details")
	flag.Parse()

	if *reviewersPath == "" && *applicantsPath == "" {
		log.Fatal("Nothing to do: pass -reviewers and/or -applicants")
	}

	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	config.InitDB()

	if *reviewersPath != "" {
		if err := seedReviewers(*reviewersPath); err != nil {
			log.Fatal("Failed to seed reviewers:", err)
		}
	}
	if *applicantsPath != "" {
		if err := seedApplicants(*applicantsPath); err != nil {
			log.Fatal("Failed to seed applicants:", err)
		}
	}

	log.Println("Seed completed")
}

func readRecords(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// seedReviewers loads reviewers, skipping names that already exist.
func seedReviewers(path string) error {
	records, err := readRecords(path)
	if err != nil {
		return err
	}

	site := config.SiteName()
	for i, record := range records {
		if len(record) < 3 {
			log.Printf("Skipping malformed reviewer row %d", i+1)
			continue
		}
		name := utils.SanitizeInput(record[0])
		if name == "" || strings.EqualFold(name, "name") { // header row
			continue
		}

		var existing models.Reviewer
		err := config.DB.Where("name = ? AND site_name = ?", name, site).First(&existing).Error
		if err == nil {
			log.Printf("Reviewer %s already exists, skipping", name)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hash, err := utils.HashPassword(record[2])
		if err != nil {
			return err
		}

		now := time.Now()
		reviewer := models.Reviewer{
			Name:         name,
			Email:        strings.TrimSpace(record[1]),
			PasswordHash: hash,
			IsAdmin:      len(record) > 3 && strings.EqualFold(strings.TrimSpace(record[3]), "true"),
			SiteName:     site,
			CreateAt:     &now,
			UpdateAt:     &now,
		}
		if err := config.DB.Create(&reviewer).Error; err != nil {
			return err
		}
		log.Printf("Created reviewer %s", name)
	}
	return nil
}

// seedApplicants loads applicants, skipping external ids that already
// exist. Missing external ids get a fresh UUID.
func seedApplicants(path string) error {
	records, err := readRecords(path)
	if err != nil {
		return err
	}

	site := config.SiteName()
	for i, record := range records {
		if len(record) < 2 {
			log.Printf("Skipping malformed applicant row %d", i+1)
			continue
		}
		externalID := strings.TrimSpace(record[0])
		name := utils.SanitizeInput(record[1])
		if name == "" || strings.EqualFold(externalID, "external_id") { // header row
			continue
		}
		if externalID == "" {
			externalID = uuid.NewString()
		}

		category := models.CategoryRegular
		if len(record) > 2 && strings.TrimSpace(record[2]) != "" {
			category = strings.TrimSpace(record[2])
			if !models.ValidCategory(category) {
				log.Printf("Skipping applicant %s: unknown category %q", name, category)
				continue
			}
		}

		var existing models.Applicant
		err := config.DB.Where("external_id = ? AND site_name = ?", externalID, site).First(&existing).Error
		if err == nil {
			log.Printf("Applicant %s already exists, skipping", externalID)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var details *string
		if len(record) > 3 && record[3] != "" {
			d := record[3]
			details = &d
		}

		now := time.Now()
		applicant := models.Applicant{
			ExternalID: externalID,
			Name:       name,
			Category:   category,
			Details:    details,
			SiteName:   site,
			CreateAt:   &now,
			UpdateAt:   &now,
		}
		if err := config.DB.Create(&applicant).Error; err != nil {
			return err
		}
		log.Printf("Created applicant %s (%s)", name, externalID)
	}
	return nil
}
