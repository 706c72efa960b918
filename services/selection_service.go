package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"applicant-review-api/config"
	"applicant-review-api/models"

	"gorm.io/gorm"
)

// Mailer sends decision notifications. The default implementation rides
// on config.SendMail; tests substitute their own.
type Mailer interface {
	Send(to []string, subject, html string) error
}

type smtpMailer struct{}

func (smtpMailer) Send(to []string, subject, html string) error {
	return config.SendMail(to, subject, html)
}

// SelectionService manages admin decisions on final selections.
type SelectionService struct {
	db     *gorm.DB
	site   string
	mailer Mailer
}

func NewSelectionService(db *gorm.DB) *SelectionService {
	if db == nil {
		db = config.DB
	}
	return &SelectionService{db: db, site: config.SiteName(), mailer: smtpMailer{}}
}

// NewSelectionServiceWithMailer is the test seam for notifications.
func NewSelectionServiceWithMailer(db *gorm.DB, mailer Mailer) *SelectionService {
	s := NewSelectionService(db)
	s.mailer = mailer
	return s
}

// ListSelections returns all final selections with their applicants.
func (s *SelectionService) ListSelections() ([]models.FinalSelection, error) {
	var selections []models.FinalSelection
	if err := s.db.Preload("Applicant").
		Where("site_name = ?", s.site).
		Order("applicant_id ASC").Find(&selections).Error; err != nil {
		return nil, err
	}
	return selections, nil
}

// GetSelection fetches the final selection for one applicant.
func (s *SelectionService) GetSelection(applicantID int) (*models.FinalSelection, error) {
	var selection models.FinalSelection
	err := s.db.Preload("Applicant").
		Where("applicant_id = ? AND site_name = ?", applicantID, s.site).
		First(&selection).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &selection, nil
}

// SetAdminDecision records the admin outcome for one applicant.
// decided_at is set only when the decision moves away from Pending and
// cleared again on a reset to Pending. A notification failure is logged,
// never failing the decision write.
func (s *SelectionService) SetAdminDecision(applicantID int, decision string, reason *string) (*models.FinalSelection, error) {
	if !models.ValidAdminDecision(decision) {
		return nil, validationError("unknown admin decision %q", decision)
	}

	var applicant models.Applicant
	if err := s.db.Where("applicant_id = ? AND site_name = ?", applicantID, s.site).
		First(&applicant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var selection models.FinalSelection
	now := time.Now()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("applicant_id = ? AND site_name = ?", applicantID, s.site).
			First(&selection).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			selection = models.FinalSelection{
				ApplicantID:   applicantID,
				AdminDecision: models.AdminDecisionPending,
				SiteName:      s.site,
				CreateAt:      &now,
			}
		case err != nil:
			return err
		}

		selection.AdminDecision = decision
		if reason != nil {
			selection.SelectionReason = reason
		}
		if decision == models.AdminDecisionPending {
			selection.DecidedAt = nil
		} else {
			selection.DecidedAt = &now
		}
		selection.UpdateAt = &now

		return tx.Save(&selection).Error
	})
	if err != nil {
		return nil, err
	}

	if selection.IsFinalized() {
		if err := s.notifyReviewers(&applicant, &selection); err != nil {
			log.Printf("Warning: decision notification failed for applicant %d: %v", applicantID, err)
		}
	}
	defaultProgressCache.Invalidate()

	selection.Applicant = &applicant
	return &selection, nil
}

// notifyReviewers emails the reviewers who reviewed this applicant.
func (s *SelectionService) notifyReviewers(applicant *models.Applicant, selection *models.FinalSelection) error {
	var reviews []models.Review
	if err := s.db.Where("applicant_id = ? AND site_name = ?", applicant.ApplicantID, s.site).
		Find(&reviews).Error; err != nil {
		return err
	}
	if len(reviews) == 0 {
		return nil
	}

	names := make([]string, 0, len(reviews))
	for _, r := range reviews {
		names = append(names, r.ReviewerName)
	}

	var reviewers []models.Reviewer
	if err := s.db.Where("name IN ? AND site_name = ? AND email <> ''", names, s.site).
		Find(&reviewers).Error; err != nil {
		return err
	}

	recipients := make([]string, 0, len(reviewers))
	for _, r := range reviewers {
		recipients = append(recipients, r.Email)
	}
	if len(recipients) == 0 {
		return nil
	}

	subject := fmt.Sprintf("Final decision recorded for %s", applicant.Name)
	body := fmt.Sprintf(
		"<p>The final decision for applicant <strong>%s</strong> is: <strong>%s</strong>.</p>"+
			"<p>Average score: %.2f across %d review(s).</p>",
		applicant.Name, selection.AdminDecision,
		selection.AverageScore, selection.ReviewerCount,
	)

	return s.mailer.Send(recipients, subject, body)
}
