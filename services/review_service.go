package services

import (
	"errors"
	"log"
	"math"
	"time"

	"applicant-review-api/config"
	"applicant-review-api/models"

	"gorm.io/gorm"
)

// ReviewPatch carries a partial review update: any subset of the seven
// sub-scores, notes, and decision. Nil fields leave the stored values
// untouched.
type ReviewPatch struct {
	PreferenceScore  *int    `json:"preference_score"`
	PressureScore    *int    `json:"pressure_score"`
	UnderservedScore *int    `json:"underserved_score"`
	LeadershipScore  *int    `json:"leadership_score"`
	AcademicScore    *int    `json:"academic_score"`
	ResearchScore    *int    `json:"research_score"`
	PersonalScore    *int    `json:"personal_score"`
	Notes            *string `json:"notes"`
	Decision         *string `json:"decision"`
}

// ReviewService implements the review aggregation engine: upsert with
// find-or-create-then-patch semantics, total score derivation, and the
// final-selection aggregate refresh that follows every write.
type ReviewService struct {
	db   *gorm.DB
	site string
}

func NewReviewService(db *gorm.DB) *ReviewService {
	if db == nil {
		db = config.DB
	}
	return &ReviewService{db: db, site: config.SiteName()}
}

// Validate rejects out-of-range sub-scores and unknown decisions before
// any row is touched.
func (p *ReviewPatch) Validate() error {
	scores := []*int{
		p.PreferenceScore, p.PressureScore, p.UnderservedScore,
		p.LeadershipScore, p.AcademicScore, p.ResearchScore, p.PersonalScore,
	}
	for _, s := range scores {
		if s == nil {
			continue
		}
		if *s < models.ScoreMin || *s > models.ScoreMax {
			return ErrInvalidScore
		}
	}
	if p.Decision != nil && *p.Decision != "" && !models.ValidDecision(*p.Decision) {
		return validationError("unknown decision %q", *p.Decision)
	}
	return nil
}

func (p *ReviewPatch) applyTo(review *models.Review) {
	if p.PreferenceScore != nil {
		review.PreferenceScore = p.PreferenceScore
	}
	if p.PressureScore != nil {
		review.PressureScore = p.PressureScore
	}
	if p.UnderservedScore != nil {
		review.UnderservedScore = p.UnderservedScore
	}
	if p.LeadershipScore != nil {
		review.LeadershipScore = p.LeadershipScore
	}
	if p.AcademicScore != nil {
		review.AcademicScore = p.AcademicScore
	}
	if p.ResearchScore != nil {
		review.ResearchScore = p.ResearchScore
	}
	if p.PersonalScore != nil {
		review.PersonalScore = p.PersonalScore
	}
	if p.Notes != nil {
		review.Notes = p.Notes
	}
	if p.Decision != nil {
		if *p.Decision == "" {
			review.Decision = nil
		} else {
			decision := *p.Decision
			review.Decision = &decision
		}
	}
}

// UpsertReview finds the review for (applicantID, reviewerName) and
// merges the patch into it, creating the row on first write. A duplicate
// is never created. After a successful write the applicant's
// final-selection aggregates are refreshed; a failure there is logged
// and swallowed so the saved review is never rolled back for the sake of
// a derived value.
func (s *ReviewService) UpsertReview(applicantID int, reviewerName string, patch ReviewPatch) (*models.Review, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var applicant models.Applicant
	if err := s.db.Where("applicant_id = ? AND site_name = ?", applicantID, s.site).
		First(&applicant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var review models.Review
	err := s.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		err := tx.Where("applicant_id = ? AND reviewer_name = ? AND site_name = ?",
			applicantID, reviewerName, s.site).First(&review).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			review = models.Review{
				ApplicantID:  applicantID,
				ReviewerName: reviewerName,
				SiteName:     s.site,
				CreateAt:     &now,
			}
		case err != nil:
			return err
		}

		patch.applyTo(&review)
		review.TotalScore = review.ComputeTotalScore()
		review.UpdateAt = &now

		return tx.Save(&review).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.RefreshSelectionAggregates(applicantID); err != nil {
		log.Printf("Warning: final selection refresh failed for applicant %d: %v", applicantID, err)
	}
	defaultProgressCache.Invalidate()

	return &review, nil
}

// GetReview fetches one review by its unique (applicant, reviewer) key.
func (s *ReviewService) GetReview(applicantID int, reviewerName string) (*models.Review, error) {
	var review models.Review
	err := s.db.Where("applicant_id = ? AND reviewer_name = ? AND site_name = ?",
		applicantID, reviewerName, s.site).First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// GetReviewByID fetches one review by primary key.
func (s *ReviewService) GetReviewByID(reviewID int) (*models.Review, error) {
	var review models.Review
	err := s.db.Where("review_id = ? AND site_name = ?", reviewID, s.site).
		First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ListReviews returns reviews optionally filtered by applicant and/or
// reviewer.
func (s *ReviewService) ListReviews(applicantID *int, reviewerName *string) ([]models.Review, error) {
	query := s.db.Where("site_name = ?", s.site)
	if applicantID != nil {
		query = query.Where("applicant_id = ?", *applicantID)
	}
	if reviewerName != nil {
		query = query.Where("reviewer_name = ?", *reviewerName)
	}

	var reviews []models.Review
	if err := query.Order("review_id ASC").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// DeleteReview removes a review and refreshes the applicant's
// final-selection aggregates. The refresh failure policy matches
// UpsertReview: logged, not propagated.
func (s *ReviewService) DeleteReview(reviewID int) error {
	review, err := s.GetReviewByID(reviewID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(&models.Review{}, review.ReviewID).Error; err != nil {
		return err
	}

	if err := s.RefreshSelectionAggregates(review.ApplicantID); err != nil {
		log.Printf("Warning: final selection refresh failed for applicant %d: %v", review.ApplicantID, err)
	}
	defaultProgressCache.Invalidate()

	return nil
}

// RefreshSelectionAggregates recomputes average_score and reviewer_count
// for one applicant from its current reviews, creating the final
// selection (as Pending) if none exists. When the last review goes away
// the aggregates reset to zero but the row stays.
func (s *ReviewService) RefreshSelectionAggregates(applicantID int) error {
	var reviews []models.Review
	if err := s.db.Where("applicant_id = ? AND site_name = ?", applicantID, s.site).
		Find(&reviews).Error; err != nil {
		return err
	}

	average := 0.0
	if len(reviews) > 0 {
		sum := 0
		for _, r := range reviews {
			sum += r.TotalScore
		}
		average = math.Round(float64(sum)/float64(len(reviews))*100) / 100
	}

	now := time.Now()
	return s.db.Transaction(func(tx *gorm.DB) error {
		var selection models.FinalSelection
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

		selection.AverageScore = average
		selection.ReviewerCount = len(reviews)
		selection.UpdateAt = &now

		return tx.Save(&selection).Error
	})
}
