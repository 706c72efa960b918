package services

import (
	"time"

	"applicant-review-api/config"
	"applicant-review-api/models"

	"gorm.io/gorm"
)

// DistributionService partitions applicants among reviewers and manages
// the persisted assignment table. The round-robin itself is a pure
// function; persistence happens only through an explicit Redistribute.
type DistributionService struct {
	db   *gorm.DB
	site string
}

func NewDistributionService(db *gorm.DB) *DistributionService {
	if db == nil {
		db = config.DB
	}
	return &DistributionService{db: db, site: config.SiteName()}
}

// ComputeDistribution assigns each regular applicant to exactly one
// reviewer by index round-robin: applicant i goes to reviewers[i mod n].
// i-sub applicants never appear in the result. Reviewers with nothing
// assigned still get an empty slice. An empty reviewer list yields an
// empty map.
func ComputeDistribution(applicants []models.Applicant, reviewers []models.Reviewer) map[string][]models.Applicant {
	result := make(map[string][]models.Applicant)
	if len(reviewers) == 0 {
		return result
	}

	for _, r := range reviewers {
		result[r.Name] = []models.Applicant{}
	}

	i := 0
	for _, applicant := range applicants {
		if !applicant.IsRegular() {
			continue
		}
		reviewer := reviewers[i%len(reviewers)]
		result[reviewer.Name] = append(result[reviewer.Name], applicant)
		i++
	}

	return result
}

// Redistribute recomputes the round-robin over the current regular
// applicants and reviewers (both ordered by id, so the operation is
// deterministic and idempotent) and replaces the assignment set in one
// transaction.
func (s *DistributionService) Redistribute() (map[string][]models.Applicant, error) {
	var applicants []models.Applicant
	if err := s.db.Where("site_name = ?", s.site).
		Order("applicant_id ASC").Find(&applicants).Error; err != nil {
		return nil, err
	}

	var reviewers []models.Reviewer
	if err := s.db.Where("site_name = ?", s.site).
		Order("reviewer_id ASC").Find(&reviewers).Error; err != nil {
		return nil, err
	}

	distribution := ComputeDistribution(applicants, reviewers)

	now := time.Now()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("site_name = ?", s.site).
			Delete(&models.ApplicantAssignment{}).Error; err != nil {
			return err
		}
		for reviewerName, assigned := range distribution {
			for _, applicant := range assigned {
				assignment := models.ApplicantAssignment{
					ApplicantID:  applicant.ApplicantID,
					ReviewerName: reviewerName,
					SiteName:     s.site,
					AssignedAt:   now,
				}
				if err := tx.Create(&assignment).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return distribution, nil
}

// ListAssignments returns the persisted distribution grouped by reviewer.
// Reviewers with no assignments are present with empty slices.
func (s *DistributionService) ListAssignments() (map[string][]models.Applicant, error) {
	var reviewers []models.Reviewer
	if err := s.db.Where("site_name = ?", s.site).
		Order("reviewer_id ASC").Find(&reviewers).Error; err != nil {
		return nil, err
	}

	result := make(map[string][]models.Applicant)
	for _, r := range reviewers {
		result[r.Name] = []models.Applicant{}
	}

	var assignments []models.ApplicantAssignment
	if err := s.db.Preload("Applicant").
		Where("site_name = ?", s.site).
		Order("applicant_id ASC").Find(&assignments).Error; err != nil {
		return nil, err
	}

	for _, assignment := range assignments {
		if assignment.Applicant == nil {
			continue
		}
		result[assignment.ReviewerName] = append(result[assignment.ReviewerName], *assignment.Applicant)
	}

	return result, nil
}

// AssignedTo returns the applicants assigned to one reviewer, ordered by
// applicant id.
func (s *DistributionService) AssignedTo(reviewerName string) ([]models.Applicant, error) {
	var assignments []models.ApplicantAssignment
	if err := s.db.Preload("Applicant").
		Where("reviewer_name = ? AND site_name = ?", reviewerName, s.site).
		Order("applicant_id ASC").Find(&assignments).Error; err != nil {
		return nil, err
	}

	applicants := make([]models.Applicant, 0, len(assignments))
	for _, assignment := range assignments {
		if assignment.Applicant != nil {
			applicants = append(applicants, *assignment.Applicant)
		}
	}
	return applicants, nil
}

// UnassignedPool lists the i-sub applicants, which are excluded from
// automatic distribution and reviewed through a separate path.
func (s *DistributionService) UnassignedPool() ([]models.Applicant, error) {
	var applicants []models.Applicant
	if err := s.db.Where("category = ? AND site_name = ?", models.CategoryISub, s.site).
		Order("applicant_id ASC").Find(&applicants).Error; err != nil {
		return nil, err
	}
	return applicants, nil
}
