package services

import (
	"math"

	"applicant-review-api/config"
	"applicant-review-api/models"

	"gorm.io/gorm"
)

// OverallProgress reports completed reviews against the expected
// full-coverage total of |applicants| x |reviewers|. The denominator is
// deliberately not the count of created review rows: every reviewer is
// expected to eventually review every applicant.
type OverallProgress struct {
	Completed int64 `json:"completed"`
	Total     int64 `json:"total"`
}

// ReviewerProgress is one reviewer's completion line. Assigned comes
// from the persisted assignment table, not the global applicant count.
type ReviewerProgress struct {
	Name       string `json:"name"`
	Assigned   int64  `json:"assigned"`
	Completed  int64  `json:"completed"`
	Percentage int    `json:"percentage"`
}

// DashboardSummary is the admin landing-page aggregate.
type DashboardSummary struct {
	TotalApplicants    int64   `json:"total_applicants"`
	TotalReviewers     int64   `json:"total_reviewers"`
	CompletedReviews   int64   `json:"completed_reviews"`
	PendingReviews     int64   `json:"pending_reviews"`
	FinalizedDecisions int64   `json:"finalized_decisions"`
	AverageScore       float64 `json:"average_score"`
}

// StatsAggregate breaks reviews down by reviewer decision and final
// selections by admin decision.
type StatsAggregate struct {
	DecisionCounts       map[string]int64 `json:"decision_counts"`
	AdminDecisionCounts  map[string]int64 `json:"admin_decision_counts"`
	ApplicantsByCategory map[string]int64 `json:"applicants_by_category"`
}

// ProgressService computes completion statistics fresh on every call by
// scanning current rows. There are no incremental counters; correctness
// rides on read-after-write consistency of the store. The one exception
// is an optional short-TTL cache in front of the dashboard summary.
type ProgressService struct {
	db    *gorm.DB
	site  string
	cache *ProgressCache
}

func NewProgressService(db *gorm.DB) *ProgressService {
	if db == nil {
		db = config.DB
	}
	return &ProgressService{db: db, site: config.SiteName(), cache: defaultProgressCache}
}

// NewProgressServiceWithCache lets callers (and tests) own the cache.
func NewProgressServiceWithCache(db *gorm.DB, cache *ProgressCache) *ProgressService {
	s := NewProgressService(db)
	s.cache = cache
	return s
}

// GetOverallProgress counts reviews with a decision against the expected
// full-coverage total.
func (s *ProgressService) GetOverallProgress() (*OverallProgress, error) {
	var applicants, reviewers, completed int64

	if err := s.db.Model(&models.Applicant{}).
		Where("site_name = ?", s.site).Count(&applicants).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Reviewer{}).
		Where("site_name = ?", s.site).Count(&reviewers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Review{}).
		Where("site_name = ? AND decision IS NOT NULL", s.site).
		Count(&completed).Error; err != nil {
		return nil, err
	}

	return &OverallProgress{
		Completed: completed,
		Total:     applicants * reviewers,
	}, nil
}

// GetProgressByReviewer reports each reviewer's completion over their
// persisted assignment partition.
func (s *ProgressService) GetProgressByReviewer() ([]ReviewerProgress, error) {
	var reviewers []models.Reviewer
	if err := s.db.Where("site_name = ?", s.site).
		Order("reviewer_id ASC").Find(&reviewers).Error; err != nil {
		return nil, err
	}

	progress := make([]ReviewerProgress, 0, len(reviewers))
	for _, reviewer := range reviewers {
		line, err := s.GetReviewerProgress(reviewer.Name)
		if err != nil {
			return nil, err
		}
		progress = append(progress, *line)
	}
	return progress, nil
}

// GetReviewerProgress reports one reviewer's completion line.
func (s *ProgressService) GetReviewerProgress(reviewerName string) (*ReviewerProgress, error) {
	var assigned, completed int64

	if err := s.db.Model(&models.ApplicantAssignment{}).
		Where("reviewer_name = ? AND site_name = ?", reviewerName, s.site).
		Count(&assigned).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Review{}).
		Where("reviewer_name = ? AND site_name = ? AND decision IS NOT NULL", reviewerName, s.site).
		Count(&completed).Error; err != nil {
		return nil, err
	}

	percentage := 0
	if assigned > 0 {
		percentage = int(math.Round(float64(completed) / float64(assigned) * 100))
	}

	return &ReviewerProgress{
		Name:       reviewerName,
		Assigned:   assigned,
		Completed:  completed,
		Percentage: percentage,
	}, nil
}

// GetDashboardSummary aggregates the dashboard figures, serving from the
// TTL cache when a fresh entry exists.
func (s *ProgressService) GetDashboardSummary() (*DashboardSummary, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(); ok {
			return cached, nil
		}
	}

	summary := &DashboardSummary{}

	if err := s.db.Model(&models.Applicant{}).
		Where("site_name = ?", s.site).Count(&summary.TotalApplicants).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Reviewer{}).
		Where("site_name = ?", s.site).Count(&summary.TotalReviewers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Review{}).
		Where("site_name = ? AND decision IS NOT NULL", s.site).
		Count(&summary.CompletedReviews).Error; err != nil {
		return nil, err
	}
	summary.PendingReviews = summary.TotalApplicants*summary.TotalReviewers - summary.CompletedReviews
	if summary.PendingReviews < 0 {
		summary.PendingReviews = 0
	}

	if err := s.db.Model(&models.FinalSelection{}).
		Where("site_name = ? AND admin_decision <> ?", s.site, models.AdminDecisionPending).
		Count(&summary.FinalizedDecisions).Error; err != nil {
		return nil, err
	}

	var reviews []models.Review
	if err := s.db.Where("site_name = ?", s.site).Find(&reviews).Error; err != nil {
		return nil, err
	}
	if len(reviews) > 0 {
		sum := 0
		for _, r := range reviews {
			sum += r.TotalScore
		}
		summary.AverageScore = math.Round(float64(sum)/float64(len(reviews))*100) / 100
	}

	if s.cache != nil {
		s.cache.Set(summary)
	}
	return summary, nil
}

// GetStatsAggregate breaks current rows down by decision and category.
func (s *ProgressService) GetStatsAggregate() (*StatsAggregate, error) {
	stats := &StatsAggregate{
		DecisionCounts:       make(map[string]int64),
		AdminDecisionCounts:  make(map[string]int64),
		ApplicantsByCategory: make(map[string]int64),
	}

	for _, decision := range []string{
		models.DecisionDefinitelyInterview,
		models.DecisionMaybe,
		models.DecisionDoNotInterview,
	} {
		var count int64
		if err := s.db.Model(&models.Review{}).
			Where("site_name = ? AND decision = ?", s.site, decision).
			Count(&count).Error; err != nil {
			return nil, err
		}
		stats.DecisionCounts[decision] = count
	}

	for _, decision := range []string{
		models.AdminDecisionSelected,
		models.AdminDecisionNotSelected,
		models.AdminDecisionPending,
	} {
		var count int64
		if err := s.db.Model(&models.FinalSelection{}).
			Where("site_name = ? AND admin_decision = ?", s.site, decision).
			Count(&count).Error; err != nil {
			return nil, err
		}
		stats.AdminDecisionCounts[decision] = count
	}

	for _, category := range []string{models.CategoryRegular, models.CategoryISub} {
		var count int64
		if err := s.db.Model(&models.Applicant{}).
			Where("site_name = ? AND category = ?", s.site, category).
			Count(&count).Error; err != nil {
			return nil, err
		}
		stats.ApplicantsByCategory[category] = count
	}

	return stats, nil
}
