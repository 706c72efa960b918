package models

import "time"

// Reviewer decisions. A review counts as complete only once a decision
// is recorded; sub-scores alone do not mark completion.
const (
	DecisionDefinitelyInterview = "Definitely Interview"
	DecisionMaybe               = "Maybe"
	DecisionDoNotInterview      = "Do Not Interview"
)

// Sub-score bounds for each of the seven categories.
const (
	ScoreMin = 1
	ScoreMax = 5
)

// Review holds one reviewer's evaluation of one applicant. At most one
// row exists per (applicant, reviewer, site).
type Review struct {
	ReviewID     int    `gorm:"primaryKey;column:review_id" json:"review_id"`
	ApplicantID  int    `gorm:"column:applicant_id;uniqueIndex:uq_reviews_applicant_reviewer_site" json:"applicant_id"`
	ReviewerName string `gorm:"column:reviewer_name;uniqueIndex:uq_reviews_applicant_reviewer_site" json:"reviewer_name"`

	PreferenceScore  *int `gorm:"column:preference_score" json:"preference_score"`
	PressureScore    *int `gorm:"column:pressure_score" json:"pressure_score"`
	UnderservedScore *int `gorm:"column:underserved_score" json:"underserved_score"`
	LeadershipScore  *int `gorm:"column:leadership_score" json:"leadership_score"`
	AcademicScore    *int `gorm:"column:academic_score" json:"academic_score"`
	ResearchScore    *int `gorm:"column:research_score" json:"research_score"`
	PersonalScore    *int `gorm:"column:personal_score" json:"personal_score"`

	Notes      *string    `gorm:"column:notes" json:"notes"`
	Decision   *string    `gorm:"column:decision" json:"decision"`
	TotalScore int        `gorm:"column:total_score" json:"total_score"`
	SiteName   string     `gorm:"column:site_name;uniqueIndex:uq_reviews_applicant_reviewer_site" json:"site_name"`
	CreateAt   *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt   *time.Time `gorm:"column:update_at" json:"update_at"`

	Applicant *Applicant `gorm:"foreignKey:ApplicantID;references:ApplicantID" json:"applicant,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}

// SubScores returns the seven sub-scores in their fixed category order.
func (r *Review) SubScores() []*int {
	return []*int{
		r.PreferenceScore,
		r.PressureScore,
		r.UnderservedScore,
		r.LeadershipScore,
		r.AcademicScore,
		r.ResearchScore,
		r.PersonalScore,
	}
}

// ComputeTotalScore sums the seven sub-scores, treating nil as 0.
// total_score is always derivable from the sub-scores; this is the one
// place that derivation lives.
func (r *Review) ComputeTotalScore() int {
	total := 0
	for _, s := range r.SubScores() {
		if s != nil {
			total += *s
		}
	}
	return total
}

// IsComplete reports whether the review carries a decision.
func (r *Review) IsComplete() bool {
	return r.Decision != nil && *r.Decision != ""
}

// ValidDecision checks a reviewer decision value before it is written.
func ValidDecision(decision string) bool {
	switch decision {
	case DecisionDefinitelyInterview, DecisionMaybe, DecisionDoNotInterview:
		return true
	}
	return false
}
