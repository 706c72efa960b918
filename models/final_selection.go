package models

import "time"

// Admin decisions for a final selection.
const (
	AdminDecisionSelected    = "Selected"
	AdminDecisionNotSelected = "Not Selected"
	AdminDecisionPending     = "Pending"
)

// FinalSelection carries the admin outcome for one applicant together
// with aggregates derived from that applicant's reviews. The aggregates
// are refreshed on every review create/update/delete.
type FinalSelection struct {
	SelectionID     int        `gorm:"primaryKey;column:selection_id" json:"selection_id"`
	ApplicantID     int        `gorm:"column:applicant_id;uniqueIndex:uq_final_selections_applicant" json:"applicant_id"`
	AdminDecision   string     `gorm:"column:admin_decision" json:"admin_decision"`
	SelectionReason *string    `gorm:"column:selection_reason" json:"selection_reason"`
	AverageScore    float64    `gorm:"column:average_score" json:"average_score"`
	ReviewerCount   int        `gorm:"column:reviewer_count" json:"reviewer_count"`
	DecidedAt       *time.Time `gorm:"column:decided_at" json:"decided_at"`
	SiteName        string     `gorm:"column:site_name" json:"site_name"`
	CreateAt        *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt        *time.Time `gorm:"column:update_at" json:"update_at"`

	Applicant *Applicant `gorm:"foreignKey:ApplicantID;references:ApplicantID" json:"applicant,omitempty"`
}

func (FinalSelection) TableName() string {
	return "final_selections"
}

// IsFinalized reports whether the admin decision has moved away from
// Pending.
func (f *FinalSelection) IsFinalized() bool {
	return f.AdminDecision != "" && f.AdminDecision != AdminDecisionPending
}

// ValidAdminDecision checks an admin decision value before it is written.
func ValidAdminDecision(decision string) bool {
	switch decision {
	case AdminDecisionSelected, AdminDecisionNotSelected, AdminDecisionPending:
		return true
	}
	return false
}
