package models

import "time"

// ApplicantAssignment persists the reviewer an applicant was distributed
// to. Assignments change only through an explicit redistribute operation,
// never as a side effect of listing.
type ApplicantAssignment struct {
	AssignmentID int       `gorm:"primaryKey;column:assignment_id" json:"assignment_id"`
	ApplicantID  int       `gorm:"column:applicant_id;uniqueIndex:uq_assignments_applicant" json:"applicant_id"`
	ReviewerName string    `gorm:"column:reviewer_name" json:"reviewer_name"`
	SiteName     string    `gorm:"column:site_name" json:"site_name"`
	AssignedAt   time.Time `gorm:"column:assigned_at" json:"assigned_at"`

	Applicant *Applicant `gorm:"foreignKey:ApplicantID;references:ApplicantID" json:"applicant,omitempty"`
}

func (ApplicantAssignment) TableName() string {
	return "applicant_assignments"
}
