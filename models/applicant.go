package models

import "time"

// Applicant categories. Regular applicants take part in automatic
// round-robin distribution; i-sub applicants are reviewed through a
// separate unassigned pool.
const (
	CategoryRegular = "regular"
	CategoryISub    = "i-sub"
)

type Applicant struct {
	ApplicantID int        `gorm:"primaryKey;column:applicant_id" json:"applicant_id"`
	ExternalID  string     `gorm:"column:external_id;uniqueIndex:uq_applicants_external_site" json:"external_id"`
	Name        string     `gorm:"column:name" json:"name"`
	Category    string     `gorm:"column:category" json:"category"`
	Details     *string    `gorm:"column:details" json:"details,omitempty"`
	SiteName    string     `gorm:"column:site_name;uniqueIndex:uq_applicants_external_site" json:"site_name"`
	CreateAt    *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at"`
}

func (Applicant) TableName() string {
	return "applicants"
}

// IsRegular reports whether the applicant is eligible for automatic
// distribution.
func (a *Applicant) IsRegular() bool {
	return a.Category == CategoryRegular
}

// ValidCategory checks a category value before it is written.
func ValidCategory(category string) bool {
	return category == CategoryRegular || category == CategoryISub
}
