package models

import "time"

type Reviewer struct {
	ReviewerID   int        `gorm:"primaryKey;column:reviewer_id" json:"reviewer_id"`
	Name         string     `gorm:"column:name;uniqueIndex:uq_reviewers_name_site" json:"name"`
	Email        string     `gorm:"column:email" json:"email"`
	PasswordHash string     `gorm:"column:password_hash" json:"-"`
	IsAdmin      bool       `gorm:"column:is_admin" json:"is_admin"`
	SiteName     string     `gorm:"column:site_name;uniqueIndex:uq_reviewers_name_site" json:"site_name"`
	CreateAt     *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt     *time.Time `gorm:"column:update_at" json:"update_at"`
}

func (Reviewer) TableName() string {
	return "reviewers"
}
