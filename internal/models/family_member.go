package models

import "time"

// FamilyMember represents a person a user can nominate on their assets.
type FamilyMember struct {
	Base
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	FullName    string     `gorm:"not null" json:"full_name"`
	Relation    string     `gorm:"not null" json:"relation"` // spouse, son, daughter, parent, sibling, other
	Email       string     `json:"email,omitempty"`
	Phone       string     `gorm:"size:10" json:"phone,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`

	Nominations []NomineeAssignment `gorm:"foreignKey:FamilyMemberID" json:"nominations,omitempty"`
}
