package models

import "time"

// Profile holds personal identity details for a user. One row per user.
type Profile struct {
	Base
	UserID         uint       `gorm:"not null;uniqueIndex" json:"user_id"`
	FullName       string     `json:"full_name"`
	DateOfBirth    *time.Time `json:"date_of_birth,omitempty"`
	Gender         string     `json:"gender,omitempty"`
	NationalID     string     `gorm:"size:12" json:"national_id,omitempty"` // 12-digit Aadhaar
	TaxID          string     `gorm:"size:10" json:"tax_id,omitempty"`      // 10-char PAN
	Phone          string     `gorm:"size:10" json:"phone,omitempty"`
	AlternatePhone string     `gorm:"size:10" json:"alternate_phone,omitempty"`
}

// AddressKind classifies an address entry.
type AddressKind string

const (
	AddressKindHome   AddressKind = "home"
	AddressKindOffice AddressKind = "office"
	AddressKindOther  AddressKind = "other"
)

// Address is a postal address belonging to a user. A user may have several.
type Address struct {
	Base
	UserID  uint        `gorm:"not null;index" json:"user_id"`
	Kind    AddressKind `gorm:"not null;default:'home'" json:"kind"`
	Line1   string      `gorm:"not null" json:"line1"`
	Line2   string      `json:"line2,omitempty"`
	City    string      `gorm:"not null" json:"city"`
	State   string      `gorm:"not null" json:"state"`
	Pincode string      `gorm:"size:6;not null" json:"pincode"`
}
