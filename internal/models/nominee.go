package models

// NomineeAssignment links a family member to an asset with a percentage
// share. The shares of all assignments on one asset may never sum past 100,
// and a member appears on an asset at most once.
type NomineeAssignment struct {
	Base
	AssetID        uint `gorm:"not null;index" json:"asset_id"`
	FamilyMemberID uint `gorm:"not null;index" json:"family_member_id"`
	Percentage     int  `gorm:"not null" json:"percentage"`

	FamilyMember FamilyMember `gorm:"foreignKey:FamilyMemberID" json:"family_member"`
}
