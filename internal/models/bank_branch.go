package models

// BankBranch is one entry of the IFSC directory used to resolve the
// derived bank/branch fields on bank assets.
type BankBranch struct {
	Base
	IFSC       string `gorm:"size:11;uniqueIndex;not null" json:"ifsc"`
	BankName   string `gorm:"not null" json:"bank_name"`
	BranchName string `gorm:"not null" json:"branch_name"`
	City       string `json:"city"`
	State      string `json:"state"`
}
