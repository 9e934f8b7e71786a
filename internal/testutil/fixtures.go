package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"heirloom/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestFamilyMember creates a family member for the given user.
func CreateTestFamilyMember(t *testing.T, db *gorm.DB, userID uint) *models.FamilyMember {
	t.Helper()

	member := &models.FamilyMember{
		UserID:   userID,
		FullName: fmt.Sprintf("Test Member %d", nextID()),
		Relation: "spouse",
	}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("failed to create test family member: %v", err)
	}
	return member
}

// CreateTestBankBranch creates an IFSC directory entry with a unique code.
func CreateTestBankBranch(t *testing.T, db *gorm.DB) *models.BankBranch {
	t.Helper()
	ifsc := fmt.Sprintf("TEST0%06d", nextID())
	return CreateTestBankBranchWithIFSC(t, db, ifsc)
}

// CreateTestBankBranchWithIFSC creates an IFSC directory entry with the given code.
func CreateTestBankBranchWithIFSC(t *testing.T, db *gorm.DB, ifsc string) *models.BankBranch {
	t.Helper()

	branch := &models.BankBranch{
		IFSC:       ifsc,
		BankName:   "Test Bank",
		BranchName: "Test Branch",
		City:       "Mumbai",
		State:      "Maharashtra",
	}
	if err := db.Create(branch).Error; err != nil {
		t.Fatalf("failed to create test bank branch: %v", err)
	}
	return branch
}

// CreateTestBankAsset creates a bank account asset with valid fields.
func CreateTestBankAsset(t *testing.T, db *gorm.DB, userID uint) *models.Asset {
	t.Helper()

	n := nextID()
	asset := &models.Asset{
		UserID:            userID,
		Kind:              models.AssetKindBankAccount,
		Title:             fmt.Sprintf("Test Bank Account %d", n),
		AccountHolderName: "Asha Rao",
		AccountNumber:     fmt.Sprintf("1000%06d", n),
		IFSCCode:          "HDFC0000001",
		AccountType:       "Savings",
		AccountBalance:    500000, // 5000 rupees in paise
	}
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("failed to create test bank asset: %v", err)
	}
	return asset
}

// CreateTestRecordAsset creates a standalone record asset.
func CreateTestRecordAsset(t *testing.T, db *gorm.DB, userID uint) *models.Asset {
	t.Helper()

	issued := time.Now().AddDate(-1, 0, 0)
	asset := &models.Asset{
		UserID:     userID,
		Kind:       models.AssetKindRecord,
		Title:      fmt.Sprintf("Test Record %d", nextID()),
		RecordType: "will",
		IssueDate:  &issued,
	}
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("failed to create test record asset: %v", err)
	}
	return asset
}

// CreateTestNominee assigns a family member to an asset with the given share.
func CreateTestNominee(t *testing.T, db *gorm.DB, assetID, memberID uint, percentage int) *models.NomineeAssignment {
	t.Helper()

	assignment := &models.NomineeAssignment{
		AssetID:        assetID,
		FamilyMemberID: memberID,
		Percentage:     percentage,
	}
	if err := db.Create(assignment).Error; err != nil {
		t.Fatalf("failed to create test nominee assignment: %v", err)
	}
	return assignment
}
