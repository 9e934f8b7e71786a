package testutil_test

import (
	"testing"

	"heirloom/internal/errors"
	"heirloom/internal/models"
	"heirloom/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"users", "profiles", "addresses", "family_members", "assets", "nominee_assignments", "asset_documents", "bank_branches", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == 0 {
		t.Fatal("user should have a non-zero ID")
	}

	member := testutil.CreateTestFamilyMember(t, db, user.ID)
	if member.Relation != "spouse" {
		t.Errorf("expected relation spouse, got %s", member.Relation)
	}

	asset := testutil.CreateTestBankAsset(t, db, user.ID)
	if asset.Kind != models.AssetKindBankAccount {
		t.Errorf("expected bank_account kind, got %s", asset.Kind)
	}

	assignment := testutil.CreateTestNominee(t, db, asset.ID, member.ID, 40)
	if assignment.Percentage != 40 {
		t.Errorf("expected percentage 40, got %d", assignment.Percentage)
	}

	branch := testutil.CreateTestBankBranchWithIFSC(t, db, "HDFC0000001")
	if branch.IFSC != "HDFC0000001" {
		t.Errorf("expected IFSC HDFC0000001, got %s", branch.IFSC)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrAssetNotFound, "custom message")
	testutil.AssertAppError(t, err, "ASSET_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
