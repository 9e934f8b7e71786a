package services

import (
	"testing"
	"time"

	"heirloom/internal/models"
	"heirloom/internal/testutil"
)

func strptr(s string) *string { return &s }

func TestGetProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewProfileService(db)
	user := testutil.CreateTestUser(t, db)

	// The fixture user has no profile row; the first read creates one.
	profile, err := svc.GetProfile(user.ID)
	testutil.AssertNoError(t, err)
	if profile.UserID != user.ID {
		t.Errorf("expected profile for user %d, got %d", user.ID, profile.UserID)
	}

	again, err := svc.GetProfile(user.ID)
	testutil.AssertNoError(t, err)
	if again.ID != profile.ID {
		t.Error("repeated reads must return the same row")
	}
}

func TestUpdateProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewProfileService(db)
	user := testutil.CreateTestUser(t, db)

	dob := time.Date(1988, 2, 14, 0, 0, 0, 0, time.UTC)
	profile, err := svc.UpdateProfile(user.ID, ProfileFields{
		FullName:    strptr("Asha Rao"),
		DateOfBirth: &dob,
		Gender:      strptr("female"),
		TaxID:       strptr("ABCDE1234F"),
	})
	testutil.AssertNoError(t, err)
	if profile.FullName != "Asha Rao" || profile.Gender != "female" || profile.TaxID != "ABCDE1234F" {
		t.Errorf("unexpected profile after update: %+v", profile)
	}

	t.Run("partial update leaves the rest intact", func(t *testing.T) {
		updated, err := svc.UpdateProfile(user.ID, ProfileFields{Phone: strptr("9876543210")})
		testutil.AssertNoError(t, err)
		if updated.Phone != "9876543210" {
			t.Errorf("expected phone set, got %q", updated.Phone)
		}
		if updated.FullName != "Asha Rao" {
			t.Errorf("untouched fields must survive, got name %q", updated.FullName)
		}
	})
}

func TestAddresses(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewProfileService(db)
	user := testutil.CreateTestUser(t, db)

	address, err := svc.AddAddress(user.ID, AddressFields{
		Kind:    models.AddressKindOffice,
		Line1:   "14 MG Road",
		City:    "Bengaluru",
		State:   "Karnataka",
		Pincode: "560001",
	})
	testutil.AssertNoError(t, err)
	if address.Kind != models.AddressKindOffice {
		t.Errorf("expected office kind, got %s", address.Kind)
	}

	t.Run("kind defaults to home", func(t *testing.T) {
		fallback, err := svc.AddAddress(user.ID, AddressFields{Line1: "2 Lake View", City: "Pune", State: "Maharashtra", Pincode: "411001"})
		testutil.AssertNoError(t, err)
		if fallback.Kind != models.AddressKindHome {
			t.Errorf("expected home kind, got %s", fallback.Kind)
		}
	})

	t.Run("list is scoped to the owner", func(t *testing.T) {
		addresses, err := svc.GetAddresses(user.ID)
		testutil.AssertNoError(t, err)
		if len(addresses) != 2 {
			t.Errorf("expected 2 addresses, got %d", len(addresses))
		}

		other := testutil.CreateTestUser(t, db)
		addresses, err = svc.GetAddresses(other.ID)
		testutil.AssertNoError(t, err)
		if len(addresses) != 0 {
			t.Errorf("expected no addresses for the other user, got %d", len(addresses))
		}
	})

	t.Run("update", func(t *testing.T) {
		updated, err := svc.UpdateAddress(user.ID, address.ID, AddressFields{
			Kind:    models.AddressKindOther,
			Line1:   "14 MG Road",
			City:    "Bengaluru",
			State:   "Karnataka",
			Pincode: "560002",
		})
		testutil.AssertNoError(t, err)
		if updated.Kind != models.AddressKindOther || updated.Pincode != "560002" {
			t.Errorf("unexpected address after update: %+v", updated)
		}
	})

	t.Run("delete", func(t *testing.T) {
		testutil.AssertNoError(t, svc.DeleteAddress(user.ID, address.ID))
		err := svc.DeleteAddress(user.ID, address.ID)
		testutil.AssertAppError(t, err, "ADDRESS_NOT_FOUND")
	})
}
