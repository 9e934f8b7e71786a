package wizard

import (
	"testing"
	"time"

	"heirloom/internal/models"
	"heirloom/internal/testutil"
)

func TestOpenStartsAtEntityDetails(t *testing.T) {
	store := NewStore(0)
	sess := store.Open(1, models.AssetKindBankAccount)

	if sess.Step != StepEntityDetails {
		t.Errorf("expected step %s, got %s", StepEntityDetails, sess.Step)
	}
	if sess.Kind != models.AssetKindBankAccount {
		t.Errorf("expected kind bank_account, got %s", sess.Kind)
	}
	if sess.ID == "" {
		t.Error("expected a session ID")
	}
	if sess.AssetID != 0 {
		t.Errorf("expected no bound asset, got %d", sess.AssetID)
	}
}

func TestGetScopedToOwner(t *testing.T) {
	store := NewStore(0)
	sess := store.Open(1, models.AssetKindLoan)

	if _, err := store.Get(1, sess.ID); err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}

	_, err := store.Get(2, sess.ID)
	testutil.AssertAppError(t, err, "WIZARD_NOT_FOUND")
}

func TestBindAssetAdvancesToNominees(t *testing.T) {
	store := NewStore(0)
	sess := store.Open(1, models.AssetKindBankAccount)

	bound, err := store.BindAsset(1, sess.ID, 42)
	testutil.AssertNoError(t, err)

	if bound.Step != StepNominees {
		t.Errorf("expected step %s, got %s", StepNominees, bound.Step)
	}
	if bound.AssetID != 42 {
		t.Errorf("expected asset ID 42, got %d", bound.AssetID)
	}

	// A second bind is a step violation; the flow is past entity details.
	_, err = store.BindAsset(1, sess.ID, 43)
	testutil.AssertAppError(t, err, "WIZARD_STEP")
}

// Only one step-one mutation may be in flight per session: a rival
// submission is rejected while the reservation is held and again once the
// session has advanced, so it never reaches the entity create.
func TestBeginSubmitSerializesStepOne(t *testing.T) {
	store := NewStore(0)
	sess := store.Open(1, models.AssetKindBankAccount)

	if _, err := store.BeginSubmit(1, sess.ID); err != nil {
		t.Fatalf("first reservation failed: %v", err)
	}

	_, err := store.BeginSubmit(1, sess.ID)
	testutil.AssertAppError(t, err, "WIZARD_STEP")

	// After release the step is free to submit again.
	store.EndSubmit(1, sess.ID)
	if _, err := store.BeginSubmit(1, sess.ID); err != nil {
		t.Fatalf("reservation after release failed: %v", err)
	}

	// Binding advances past entity details; the release that follows must
	// not reopen the step.
	if _, err := store.BindAsset(1, sess.ID, 4); err != nil {
		t.Fatal(err)
	}
	store.EndSubmit(1, sess.ID)
	_, err = store.BeginSubmit(1, sess.ID)
	testutil.AssertAppError(t, err, "WIZARD_STEP")
}

func TestAdvanceWithoutAssetRejected(t *testing.T) {
	store := NewStore(0)
	sess := store.Open(1, models.AssetKindDeposit)

	_, err := store.Advance(1, sess.ID)
	testutil.AssertAppError(t, err, "WIZARD_STEP")
}

func TestSkipThroughOptionalSteps(t *testing.T) {
	store := NewStore(0)
	sess := store.Open(1, models.AssetKindBankAccount)
	if _, err := store.BindAsset(1, sess.ID, 7); err != nil {
		t.Fatal(err)
	}

	// Skip the nominee step.
	after, err := store.Skip(1, sess.ID)
	testutil.AssertNoError(t, err)
	if after.Step != StepDocument {
		t.Errorf("expected step %s, got %s", StepDocument, after.Step)
	}

	// Skip the document step; the flow closes and the session is gone.
	closed, err := store.Skip(1, sess.ID)
	testutil.AssertNoError(t, err)
	if closed.Step != StepClosed {
		t.Errorf("expected step %s, got %s", StepClosed, closed.Step)
	}
	if closed.AssetID != 7 {
		t.Errorf("closing snapshot should keep the asset ID, got %d", closed.AssetID)
	}

	_, err = store.Get(1, sess.ID)
	testutil.AssertAppError(t, err, "WIZARD_NOT_FOUND")
}

// Skipping an already-departed step has no further effect: once the session
// is closed, repeating the skip is a clean not-found, never a second
// mutation.
func TestSkipIdempotentAfterClose(t *testing.T) {
	store := NewStore(0)
	sess := store.Open(1, models.AssetKindStock)
	if _, err := store.BindAsset(1, sess.ID, 3); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Skip(1, sess.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Skip(1, sess.ID); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		_, err := store.Skip(1, sess.ID)
		testutil.AssertAppError(t, err, "WIZARD_NOT_FOUND")
	}
	if store.Len() != 0 {
		t.Errorf("expected no live sessions, got %d", store.Len())
	}
}

func TestBackReentersPreviousStep(t *testing.T) {
	store := NewStore(0)
	sess := store.Open(1, models.AssetKindBankAccount)
	if _, err := store.BindAsset(1, sess.ID, 9); err != nil {
		t.Fatal(err)
	}

	back, err := store.Back(1, sess.ID)
	testutil.AssertNoError(t, err)
	if back.Step != StepEntityDetails {
		t.Errorf("expected step %s, got %s", StepEntityDetails, back.Step)
	}
	if back.AssetID != 9 {
		t.Error("going back must not discard the bound asset")
	}

	// From the first step there is nothing to go back to.
	_, err = store.Back(1, sess.ID)
	testutil.AssertAppError(t, err, "WIZARD_STEP")
}

func TestCancelFromAnyStep(t *testing.T) {
	store := NewStore(0)

	fresh := store.Open(1, models.AssetKindRecord)
	closed, err := store.Cancel(1, fresh.ID)
	testutil.AssertNoError(t, err)
	if closed.Step != StepClosed {
		t.Errorf("expected step %s, got %s", StepClosed, closed.Step)
	}

	mid := store.Open(1, models.AssetKindRecord)
	if _, err := store.BindAsset(1, mid.ID, 5); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Cancel(1, mid.ID); err != nil {
		t.Fatal(err)
	}

	if store.Len() != 0 {
		t.Errorf("expected no live sessions, got %d", store.Len())
	}
}

func TestExpiredSessionsPurged(t *testing.T) {
	store := NewStore(10 * time.Minute)
	current := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	sess := store.Open(1, models.AssetKindBankAccount)

	current = current.Add(9 * time.Minute)
	if _, err := store.Get(1, sess.ID); err != nil {
		t.Fatalf("session should still be live: %v", err)
	}

	// Access refreshes nothing on Get; only mutations touch UpdatedAt.
	current = current.Add(2 * time.Minute)
	_, err := store.Get(1, sess.ID)
	testutil.AssertAppError(t, err, "WIZARD_NOT_FOUND")
	if store.Len() != 0 {
		t.Errorf("expected expired session to be purged, got %d live", store.Len())
	}
}

func TestMutationRefreshesTTL(t *testing.T) {
	store := NewStore(10 * time.Minute)
	current := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	sess := store.Open(1, models.AssetKindBankAccount)

	current = current.Add(8 * time.Minute)
	if _, err := store.BindAsset(1, sess.ID, 2); err != nil {
		t.Fatal(err)
	}

	// 8 more minutes is within the TTL counted from the bind.
	current = current.Add(8 * time.Minute)
	got, err := store.Get(1, sess.ID)
	testutil.AssertNoError(t, err)
	if got.Step != StepNominees {
		t.Errorf("expected step %s, got %s", StepNominees, got.Step)
	}
}
