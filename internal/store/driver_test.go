package store_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/fleet-admin/internal/domain"
	"github.com/pkordes/fleet-admin/internal/seed"
	"github.com/pkordes/fleet-admin/internal/store"
	"github.com/pkordes/fleet-admin/testutil"
)

// newTestStore returns an empty DriverStore with deterministic ids and a
// controllable clock starting at a fixed instant.
func newTestStore(t *testing.T, opts ...store.Option) (*store.DriverStore, *testutil.Clock) {
	t.Helper()
	clk := testutil.NewClock(time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC))
	opts = append([]store.Option{store.WithClock(clk.Now)}, opts...)
	return store.NewDriverStore(&testutil.SequentialIDs{}, opts...), clk
}

// seededStore returns a store pre-populated with the built-in sample drivers.
func seededStore(t *testing.T) (*store.DriverStore, *testutil.Clock) {
	t.Helper()
	clk := testutil.NewClock(time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC))
	s := store.NewDriverStore(&testutil.SequentialIDs{},
		store.WithClock(clk.Now),
		store.WithSeed(seed.Default().Drivers))
	return s, clk
}

// ---- Add tests -------------------------------------------------------------

func TestDriverStore_Add_Defaults(t *testing.T) {
	s, clk := newTestStore(t)

	got, err := s.Add(testutil.DriverDraftFixture())

	require.NoError(t, err)
	assert.Equal(t, "d-1", got.ID)
	assert.Equal(t, "Test Driver", got.Name)
	assert.Equal(t, domain.DriverStatusInactive, got.Status, "new drivers always start inactive")
	assert.Equal(t, domain.OnboardingPending, got.OnboardingStatus, "onboarding always starts pending")
	assert.Empty(t, got.Documents, "document map starts empty")
	assert.Zero(t, got.Metadata, "metadata starts zeroed")
	assert.Equal(t, clk.Now(), got.CreatedAt)
	assert.Equal(t, clk.Now(), got.UpdatedAt)
}

func TestDriverStore_Add_UniqueIDs(t *testing.T) {
	s, _ := newTestStore(t)

	first, err := s.Add(testutil.DriverDraftFixture())
	require.NoError(t, err)
	second, err := s.Add(testutil.DriverDraftFixture())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, s.Snapshot(), 2)
}

func TestDriverStore_Add_DuplicateID(t *testing.T) {
	// A generator that repeats an id simulates an internal fault: the error
	// must surface to the caller, be visible via LastErr, and leave the
	// collection unchanged.
	clk := testutil.NewClock(time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC))
	s := store.NewDriverStore(&testutil.FixedIDs{IDs: []string{"dup", "dup"}}, store.WithClock(clk.Now))

	_, err := s.Add(testutil.DriverDraftFixture())
	require.NoError(t, err)
	before := s.Snapshot()

	_, err = s.Add(testutil.DriverDraftFixture())

	require.Error(t, err)
	assert.ErrorContains(t, err, "dup")
	assert.Equal(t, before, s.Snapshot(), "failed add must not change the collection")
	assert.Equal(t, err, s.LastErr())
}

// ---- Update tests ----------------------------------------------------------

func TestDriverStore_Update_PatchesOnlyGivenFields(t *testing.T) {
	s, clk := newTestStore(t)
	created, err := s.Add(testutil.DriverDraftFixture())
	require.NoError(t, err)

	clk.Advance(time.Minute)
	name := "X"
	got, err := s.Update(created.ID, domain.DriverPatch{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, "X", got.Name)
	assert.Equal(t, clk.Now(), got.UpdatedAt, "UpdatedAt must refresh on every mutation")

	// Every other field is unchanged.
	want := created
	want.Name = "X"
	want.UpdatedAt = got.UpdatedAt
	assert.Equal(t, want, got)
}

func TestDriverStore_Update_NotFound(t *testing.T) {
	s, _ := seededStore(t)
	before := s.Snapshot()

	_, err := s.Update("no-such-id", domain.DriverPatch{})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, before, s.Snapshot(), "failed update must not change the collection")
	assert.ErrorIs(t, s.LastErr(), domain.ErrNotFound)
}

func TestDriverStore_Update_OtherRecordsUntouched(t *testing.T) {
	s, _ := seededStore(t)
	before := s.Snapshot()

	name := "Renamed"
	_, err := s.Update("2", domain.DriverPatch{Name: &name})
	require.NoError(t, err)

	after := s.Snapshot()
	require.Len(t, after, len(before))
	for i := range before {
		if before[i].ID == "2" {
			continue
		}
		assert.Equal(t, before[i], after[i], "driver %s must be untouched", before[i].ID)
	}
}

// ---- Delete tests ----------------------------------------------------------

func TestDriverStore_Delete(t *testing.T) {
	s, _ := seededStore(t)

	s.Delete("2")

	_, ok := s.Get("2")
	assert.False(t, ok)
	assert.Len(t, s.Snapshot(), 2)
}

func TestDriverStore_Delete_AbsentIsNoop(t *testing.T) {
	s, _ := seededStore(t)
	before := s.Snapshot()

	notified := false
	cancel := s.Subscribe(func([]domain.Driver) { notified = true })
	defer cancel()

	s.Delete("no-such-id")

	assert.Equal(t, before, s.Snapshot())
	assert.NoError(t, s.LastErr())
	assert.False(t, notified, "a no-op delete must not publish a snapshot")
}

// ---- Get tests -------------------------------------------------------------

func TestDriverStore_Get(t *testing.T) {
	s, _ := seededStore(t)

	got, ok := s.Get("1")

	require.True(t, ok)
	assert.Equal(t, "John Doe", got.Name)

	_, ok = s.Get("no-such-id")
	assert.False(t, ok)
	assert.NoError(t, s.LastErr(), "Get never sets the error state")
}

// ---- Document tests --------------------------------------------------------

func TestDriverStore_UploadDocument(t *testing.T) {
	s, clk := newTestStore(t)
	created, err := s.Add(testutil.DriverDraftFixture())
	require.NoError(t, err)

	clk.Advance(time.Minute)
	doc, err := s.UploadDocument(created.ID, testutil.DocumentDraftFixture())

	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, domain.DocumentStatusPending, doc.Status, "uploads always start pending")

	got, ok := s.Get(created.ID)
	require.True(t, ok)
	require.Len(t, got.Documents, 1)
	assert.Equal(t, doc, got.Documents[domain.DocumentTypeLicense], "document is keyed by its type")
	assert.Equal(t, clk.Now(), got.UpdatedAt)
}

func TestDriverStore_UploadDocument_ReplacesSameType(t *testing.T) {
	s, _ := newTestStore(t)
	created, err := s.Add(testutil.DriverDraftFixture())
	require.NoError(t, err)

	first, err := s.UploadDocument(created.ID, testutil.DocumentDraftFixture())
	require.NoError(t, err)

	draft := testutil.DocumentDraftFixture()
	draft.Number = "DL-999999"
	second, err := s.UploadDocument(created.ID, draft)
	require.NoError(t, err)

	got, _ := s.Get(created.ID)
	require.Len(t, got.Documents, 1, "same-type upload replaces, never accumulates")
	assert.Equal(t, second.ID, got.Documents[domain.DocumentTypeLicense].ID)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestDriverStore_UploadDocument_UnknownDriver(t *testing.T) {
	s, _ := seededStore(t)
	before := s.Snapshot()

	_, err := s.UploadDocument("no-such-id", testutil.DocumentDraftFixture())

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, before, s.Snapshot())
}

func TestDriverStore_VerifyDocument_LookupByID(t *testing.T) {
	// Documents are stored keyed by type but addressed by id: verification
	// must find the right document regardless of which type key it sits under.
	s, _ := newTestStore(t)
	created, err := s.Add(testutil.DriverDraftFixture())
	require.NoError(t, err)

	_, err = s.UploadDocument(created.ID, testutil.DocumentDraftFixture())
	require.NoError(t, err)

	permit := testutil.DocumentDraftFixture()
	permit.Type = domain.DocumentTypePermit
	permitDoc, err := s.UploadDocument(created.ID, permit)
	require.NoError(t, err)

	got, err := s.VerifyDocument(created.ID, permitDoc.ID, domain.DocumentStatusVerified, "all good")

	require.NoError(t, err)
	assert.Equal(t, domain.DocumentStatusVerified, got.Status)
	assert.Equal(t, "all good", got.Comments)

	stored, _ := s.Get(created.ID)
	assert.Equal(t, domain.DocumentStatusVerified, stored.Documents[domain.DocumentTypePermit].Status)
	assert.Equal(t, domain.DocumentStatusPending, stored.Documents[domain.DocumentTypeLicense].Status,
		"the other document is untouched")
}

func TestDriverStore_VerifyDocument_UnknownDocument(t *testing.T) {
	s, _ := seededStore(t)

	_, err := s.VerifyDocument("1", "no-such-doc", domain.DocumentStatusVerified, "")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDriverStore_VerifyDocument_RecomputesVerificationComplete(t *testing.T) {
	s, _ := newTestStore(t)
	created, err := s.Add(testutil.DriverDraftFixture())
	require.NoError(t, err)

	doc, err := s.UploadDocument(created.ID, testutil.DocumentDraftFixture())
	require.NoError(t, err)

	got, _ := s.Get(created.ID)
	assert.False(t, got.Metadata.VerificationComplete)

	_, err = s.VerifyDocument(created.ID, doc.ID, domain.DocumentStatusVerified, "")
	require.NoError(t, err)

	got, _ = s.Get(created.ID)
	assert.True(t, got.Metadata.VerificationComplete, "all documents verified")

	// A fresh pending upload flips it back off.
	permit := testutil.DocumentDraftFixture()
	permit.Type = domain.DocumentTypePermit
	_, err = s.UploadDocument(created.ID, permit)
	require.NoError(t, err)

	got, _ = s.Get(created.ID)
	assert.False(t, got.Metadata.VerificationComplete)
}

// ---- Query tests -----------------------------------------------------------

func TestDriverStore_ByVendor(t *testing.T) {
	s, _ := seededStore(t)

	got := s.ByVendor("vendor-1")

	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID, "relative collection order is preserved")
	assert.Equal(t, "2", got[1].ID)

	assert.Empty(t, s.ByVendor("no-such-vendor"))
}

func TestDriverStore_Active(t *testing.T) {
	s, _ := seededStore(t)

	got := s.Active()

	require.Len(t, got, 1)
	assert.Equal(t, "John Doe", got[0].Name)
}

func TestDriverStore_PendingVerifications(t *testing.T) {
	s, _ := seededStore(t)

	got := s.PendingVerifications()

	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID, "only drivers with a pending document qualify")

	// A new driver has zero documents and must not appear.
	created, err := s.Add(testutil.DriverDraftFixture())
	require.NoError(t, err)
	for _, d := range s.PendingVerifications() {
		assert.NotEqual(t, created.ID, d.ID)
	}
}

// ---- Assignment and onboarding ---------------------------------------------

// TestDriverStore_SeededLifecycle walks the end-to-end scenario over the
// built-in samples: assign a vehicle to John Doe, unassign it, then move his
// onboarding back to pending — which succeeds, because stage transitions are
// deliberately unconstrained.
func TestDriverStore_SeededLifecycle(t *testing.T) {
	s, _ := seededStore(t)

	john, ok := s.Get("1")
	require.True(t, ok)
	require.Equal(t, domain.DriverStatusActive, john.Status)
	require.Len(t, john.Documents, 2)
	for _, doc := range john.Documents {
		require.Equal(t, domain.DocumentStatusVerified, doc.Status)
	}

	_, err := s.AssignVehicle("1", "V9")
	require.NoError(t, err)
	got, _ := s.Get("1")
	assert.Equal(t, "V9", got.VehicleID, "assignment does not check vehicle existence")

	_, err = s.UnassignVehicle("1")
	require.NoError(t, err)
	got, _ = s.Get("1")
	assert.Empty(t, got.VehicleID)

	_, err = s.UpdateOnboardingStatus("1", domain.OnboardingPending)
	require.NoError(t, err)
	got, _ = s.Get("1")
	assert.Equal(t, domain.OnboardingPending, got.OnboardingStatus)
}

func TestDriverStore_AssignVehicle_NoExclusivity(t *testing.T) {
	s, _ := seededStore(t)

	_, err := s.AssignVehicle("1", "V2")
	require.NoError(t, err)
	_, err = s.AssignVehicle("2", "V2")
	require.NoError(t, err)

	a, _ := s.Get("1")
	b, _ := s.Get("2")
	assert.Equal(t, a.VehicleID, b.VehicleID, "two drivers may reference the same vehicle")
}

func TestDriverStore_AssignVehicle_NotFound(t *testing.T) {
	s, _ := seededStore(t)

	_, err := s.AssignVehicle("no-such-id", "V1")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- Snapshot and subscription ---------------------------------------------

func TestDriverStore_Snapshot_NoAliasing(t *testing.T) {
	s, _ := seededStore(t)

	snap := s.Snapshot()
	snap[0].Name = "Mutated"
	snap[0].Documents[domain.DocumentTypeLicense] = domain.Document{ID: "forged"}

	got, _ := s.Get("1")
	assert.Equal(t, "John Doe", got.Name, "mutating a snapshot must not leak into the store")
	assert.Equal(t, "doc-1", got.Documents[domain.DocumentTypeLicense].ID)
}

func TestDriverStore_Subscribe(t *testing.T) {
	s, _ := newTestStore(t)

	var published [][]domain.Driver
	cancel := s.Subscribe(func(snap []domain.Driver) {
		published = append(published, snap)
	})

	created, err := s.Add(testutil.DriverDraftFixture())
	require.NoError(t, err)

	require.Len(t, published, 1, "every successful mutation publishes one snapshot")
	require.Len(t, published[0], 1)
	assert.Equal(t, created.ID, published[0][0].ID)

	// Failed mutations publish nothing.
	_, err = s.Update("no-such-id", domain.DriverPatch{})
	require.Error(t, err)
	assert.Len(t, published, 1)

	// After cancel, no further notifications.
	cancel()
	_, err = s.Add(testutil.DriverDraftFixture())
	require.NoError(t, err)
	assert.Len(t, published, 1)
}

func TestDriverStore_LastErr_ClearedOnSuccess(t *testing.T) {
	s, _ := seededStore(t)

	_, err := s.Update("no-such-id", domain.DriverPatch{})
	require.Error(t, err)
	require.Error(t, s.LastErr())

	_, err = s.AssignVehicle("1", "V1")
	require.NoError(t, err)
	assert.NoError(t, s.LastErr(), "a successful mutation clears the last error")
}
