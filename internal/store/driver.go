// Package store contains the in-memory state containers for the Fleet Admin
// application. Each container is the single source of truth for one record
// collection: all mutation goes through its methods, all reads are synchronous
// and return defensive copies.
//
// The driver store follows a snapshot model: every successful mutation builds
// a fresh record slice (copy-on-write) and publishes it to subscribers, so a
// slice handed out earlier is never changed underneath its holder.
package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/pkordes/fleet-admin/internal/domain"
)

// DriverStore holds the driver record collection.
// It is safe for concurrent use; operations are linearized by an internal
// mutex, so each operation observes the snapshot published by the previous one.
type DriverStore struct {
	mu      sync.RWMutex
	drivers []domain.Driver
	lastErr error

	ids IDGenerator
	now func() time.Time

	subs    map[int]func([]domain.Driver)
	nextSub int
}

// Option customizes a DriverStore at construction time.
type Option func(*DriverStore)

// WithClock overrides the store's time source. Tests use this to make
// CreatedAt/UpdatedAt deterministic.
func WithClock(now func() time.Time) Option {
	return func(s *DriverStore) { s.now = now }
}

// WithSeed pre-populates the collection. Seed records are stored as given —
// ids, statuses, and timestamps are taken verbatim, unlike Add.
func WithSeed(drivers []domain.Driver) Option {
	return func(s *DriverStore) {
		s.drivers = make([]domain.Driver, 0, len(drivers))
		for _, d := range drivers {
			s.drivers = append(s.drivers, d.Clone())
		}
	}
}

// NewDriverStore constructs an empty DriverStore using the given id generator.
func NewDriverStore(ids IDGenerator, opts ...Option) *DriverStore {
	s := &DriverStore{
		ids:  ids,
		now:  time.Now,
		subs: make(map[int]func([]domain.Driver)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add creates a new driver from the draft and appends it to the collection.
// The store owns everything the draft cannot express: a fresh id, status
// inactive, onboarding pending, an empty document map, zeroed metadata, and
// both timestamps set to the current time.
// On an internal fault (duplicate generated id) the collection is unchanged
// and the error is surfaced both as the return value and via LastErr.
func (s *DriverStore) Add(draft domain.DriverDraft) (domain.Driver, error) {
	s.mu.Lock()

	id := s.ids.NextID()
	if s.indexLocked(id) >= 0 {
		err := fmt.Errorf("store.DriverStore.Add: id generator returned duplicate id %q", id)
		s.lastErr = err
		s.mu.Unlock()
		return domain.Driver{}, err
	}

	now := s.now()
	d := domain.Driver{
		ID:               id,
		Name:             draft.Name,
		Phone:            draft.Phone,
		Email:            draft.Email,
		LicenseNumber:    draft.LicenseNumber,
		VendorID:         draft.VendorID,
		Status:           domain.DriverStatusInactive,
		OnboardingStatus: domain.OnboardingPending,
		Documents:        map[domain.DocumentType]domain.Document{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	next := make([]domain.Driver, len(s.drivers), len(s.drivers)+1)
	copy(next, s.drivers)
	s.drivers = append(next, d)
	s.lastErr = nil

	snap, subs := s.publishLocked()
	s.mu.Unlock()
	notify(subs, snap)
	return d.Clone(), nil
}

// Update merges the patch over the driver with the given id and refreshes
// UpdatedAt. Nil patch fields leave the current value in place; all other
// records are untouched. Returns domain.ErrNotFound (wrapped) when no driver
// has that id, leaving the collection unchanged.
func (s *DriverStore) Update(id string, patch domain.DriverPatch) (domain.Driver, error) {
	return s.mutate("Update", id, func(d *domain.Driver) error {
		if patch.Name != nil {
			d.Name = *patch.Name
		}
		if patch.Phone != nil {
			d.Phone = *patch.Phone
		}
		if patch.Email != nil {
			d.Email = *patch.Email
		}
		if patch.LicenseNumber != nil {
			d.LicenseNumber = *patch.LicenseNumber
		}
		if patch.VendorID != nil {
			d.VendorID = *patch.VendorID
		}
		if patch.Status != nil {
			d.Status = *patch.Status
		}
		return nil
	})
}

// Delete removes the driver with the given id.
// Deleting an absent id is a silent no-op, not an error: nothing changes and
// subscribers are not notified.
func (s *DriverStore) Delete(id string) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}

	next := make([]domain.Driver, 0, len(s.drivers)-1)
	next = append(next, s.drivers[:i]...)
	next = append(next, s.drivers[i+1:]...)
	s.drivers = next
	s.lastErr = nil

	snap, subs := s.publishLocked()
	s.mu.Unlock()
	notify(subs, snap)
}

// Get returns the driver with the given id and true, or a zero Driver and
// false. It never mutates and never sets the error state.
func (s *DriverStore) Get(id string) (domain.Driver, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.drivers[i].Clone(), true
	}
	return domain.Driver{}, false
}

// UploadDocument attaches a document to the driver. The store generates the
// document id and forces its status to pending; the document is keyed by its
// declared type, replacing any prior document of that type. The driver's
// UpdatedAt is refreshed and its verification-complete flag recomputed.
// Returns domain.ErrNotFound (wrapped) for an unknown driver id.
func (s *DriverStore) UploadDocument(driverID string, draft domain.DocumentDraft) (domain.Document, error) {
	doc := domain.Document{
		Type:      draft.Type,
		Number:    draft.Number,
		IssuedAt:  draft.IssuedAt,
		ExpiresAt: draft.ExpiresAt,
		FileRef:   draft.FileRef,
		Status:    domain.DocumentStatusPending,
	}

	_, err := s.mutate("UploadDocument", driverID, func(d *domain.Driver) error {
		doc.ID = s.ids.NextID()
		if d.Documents == nil {
			d.Documents = map[domain.DocumentType]domain.Document{}
		}
		d.Documents[doc.Type] = doc
		d.Metadata.VerificationComplete = verificationComplete(d.Documents)
		return nil
	})
	if err != nil {
		return domain.Document{}, err
	}
	return doc, nil
}

// VerifyDocument records a review decision on one of the driver's documents.
//
// Documents are stored keyed by type but identified by id, so the lookup
// scans the driver's document map for a matching id rather than indexing by
// key. Returns domain.ErrNotFound (wrapped) when the driver or the document
// is absent. On success the document's status and comments are overlaid, the
// driver's UpdatedAt refreshed, and the verification-complete flag recomputed.
func (s *DriverStore) VerifyDocument(driverID, documentID string, status domain.DocumentStatus, comments string) (domain.Document, error) {
	var verified domain.Document

	_, err := s.mutate("VerifyDocument", driverID, func(d *domain.Driver) error {
		for t, doc := range d.Documents {
			if doc.ID != documentID {
				continue
			}
			doc.Status = status
			if comments != "" {
				doc.Comments = comments
			}
			d.Documents[t] = doc
			d.Metadata.VerificationComplete = verificationComplete(d.Documents)
			verified = doc
			return nil
		}
		return fmt.Errorf("document %q: %w", documentID, domain.ErrNotFound)
	})
	if err != nil {
		return domain.Document{}, err
	}
	return verified, nil
}

// AssignVehicle points the driver at the given vehicle id.
// The vehicle's existence is not checked and no exclusivity is enforced —
// two drivers may reference the same vehicle. The vehicle record itself is
// never touched.
func (s *DriverStore) AssignVehicle(driverID, vehicleID string) (domain.Driver, error) {
	return s.mutate("AssignVehicle", driverID, func(d *domain.Driver) error {
		d.VehicleID = vehicleID
		return nil
	})
}

// UnassignVehicle clears the driver's vehicle assignment.
func (s *DriverStore) UnassignVehicle(driverID string) (domain.Driver, error) {
	return s.mutate("UnassignVehicle", driverID, func(d *domain.Driver) error {
		d.VehicleID = ""
		return nil
	})
}

// UpdateOnboardingStatus sets the driver's onboarding stage.
// Transitions are unconstrained: any stage may be set from any other,
// including moving a completed driver back to pending.
func (s *DriverStore) UpdateOnboardingStatus(driverID string, status domain.OnboardingStatus) (domain.Driver, error) {
	return s.mutate("UpdateOnboardingStatus", driverID, func(d *domain.Driver) error {
		d.OnboardingStatus = status
		return nil
	})
}

// ---- queries ---------------------------------------------------------------

// ByVendor returns the drivers owned by the given vendor, in collection order.
func (s *DriverStore) ByVendor(vendorID string) []domain.Driver {
	return s.filter(func(d domain.Driver) bool { return d.VendorID == vendorID })
}

// Active returns the drivers whose status is active, in collection order.
func (s *DriverStore) Active() []domain.Driver {
	return s.filter(func(d domain.Driver) bool { return d.Status == domain.DriverStatusActive })
}

// PendingVerifications returns the drivers that have at least one document
// awaiting review, in collection order. A driver with no documents is never
// included.
func (s *DriverStore) PendingVerifications() []domain.Driver {
	return s.filter(func(d domain.Driver) bool {
		for _, doc := range d.Documents {
			if doc.Status == domain.DocumentStatusPending {
				return true
			}
		}
		return false
	})
}

// Snapshot returns a deep copy of the full collection in insertion order.
func (s *DriverStore) Snapshot() []domain.Driver {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.drivers)
}

// LastErr returns the error from the most recent mutating operation, or nil
// if it succeeded. This is the single observable error surface: it is always
// derived from the same value the operation returned to its caller.
func (s *DriverStore) LastErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Subscribe registers fn to be called with the new snapshot after every
// successful mutation. The returned cancel function removes the subscription.
// fn is invoked outside the store's lock, so it may call back into the store.
func (s *DriverStore) Subscribe(fn func([]domain.Driver)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// ---- internals -------------------------------------------------------------

// mutate locates the driver, applies fn to a private clone, refreshes
// UpdatedAt, and swaps in a new collection slice. On any failure the
// collection is left untouched and the error is recorded as the last error.
func (s *DriverStore) mutate(op, id string, fn func(*domain.Driver) error) (domain.Driver, error) {
	s.mu.Lock()

	i := s.indexLocked(id)
	if i < 0 {
		err := fmt.Errorf("store.DriverStore.%s: driver %q: %w", op, id, domain.ErrNotFound)
		s.lastErr = err
		s.mu.Unlock()
		return domain.Driver{}, err
	}

	d := s.drivers[i].Clone()
	if err := fn(&d); err != nil {
		err = fmt.Errorf("store.DriverStore.%s: %w", op, err)
		s.lastErr = err
		s.mu.Unlock()
		return domain.Driver{}, err
	}
	d.UpdatedAt = s.now()

	next := make([]domain.Driver, len(s.drivers))
	copy(next, s.drivers)
	next[i] = d
	s.drivers = next
	s.lastErr = nil

	snap, subs := s.publishLocked()
	s.mu.Unlock()
	notify(subs, snap)
	return d.Clone(), nil
}

// indexLocked returns the position of the driver with the given id, or -1.
// Callers must hold mu.
func (s *DriverStore) indexLocked(id string) int {
	for i, d := range s.drivers {
		if d.ID == id {
			return i
		}
	}
	return -1
}

// publishLocked captures the current snapshot and subscriber list so the
// caller can notify after releasing the lock. Callers must hold mu.
func (s *DriverStore) publishLocked() ([]domain.Driver, []func([]domain.Driver)) {
	subs := make([]func([]domain.Driver), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return cloneAll(s.drivers), subs
}

func (s *DriverStore) filter(keep func(domain.Driver) bool) []domain.Driver {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Driver
	for _, d := range s.drivers {
		if keep(d) {
			out = append(out, d.Clone())
		}
	}
	return out
}

func notify(subs []func([]domain.Driver), snap []domain.Driver) {
	for _, fn := range subs {
		fn(snap)
	}
}

func cloneAll(drivers []domain.Driver) []domain.Driver {
	out := make([]domain.Driver, 0, len(drivers))
	for _, d := range drivers {
		out = append(out, d.Clone())
	}
	return out
}

// verificationComplete reports whether every document is verified.
// A driver with no documents has not completed verification.
func verificationComplete(docs map[domain.DocumentType]domain.Document) bool {
	if len(docs) == 0 {
		return false
	}
	for _, doc := range docs {
		if doc.Status != domain.DocumentStatusVerified {
			return false
		}
	}
	return true
}
