// Package testutil provides shared helpers for tests: a deterministic id
// generator, a fixed clock, and record fixtures. Keeping them here avoids
// each package growing its own slightly different copies.
package testutil

import (
	"fmt"
	"time"

	"github.com/pkordes/fleet-admin/internal/domain"
)

// SequentialIDs is a deterministic store.IDGenerator for tests.
// Generated ids are "d-1", "d-2", ... in call order.
type SequentialIDs struct {
	n int
}

// NextID returns the next sequential id.
func (g *SequentialIDs) NextID() string {
	g.n++
	return fmt.Sprintf("d-%d", g.n)
}

// FixedIDs is a store.IDGenerator that replays a scripted id sequence.
// Useful for forcing collisions. Panics when the script runs out, which in
// a test reads as "the code asked for more ids than the test planned for".
type FixedIDs struct {
	IDs []string
	i   int
}

// NextID returns the next scripted id.
func (g *FixedIDs) NextID() string {
	if g.i >= len(g.IDs) {
		panic("testutil.FixedIDs: id script exhausted")
	}
	id := g.IDs[g.i]
	g.i++
	return id
}

// Clock is a fixed time source for tests. Advance moves it forward so
// UpdatedAt refreshes become observable.
type Clock struct {
	t time.Time
}

// NewClock returns a Clock starting at the given instant.
func NewClock(t time.Time) *Clock {
	return &Clock{t: t}
}

// Now returns the clock's current instant. Pass this method as the store's
// clock: store.WithClock(clk.Now).
func (c *Clock) Now() time.Time {
	return c.t
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

// DriverDraftFixture returns a valid domain.DriverDraft with sensible
// defaults. Callers override individual fields after calling this function.
func DriverDraftFixture() domain.DriverDraft {
	return domain.DriverDraft{
		Name:          "Test Driver",
		Phone:         "+1-555-0000",
		Email:         "test.driver@example.com",
		LicenseNumber: "DL-000001",
		VendorID:      "vendor-1",
	}
}

// DocumentDraftFixture returns a valid license domain.DocumentDraft.
func DocumentDraftFixture() domain.DocumentDraft {
	return domain.DocumentDraft{
		Type:      domain.DocumentTypeLicense,
		Number:    "DL-000001",
		IssuedAt:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ExpiresAt: time.Date(2029, 1, 1, 0, 0, 0, 0, time.UTC),
		FileRef:   "uploads/test.pdf",
	}
}
