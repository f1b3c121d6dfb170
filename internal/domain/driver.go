// Package domain contains the core data types for the Fleet Admin application.
// This package has no dependencies on other internal packages and is imported
// by every other internal package (store, service, console).
package domain

import "time"

// DriverStatus is the operational lifecycle state of a driver.
// It is independent of OnboardingStatus: a driver can finish onboarding and
// still be inactive (e.g. on leave).
type DriverStatus string

const (
	DriverStatusActive    DriverStatus = "active"
	DriverStatusInactive  DriverStatus = "inactive"
	DriverStatusSuspended DriverStatus = "suspended"
)

// OnboardingStatus is the workflow stage of a driver's initial enrollment.
type OnboardingStatus string

const (
	OnboardingPending    OnboardingStatus = "pending"
	OnboardingInProgress OnboardingStatus = "in_progress"
	OnboardingCompleted  OnboardingStatus = "completed"
)

// Driver represents a fleet driver: identity and profile fields, compliance
// documents keyed by document type, vehicle assignment, and derived metadata.
// Driver is the top-level aggregate of the store; documents belong to a driver.
type Driver struct {
	ID            string `json:"id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	Phone         string `json:"phone" yaml:"phone"`
	Email         string `json:"email,omitempty" yaml:"email,omitempty"`
	LicenseNumber string `json:"license_number,omitempty" yaml:"license_number,omitempty"`
	VendorID      string `json:"vendor_id" yaml:"vendor_id"`

	Status           DriverStatus     `json:"status" yaml:"status"`
	OnboardingStatus OnboardingStatus `json:"onboarding_status" yaml:"onboarding_status"`

	// VehicleID is empty when no vehicle is assigned.
	// Assignment is one-directional: the vehicle record is not updated.
	VehicleID string `json:"vehicle_id,omitempty" yaml:"vehicle_id,omitempty"`

	// Documents is keyed by document type — uploading a document replaces any
	// prior document of the same type.
	Documents map[DocumentType]Document `json:"documents,omitempty" yaml:"documents,omitempty"`

	Metadata DriverMetadata `json:"metadata" yaml:"metadata"`

	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// DriverMetadata carries derived operational figures for a driver.
// All fields start at their zero values for a newly created driver.
type DriverMetadata struct {
	TotalTrips   int        `json:"total_trips" yaml:"total_trips"`
	Rating       float64    `json:"rating" yaml:"rating"`
	LastActiveAt *time.Time `json:"last_active_at,omitempty" yaml:"last_active_at,omitempty"`

	// VerificationComplete is true when the driver has at least one document
	// and every document is verified. Recomputed by the store on each
	// document status change, never set by callers.
	VerificationComplete bool `json:"verification_complete" yaml:"verification_complete"`
}

// DriverDraft is the caller-supplied input for creating a driver.
// It deliberately carries only the profile fields: id, timestamps, status,
// onboarding status, documents, and metadata are owned by the store and
// cannot be set at creation time.
type DriverDraft struct {
	Name          string
	Phone         string
	Email         string
	LicenseNumber string
	VendorID      string
}

// DriverPatch is a partial update for a driver's profile fields.
// Nil pointers mean "leave unchanged". Fields not listed here (status
// transitions, documents, assignment) have dedicated store operations.
type DriverPatch struct {
	Name          *string
	Phone         *string
	Email         *string
	LicenseNumber *string
	VendorID      *string
	Status        *DriverStatus
}

// Clone returns a deep copy of the driver, including its document map.
// The store relies on this to keep published snapshots free of aliasing.
func (d Driver) Clone() Driver {
	out := d
	if d.Documents != nil {
		out.Documents = make(map[DocumentType]Document, len(d.Documents))
		for t, doc := range d.Documents {
			out.Documents[t] = doc
		}
	}
	if d.Metadata.LastActiveAt != nil {
		t := *d.Metadata.LastActiveAt
		out.Metadata.LastActiveAt = &t
	}
	return out
}
