// Package service contains the business logic for the Fleet Admin application.
// Services validate inputs, enforce business rules, and orchestrate store
// calls. No state lives here — services depend on store interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pkordes/fleet-admin/internal/domain"
)

// DriverStore defines the state-container operations the driver service
// depends on. Defining the interface here (in the consumer package) follows
// the Go convention: "accept interfaces, return concrete types". It lets
// service tests inject a mock without constructing a real store.
type DriverStore interface {
	Add(draft domain.DriverDraft) (domain.Driver, error)
	Update(id string, patch domain.DriverPatch) (domain.Driver, error)
	Delete(id string)
	Get(id string) (domain.Driver, bool)
	UploadDocument(driverID string, draft domain.DocumentDraft) (domain.Document, error)
	VerifyDocument(driverID, documentID string, status domain.DocumentStatus, comments string) (domain.Document, error)
	AssignVehicle(driverID, vehicleID string) (domain.Driver, error)
	UnassignVehicle(driverID string) (domain.Driver, error)
	UpdateOnboardingStatus(driverID string, status domain.OnboardingStatus) (domain.Driver, error)
	ByVendor(vendorID string) []domain.Driver
	Active() []domain.Driver
	PendingVerifications() []domain.Driver
	Snapshot() []domain.Driver
}

// DriverService implements business logic for driver operations.
type DriverService struct {
	store DriverStore
	log   *zap.Logger
}

// NewDriverService constructs a DriverService backed by the provided store.
func NewDriverService(store DriverStore, log *zap.Logger) *DriverService {
	return &DriverService{store: store, log: log}
}

// Add validates the draft and creates a new driver.
// Name, phone, and vendor id are required; everything else about a new
// driver (id, statuses, documents, metadata, timestamps) is owned by the
// store.
func (s *DriverService) Add(ctx context.Context, draft domain.DriverDraft) (domain.Driver, error) {
	if err := validateDraft(draft); err != nil {
		return domain.Driver{}, fmt.Errorf("service.DriverService.Add: %w", err)
	}

	d, err := s.store.Add(draft)
	if err != nil {
		s.log.Error("add driver failed", zap.String("name", draft.Name), zap.Error(err))
		return domain.Driver{}, fmt.Errorf("service.DriverService.Add: %w", err)
	}

	s.log.Info("driver created",
		zap.String("driver_id", d.ID),
		zap.String("name", d.Name),
		zap.String("vendor_id", d.VendorID))
	return d, nil
}

// Update applies a partial profile update to an existing driver.
func (s *DriverService) Update(ctx context.Context, id string, patch domain.DriverPatch) (domain.Driver, error) {
	if patch.Name != nil && *patch.Name == "" {
		return domain.Driver{}, fmt.Errorf("service.DriverService.Update: %w: name cannot be empty", domain.ErrValidation)
	}
	if patch.Status != nil && !validDriverStatus(*patch.Status) {
		return domain.Driver{}, fmt.Errorf("service.DriverService.Update: %w: unknown status %q", domain.ErrValidation, *patch.Status)
	}

	d, err := s.store.Update(id, patch)
	if err != nil {
		s.log.Error("update driver failed", zap.String("driver_id", id), zap.Error(err))
		return domain.Driver{}, fmt.Errorf("service.DriverService.Update: %w", err)
	}

	s.log.Info("driver updated", zap.String("driver_id", d.ID))
	return d, nil
}

// Delete removes a driver. Deleting an unknown id is a no-op, mirroring the
// store contract.
func (s *DriverService) Delete(ctx context.Context, id string) {
	s.store.Delete(id)
	s.log.Info("driver deleted", zap.String("driver_id", id))
}

// Get returns the driver with the given id, or domain.ErrNotFound.
func (s *DriverService) Get(ctx context.Context, id string) (domain.Driver, error) {
	d, ok := s.store.Get(id)
	if !ok {
		return domain.Driver{}, fmt.Errorf("service.DriverService.Get: driver %q: %w", id, domain.ErrNotFound)
	}
	return d, nil
}

// UploadDocument validates and attaches a compliance document to a driver.
// The document starts pending regardless of what the caller supplies.
func (s *DriverService) UploadDocument(ctx context.Context, driverID string, draft domain.DocumentDraft) (domain.Document, error) {
	if err := validateDocumentDraft(draft); err != nil {
		return domain.Document{}, fmt.Errorf("service.DriverService.UploadDocument: %w", err)
	}

	doc, err := s.store.UploadDocument(driverID, draft)
	if err != nil {
		s.log.Error("upload document failed",
			zap.String("driver_id", driverID),
			zap.String("type", string(draft.Type)),
			zap.Error(err))
		return domain.Document{}, fmt.Errorf("service.DriverService.UploadDocument: %w", err)
	}

	s.log.Info("document uploaded",
		zap.String("driver_id", driverID),
		zap.String("document_id", doc.ID),
		zap.String("type", string(doc.Type)))
	return doc, nil
}

// VerifyDocument records a review decision. Only verified and rejected are
// legal decisions — a reviewer cannot move a document back to pending.
func (s *DriverService) VerifyDocument(ctx context.Context, driverID, documentID string, status domain.DocumentStatus, comments string) (domain.Document, error) {
	if status != domain.DocumentStatusVerified && status != domain.DocumentStatusRejected {
		return domain.Document{}, fmt.Errorf("service.DriverService.VerifyDocument: %w: invalid decision %q", domain.ErrValidation, status)
	}

	doc, err := s.store.VerifyDocument(driverID, documentID, status, comments)
	if err != nil {
		s.log.Error("verify document failed",
			zap.String("driver_id", driverID),
			zap.String("document_id", documentID),
			zap.Error(err))
		return domain.Document{}, fmt.Errorf("service.DriverService.VerifyDocument: %w", err)
	}

	s.log.Info("document reviewed",
		zap.String("driver_id", driverID),
		zap.String("document_id", documentID),
		zap.String("status", string(status)))
	return doc, nil
}

// AssignVehicle points a driver at a vehicle. The vehicle side is not
// checked: assignment is one-directional state on the driver record.
func (s *DriverService) AssignVehicle(ctx context.Context, driverID, vehicleID string) (domain.Driver, error) {
	if vehicleID == "" {
		return domain.Driver{}, fmt.Errorf("service.DriverService.AssignVehicle: %w: vehicle id is required", domain.ErrValidation)
	}

	d, err := s.store.AssignVehicle(driverID, vehicleID)
	if err != nil {
		s.log.Error("assign vehicle failed",
			zap.String("driver_id", driverID),
			zap.String("vehicle_id", vehicleID),
			zap.Error(err))
		return domain.Driver{}, fmt.Errorf("service.DriverService.AssignVehicle: %w", err)
	}

	s.log.Info("vehicle assigned",
		zap.String("driver_id", driverID),
		zap.String("vehicle_id", vehicleID))
	return d, nil
}

// UnassignVehicle clears a driver's vehicle assignment.
func (s *DriverService) UnassignVehicle(ctx context.Context, driverID string) (domain.Driver, error) {
	d, err := s.store.UnassignVehicle(driverID)
	if err != nil {
		s.log.Error("unassign vehicle failed", zap.String("driver_id", driverID), zap.Error(err))
		return domain.Driver{}, fmt.Errorf("service.DriverService.UnassignVehicle: %w", err)
	}

	s.log.Info("vehicle unassigned", zap.String("driver_id", driverID))
	return d, nil
}

// UpdateOnboardingStatus moves a driver to the given onboarding stage.
// Stage values are validated but transitions are not constrained: any stage
// is reachable from any other.
func (s *DriverService) UpdateOnboardingStatus(ctx context.Context, driverID string, status domain.OnboardingStatus) (domain.Driver, error) {
	if !validOnboardingStatus(status) {
		return domain.Driver{}, fmt.Errorf("service.DriverService.UpdateOnboardingStatus: %w: unknown stage %q", domain.ErrValidation, status)
	}

	d, err := s.store.UpdateOnboardingStatus(driverID, status)
	if err != nil {
		s.log.Error("update onboarding failed", zap.String("driver_id", driverID), zap.Error(err))
		return domain.Driver{}, fmt.Errorf("service.DriverService.UpdateOnboardingStatus: %w", err)
	}

	s.log.Info("onboarding updated",
		zap.String("driver_id", driverID),
		zap.String("status", string(status)))
	return d, nil
}

// ---- queries ---------------------------------------------------------------

// List returns the full driver collection.
func (s *DriverService) List(ctx context.Context) []domain.Driver {
	return s.store.Snapshot()
}

// ByVendor returns the drivers owned by the given vendor.
func (s *DriverService) ByVendor(ctx context.Context, vendorID string) []domain.Driver {
	return s.store.ByVendor(vendorID)
}

// Active returns the drivers whose status is active.
func (s *DriverService) Active(ctx context.Context) []domain.Driver {
	return s.store.Active()
}

// PendingVerifications returns the drivers with at least one pending document.
func (s *DriverService) PendingVerifications(ctx context.Context) []domain.Driver {
	return s.store.PendingVerifications()
}

// ---- validation ------------------------------------------------------------

func validateDraft(draft domain.DriverDraft) error {
	if draft.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if draft.Phone == "" {
		return fmt.Errorf("%w: phone is required", domain.ErrValidation)
	}
	if draft.VendorID == "" {
		return fmt.Errorf("%w: vendor id is required", domain.ErrValidation)
	}
	return nil
}

func validateDocumentDraft(draft domain.DocumentDraft) error {
	switch draft.Type {
	case domain.DocumentTypeLicense, domain.DocumentTypePermit,
		domain.DocumentTypeInsurance, domain.DocumentTypeRegistration:
	default:
		return fmt.Errorf("%w: unknown document type %q", domain.ErrValidation, draft.Type)
	}
	if draft.Number == "" {
		return fmt.Errorf("%w: document number is required", domain.ErrValidation)
	}
	return nil
}

func validDriverStatus(status domain.DriverStatus) bool {
	switch status {
	case domain.DriverStatusActive, domain.DriverStatusInactive, domain.DriverStatusSuspended:
		return true
	}
	return false
}

func validOnboardingStatus(status domain.OnboardingStatus) bool {
	switch status {
	case domain.OnboardingPending, domain.OnboardingInProgress, domain.OnboardingCompleted:
		return true
	}
	return false
}
