package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pkordes/fleet-admin/internal/domain"
)

// VehicleCatalog defines the read-only vehicle operations the vehicle
// service depends on.
type VehicleCatalog interface {
	List() []domain.Vehicle
	Get(id string) (domain.Vehicle, bool)
	Search(term string) []domain.Vehicle
	ByVendor(vendorID string) []domain.Vehicle
}

// VehicleService implements the read path over the vehicle catalog.
// There is no mutation surface: the catalog is fixed at startup.
type VehicleService struct {
	catalog VehicleCatalog
	log     *zap.Logger
}

// NewVehicleService constructs a VehicleService backed by the provided catalog.
func NewVehicleService(catalog VehicleCatalog, log *zap.Logger) *VehicleService {
	return &VehicleService{catalog: catalog, log: log}
}

// List returns all vehicles in catalog order.
func (s *VehicleService) List(ctx context.Context) []domain.Vehicle {
	return s.catalog.List()
}

// Get returns the vehicle with the given id, or domain.ErrNotFound.
func (s *VehicleService) Get(ctx context.Context, id string) (domain.Vehicle, error) {
	v, ok := s.catalog.Get(id)
	if !ok {
		return domain.Vehicle{}, fmt.Errorf("service.VehicleService.Get: vehicle %q: %w", id, domain.ErrNotFound)
	}
	return v, nil
}

// Search returns the vehicles matching the free-text term.
func (s *VehicleService) Search(ctx context.Context, term string) []domain.Vehicle {
	results := s.catalog.Search(term)
	s.log.Debug("vehicle search",
		zap.String("term", term),
		zap.Int("matches", len(results)))
	return results
}

// ByVendor returns the vehicles owned by the given vendor.
func (s *VehicleService) ByVendor(ctx context.Context, vendorID string) []domain.Vehicle {
	return s.catalog.ByVendor(vendorID)
}
