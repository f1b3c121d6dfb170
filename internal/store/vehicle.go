package store

import (
	"strings"
	"sync"

	"github.com/pkordes/fleet-admin/internal/domain"
)

// VehicleStore holds the vehicle catalog. Only the read path is in scope:
// the collection is fixed at construction and exposed through list, lookup,
// and search operations.
type VehicleStore struct {
	mu       sync.RWMutex
	vehicles []domain.Vehicle
}

// NewVehicleStore constructs a VehicleStore over the given records.
func NewVehicleStore(vehicles []domain.Vehicle) *VehicleStore {
	s := &VehicleStore{vehicles: make([]domain.Vehicle, len(vehicles))}
	copy(s.vehicles, vehicles)
	return s
}

// List returns all vehicles in catalog order.
func (s *VehicleStore) List() []domain.Vehicle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Vehicle, len(s.vehicles))
	copy(out, s.vehicles)
	return out
}

// Get returns the vehicle with the given id and true, or a zero Vehicle and
// false.
func (s *VehicleStore) Get(id string) (domain.Vehicle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.vehicles {
		if v.ID == id {
			return v, true
		}
	}
	return domain.Vehicle{}, false
}

// Search returns the vehicles matching the free-text term, in catalog order.
// The match is case-insensitive over registration number, model, type, and
// vendor id. An empty term matches everything.
func (s *VehicleStore) Search(term string) []domain.Vehicle {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return s.List()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Vehicle
	for _, v := range s.vehicles {
		if vehicleMatches(v, term) {
			out = append(out, v)
		}
	}
	return out
}

// ByVendor returns the vehicles owned by the given vendor, in catalog order.
func (s *VehicleStore) ByVendor(vendorID string) []domain.Vehicle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Vehicle
	for _, v := range s.vehicles {
		if v.VendorID == vendorID {
			out = append(out, v)
		}
	}
	return out
}

func vehicleMatches(v domain.Vehicle, term string) bool {
	for _, field := range []string{
		v.RegistrationNumber,
		v.Model,
		string(v.Type),
		v.VendorID,
	} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
