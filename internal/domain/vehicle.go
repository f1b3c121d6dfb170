package domain

import "time"

// VehicleType is the body class of a fleet vehicle.
type VehicleType string

const (
	VehicleTypeSedan VehicleType = "sedan"
	VehicleTypeSUV   VehicleType = "suv"
	VehicleTypeVan   VehicleType = "van"
	VehicleTypeTruck VehicleType = "truck"
)

// FuelType is the vehicle's fuel category.
type FuelType string

const (
	FuelTypePetrol   FuelType = "petrol"
	FuelTypeDiesel   FuelType = "diesel"
	FuelTypeElectric FuelType = "electric"
	FuelTypeCNG      FuelType = "cng"
)

// VehicleStatus is the operational state of a fleet vehicle.
type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "available"
	VehicleStatusAssigned    VehicleStatus = "assigned"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
)

// ValidityStatus summarizes one vehicle paper's state without carrying the
// full document record.
type ValidityStatus string

const (
	ValidityValid   ValidityStatus = "valid"
	ValidityExpired ValidityStatus = "expired"
	ValidityMissing ValidityStatus = "missing"
)

// DocumentsValidity is the per-vehicle paper summary shown in the admin
// vehicle table.
type DocumentsValidity struct {
	Registration ValidityStatus `json:"registration" yaml:"registration"`
	Insurance    ValidityStatus `json:"insurance" yaml:"insurance"`
	Permit       ValidityStatus `json:"permit" yaml:"permit"`
}

// Vehicle represents a fleet asset. Only the read path is in scope: vehicles
// are seeded at startup and listed/searched, never mutated.
// DriverID mirrors the assignment held on the driver side but is not kept in
// sync by the driver store — deleting a driver does not touch it.
type Vehicle struct {
	ID                 string            `json:"id" yaml:"id"`
	RegistrationNumber string            `json:"registration_number" yaml:"registration_number"`
	Model              string            `json:"model" yaml:"model"`
	Type               VehicleType       `json:"type" yaml:"type"`
	SeatingCapacity    int               `json:"seating_capacity" yaml:"seating_capacity"`
	FuelType           FuelType          `json:"fuel_type" yaml:"fuel_type"`
	VendorID           string            `json:"vendor_id" yaml:"vendor_id"`
	DriverID           string            `json:"driver_id,omitempty" yaml:"driver_id,omitempty"`
	Status             VehicleStatus     `json:"status" yaml:"status"`
	DocumentsValidity  DocumentsValidity `json:"documents_validity" yaml:"documents_validity"`
	CreatedAt          time.Time         `json:"created_at" yaml:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at" yaml:"updated_at"`
}
