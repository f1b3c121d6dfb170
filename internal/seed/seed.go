// Package seed provides the built-in sample records the application starts
// with, and an optional YAML loader for replacing them with custom data.
// All state is memory-resident: seeds are read once at startup and discarded
// at process end.
package seed

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pkordes/fleet-admin/internal/domain"
)

// Data is the full seed payload: the initial driver and vehicle collections.
type Data struct {
	Drivers  []domain.Driver  `yaml:"drivers"`
	Vehicles []domain.Vehicle `yaml:"vehicles"`
}

// Load reads a YAML seed file and validates it.
// The file replaces the built-in samples wholesale — there is no merging.
func Load(path string) (Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("seed.Load: %w", err)
	}

	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return Data{}, fmt.Errorf("seed.Load: parse %s: %w", path, err)
	}

	if err := validate(data); err != nil {
		return Data{}, fmt.Errorf("seed.Load: %s: %w", path, err)
	}
	return data, nil
}

// validate rejects seed data the stores cannot hold: records without ids and
// duplicate ids within a collection.
func validate(data Data) error {
	driverIDs := make(map[string]bool, len(data.Drivers))
	for i, d := range data.Drivers {
		if d.ID == "" {
			return fmt.Errorf("driver %d: missing id", i)
		}
		if driverIDs[d.ID] {
			return fmt.Errorf("driver %d: duplicate id %q", i, d.ID)
		}
		driverIDs[d.ID] = true
	}

	vehicleIDs := make(map[string]bool, len(data.Vehicles))
	for i, v := range data.Vehicles {
		if v.ID == "" {
			return fmt.Errorf("vehicle %d: missing id", i)
		}
		if vehicleIDs[v.ID] {
			return fmt.Errorf("vehicle %d: duplicate id %q", i, v.ID)
		}
		vehicleIDs[v.ID] = true
	}
	return nil
}

// Default returns the built-in sample records.
// The collections are built fresh on every call so callers can modify them
// freely.
func Default() Data {
	created := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	updated := time.Date(2025, 3, 2, 14, 30, 0, 0, time.UTC)
	lastActive := time.Date(2025, 3, 2, 13, 45, 0, 0, time.UTC)

	return Data{
		Drivers: []domain.Driver{
			{
				ID:               "1",
				Name:             "John Doe",
				Phone:            "+1-555-0101",
				Email:            "john.doe@example.com",
				LicenseNumber:    "DL-483921",
				VendorID:         "vendor-1",
				Status:           domain.DriverStatusActive,
				OnboardingStatus: domain.OnboardingCompleted,
				VehicleID:        "V1",
				Documents: map[domain.DocumentType]domain.Document{
					domain.DocumentTypeLicense: {
						ID:        "doc-1",
						Type:      domain.DocumentTypeLicense,
						Number:    "DL-483921",
						IssuedAt:  time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC),
						ExpiresAt: time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC),
						Status:    domain.DocumentStatusVerified,
						FileRef:   "uploads/doc-1.pdf",
					},
					domain.DocumentTypePermit: {
						ID:        "doc-2",
						Type:      domain.DocumentTypePermit,
						Number:    "PR-99120",
						IssuedAt:  time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
						ExpiresAt: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
						Status:    domain.DocumentStatusVerified,
						FileRef:   "uploads/doc-2.pdf",
					},
				},
				Metadata: domain.DriverMetadata{
					TotalTrips:           412,
					Rating:               4.7,
					LastActiveAt:         &lastActive,
					VerificationComplete: true,
				},
				CreatedAt: created,
				UpdatedAt: updated,
			},
			{
				ID:               "2",
				Name:             "Priya Sharma",
				Phone:            "+1-555-0102",
				Email:            "priya.sharma@example.com",
				LicenseNumber:    "DL-772014",
				VendorID:         "vendor-1",
				Status:           domain.DriverStatusInactive,
				OnboardingStatus: domain.OnboardingInProgress,
				Documents: map[domain.DocumentType]domain.Document{
					domain.DocumentTypeLicense: {
						ID:        "doc-3",
						Type:      domain.DocumentTypeLicense,
						Number:    "DL-772014",
						IssuedAt:  time.Date(2023, 4, 20, 0, 0, 0, 0, time.UTC),
						ExpiresAt: time.Date(2028, 4, 20, 0, 0, 0, 0, time.UTC),
						Status:    domain.DocumentStatusPending,
						FileRef:   "uploads/doc-3.pdf",
					},
				},
				CreatedAt: created,
				UpdatedAt: created,
			},
			{
				ID:               "3",
				Name:             "Marcus Webb",
				Phone:            "+1-555-0103",
				LicenseNumber:    "DL-105583",
				VendorID:         "vendor-2",
				Status:           domain.DriverStatusSuspended,
				OnboardingStatus: domain.OnboardingCompleted,
				Documents:        map[domain.DocumentType]domain.Document{},
				CreatedAt:        created,
				UpdatedAt:        updated,
			},
		},
		Vehicles: []domain.Vehicle{
			{
				ID:                 "V1",
				RegistrationNumber: "KA-01-AB-1234",
				Model:              "Toyota Camry",
				Type:               domain.VehicleTypeSedan,
				SeatingCapacity:    4,
				FuelType:           domain.FuelTypePetrol,
				VendorID:           "vendor-1",
				DriverID:           "1",
				Status:             domain.VehicleStatusAssigned,
				DocumentsValidity: domain.DocumentsValidity{
					Registration: domain.ValidityValid,
					Insurance:    domain.ValidityValid,
					Permit:       domain.ValidityValid,
				},
				CreatedAt: created,
				UpdatedAt: updated,
			},
			{
				ID:                 "V2",
				RegistrationNumber: "KA-01-CD-5678",
				Model:              "Honda CR-V",
				Type:               domain.VehicleTypeSUV,
				SeatingCapacity:    6,
				FuelType:           domain.FuelTypeDiesel,
				VendorID:           "vendor-1",
				Status:             domain.VehicleStatusAvailable,
				DocumentsValidity: domain.DocumentsValidity{
					Registration: domain.ValidityValid,
					Insurance:    domain.ValidityExpired,
					Permit:       domain.ValidityValid,
				},
				CreatedAt: created,
				UpdatedAt: created,
			},
			{
				ID:                 "V3",
				RegistrationNumber: "KA-02-EF-9012",
				Model:              "Ford Transit",
				Type:               domain.VehicleTypeVan,
				SeatingCapacity:    12,
				FuelType:           domain.FuelTypeCNG,
				VendorID:           "vendor-2",
				Status:             domain.VehicleStatusMaintenance,
				DocumentsValidity: domain.DocumentsValidity{
					Registration: domain.ValidityValid,
					Insurance:    domain.ValidityValid,
					Permit:       domain.ValidityMissing,
				},
				CreatedAt: created,
				UpdatedAt: updated,
			},
			{
				ID:                 "V4",
				RegistrationNumber: "KA-02-GH-3456",
				Model:              "Tata Ace EV",
				Type:               domain.VehicleTypeTruck,
				SeatingCapacity:    2,
				FuelType:           domain.FuelTypeElectric,
				VendorID:           "vendor-2",
				Status:             domain.VehicleStatusAvailable,
				DocumentsValidity: domain.DocumentsValidity{
					Registration: domain.ValidityValid,
					Insurance:    domain.ValidityValid,
					Permit:       domain.ValidityValid,
				},
				CreatedAt: created,
				UpdatedAt: created,
			},
		},
	}
}
