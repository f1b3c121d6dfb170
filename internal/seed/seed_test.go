package seed_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/fleet-admin/internal/domain"
	"github.com/pkordes/fleet-admin/internal/seed"
)

// TestDefault_Shape pins down the parts of the built-in samples the rest of
// the application depends on: driver "1" is an active, fully verified John
// Doe, and at least one driver has a document awaiting review.
func TestDefault_Shape(t *testing.T) {
	data := seed.Default()

	require.NotEmpty(t, data.Drivers)
	require.NotEmpty(t, data.Vehicles)

	john := data.Drivers[0]
	assert.Equal(t, "1", john.ID)
	assert.Equal(t, "John Doe", john.Name)
	assert.Equal(t, domain.DriverStatusActive, john.Status)
	require.Len(t, john.Documents, 2)
	for _, doc := range john.Documents {
		assert.Equal(t, domain.DocumentStatusVerified, doc.Status)
	}
	assert.True(t, john.Metadata.VerificationComplete)

	pending := 0
	for _, d := range data.Drivers {
		for _, doc := range d.Documents {
			if doc.Status == domain.DocumentStatusPending {
				pending++
			}
		}
	}
	assert.Positive(t, pending, "samples must exercise the pending-verification query")
}

func TestDefault_FreshCollections(t *testing.T) {
	a := seed.Default()
	a.Drivers[0].Name = "Mutated"
	delete(a.Drivers[0].Documents, domain.DocumentTypeLicense)

	b := seed.Default()

	assert.Equal(t, "John Doe", b.Drivers[0].Name)
	assert.Len(t, b.Drivers[0].Documents, 2)
}

func TestLoad(t *testing.T) {
	path := writeSeed(t, `
drivers:
  - id: d1
    name: Ada Lovelace
    phone: "+44-555-0100"
    vendor_id: vendor-7
    status: active
    onboarding_status: completed
    documents:
      license:
        id: doc-a
        type: license
        number: DL-1
        status: verified
vehicles:
  - id: v1
    registration_number: AB-12-CD-3456
    model: Skoda Octavia
    type: sedan
    seating_capacity: 4
    fuel_type: petrol
    vendor_id: vendor-7
    status: available
`)

	data, err := seed.Load(path)

	require.NoError(t, err)
	require.Len(t, data.Drivers, 1)
	require.Len(t, data.Vehicles, 1)
	assert.Equal(t, "Ada Lovelace", data.Drivers[0].Name)
	assert.Equal(t, domain.DocumentStatusVerified, data.Drivers[0].Documents[domain.DocumentTypeLicense].Status)
	assert.Equal(t, domain.VehicleTypeSedan, data.Vehicles[0].Type)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := seed.Load(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.Error(t, err)
}

func TestLoad_Malformed(t *testing.T) {
	path := writeSeed(t, "drivers: [not a mapping")

	_, err := seed.Load(path)

	assert.Error(t, err)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantMsg string
	}{
		{
			name:    "driver without id",
			yaml:    "drivers:\n  - name: No ID\n",
			wantMsg: "missing id",
		},
		{
			name:    "duplicate driver ids",
			yaml:    "drivers:\n  - id: d1\n  - id: d1\n",
			wantMsg: "duplicate id",
		},
		{
			name:    "duplicate vehicle ids",
			yaml:    "vehicles:\n  - id: v1\n  - id: v1\n",
			wantMsg: "duplicate id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := seed.Load(writeSeed(t, tt.yaml))

			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantMsg)
		})
	}
}

// writeSeed writes content to a temp file and returns its path.
func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
