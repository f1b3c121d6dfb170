package console_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pkordes/fleet-admin/internal/console"
	"github.com/pkordes/fleet-admin/internal/seed"
	"github.com/pkordes/fleet-admin/internal/service"
	"github.com/pkordes/fleet-admin/internal/store"
	"github.com/pkordes/fleet-admin/testutil"
)

// runScript feeds the given commands through a console wired to a freshly
// seeded store and returns stdout and stderr. A trailing "quit" is appended
// so Run always terminates.
func runScript(t *testing.T, commands ...string) (stdout, stderr string) {
	t.Helper()

	data := seed.Default()
	clk := testutil.NewClock(time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC))
	driverStore := store.NewDriverStore(&testutil.SequentialIDs{},
		store.WithClock(clk.Now),
		store.WithSeed(data.Drivers))
	vehicleStore := store.NewVehicleStore(data.Vehicles)

	log := zap.NewNop()
	drivers := service.NewDriverService(driverStore, log)
	vehicles := service.NewVehicleService(vehicleStore, log)

	var out, errw bytes.Buffer
	c := console.New(drivers, vehicles, driverStore, log, console.Config{
		Out:           &out,
		Err:           &errw,
		TableLimit:    50,
		DefaultVendor: "vendor-1",
	})

	input := strings.Join(append(commands, "quit"), "\n") + "\n"
	err := c.Run(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	return out.String(), errw.String()
}

func TestConsole_Vehicles(t *testing.T) {
	out, errw := runScript(t, "vehicles")

	assert.Empty(t, errw)
	assert.Contains(t, out, "REGISTRATION")
	assert.Contains(t, out, "Toyota Camry")
	assert.Contains(t, out, "4 vehicle(s)")
}

func TestConsole_Vehicles_Filtered(t *testing.T) {
	out, errw := runScript(t, "vehicles toyota")

	assert.Empty(t, errw)
	assert.Contains(t, out, "Toyota Camry")
	assert.NotContains(t, out, "Honda CR-V")
	assert.Contains(t, out, "1 vehicle(s)")
}

func TestConsole_Drivers(t *testing.T) {
	out, _ := runScript(t, "drivers")

	assert.Contains(t, out, "John Doe")
	assert.Contains(t, out, "3 driver(s)")
}

func TestConsole_Drivers_Pending(t *testing.T) {
	out, _ := runScript(t, "drivers pending")

	assert.Contains(t, out, "Priya Sharma")
	assert.NotContains(t, out, "John Doe")
}

// TestConsole_Add_RerendersFromSnapshot exercises the control flow: a
// mutation publishes a snapshot and the subscribed console re-renders the
// driver table, so the new driver appears without an explicit list command.
func TestConsole_Add_RerendersFromSnapshot(t *testing.T) {
	out, errw := runScript(t, "add Jane_Roe +1-555-0199 vendor-1")

	assert.Empty(t, errw)
	assert.Contains(t, out, "Jane Roe")
	assert.Contains(t, out, "4 driver(s)")
}

func TestConsole_Add_DefaultVendor(t *testing.T) {
	out, errw := runScript(t, "add Sam_Lee +1-555-0177", "drivers vendor vendor-1")

	assert.Empty(t, errw)
	assert.Contains(t, out, "Sam Lee")
	assert.Contains(t, out, "4 driver(s)", "the re-rendered table includes the new driver")
}

func TestConsole_Get_ShowsDocuments(t *testing.T) {
	out, _ := runScript(t, "get 1")

	assert.Contains(t, out, "DOC ID")
	assert.Contains(t, out, "doc-1")
	assert.Contains(t, out, "doc-2")
}

func TestConsole_Assign_UnknownVehicleWarns(t *testing.T) {
	out, errw := runScript(t, "assign 1 V9", "get 1")

	// The assignment proceeds — existence is not required — but the admin
	// gets a warning about the unknown id.
	assert.Contains(t, errw, "warning")
	assert.Contains(t, out, "V9")
}

func TestConsole_Errors(t *testing.T) {
	tests := []struct {
		name    string
		command string
		wantMsg string
	}{
		{name: "unknown command", command: "frobnicate", wantMsg: "unknown command"},
		{name: "update missing driver", command: "update no-such-id name X", wantMsg: "not found"},
		{name: "bad usage", command: "assign 1", wantMsg: "usage"},
		{name: "invalid verify decision", command: "verify 1 doc-1 pending", wantMsg: "invalid decision"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errw := runScript(t, tt.command)

			assert.Contains(t, errw, "error: ")
			assert.Contains(t, errw, tt.wantMsg)
		})
	}
}

func TestConsole_Lifecycle(t *testing.T) {
	out, errw := runScript(t,
		"upload 2 permit PR-100",
		"drivers pending",
		"onboard 1 pending",
		"delete 3",
		"drivers",
	)

	assert.Empty(t, errw)
	assert.Contains(t, out, "0/2 ok", "Priya now has two unverified documents")
	assert.Contains(t, out, "2 driver(s)", "the final table reflects the deletion")
}
