package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkordes/fleet-admin/internal/console"
	"github.com/pkordes/fleet-admin/internal/domain"
)

// VehiclesCmd implements `fleetadmin vehicles`: a one-shot vehicle table.
type VehiclesCmd struct {
	Search string `short:"q" help:"Free-text filter over registration, model, type, and vendor." placeholder:"TERM"`
	Vendor string `help:"Only vehicles owned by this vendor." placeholder:"ID"`
}

// Run renders the (optionally filtered) vehicle catalog.
func (c *VehiclesCmd) Run(a *app) error {
	if c.Search != "" && c.Vendor != "" {
		return errors.New("--search and --vendor cannot be combined")
	}

	ctx := context.Background()
	var rows []domain.Vehicle
	if c.Vendor != "" {
		rows = a.vehicles.ByVendor(ctx, c.Vendor)
	} else {
		rows = a.vehicles.Search(ctx, c.Search)
	}

	console.RenderVehicles(os.Stdout, rows, a.cfg.TableLimit)
	return nil
}

// DriversCmd implements `fleetadmin drivers`: a one-shot driver table.
type DriversCmd struct {
	Vendor              string `help:"Only drivers owned by this vendor." placeholder:"ID"`
	Active              bool   `help:"Only drivers whose status is active."`
	PendingVerification bool   `help:"Only drivers with at least one pending document."`
}

// Run renders the selected driver view. Filters are mutually exclusive —
// the underlying queries are separate operations, not composable predicates.
func (c *DriversCmd) Run(a *app) error {
	set := 0
	for _, on := range []bool{c.Vendor != "", c.Active, c.PendingVerification} {
		if on {
			set++
		}
	}
	if set > 1 {
		return errors.New("--vendor, --active, and --pending-verification are mutually exclusive")
	}

	ctx := context.Background()
	var rows []domain.Driver
	switch {
	case c.Vendor != "":
		rows = a.drivers.ByVendor(ctx, c.Vendor)
	case c.Active:
		rows = a.drivers.Active(ctx)
	case c.PendingVerification:
		rows = a.drivers.PendingVerifications(ctx)
	default:
		rows = a.drivers.List(ctx)
	}

	console.RenderDrivers(os.Stdout, rows, a.cfg.TableLimit)
	return nil
}

// ConsoleCmd implements `fleetadmin console`: the interactive admin loop.
type ConsoleCmd struct{}

// Run starts the console on stdin and blocks until EOF, "quit", or an
// interrupt signal.
func (c *ConsoleCmd) Run(a *app) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := a.console.Run(ctx, os.Stdin)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
