// Package main is the entry point for the fleetadmin CLI.
// Its sole responsibility is wiring dependencies together and dispatching
// the parsed command. No business logic belongs here.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/pkordes/fleet-admin/internal/config"
	"github.com/pkordes/fleet-admin/internal/console"
	"github.com/pkordes/fleet-admin/internal/logging"
	"github.com/pkordes/fleet-admin/internal/seed"
	"github.com/pkordes/fleet-admin/internal/service"
	"github.com/pkordes/fleet-admin/internal/store"
)

// CLI is the kong command tree.
// Flags here override their config counterparts; everything else comes from
// the environment (see internal/config).
var CLI struct {
	LogLevel string `help:"Override LOG_LEVEL (debug|info|warn|error)." placeholder:"LEVEL"`
	Seed     string `short:"s" help:"Override SEED_FILE: path to a YAML seed file." placeholder:"PATH" type:"existingfile"`

	Vehicles VehiclesCmd `cmd:"" help:"List the vehicle catalog."`
	Drivers  DriversCmd  `cmd:"" help:"List driver records."`
	Console  ConsoleCmd  `cmd:"" help:"Start the interactive admin console."`
}

// app holds the wired dependencies handed to every command's Run method.
type app struct {
	cfg      config.Config
	log      *zap.Logger
	drivers  *service.DriverService
	vehicles *service.VehicleService
	console  *console.Console
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("fleetadmin"),
		kong.Description("Fleet management admin console: vehicles, drivers, documents, onboarding."),
		kong.UsageOnError(),
	)

	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if CLI.LogLevel != "" {
		cfg.LogLevel = CLI.LogLevel
	}
	if CLI.Seed != "" {
		cfg.SeedFile = CLI.Seed
	}

	// --- Logger -----------------------------------------------------------
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck // stderr sync failure is not actionable

	// --- Seed data --------------------------------------------------------
	// All state is memory-resident: the seed is read once here and lives for
	// the duration of the process.
	data := seed.Default()
	if cfg.SeedFile != "" {
		data, err = seed.Load(cfg.SeedFile)
		if err != nil {
			log.Error("seed load failed", zap.String("path", cfg.SeedFile), zap.Error(err))
			os.Exit(1)
		}
		log.Info("seed file loaded",
			zap.String("path", cfg.SeedFile),
			zap.Int("drivers", len(data.Drivers)),
			zap.Int("vehicles", len(data.Vehicles)))
	}

	// --- Stores and services ----------------------------------------------
	driverStore := store.NewDriverStore(store.UUIDGenerator{}, store.WithSeed(data.Drivers))
	vehicleStore := store.NewVehicleStore(data.Vehicles)

	a := &app{
		cfg:      cfg,
		log:      log,
		drivers:  service.NewDriverService(driverStore, log),
		vehicles: service.NewVehicleService(vehicleStore, log),
	}
	a.console = console.New(a.drivers, a.vehicles, driverStore, log, console.Config{
		Out:           os.Stdout,
		Err:           os.Stderr,
		TableLimit:    cfg.TableLimit,
		DefaultVendor: cfg.DefaultVendorID,
	})

	if err := kctx.Run(a); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
