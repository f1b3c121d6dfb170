// Package console implements the interactive admin front end.
// It is the presentation layer of the application: commands invoke service
// operations, the driver store publishes a new snapshot after each mutation,
// and the console re-renders the driver table from that snapshot.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/pkordes/fleet-admin/internal/domain"
	"github.com/pkordes/fleet-admin/internal/service"
)

// Snapshots is the subscription surface of the driver store. The console
// registers a view function and re-renders whenever a snapshot is published.
type Snapshots interface {
	Subscribe(fn func([]domain.Driver)) (cancel func())
}

// Config carries the console's presentation settings.
type Config struct {
	// Out receives tables and the prompt; Err receives warnings and errors.
	Out io.Writer
	Err io.Writer

	// TableLimit caps rendered rows per table.
	TableLimit int

	// DefaultVendor is used by `add` when the vendor argument is omitted.
	DefaultVendor string
}

// Console is the interactive command loop.
type Console struct {
	drivers  *service.DriverService
	vehicles *service.VehicleService
	snaps    Snapshots
	log      *zap.Logger
	cfg      Config
}

// New constructs a Console with the given dependencies and settings.
func New(drivers *service.DriverService, vehicles *service.VehicleService, snaps Snapshots, log *zap.Logger, cfg Config) *Console {
	return &Console{
		drivers:  drivers,
		vehicles: vehicles,
		snaps:    snaps,
		log:      log,
		cfg:      cfg,
	}
}

// Run reads commands from in until EOF, "quit", or context cancellation.
// While the loop is running the console is subscribed to the driver store,
// so every successful mutation is followed by a refreshed driver table.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	cancel := c.snaps.Subscribe(func(snapshot []domain.Driver) {
		fmt.Fprintln(c.cfg.Out)
		RenderDrivers(c.cfg.Out, snapshot, c.cfg.TableLimit)
	})
	defer cancel()

	fmt.Fprintln(c.cfg.Out, `fleet admin console — type "help" for commands`)

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(c.cfg.Out, "fleet> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}

		if err := c.dispatch(ctx, fields[0], fields[1:]); err != nil {
			c.log.Debug("command failed", zap.String("command", fields[0]), zap.Error(err))
			fmt.Fprintf(c.cfg.Err, "error: %s\n", userMessage(err))
		}
	}
}

func (c *Console) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		c.printHelp()
		return nil
	case "vehicles":
		return c.cmdVehicles(ctx, args)
	case "drivers":
		return c.cmdDrivers(ctx, args)
	case "get":
		return c.cmdGet(ctx, args)
	case "add":
		return c.cmdAdd(ctx, args)
	case "update":
		return c.cmdUpdate(ctx, args)
	case "delete":
		return c.cmdDelete(ctx, args)
	case "upload":
		return c.cmdUpload(ctx, args)
	case "verify":
		return c.cmdVerify(ctx, args)
	case "assign":
		return c.cmdAssign(ctx, args)
	case "unassign":
		return c.cmdUnassign(ctx, args)
	case "onboard":
		return c.cmdOnboard(ctx, args)
	default:
		return fmt.Errorf("unknown command %q (try \"help\")", cmd)
	}
}

// cmdVehicles renders the vehicle table, filtered by an optional free-text
// term: `vehicles [term]`.
func (c *Console) cmdVehicles(ctx context.Context, args []string) error {
	term := strings.Join(args, " ")
	RenderVehicles(c.cfg.Out, c.vehicles.Search(ctx, term), c.cfg.TableLimit)
	return nil
}

// cmdDrivers renders the driver table: `drivers [active|pending|vendor <id>]`.
func (c *Console) cmdDrivers(ctx context.Context, args []string) error {
	var rows []domain.Driver
	switch {
	case len(args) == 0:
		rows = c.drivers.List(ctx)
	case args[0] == "active":
		rows = c.drivers.Active(ctx)
	case args[0] == "pending":
		rows = c.drivers.PendingVerifications(ctx)
	case args[0] == "vendor" && len(args) == 2:
		rows = c.drivers.ByVendor(ctx, args[1])
	default:
		return errors.New("usage: drivers [active|pending|vendor <id>]")
	}
	RenderDrivers(c.cfg.Out, rows, c.cfg.TableLimit)
	return nil
}

// cmdGet shows one driver with its documents: `get <driver-id>`.
func (c *Console) cmdGet(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: get <driver-id>")
	}
	d, err := c.drivers.Get(ctx, args[0])
	if err != nil {
		return err
	}
	RenderDrivers(c.cfg.Out, []domain.Driver{d}, c.cfg.TableLimit)
	RenderDocuments(c.cfg.Out, d)
	return nil
}

// cmdAdd creates a driver: `add <name> <phone> [vendor-id]`.
// Multi-word names are quoted by underscore, e.g. add Jane_Roe +1-555 vendor-1.
// When the vendor argument is omitted the configured default vendor is used.
func (c *Console) cmdAdd(ctx context.Context, args []string) error {
	if len(args) != 2 && len(args) != 3 {
		return errors.New("usage: add <name> <phone> [vendor-id]")
	}
	vendor := c.cfg.DefaultVendor
	if len(args) == 3 {
		vendor = args[2]
	}
	_, err := c.drivers.Add(ctx, domain.DriverDraft{
		Name:     strings.ReplaceAll(args[0], "_", " "),
		Phone:    args[1],
		VendorID: vendor,
	})
	return err
}

// cmdUpdate patches one profile field:
// `update <driver-id> <name|phone|email|license|vendor|status> <value>`.
func (c *Console) cmdUpdate(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return errors.New("usage: update <driver-id> <field> <value>")
	}
	id, field, value := args[0], args[1], args[2]

	var patch domain.DriverPatch
	switch field {
	case "name":
		name := strings.ReplaceAll(value, "_", " ")
		patch.Name = &name
	case "phone":
		patch.Phone = &value
	case "email":
		patch.Email = &value
	case "license":
		patch.LicenseNumber = &value
	case "vendor":
		patch.VendorID = &value
	case "status":
		status := domain.DriverStatus(value)
		patch.Status = &status
	default:
		return fmt.Errorf("unknown field %q", field)
	}

	_, err := c.drivers.Update(ctx, id, patch)
	return err
}

// cmdDelete removes a driver: `delete <driver-id>`.
func (c *Console) cmdDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: delete <driver-id>")
	}
	c.drivers.Delete(ctx, args[0])
	return nil
}

// cmdUpload attaches a document: `upload <driver-id> <type> <number>`.
func (c *Console) cmdUpload(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return errors.New("usage: upload <driver-id> <type> <number>")
	}
	_, err := c.drivers.UploadDocument(ctx, args[0], domain.DocumentDraft{
		Type:   domain.DocumentType(args[1]),
		Number: args[2],
	})
	return err
}

// cmdVerify records a review decision:
// `verify <driver-id> <doc-id> <verified|rejected> [comments...]`.
func (c *Console) cmdVerify(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return errors.New("usage: verify <driver-id> <doc-id> <verified|rejected> [comments]")
	}
	comments := strings.Join(args[3:], " ")
	_, err := c.drivers.VerifyDocument(ctx, args[0], args[1], domain.DocumentStatus(args[2]), comments)
	return err
}

// cmdAssign points a driver at a vehicle: `assign <driver-id> <vehicle-id>`.
func (c *Console) cmdAssign(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: assign <driver-id> <vehicle-id>")
	}
	if _, err := c.vehicles.Get(ctx, args[1]); err != nil {
		// Assignment does not require the vehicle to exist, but an admin
		// typing an unknown id probably made a typo — warn, then proceed.
		fmt.Fprintf(c.cfg.Err, "warning: vehicle %q is not in the catalog\n", args[1])
	}
	_, err := c.drivers.AssignVehicle(ctx, args[0], args[1])
	return err
}

// cmdUnassign clears a driver's vehicle: `unassign <driver-id>`.
func (c *Console) cmdUnassign(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: unassign <driver-id>")
	}
	_, err := c.drivers.UnassignVehicle(ctx, args[0])
	return err
}

// cmdOnboard sets the onboarding stage: `onboard <driver-id> <stage>`.
func (c *Console) cmdOnboard(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: onboard <driver-id> <pending|in_progress|completed>")
	}
	_, err := c.drivers.UpdateOnboardingStatus(ctx, args[0], domain.OnboardingStatus(args[1]))
	return err
}

func (c *Console) printHelp() {
	fmt.Fprint(c.cfg.Out, `commands:
  vehicles [term]                                 list vehicles, optionally filtered
  drivers [active|pending|vendor <id>]            list drivers
  get <driver-id>                                 show one driver and its documents
  add <name> <phone> [vendor-id]                  create a driver (use _ for spaces)
  update <driver-id> <field> <value>              patch name|phone|email|license|vendor|status
  delete <driver-id>                              remove a driver
  upload <driver-id> <type> <number>              attach a document (starts pending)
  verify <driver-id> <doc-id> <status> [comment]  review a document (verified|rejected)
  assign <driver-id> <vehicle-id>                 assign a vehicle
  unassign <driver-id>                            clear the vehicle assignment
  onboard <driver-id> <stage>                     set onboarding stage
  quit                                            exit
`)
}

// userMessage strips the internal call-path prefixes from a wrapped error,
// leaving the part worth showing at the prompt.
// e.g. "service.DriverService.Update: store.DriverStore.Update: driver "9": not found"
// renders as `driver "9": not found`.
func userMessage(err error) string {
	msg := err.Error()
	for {
		i := strings.Index(msg, ": ")
		if i < 0 {
			return msg
		}
		prefix := msg[:i]
		if !strings.HasPrefix(prefix, "service.") && !strings.HasPrefix(prefix, "store.") {
			return msg
		}
		msg = msg[i+2:]
	}
}
