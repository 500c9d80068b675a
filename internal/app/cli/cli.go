package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tracev/internal/app/errors"
	"tracev/internal/app/printer"
	"tracev/internal/app/runtime"
	"tracev/internal/app/session"
	"tracev/internal/app/ui/wire"
	"tracev/internal/config"
	"tracev/internal/config/logger"
)

// CLI defines the interface for cli operations
type CLI interface {
	Execute() (int, error)
}

type cli struct {
	opts    *Options
	cfg     *config.Config
	session session.Session
	ui      wire.UI
	printer printer.Printer
	bus     runtime.EventBus
	log     logger.Logger
}

// NewCLI creates a new cli instance
func NewCLI(
	opts *Options,
	cfg *config.Config,
	sess session.Session,
	ui wire.UI,
	p printer.Printer,
	bus runtime.EventBus,
	log logger.Logger,
) CLI {
	return &cli{
		opts:    opts,
		cfg:     cfg,
		session: sess,
		ui:      ui,
		printer: p,
		bus:     bus,
		log:     log.WithComponent("CLI"),
	}
}

// Execute dispatches the parsed command and returns the process exit code
func (c *cli) Execute() (int, error) {
	switch c.opts.Type {
	case CommandVersion:
		c.printVersion()
		return 0, nil
	case CommandHelp:
		c.printHelp()
		return 0, nil
	default:
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := c.session.Start(ctx); err != nil {
		if errors.Is(err, errors.ErrInputNotFound) {
			fmt.Fprintf(os.Stderr, "Error: no such file: %s\n", c.cfg.Input)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

		return 1, err
	}

	defer func() {
		c.session.Stop()
		c.bus.Close()
	}()

	if c.opts.NoUI {
		return c.runPrinter(ctx)
	}

	return c.runTUI(ctx)
}

// runPrinter streams filtered entries to stdout until the source ends
func (c *cli) runPrinter(ctx context.Context) (int, error) {
	c.log.Debug().Msg("Running in headless mode")

	if err := c.printer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return 1, err
	}

	return 0, nil
}

// printVersion displays version information
func (c *cli) printVersion() {
	fmt.Printf("%s v%s\n", config.AppName, config.Version)
}
