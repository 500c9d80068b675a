package app

import (
	"context"
	"os"

	"go.uber.org/fx"

	"tracev/internal/app/cli"
	"tracev/internal/config/logger"
)

// App ties the viewer's lifetime to the fx container. The CLI run decides
// the exit code; fx shutdown waits for it so the terminal is restored
// before the process ends.
type App struct {
	cli  cli.CLI
	log  logger.Logger
	done chan struct{}
}

// NewApp creates the application container
func NewApp(cli cli.CLI, log logger.Logger) *App {
	return &App{
		cli:  cli,
		log:  log.WithComponent("APP"),
		done: make(chan struct{}),
	}
}

// Run executes the viewer and exits the process with the CLI's exit code
func (a *App) Run() {
	code := a.execute()
	close(a.done)

	os.Exit(code)
}

// execute runs the CLI and maps its outcome to an exit code
func (a *App) execute() int {
	code, err := a.cli.Execute()
	if err != nil {
		a.log.Error().Err(err).Msgf("Exiting with code %d", code)
	}

	return code
}

// Register hooks the viewer run into the fx lifecycle
func Register(lifecycle fx.Lifecycle, app *App) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go app.Run()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			select {
			case <-app.done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}
