package cli

import (
	"context"

	"tracev/internal/app/errors"
)

// runTUI starts the Bubble Tea program and blocks until it exits
func (c *cli) runTUI(ctx context.Context) (int, error) {
	c.log.Debug().Msg("Starting TUI")

	p, err := c.ui(ctx)
	if err != nil {
		return 1, err
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, context.Canceled) {
		return 1, err
	}

	return 0, nil
}
