package wire

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/fx"

	"tracev/internal/app/export"
	"tracev/internal/app/filter"
	"tracev/internal/app/procstats"
	"tracev/internal/app/runtime"
	"tracev/internal/app/store"
	"tracev/internal/app/ui/viewer"
	"tracev/internal/app/view"
	"tracev/internal/config"
	"tracev/internal/config/logger"
)

// UI creates a Bubble Tea program for the viewer
type UI func(ctx context.Context) (*tea.Program, error)

// Module provides the UI factory
var Module = fx.Options(
	fx.Provide(NewUI),
)

// UIParams contains dependencies for creating the UI factory
type UIParams struct {
	fx.In

	Config    *config.Config
	Store     store.Store
	Filters   *filter.Set
	View      view.Index
	Selection export.Selection
	Exporter  export.Exporter
	Sampler   procstats.Sampler
	Bus       runtime.EventBus
	Logger    logger.Logger
}

// NewUI creates a factory function for constructing Bubble Tea programs
func NewUI(params UIParams) UI {
	return func(ctx context.Context) (*tea.Program, error) {
		model := viewer.NewModel(
			ctx,
			params.Config,
			params.Store,
			params.Filters,
			params.View,
			params.Selection,
			params.Exporter,
			params.Sampler,
			params.Bus,
			params.Logger,
		)

		p := tea.NewProgram(
			model,
			tea.WithAltScreen(),
			tea.WithContext(ctx),
		)

		params.Logger.Debug().Msg("TUI: Program created via factory")

		return p, nil
	}
}
