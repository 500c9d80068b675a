package view

import "go.uber.org/fx"

// Module provides the view index
var Module = fx.Options(
	fx.Provide(NewIndex),
)
