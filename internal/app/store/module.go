package store

import "go.uber.org/fx"

// Module provides the entry store
var Module = fx.Options(
	fx.Provide(NewStore),
)
