package filter

import "go.uber.org/fx"

// Module provides the filter set
var Module = fx.Options(
	fx.Provide(NewSet),
)
