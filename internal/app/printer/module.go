package printer

import "go.uber.org/fx"

// Module provides the headless printer
var Module = fx.Options(
	fx.Provide(NewPrinter),
)
