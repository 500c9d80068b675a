package export

import "go.uber.org/fx"

// Module provides the selection and the clipboard exporter
var Module = fx.Options(
	fx.Provide(
		NewSelection,
		NewExporter,
	),
)
