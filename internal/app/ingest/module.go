package ingest

import "go.uber.org/fx"

// Module provides the ingestion pipeline
var Module = fx.Options(
	fx.Provide(NewPipeline),
)
