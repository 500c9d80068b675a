package session

import "go.uber.org/fx"

// Module provides the ingestion session
var Module = fx.Options(
	fx.Provide(NewSession),
)
