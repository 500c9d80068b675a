package procstats

import "go.uber.org/fx"

// Module provides the process stats sampler
var Module = fx.Options(
	fx.Provide(NewSampler),
)
