package app

import (
	"go.uber.org/fx"

	"tracev/internal/app/cli"
	"tracev/internal/app/export"
	"tracev/internal/app/filter"
	"tracev/internal/app/ingest"
	"tracev/internal/app/printer"
	"tracev/internal/app/procstats"
	"tracev/internal/app/runtime"
	"tracev/internal/app/session"
	"tracev/internal/app/store"
	"tracev/internal/app/ui/wire"
	"tracev/internal/app/view"
)

var Module = fx.Options(
	cli.Module,
	runtime.Module,
	store.Module,
	filter.Module,
	view.Module,
	ingest.Module,
	export.Module,
	session.Module,
	procstats.Module,
	printer.Module,
	wire.Module,
	fx.Provide(NewApp),
	fx.Invoke(Register),
)
