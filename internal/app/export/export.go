package export

import (
	"strings"

	"tracev/internal/app/errors"
	"tracev/internal/app/store"
	"tracev/internal/app/view"
	"tracev/internal/config/logger"
)

// Exporter renders the selected entries as plain text and hands them to the
// system clipboard. Output order is view order, not selection order, so
// copied text reads like the log does on screen.
type Exporter interface {
	Export() (string, error)
	Copy() (int, error)
}

type exporter struct {
	store     store.Store
	view      view.Index
	selection Selection
	sink      Sink
	log       logger.Logger
}

// NewExporter creates an exporter over the default clipboard sink
func NewExporter(
	s store.Store,
	v view.Index,
	sel Selection,
	log logger.Logger,
) Exporter {
	return NewExporterWithSink(s, v, sel, NewClipboardSink(), log)
}

// NewExporterWithSink creates an exporter writing to the given sink
func NewExporterWithSink(
	s store.Store,
	v view.Index,
	sel Selection,
	sink Sink,
	log logger.Logger,
) Exporter {
	return &exporter{
		store:     s,
		view:      v,
		selection: sel,
		sink:      sink,
		log:       log.WithComponent("EXPORT"),
	}
}

// Export builds the export text: the raw lines of every id that is both
// selected and still visible, in view order. Ids the store no longer knows
// are skipped.
func (x *exporter) Export() (string, error) {
	var lines []string

	for _, id := range x.view.IDs() {
		if !x.selection.Has(id) {
			continue
		}

		e, err := x.store.Get(id)
		if err != nil {
			continue
		}

		lines = append(lines, e.Raw)
	}

	if len(lines) == 0 {
		return "", errors.ErrNothingToCopy
	}

	return strings.Join(lines, "\n") + "\n", nil
}

// Copy exports the selection to the clipboard and returns the number of
// copied lines
func (x *exporter) Copy() (int, error) {
	text, err := x.Export()
	if err != nil {
		return 0, err
	}

	if err := x.sink.Write(text); err != nil {
		x.log.Error().Err(err).Msg("Clipboard write failed")
		return 0, err
	}

	n := strings.Count(text, "\n")
	x.log.Info().Msgf("Copied %d entries to clipboard", n)

	return n, nil
}
