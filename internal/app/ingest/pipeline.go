package ingest

import (
	"context"
	"io"

	"tracev/internal/app/entry"
	"tracev/internal/app/export"
	"tracev/internal/app/filter"
	"tracev/internal/app/runtime"
	"tracev/internal/app/store"
	"tracev/internal/app/view"
	"tracev/internal/config/logger"
)

const drainChunkSize = 32 * 1024

// Pipeline is the ingestion path: raw source bytes in, parsed entries
// appended to the store and the view index, notifications out on the bus.
// All methods are called from the single ingestion goroutine.
type Pipeline interface {
	HandleAppend(p []byte)
	HandleIdle()
	HandleEOF(reason string)
	HandleReset(path string)
}

type pipeline struct {
	reader    *LineReader
	parser    *entry.Parser
	store     store.Store
	view      view.Index
	filters   *filter.Set
	selection export.Selection
	bus       runtime.EventBus
	log       logger.Logger
}

// NewPipeline wires the ingestion path for one session
func NewPipeline(
	s store.Store,
	v view.Index,
	f *filter.Set,
	sel export.Selection,
	bus runtime.EventBus,
	log logger.Logger,
) Pipeline {
	return &pipeline{
		reader:    NewLineReader(),
		parser:    entry.NewParser(),
		store:     s,
		view:      v,
		filters:   f,
		selection: sel,
		bus:       bus,
		log:       log.WithComponent("INGEST"),
	}
}

// HandleAppend feeds newly appended source bytes through the reader and
// ingests the completed records
func (p *pipeline) HandleAppend(data []byte) {
	p.ingest(p.reader.Feed(data))
}

// HandleIdle releases the reader's held-back record once the source went
// quiet, so the newest entry does not wait for the next write
func (p *pipeline) HandleIdle() {
	p.ingest(p.reader.Settle())
}

// HandleEOF flushes the final unterminated line of a non-live source and
// announces the end of the stream
func (p *pipeline) HandleEOF(reason string) {
	p.ingest(p.reader.Flush())

	p.bus.Publish(runtime.Event{
		Type:     runtime.EventWatchStopped,
		Data:     runtime.WatchStoppedData{Reason: reason},
		Critical: true,
	})
}

// HandleReset clears all ingested state after a rotation or truncation:
// store, view, selection, span stack and any buffered partial line
func (p *pipeline) HandleReset(path string) {
	p.log.Info().Msgf("Source reset: %s", path)

	p.store.Reset()
	p.reader.Reset()
	p.parser.Reset()
	p.selection.Clear()
	p.view.Recompute()

	p.bus.Publish(runtime.Event{
		Type:     runtime.EventSourceReset,
		Data:     runtime.SourceResetData{Path: path},
		Critical: true,
	})
}

func (p *pipeline) ingest(records []string) {
	if len(records) == 0 {
		return
	}

	filterChanged := false

	for _, rec := range records {
		e := p.parser.Parse(rec)

		if e.Kind == entry.Parsed && p.filters.ObservePath(e.Module) {
			filterChanged = true
		}

		e.ID = p.store.Append(e)
		p.view.AppendIfVisible(e)
	}

	if filterChanged {
		// A startup rule fired for a newly seen module; historical entries
		// must be retested.
		p.view.Recompute()

		p.bus.Publish(runtime.Event{
			Type:     runtime.EventFilterChanged,
			Data:     runtime.FilterChangedData{Generation: p.filters.Generation()},
			Critical: true,
		})
	}

	p.bus.Publish(runtime.Event{
		Type: runtime.EventEntriesAppended,
		Data: runtime.EntriesAppendedData{Count: len(records), Total: p.store.Len()},
	})
}

// Drain reads a non-live source to EOF through the pipeline. Cancellation
// discards any buffered partial line; no partial entry is ever committed.
func Drain(ctx context.Context, src io.Reader, p Pipeline) error {
	buf := make([]byte, drainChunkSize)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := src.Read(buf)
		if n > 0 {
			p.HandleAppend(buf[:n])
		}

		if err == io.EOF {
			p.HandleEOF("end of input")
			return nil
		}

		if err != nil {
			return err
		}
	}
}
