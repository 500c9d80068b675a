package watch

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/looplab/fsm"

	"tracev/internal/app/ingest"
	"tracev/internal/app/runtime"
	"tracev/internal/config"
	"tracev/internal/config/logger"
)

const readChunkSize = 64 * 1024

// Tailer follows one log file and feeds every appended byte through the
// ingestion pipeline. A shrinking file is treated as rotation or truncation
// and resets all ingested state; transient stat/read errors back off
// exponentially and recover without losing the tail position.
type Tailer interface {
	Run(ctx context.Context) error
}

type tailer struct {
	path     string
	cfg      *config.Config
	pipeline ingest.Pipeline
	bus      runtime.EventBus
	machine  *fsm.FSM
	log      logger.Logger

	offset  int64
	backoff time.Duration
}

// NewTailer creates a tailer for the given file path
func NewTailer(
	path string,
	cfg *config.Config,
	p ingest.Pipeline,
	bus runtime.EventBus,
	log logger.Logger,
) Tailer {
	log = log.WithComponent("WATCH")

	return &tailer{
		path:     path,
		cfg:      cfg,
		pipeline: p,
		bus:      bus,
		machine:  newTailFSM(path, bus, log),
		log:      log,
	}
}

// Run reads the existing file content, then blocks following appends until
// the context is cancelled. fsnotify drives wakeups; a poll ticker covers
// filesystems where change notification is unreliable.
func (t *tailer) Run(ctx context.Context) error {
	t.event(ctx, Start)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	// Watch the parent directory: rotation replaces the file inode, and a
	// watch on the old inode would go silent.
	dir := filepath.Dir(t.path)
	if err := fsw.Add(dir); err != nil {
		t.log.Warn().Err(err).Msgf("Directory watch failed, polling only: %s", dir)
	}

	t.check(ctx)

	ticker := time.NewTicker(t.cfg.Watch.Poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.event(ctx, Stop)
			return ctx.Err()
		case event, ok := <-fsw.Events:
			if !ok {
				t.event(ctx, Stop)
				return nil
			}

			if t.isRelevant(event) {
				t.check(ctx)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				t.event(ctx, Stop)
				return nil
			}

			t.log.Error().Err(err).Msg("Watcher error")
		case <-ticker.C:
			t.check(ctx)
		}
	}
}

// isRelevant reports whether an fsnotify event concerns the tailed file
func (t *tailer) isRelevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(t.path) {
		return false
	}

	return event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)
}

// check compares the file size against the last read offset and reacts:
// grown reads the new tail, shrunk resets and rereads from the start
func (t *tailer) check(ctx context.Context) {
	info, err := os.Stat(t.path)
	if err != nil {
		t.fail(ctx, err)
		return
	}

	size := info.Size()

	switch {
	case size < t.offset:
		t.event(ctx, Rotate)
		t.log.Info().Msgf("File shrank (%d → %d bytes), treating as rotation", t.offset, size)

		t.pipeline.HandleReset(t.path)
		t.offset = 0

		if err := t.readFrom(ctx); err != nil {
			t.fail(ctx, err)
			return
		}
	case size > t.offset:
		if err := t.readFrom(ctx); err != nil {
			t.fail(ctx, err)
			return
		}

		t.event(ctx, Data)
	default:
		// No growth since the last check: release a record the reader may
		// still be holding back for continuation joining.
		t.pipeline.HandleIdle()
	}

	t.recover(ctx)
}

// readFrom reads the file from the current offset to EOF, feeding each chunk
// through the pipeline and advancing the offset
func (t *tailer) readFrom(ctx context.Context) error {
	f, err := os.Open(t.path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Seek(t.offset, io.SeekStart); err != nil {
		return err
	}

	buf := make([]byte, readChunkSize)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := f.Read(buf)
		if n > 0 {
			t.pipeline.HandleAppend(buf[:n])
			t.offset += int64(n)
		}

		if err == io.EOF {
			return nil
		}

		if err != nil {
			return err
		}
	}
}

// fail enters the errored state and widens the retry backoff
func (t *tailer) fail(ctx context.Context, err error) {
	if t.backoff == 0 {
		t.backoff = t.cfg.Watch.Backoff
	} else {
		t.backoff *= 2
		if t.backoff > t.cfg.Watch.Cap {
			t.backoff = t.cfg.Watch.Cap
		}
	}

	t.event(ctx, Fail)
	t.log.Warn().Err(err).Msgf("Source unavailable, retrying in %s", t.backoff)

	t.bus.Publish(runtime.Event{
		Type: runtime.EventSourceError,
		Data: runtime.SourceErrorData{Err: err, Retry: t.backoff},
	})

	select {
	case <-ctx.Done():
	case <-time.After(t.backoff):
	}
}

// recover settles back into watching after a successful check
func (t *tailer) recover(ctx context.Context) {
	t.backoff = 0

	if t.machine.Current() != Watching {
		t.event(ctx, Settle)
	}
}

func (t *tailer) event(ctx context.Context, name string) {
	if err := t.machine.Event(ctx, name); err != nil {
		t.log.Debug().Err(err).Msgf("Transition '%s' rejected", name)
	}
}
