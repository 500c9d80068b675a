package printer

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"

	"tracev/internal/app/entry"
	"tracev/internal/app/runtime"
	"tracev/internal/app/store"
	"tracev/internal/app/ui/components"
	"tracev/internal/app/view"
	"tracev/internal/config"
	"tracev/internal/config/logger"
)

const timestampLayout = "15:04:05.000"

// Printer streams filtered entries to stdout, for piping and headless runs.
// Filtering follows the same view index as the TUI; entries hidden at append
// time are never printed.
type Printer interface {
	Run(ctx context.Context) error
}

type printer struct {
	cfg   *config.Config
	store store.Store
	view  view.Index
	bus   runtime.EventBus
	log   logger.Logger

	lastID entry.ID
	width  int
}

// NewPrinter creates a printer over the view index
func NewPrinter(
	cfg *config.Config,
	s store.Store,
	v view.Index,
	bus runtime.EventBus,
	log logger.Logger,
) Printer {
	return &printer{
		cfg:   cfg,
		store: s,
		view:  v,
		bus:   bus,
		log:   log.WithComponent("PRINT"),
	}
}

// Run prints entries as they become visible until the source ends or the
// context is cancelled
func (p *printer) Run(ctx context.Context) error {
	p.width = terminalWidth()
	p.banner()

	eventCh := p.bus.Subscribe(ctx)

	for {
		select {
		case <-ctx.Done():
			p.flush()
			return ctx.Err()
		case event, ok := <-eventCh:
			if !ok {
				p.flush()
				return nil
			}

			switch event.Type {
			case runtime.EventEntriesAppended, runtime.EventFilterChanged:
				p.flush()
			case runtime.EventSourceReset:
				p.lastID = 0
				fmt.Println(components.RawStyle.Render("--- source reset ---"))
			case runtime.EventSourceError:
				if data, ok := event.Data.(runtime.SourceErrorData); ok {
					fmt.Fprintf(os.Stderr, "source error: %v (retry in %s)\n", data.Err, data.Retry)
				}
			case runtime.EventWatchStopped:
				p.flush()
				return nil
			}
		}
	}
}

// banner prints a one-line header naming the source
func (p *printer) banner() {
	source := p.cfg.Input
	if source == "" {
		source = "stdin"
	}

	header := fmt.Sprintf("%s %s - %s", config.AppName, config.Version, source)
	rule := strings.Repeat("─", min(p.width, lipgloss.Width(header)))

	fmt.Println(components.TimestampStyle.Render(header))
	fmt.Println(components.TimestampStyle.Render(rule))
}

// flush prints every visible entry appended since the last flush
func (p *printer) flush() {
	for _, id := range p.view.IDs() {
		if id <= p.lastID {
			continue
		}

		e, err := p.store.Get(id)
		if err != nil {
			continue
		}

		fmt.Println(p.format(e))
		p.lastID = id
	}
}

// format renders one entry for the terminal
func (p *printer) format(e entry.Entry) string {
	if e.Kind == entry.Unparsed {
		return components.RawStyle.Render(e.Raw)
	}

	var b strings.Builder

	if !e.Timestamp.IsZero() {
		b.WriteString(components.TimestampStyle.Render(e.Timestamp.Format(timestampLayout)))
		b.WriteString(" ")
	}

	levelStyle := lipgloss.NewStyle().Foreground(components.LevelColor(e.Level)).Bold(true)
	b.WriteString(levelStyle.Render(fmt.Sprintf("%-5s", e.Level.String())))
	b.WriteString(" ")

	if len(e.Spans) > 0 {
		b.WriteString(components.SpanStyle.Render(strings.Join(e.Spans, ">") + ":"))
		b.WriteString(" ")
	}

	if path := e.ModulePath(); path != "" {
		moduleStyle := lipgloss.NewStyle().Foreground(components.ModuleColor(path)).Bold(true)
		b.WriteString(moduleStyle.Render(path + ":"))
		b.WriteString(" ")
	}

	b.WriteString(e.Message)

	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		for _, k := range keys {
			b.WriteString(" ")
			b.WriteString(components.FieldStyle.Render(k + "=" + e.Fields[k]))
		}
	}

	return b.String()
}

// terminalWidth returns the stdout width, with a sane fallback for pipes
func terminalWidth() int {
	width, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || width < 40 {
		return components.DefaultViewportWidth
	}

	return width
}
