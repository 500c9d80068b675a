package entry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Parser_Parse_PlainLine(t *testing.T) {
	p := NewParser()

	e := p.Parse("2024-03-01T10:15:30.123Z INFO db::pool: acquired connection")

	require.Equal(t, Parsed, e.Kind)
	assert.Equal(t, LevelInfo, e.Level)
	assert.Equal(t, []string{"db", "pool"}, e.Module)
	assert.Equal(t, "acquired connection", e.Message)
	assert.Equal(t, "2024-03-01T10:15:30.123Z INFO db::pool: acquired connection", e.Raw)
	assert.Equal(t, 2024, e.Timestamp.Year())
}

func Test_Parser_Parse_TrailingFields(t *testing.T) {
	p := NewParser()

	e := p.Parse("2024-03-01T10:15:30Z DEBUG http::server: request done status=200 elapsed_ms=12")

	require.Equal(t, Parsed, e.Kind)
	assert.Equal(t, "request done", e.Message)
	assert.Equal(t, map[string]string{"status": "200", "elapsed_ms": "12"}, e.Fields)
}

func Test_Parser_Parse_DottedModulePath(t *testing.T) {
	p := NewParser()

	e := p.Parse("2024-03-01T10:15:30Z WARN app.cache.lru: eviction pressure")

	require.Equal(t, Parsed, e.Kind)
	assert.Equal(t, []string{"app", "cache", "lru"}, e.Module)
}

func Test_Parser_Parse_MultiLineRecord(t *testing.T) {
	p := NewParser()

	e := p.Parse("2024-03-01T10:15:30Z ERROR db::pool: query failed\n  at db/pool.go:42\n\tat db/conn.go:17")

	require.Equal(t, Parsed, e.Kind)
	assert.Equal(t, LevelError, e.Level)
	assert.Equal(t, "query failed\n  at db/pool.go:42\n\tat db/conn.go:17", e.Message)
}

func Test_Parser_Parse_MalformedLine_FallsBackToRaw(t *testing.T) {
	p := NewParser()

	for _, raw := range []string{
		"not a log line at all",
		"panic: runtime error: index out of range",
		"   leading whitespace garbage",
	} {
		e := p.Parse(raw)

		assert.Equal(t, Unparsed, e.Kind)
		assert.Equal(t, raw, e.Raw)
		assert.Empty(t, e.Module)
		assert.Empty(t, e.Message)
	}
}

func Test_Parser_SpanStack_EnterAndExit(t *testing.T) {
	p := NewParser()

	enter := p.Parse("2024-03-01T10:15:30Z TRACE request{id=7}: http::server: enter")
	require.Equal(t, Parsed, enter.Kind)
	assert.Equal(t, []string{"request"}, enter.Spans)

	inside := p.Parse("2024-03-01T10:15:31Z INFO http::server: handling")
	assert.Equal(t, []string{"request"}, inside.Spans)

	exit := p.Parse("2024-03-01T10:15:32Z TRACE request{id=7}: http::server: exit")
	assert.Equal(t, []string{"request"}, exit.Spans, "exit record still shows the span it leaves")

	after := p.Parse("2024-03-01T10:15:33Z INFO http::server: idle")
	assert.Empty(t, after.Spans)
}

func Test_Parser_SpanStack_Nested(t *testing.T) {
	p := NewParser()

	p.Parse("2024-03-01T10:15:30Z TRACE request: http: enter")
	p.Parse("2024-03-01T10:15:30Z TRACE query: db: enter")

	inside := p.Parse("2024-03-01T10:15:31Z DEBUG db::pool: executing")
	assert.Equal(t, []string{"request", "query"}, inside.Spans)

	p.Parse("2024-03-01T10:15:32Z TRACE query: db: close")

	outer := p.Parse("2024-03-01T10:15:33Z INFO http: responding")
	assert.Equal(t, []string{"request"}, outer.Spans)
}

func Test_Parser_Reset_ClearsSpanStack(t *testing.T) {
	p := NewParser()

	p.Parse("2024-03-01T10:15:30Z TRACE request: http: enter")
	p.Reset()

	e := p.Parse("2024-03-01T10:15:31Z INFO http: after reset")
	assert.Empty(t, e.Spans)
}

func Test_Parser_Parse_Timestamp_WithOffset(t *testing.T) {
	p := NewParser()

	e := p.Parse("2024-03-01T10:15:30+02:00 ERROR db: connection lost")

	require.Equal(t, Parsed, e.Kind)
	assert.Equal(t, LevelError, e.Level)
	assert.False(t, e.Timestamp.IsZero())

	_, offset := e.Timestamp.Zone()
	assert.Equal(t, 2*60*60, offset)
}

func Test_ParseLevel_KnownAndUnknown(t *testing.T) {
	assert.Equal(t, LevelTrace, ParseLevel("TRACE"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel("FATAL"))
	assert.Equal(t, LevelUnknown, ParseLevel("NOISE"))
}

func Test_SplitPath_DelimiterPrecedence(t *testing.T) {
	assert.Equal(t, []string{"a", "b.c"}, SplitPath("a::b.c"), ":: wins over .")
	assert.Equal(t, []string{"a", "b", "c"}, SplitPath("a.b.c"))
	assert.Nil(t, SplitPath(""))
}

func Test_Entry_ModulePath_RoundTrip(t *testing.T) {
	e := Entry{Module: []string{"db", "pool"}, Timestamp: time.Now()}

	assert.Equal(t, "db::pool", e.ModulePath())
	assert.Equal(t, e.Module, SplitPath(e.ModulePath()))
}
