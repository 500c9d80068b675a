package entry

import (
	"strings"
	"time"
)

// ID is the stable identity assigned to an entry at ingestion time.
// Ids start at 1 and strictly increase; they are never reused within a
// store generation.
type ID uint64

// Kind distinguishes fully decoded entries from raw fallbacks
type Kind int

const (
	// Parsed marks an entry whose structured fields were decoded
	Parsed Kind = iota
	// Unparsed marks a fallback entry carrying only the raw line
	Unparsed
)

// Level represents ordered log severity
type Level int8

const (
	LevelUnknown Level = iota
	LevelTrace
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

// Entry is one parsed log record. Raw always holds the original text, for
// both kinds; an Unparsed entry has zero values everywhere else.
type Entry struct {
	ID        ID
	Kind      Kind
	Timestamp time.Time
	Level     Level
	Module    []string
	Message   string
	Fields    map[string]string
	Spans     []string
	Raw       string
}

// ModulePath returns the `::`-joined module path
func (e Entry) ModulePath() string {
	return strings.Join(e.Module, "::")
}

// SplitPath splits a module path into segments. Both `::` and `.` delimiters
// are accepted; `::` wins when present so dotted crate names survive.
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}

	if strings.Contains(path, "::") {
		return strings.Split(path, "::")
	}

	return strings.Split(path, ".")
}

// ParseLevel converts a severity token to a Level
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return LevelTrace
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR", "ERR", "FATAL":
		return LevelError
	default:
		return LevelUnknown
	}
}

// String returns the canonical severity token
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "?????"
	}
}

// Levels lists all known severities in ascending order
func Levels() []Level {
	return []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError}
}
