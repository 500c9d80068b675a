package entry

import (
	"regexp"
	"strings"
	"time"
)

const (
	tsPattern     = `\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:\d{2})?`
	levelPattern  = `[A-Z]+`
	scopePattern  = `[\w-]+`
	targetPattern = `[A-Za-z_][\w:.]*`
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
}

// Span scope markers emitted by tracing-style sources as separate control
// records. They mutate the parser's running span stack instead of carrying
// payload of their own.
const (
	markEnter = "enter"
	markNew   = "new"
	markExit  = "exit"
	markClose = "close"
)

var fieldRe = regexp.MustCompile(`^[A-Za-z_][\w.]*=\S+$`)

// Parser converts one raw record into exactly one Entry. It is not safe for
// concurrent use; the ingestion pipeline owns a single instance.
type Parser struct {
	scopedRe *regexp.Regexp
	plainRe  *regexp.Regexp
	stack    []string
}

// NewParser creates a parser with an empty span stack
func NewParser() *Parser {
	return &Parser{
		// timestamp level scope{...}: target: message
		// The message group is dotall: continuation lines re-joined by the
		// line reader keep the record parseable.
		scopedRe: regexp.MustCompile(
			`^(` + tsPattern + `)\s+(` + levelPattern + `)\s+(` + scopePattern + `)(?:\{[^}]*\})?:\s+(` + targetPattern + `):\s?((?s).*)$`,
		),
		// timestamp level target: message
		plainRe: regexp.MustCompile(
			`^(` + tsPattern + `)\s+(` + levelPattern + `)\s+(` + targetPattern + `):\s?((?s).*)$`,
		),
	}
}

// Parse decodes one record. Decode failures never propagate: any line that
// does not match the structured format comes back as an Unparsed entry with
// Raw populated, so one bad line cannot stall ingestion.
func (p *Parser) Parse(raw string) Entry {
	var ts, level, scope, target, message string

	if m := p.scopedRe.FindStringSubmatch(raw); m != nil {
		ts, level, scope, target, message = m[1], m[2], m[3], m[4], m[5]
	} else if m := p.plainRe.FindStringSubmatch(raw); m != nil {
		ts, level, target, message = m[1], m[2], m[3], m[4]
	} else {
		return Entry{Kind: Unparsed, Raw: raw}
	}

	e := Entry{
		Kind:   Parsed,
		Level:  ParseLevel(level),
		Module: SplitPath(target),
		Raw:    raw,
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			e.Timestamp = t
			break
		}
	}

	e.Message, e.Fields = splitFields(message)
	e.Spans = p.applySpanMarker(scope, e.Message)

	return e
}

// Reset clears the span stack. Called when the source is rotated or
// truncated: a new stream has no live spans.
func (p *Parser) Reset() {
	p.stack = nil
}

// applySpanMarker mutates the span stack for control records and returns the
// stack snapshot for the entry. Enter records include the entered span; exit
// records still show the span they are leaving.
func (p *Parser) applySpanMarker(scope, message string) []string {
	switch message {
	case markEnter, markNew:
		if scope != "" && (len(p.stack) == 0 || p.stack[len(p.stack)-1] != scope) {
			p.stack = append(p.stack, scope)
		}

		return p.snapshot()
	case markExit, markClose:
		snap := p.snapshot()

		if scope != "" && len(p.stack) > 0 && p.stack[len(p.stack)-1] == scope {
			p.stack = p.stack[:len(p.stack)-1]
		}

		return snap
	default:
		return p.snapshot()
	}
}

func (p *Parser) snapshot() []string {
	if len(p.stack) == 0 {
		return nil
	}

	snap := make([]string, len(p.stack))
	copy(snap, p.stack)

	return snap
}

// splitFields strips trailing `key=value` tokens off the message and returns
// them as a field map, preserving the remaining message text verbatim.
func splitFields(message string) (string, map[string]string) {
	words := strings.Split(message, " ")

	split := len(words)
	for split > 0 && fieldRe.MatchString(words[split-1]) {
		split--
	}

	if split == len(words) {
		return message, nil
	}

	fields := make(map[string]string, len(words)-split)

	for _, w := range words[split:] {
		k, v, _ := strings.Cut(w, "=")
		fields[k] = v
	}

	return strings.TrimRight(strings.Join(words[:split], " "), " "), fields
}
