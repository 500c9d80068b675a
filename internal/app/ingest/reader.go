package ingest

import (
	"bytes"
	"strings"
)

// LineReader assembles complete records from an incoming byte stream. It
// carries a partial-line buffer across reads and re-joins continuation
// lines (leading whitespace, e.g. embedded stack traces) with the record
// they belong to, so the parser never sees a line fragment.
//
// The newest complete record is held back until the next line shows it is
// not a continuation head, so a multi-line record straddling two reads
// still joins. Settle emits the held record when the source goes quiet;
// Flush emits everything at end of input.
type LineReader struct {
	partial []byte
	pending string
	has     bool
}

// NewLineReader creates an empty reader
func NewLineReader() *LineReader {
	return &LineReader{}
}

// Feed consumes a chunk of source bytes and returns the complete records it
// finishes. An unterminated trailing line stays buffered for the next call.
func (r *LineReader) Feed(p []byte) []string {
	data := append(r.partial, p...)

	var records []string

	for {
		idx := bytes.IndexByte(data, '\n')
		if idx < 0 {
			break
		}

		line := strings.TrimRight(string(data[:idx]), "\r")
		data = data[idx+1:]

		if strings.TrimSpace(line) == "" {
			continue
		}

		if r.has && isContinuation(line) {
			r.pending += "\n" + line
			continue
		}

		if r.has {
			records = append(records, r.pending)
		}

		r.pending = line
		r.has = true
	}

	r.partial = append([]byte(nil), data...)

	return records
}

// Settle emits the held-back record once no more data followed it. The
// unterminated partial line stays buffered.
func (r *LineReader) Settle() []string {
	if !r.has {
		return nil
	}

	records := []string{r.pending}
	r.pending, r.has = "", false

	return records
}

// Flush emits the held record and the buffered partial line as final
// records. Only called at end-of-input of a non-live source; on shutdown or
// rotation the buffers are discarded via Reset instead.
func (r *LineReader) Flush() []string {
	var records []string

	line := strings.TrimRight(string(r.partial), "\r")
	r.partial = nil

	if strings.TrimSpace(line) != "" {
		if r.has && isContinuation(line) {
			r.pending += "\n" + line
		} else {
			if r.has {
				records = append(records, r.pending)
			}

			r.pending = line
			r.has = true
		}
	}

	if r.has {
		records = append(records, r.pending)
		r.pending, r.has = "", false
	}

	return records
}

// Reset discards the held record and any buffered partial line
func (r *LineReader) Reset() {
	r.partial = nil
	r.pending = ""
	r.has = false
}

// isContinuation reports whether a physical line belongs to the preceding
// record
func isContinuation(line string) bool {
	return line[0] == ' ' || line[0] == '\t'
}
