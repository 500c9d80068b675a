package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_LineReader_Feed_CompleteLines(t *testing.T) {
	r := NewLineReader()

	assert.Equal(t, []string{"one"}, r.Feed([]byte("one\ntwo\n")))
	assert.Equal(t, []string{"two"}, r.Settle(), "the newest record is released once the source is quiet")
}

func Test_LineReader_Feed_BuffersPartialLine(t *testing.T) {
	r := NewLineReader()

	assert.Empty(t, r.Feed([]byte("first\nsecond part")))

	assert.Equal(t, []string{"first"}, r.Feed([]byte("ial\n")))
	assert.Equal(t, []string{"second partial"}, r.Settle())
}

func Test_LineReader_Feed_JoinsContinuationLines(t *testing.T) {
	r := NewLineReader()

	records := r.Feed([]byte("ERROR something failed\n  at layer one\n\tat layer two\nnext record\n"))

	assert.Equal(t, []string{"ERROR something failed\n  at layer one\n\tat layer two"}, records)
	assert.Equal(t, []string{"next record"}, r.Settle())
}

func Test_LineReader_Feed_JoinsContinuationAcrossFeeds(t *testing.T) {
	r := NewLineReader()

	assert.Empty(t, r.Feed([]byte("ERROR boom\n")))
	assert.Empty(t, r.Feed([]byte("  at layer one\n")))
	assert.Empty(t, r.Feed([]byte("\tat layer two\n")))

	records := r.Feed([]byte("next record\n"))

	assert.Equal(t, []string{"ERROR boom\n  at layer one\n\tat layer two"}, records,
		"a record split across reads is reassembled")
	assert.Equal(t, []string{"next record"}, r.Settle())
}

func Test_LineReader_Feed_ContinuationWithoutHeadStandsAlone(t *testing.T) {
	r := NewLineReader()

	assert.Empty(t, r.Feed([]byte("  dangling continuation\n")))
	assert.Equal(t, []string{"  dangling continuation"}, r.Settle())
}

func Test_LineReader_Feed_SkipsBlankLinesAndCR(t *testing.T) {
	r := NewLineReader()

	assert.Equal(t, []string{"one"}, r.Feed([]byte("one\r\n\n   \ntwo\r\n")))
	assert.Equal(t, []string{"two"}, r.Settle())
}

func Test_LineReader_Settle_KeepsPartialBuffered(t *testing.T) {
	r := NewLineReader()

	r.Feed([]byte("complete\npart"))

	assert.Equal(t, []string{"complete"}, r.Settle())
	assert.Empty(t, r.Settle(), "settle is idempotent")

	assert.Empty(t, r.Feed([]byte("ial\n")))
	assert.Equal(t, []string{"partial"}, r.Settle())
}

func Test_LineReader_Flush_EmitsHeldAndPartial(t *testing.T) {
	r := NewLineReader()

	r.Feed([]byte("done\nunterminated"))

	assert.Equal(t, []string{"done", "unterminated"}, r.Flush())
	assert.Empty(t, r.Flush(), "flush drains the buffers")
}

func Test_LineReader_Flush_JoinsContinuationPartial(t *testing.T) {
	r := NewLineReader()

	r.Feed([]byte("ERROR boom\n  at la"))

	assert.Equal(t, []string{"ERROR boom\n  at la"}, r.Flush())
}

func Test_LineReader_Reset_DiscardsHeldAndPartial(t *testing.T) {
	r := NewLineReader()

	r.Feed([]byte("held record\nhalf a li"))
	r.Reset()

	assert.Empty(t, r.Feed([]byte("fresh\n")))
	assert.Equal(t, []string{"fresh"}, r.Settle())
}
