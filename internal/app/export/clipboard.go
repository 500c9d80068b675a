package export

import (
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"tracev/internal/app/errors"
)

// Sink receives exported text
type Sink interface {
	Write(text string) error
}

// clipboard tool candidates, first found wins
var clipboardTools = [][]string{
	{"wl-copy"},
	{"xclip", "-selection", "clipboard"},
	{"xsel", "--clipboard", "--input"},
	{"pbcopy"},
}

type clipboardSink struct {
	lookPath func(file string) (string, error)

	once sync.Once
	argv []string
}

// NewClipboardSink creates a sink backed by the first available system
// clipboard tool. Resolution is lazy so construction never fails on
// headless hosts; Write reports ErrNoClipboard instead.
func NewClipboardSink() Sink {
	return &clipboardSink{
		lookPath: exec.LookPath,
	}
}

func (c *clipboardSink) resolve() {
	for _, tool := range clipboardTools {
		if path, err := c.lookPath(tool[0]); err == nil {
			c.argv = append([]string{path}, tool[1:]...)
			return
		}
	}
}

// Write pipes the text into the resolved clipboard tool
func (c *clipboardSink) Write(text string) error {
	c.once.Do(c.resolve)

	if c.argv == nil {
		return errors.ErrNoClipboard
	}

	cmd := exec.Command(c.argv[0], c.argv[1:]...)
	cmd.Stdin = strings.NewReader(text)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s: %v", errors.ErrNoClipboard, c.argv[0], err)
	}

	return nil
}
