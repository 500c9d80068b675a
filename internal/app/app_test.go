package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tracev/internal/app/errors"
	"tracev/internal/config"
	"tracev/internal/config/logger"
)

type stubCLI struct {
	code int
	err  error
}

func (s *stubCLI) Execute() (int, error) {
	return s.code, s.err
}

func Test_App_Execute_PropagatesExitCode(t *testing.T) {
	log := logger.NewSilentLogger(config.DefaultConfig())

	app := NewApp(&stubCLI{code: 0}, log)
	assert.Equal(t, 0, app.execute())

	app = NewApp(&stubCLI{code: 1, err: errors.ErrInputNotFound}, log)
	assert.Equal(t, 1, app.execute(), "a failed run keeps the CLI's exit code")
}
