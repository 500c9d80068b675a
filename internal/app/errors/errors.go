package errors

import (
	"errors"
)

var (
	ErrFailedToReadConfig  = errors.New("failed to read config file")
	ErrFailedToParseConfig = errors.New("failed to parse config file")
	ErrInvalidConfig       = errors.New("invalid configuration")

	ErrInvalidRefresh      = errors.New("refresh interval must be positive")
	ErrInvalidIngestBuffer = errors.New("ingest buffer must be positive")
	ErrInvalidWatchPoll    = errors.New("watch poll interval must be positive")
	ErrInvalidWatchBackoff = errors.New("watch backoff must be positive and not exceed its cap")
	ErrInvalidFilterState  = errors.New("filter rule state must be 'on' or 'off'")
	ErrInvalidFilterRule   = errors.New("invalid filter rule pattern")

	ErrNotFound          = errors.New("entry not found")
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrInputNotFound     = errors.New("input file does not exist")

	ErrNoClipboard    = errors.New("no clipboard command available")
	ErrNothingToCopy  = errors.New("selection is empty")
	ErrSessionStarted = errors.New("session already started")
)

var (
	Is  = errors.Is
	As  = errors.As
	New = errors.New
)
