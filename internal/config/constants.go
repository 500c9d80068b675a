package config

import "time"

// Application metadata
const (
	AppName = "tracev"
	Version = "0.3.1"
)

// ConfigFile is the optional configuration file read from the working directory
const ConfigFile = "tracev.yaml"

// Default configuration values
const (
	LogLevel  = "info"
	LogFormat = "console"

	DefaultRefresh = 300 * time.Millisecond

	IngestBufferSize = 512

	WatchPoll       = 250 * time.Millisecond
	WatchBackoff    = 500 * time.Millisecond
	WatchBackoffCap = 10 * time.Second
)

// Filter rule states accepted in the config file
const (
	RuleOn  = "on"
	RuleOff = "off"
)
