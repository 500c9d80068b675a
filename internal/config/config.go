package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"tracev/internal/app/errors"
)

// Config represents the application configuration
type Config struct {
	Input   string        `yaml:"input"`
	Follow  bool          `yaml:"follow"`
	Refresh time.Duration `yaml:"refresh"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		File   string `yaml:"file"`
	}
	Ingest struct {
		Buffer int `yaml:"buffer"`
	}
	Watch struct {
		Poll    time.Duration `yaml:"poll"`
		Backoff time.Duration `yaml:"backoff"`
		Cap     time.Duration `yaml:"cap"`
	}
	Rules []FilterRule
}

// FilterRule is one ordered module-visibility rule from the config file.
// Patterns are glob expressions over `::`-joined module paths; when several
// rules match the same path the last one in document order wins.
type FilterRule struct {
	Pattern string
	Enabled bool
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	cfg := &Config{
		Follow:  true,
		Refresh: DefaultRefresh,
	}

	cfg.Logging.Level = LogLevel
	cfg.Logging.Format = LogFormat

	cfg.Ingest.Buffer = IngestBufferSize

	cfg.Watch.Poll = WatchPoll
	cfg.Watch.Backoff = WatchBackoff
	cfg.Watch.Cap = WatchBackoffCap

	return cfg
}

// Load loads the configuration from ConfigFile in the working directory,
// falling back to defaults when the file does not exist
func Load() (*Config, error) {
	return LoadFile(ConfigFile)
}

// LoadFile loads the configuration from the given path
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}

		return nil, errors.ErrFailedToReadConfig
	}

	rules, err := parseRuleOrder(data)
	if err != nil {
		return nil, errors.ErrFailedToParseConfig
	}

	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, errors.ErrFailedToReadConfig
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.ErrFailedToParseConfig
	}

	cfg.Rules = rules

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}

	return cfg, nil
}

// parseRuleOrder extracts the `filters` mapping from the raw document.
// Viper hands back an unordered map, so the rules are re-read from the yaml
// node tree to preserve document order.
func parseRuleOrder(data []byte) ([]FilterRule, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, nil
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, nil
	}

	var rules []FilterRule

	for i := 0; i < len(doc.Content); i += 2 {
		key := doc.Content[i]
		value := doc.Content[i+1]

		if key.Value != "filters" || value.Kind != yaml.MappingNode {
			continue
		}

		for j := 0; j < len(value.Content); j += 2 {
			pattern := value.Content[j].Value
			state := value.Content[j+1].Value

			enabled, err := parseRuleState(state)
			if err != nil {
				return nil, err
			}

			rules = append(rules, FilterRule{Pattern: pattern, Enabled: enabled})
		}
	}

	return rules, nil
}

// parseRuleState converts a rule value to a visibility flag
func parseRuleState(state string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(state)) {
	case RuleOn, "true", "enabled":
		return true, nil
	case RuleOff, "false", "disabled":
		return false, nil
	default:
		return false, fmt.Errorf("%w: '%s'", errors.ErrInvalidFilterState, state)
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Refresh <= 0 {
		return errors.ErrInvalidRefresh
	}

	if c.Ingest.Buffer <= 0 {
		return errors.ErrInvalidIngestBuffer
	}

	if c.Watch.Poll <= 0 {
		return errors.ErrInvalidWatchPoll
	}

	if c.Watch.Backoff <= 0 || c.Watch.Cap < c.Watch.Backoff {
		return errors.ErrInvalidWatchBackoff
	}

	return nil
}
