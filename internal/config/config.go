package config

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/bjtrainer/internal/game"
)

// DefaultFile is the configuration file read when none is named.
const DefaultFile = "bjtrainer.hcl"

// Config represents the complete trainer configuration
type Config struct {
	Trainer *TrainerSettings `hcl:"trainer,block"`
	UI      *UISettings      `hcl:"ui,block"`
	Log     *LogSettings     `hcl:"log,block"`
}

// TrainerSettings controls dealing and mistake replay
type TrainerSettings struct {
	ReplayAfter  int      `hcl:"replay_after,optional"`
	DealBias     *float64 `hcl:"deal_bias,optional"`
	DealAttempts int      `hcl:"deal_attempts,optional"`
	Seed         int64    `hcl:"seed,optional"` // 0 picks a seed from the clock
}

// UISettings controls the terminal interface
type UISettings struct {
	ReplayNotice string `hcl:"replay_notice,optional"` // "0s" waits for a key
	NoColor      bool   `hcl:"no_color,optional"`
}

// LogSettings controls the log file
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// Default returns the default configuration
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Trainer == nil {
		c.Trainer = &TrainerSettings{}
	}
	if c.UI == nil {
		c.UI = &UISettings{}
	}
	if c.Log == nil {
		c.Log = &LogSettings{}
	}

	if c.Trainer.ReplayAfter == 0 {
		c.Trainer.ReplayAfter = game.DefaultReplayAfter
	}
	if c.Trainer.DealBias == nil {
		bias := game.DefaultDealBias
		c.Trainer.DealBias = &bias
	}
	if c.Trainer.DealAttempts == 0 {
		c.Trainer.DealAttempts = game.DefaultDealAttempts
	}
	if c.UI.ReplayNotice == "" {
		c.UI.ReplayNotice = "2s"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.File == "" {
		c.Log.File = "bjtrainer.log"
	}
}

// Validate validates the trainer configuration
func (c *Config) Validate() error {
	if c.Trainer.ReplayAfter < 1 {
		return fmt.Errorf("replay_after must be positive: %d", c.Trainer.ReplayAfter)
	}
	if bias := *c.Trainer.DealBias; bias < 0 || bias > 1 {
		return fmt.Errorf("deal_bias must be between 0 and 1: %g", bias)
	}
	if c.Trainer.DealAttempts < 1 {
		return fmt.Errorf("deal_attempts must be positive: %d", c.Trainer.DealAttempts)
	}
	d, err := time.ParseDuration(c.UI.ReplayNotice)
	if err != nil {
		return fmt.Errorf("invalid replay_notice: %w", err)
	}
	if d < 0 {
		return fmt.Errorf("replay_notice must not be negative: %s", d)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return nil
}

// ReplayNotice returns how long the replay notice stays up before the round
// starts on its own. Zero means it waits for a key press.
func (c *Config) ReplayNotice() time.Duration {
	d, _ := time.ParseDuration(c.UI.ReplayNotice)
	return d
}

// LogLevel returns the parsed log level, falling back to info.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// EngineOptions returns the engine options the trainer settings describe.
func (c *Config) EngineOptions() []game.EngineOption {
	return []game.EngineOption{
		game.WithReplayAfter(c.Trainer.ReplayAfter),
		game.WithDealBias(*c.Trainer.DealBias, c.Trainer.DealAttempts),
	}
}
