package config

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	DEFAULT_DIFFICULTY = 2
	DEFAULT_REWARD     = 100
	DEFAULT_CURRENCY   = "COIN"
)

// This is the global app config for the ledger.
type AppConfig struct {
	// How many leading hex 0s form a valid hash.
	Difficulty int `yaml:"difficulty"`
	// The reward paid to the miner of every block.
	Reward int64 `yaml:"reward"`
	// The only currency a ledger accepts.
	Currency string `yaml:"currency"`
	// Number of simulated nodes.
	Nodes int `yaml:"nodes"`
	// Interval between two simulated mining rounds.
	MineIntervalMs int `yaml:"mine_interval_ms"`
	// Address the full node serves gRPC on.
	ListenAddr string `yaml:"listen_addr"`
	Log        LogConfig `yaml:"log"`
}

type LogConfig struct {
	// debug, info, warn or error.
	Level string `yaml:"level"`
	// Rotated log file. Logs go to stderr when empty.
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

func Default() AppConfig {
	return AppConfig{
		Difficulty:     DEFAULT_DIFFICULTY,
		Reward:         DEFAULT_REWARD,
		Currency:       DEFAULT_CURRENCY,
		Nodes:          3,
		MineIntervalMs: 200,
		ListenAddr:     "localhost:10000",
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}
}

// Validate rejects configs the ledger cannot run with.
func (c AppConfig) Validate() error {
	if c.Difficulty < 0 {
		return errors.Errorf("difficulty must not be negative, got %d", c.Difficulty)
	}
	if c.Reward <= 0 {
		return errors.Errorf("reward must be positive, got %d", c.Reward)
	}
	if c.Currency == "" {
		return errors.New("currency is missing")
	}
	if c.Nodes <= 0 {
		return errors.Errorf("need at least one node, got %d", c.Nodes)
	}
	if c.MineIntervalMs <= 0 {
		return errors.Errorf("mine interval must be positive, got %d", c.MineIntervalMs)
	}
	return nil
}

// Load reads a yaml config. Keys missing from the file keep their default value.
func Load(path string) (AppConfig, error) {
	c := Default()
	yamlFile, err := ioutil.ReadFile(path)
	if err != nil {
		return AppConfig{}, errors.Wrapf(err, "read config %s", path)
	}
	err = yaml.Unmarshal(yamlFile, &c)
	if err != nil {
		return AppConfig{}, errors.Wrapf(err, "unmarshal config %s", path)
	}
	if err := c.Validate(); err != nil {
		return AppConfig{}, errors.Wrapf(err, "invalid config %s", path)
	}
	return c, nil
}
