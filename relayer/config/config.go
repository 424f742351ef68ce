// Package config loads daemon configuration from file and environment.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the bridge daemon.
type Config struct {
	// ListenAddr is the REST/websocket/metrics bind address.
	ListenAddr string `mapstructure:"listen_addr"`

	Database DatabaseConfig `mapstructure:"database"`
	Ledger   LedgerConfig   `mapstructure:"ledger"`
	Watcher  WatcherConfig  `mapstructure:"watcher"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// DatabaseConfig selects the KV backend backing the ledger and custodian.
type DatabaseConfig struct {
	Backend string `mapstructure:"backend"`
	Dir     string `mapstructure:"dir"`
}

// LedgerConfig carries the ledger parameters.
type LedgerConfig struct {
	// Owner is the privileged refund authority.
	Owner string `mapstructure:"owner"`

	// TimeLockMultiplier scales caller-supplied lock durations.
	TimeLockMultiplier uint64 `mapstructure:"time_lock_multiplier"`
}

// WatcherConfig configures the counterparty-chain secret watcher.
type WatcherConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	RPCEndpoint     string        `mapstructure:"rpc_endpoint"`
	ContractAddress string        `mapstructure:"contract_address"`
	StartBlock      uint64        `mapstructure:"start_block"`
	PollInterval    time.Duration `mapstructure:"poll_interval"`
	Confirmations   uint64        `mapstructure:"confirmations"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// LoadConfig loads configuration from file and BRIDGE_* environment
// variables. A missing config file is not an error; defaults apply.
func LoadConfig(configPath string) (*Config, error) {
	setDefaults()

	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.bridged")
	}

	viper.SetEnvPrefix("BRIDGE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return config, nil
}

func setDefaults() {
	viper.SetDefault("listen_addr", "127.0.0.1:8545")
	viper.SetDefault("database.backend", "goleveldb")
	viper.SetDefault("database.dir", "data")
	viper.SetDefault("ledger.time_lock_multiplier", 1)
	viper.SetDefault("watcher.enabled", false)
	viper.SetDefault("watcher.poll_interval", "10s")
	viper.SetDefault("watcher.confirmations", 6)
	viper.SetDefault("logging.level", "info")
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen_addr is required")
	}
	if c.Database.Backend == "" {
		return fmt.Errorf("database.backend is required")
	}
	if c.Ledger.TimeLockMultiplier == 0 {
		return fmt.Errorf("ledger.time_lock_multiplier must be at least 1")
	}
	if c.Watcher.Enabled {
		if c.Watcher.RPCEndpoint == "" {
			return fmt.Errorf("watcher.rpc_endpoint is required when the watcher is enabled")
		}
		if c.Watcher.ContractAddress == "" {
			return fmt.Errorf("watcher.contract_address is required when the watcher is enabled")
		}
		if c.Watcher.PollInterval <= 0 {
			return fmt.Errorf("watcher.poll_interval must be positive")
		}
	}
	return nil
}
