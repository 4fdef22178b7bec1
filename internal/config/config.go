// Package config loads the mover-service YAML configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root of the configuration file.
type Config struct {
	LogLevel string        `yaml:"log_level"`
	Redis    RedisConfig   `yaml:"redis"`
	Channels ChannelConfig `yaml:"channels"`
	Mover    MoverConfig   `yaml:"mover"`
	GPIO     GPIOConfig    `yaml:"gpio"`
	Serial   SerialConfig  `yaml:"serial"`
}

type RedisConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// ChannelConfig names the Redis channels and keys used on the bus.
type ChannelConfig struct {
	Telemetry       string `yaml:"telemetry"`
	GCSCommands     string `yaml:"gcs_commands"`
	CACommands      string `yaml:"ca_commands"`
	IdentityRequest string `yaml:"identity_request"`
	ModeHash        string `yaml:"mode_hash"`
}

type MoverConfig struct {
	// Testing uses the goal as the avoidance result and skips the identity call.
	Testing         bool          `yaml:"testing"`
	TestPlaneID     int           `yaml:"test_plane_id"`
	PublishInterval time.Duration `yaml:"publish_interval"`
	IdentityTimeout time.Duration `yaml:"identity_timeout"`
}

type GPIOLine struct {
	Chip int `yaml:"chip"`
	Line int `yaml:"line"`
}

type GPIOConfig struct {
	Enabled  bool                `yaml:"enabled"`
	Consumer string              `yaml:"consumer"`
	Lines    map[string]GPIOLine `yaml:"lines"`
}

type SerialConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Device   string `yaml:"device"`
	Baud     int    `yaml:"baud"`
	DataBits int    `yaml:"data_bits"`
	StopBits int    `yaml:"stop_bits"`
	Parity   string `yaml:"parity"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Redis: RedisConfig{
			Host: "127.0.0.1",
			Port: 6379,
		},
		Channels: ChannelConfig{
			Telemetry:       "all-telemetry",
			GCSCommands:     "gcs-commands",
			CACommands:      "ca-commands",
			IdentityRequest: "plane-id:request",
			ModeHash:        "mover",
		},
		Mover: MoverConfig{
			TestPlaneID:     999,
			PublishInterval: 250 * time.Millisecond,
			IdentityTimeout: 10 * time.Second,
		},
		GPIO: GPIOConfig{
			Consumer: "mover-service",
			Lines: map[string]GPIOLine{
				"publish_enable":   {Chip: 2, Line: 12},
				"avoidance_active": {Chip: 2, Line: 13},
			},
		},
		Serial: SerialConfig{
			Device:   "/dev/ttyUSB0",
			Baud:     57600,
			DataBits: 8,
			StopBits: 1,
			Parity:   "none",
		},
	}
}

// Load reads path on top of Default. Fields absent from the file keep their
// default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Mover.PublishInterval <= 0 {
		return fmt.Errorf("mover.publish_interval must be positive, got %s", c.Mover.PublishInterval)
	}
	if c.Mover.IdentityTimeout <= 0 {
		return fmt.Errorf("mover.identity_timeout must be positive, got %s", c.Mover.IdentityTimeout)
	}
	if c.Channels.Telemetry == "" || c.Channels.GCSCommands == "" || c.Channels.CACommands == "" {
		return fmt.Errorf("channel names must not be empty")
	}
	if c.Serial.Enabled {
		switch c.Serial.Parity {
		case "none", "even", "odd":
		default:
			return fmt.Errorf("serial.parity must be none, even or odd, got %q", c.Serial.Parity)
		}
	}
	return nil
}

// RedisAddr returns host:port for the Redis client.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
