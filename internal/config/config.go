// Package config provides configuration types and loading for the emulator.
package config

import "time"

// Config represents the complete application configuration.
type Config struct {
	Listen    ListenConfig     `mapstructure:"listen"`
	Capture   CaptureConfig    `mapstructure:"capture"`
	World     WorldConfig      `mapstructure:"world"`
	Observers []ObserverConfig `mapstructure:"observers"`
	Logging   LoggingConfig    `mapstructure:"logging"`
}

// ListenConfig defines the two listeners the emulator exposes: the UCI
// TCP port devices connect to, and the HTTP port serving the
// control/observer plane.
type ListenConfig struct {
	UCIPort  int `mapstructure:"uci_port"`
	HTTPPort int `mapstructure:"http_port"`
}

// CaptureConfig controls the pcapng tee of every UCI PDU.
type CaptureConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

// WorldConfig seeds the world with anchors present before any device
// connects.
type WorldConfig struct {
	InitialAnchors []AnchorConfig `mapstructure:"initial_anchors"`
}

// AnchorConfig places one fixed anchor at startup. Mac is a 4-hex-digit
// short MAC ("AABB"); orientation is yaw/pitch/roll in degrees.
type AnchorConfig struct {
	Mac   string  `mapstructure:"mac"`
	X     int16   `mapstructure:"x"`
	Y     int16   `mapstructure:"y"`
	Z     int16   `mapstructure:"z"`
	Yaw   float64 `mapstructure:"yaw"`
	Pitch float64 `mapstructure:"pitch"`
	Roll  float64 `mapstructure:"roll"`
}

// ObserverConfig defines a single event sink destination.
type ObserverConfig struct {
	Type    string                 `mapstructure:"type"` // stdout, file, webhook, mqtt
	Enabled bool                   `mapstructure:"enabled"`
	Options map[string]interface{} `mapstructure:",remain"`
}

// FileObserverConfig defines file sink settings.
type FileObserverConfig struct {
	Path       string `mapstructure:"path"`
	Rotate     bool   `mapstructure:"rotate"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// WebhookObserverConfig defines webhook sink settings.
type WebhookObserverConfig struct {
	URL     string            `mapstructure:"url"`
	Method  string            `mapstructure:"method"`
	Headers map[string]string `mapstructure:"headers"`
	Timeout time.Duration     `mapstructure:"timeout"`
}

// MQTTObserverConfig defines MQTT publish sink settings.
type MQTTObserverConfig struct {
	Broker   string `mapstructure:"broker"`
	Topic    string `mapstructure:"topic"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	ClientID string `mapstructure:"client_id"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Listen: ListenConfig{
			UCIPort:  7000,
			HTTPPort: 8080,
		},
		Capture: CaptureConfig{
			Enabled: false,
			Dir:     "./captures",
		},
		World: WorldConfig{
			InitialAnchors: []AnchorConfig{},
		},
		Observers: []ObserverConfig{
			{
				Type:    "stdout",
				Enabled: true,
				Options: map[string]interface{}{
					"format": "json",
				},
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
