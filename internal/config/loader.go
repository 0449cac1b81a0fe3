package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Load reads the configuration from viper and returns a Config struct.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if v := viper.GetInt("listen.uci_port"); v != 0 {
		cfg.Listen.UCIPort = v
	}
	if v := viper.GetInt("listen.http_port"); v != 0 {
		cfg.Listen.HTTPPort = v
	}

	cfg.Capture.Enabled = viper.GetBool("capture.enabled")
	if v := viper.GetString("capture.dir"); v != "" {
		cfg.Capture.Dir = v
	}

	if anchorsRaw, ok := viper.Get("world.initial_anchors").([]interface{}); ok {
		cfg.World.InitialAnchors = make([]AnchorConfig, 0, len(anchorsRaw))
		for _, raw := range anchorsRaw {
			m, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			cfg.World.InitialAnchors = append(cfg.World.InitialAnchors, AnchorConfig{
				Mac:   getString(m, "mac"),
				X:     int16(getInt(m, "x")),
				Y:     int16(getInt(m, "y")),
				Z:     int16(getInt(m, "z")),
				Yaw:   getFloat(m, "yaw"),
				Pitch: getFloat(m, "pitch"),
				Roll:  getFloat(m, "roll"),
			})
		}
	}

	if observersRaw, ok := viper.Get("observers").([]interface{}); ok {
		cfg.Observers = make([]ObserverConfig, 0, len(observersRaw))
		for _, raw := range observersRaw {
			m, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			cfg.Observers = append(cfg.Observers, ObserverConfig{
				Type:    getString(m, "type"),
				Enabled: getBool(m, "enabled"),
				Options: m,
			})
		}
	}

	if v := viper.GetString("logging.level"); v != "" {
		cfg.Logging.Level = v
	}
	if v := viper.GetString("logging.format"); v != "" {
		cfg.Logging.Format = v
	}

	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Listen.UCIPort <= 0 || c.Listen.UCIPort > 65535 {
		return fmt.Errorf("listen.uci_port is invalid: %d", c.Listen.UCIPort)
	}
	if c.Listen.HTTPPort <= 0 || c.Listen.HTTPPort > 65535 {
		return fmt.Errorf("listen.http_port is invalid: %d", c.Listen.HTTPPort)
	}
	if c.Listen.UCIPort == c.Listen.HTTPPort {
		return fmt.Errorf("listen.uci_port and listen.http_port must differ")
	}

	if c.Capture.Enabled && c.Capture.Dir == "" {
		return fmt.Errorf("capture.dir is required when capture.enabled is true")
	}

	for i, a := range c.World.InitialAnchors {
		if len(a.Mac) != 4 {
			return fmt.Errorf("world.initial_anchors[%d].mac must be 4 hex digits, got %q", i, a.Mac)
		}
	}

	for i, o := range c.Observers {
		if o.Type == "" {
			return fmt.Errorf("observers[%d].type is required", i)
		}
		switch o.Type {
		case "stdout", "file", "webhook", "mqtt":
			// Valid
		default:
			return fmt.Errorf("observers[%d].type is invalid: %s", i, o.Type)
		}
	}

	return nil
}

// Helper functions

func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func getBool(m map[string]interface{}, key string) bool {
	if v, ok := m[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

func getInt(m map[string]interface{}, key string) int {
	if v, ok := m[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case int64:
			return int(n)
		case float64:
			return int(n)
		}
	}
	return 0
}

func getFloat(m map[string]interface{}, key string) float64 {
	if v, ok := m[key]; ok {
		switch n := v.(type) {
		case float64:
			return n
		case int:
			return float64(n)
		case int64:
			return float64(n)
		}
	}
	return 0
}
