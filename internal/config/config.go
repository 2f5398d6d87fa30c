package config

import (
	"fmt"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	MAVLink MAVLinkConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host           string
	DebugPort      int    // HTTP port serving /metrics and /healthz
	CameraInfoPath string // path to the camera identity/video-stream YAML file
}

type MAVLinkConfig struct {
	UDPEndpoint string // address:port gomavlib listens on, e.g. ":14030"
	SystemID    uint8
	ComponentID uint8 // defaults to MAV_COMP_ID_CAMERA (100)
}

type LoggingConfig struct {
	Level  string // "debug", "info", "warn", "error"
	Format string // "json", "text"
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			DebugPort:      8080,
			CameraInfoPath: "./data/config/camera.yaml",
		},
		MAVLink: MAVLinkConfig{
			UDPEndpoint: ":14030",
			SystemID:    1,
			ComponentID: 100, // MAV_COMP_ID_CAMERA
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.DebugPort < 1 || c.Server.DebugPort > 65535 {
		return fmt.Errorf("invalid debug port: %d", c.Server.DebugPort)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.MAVLink.ComponentID == 0 {
		return fmt.Errorf("invalid MAVLink component id: %d", c.MAVLink.ComponentID)
	}

	return nil
}

// DebugAddr returns the debug HTTP listener address as host:port.
func (c *Config) DebugAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.DebugPort)
}
