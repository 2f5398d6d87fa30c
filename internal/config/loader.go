package config

import (
	"log"
	"os"
	"strconv"
)

// Load loads configuration from environment variables
// Falls back to defaults for any missing values
func Load() *Config {
	cfg := Default()

	if host := os.Getenv("CAMSERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}

	if port := os.Getenv("CAMSERVER_DEBUG_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.DebugPort = p
		}
	}

	if path := os.Getenv("CAMSERVER_CAMERA_INFO"); path != "" {
		cfg.Server.CameraInfoPath = path
	}

	if endpoint := os.Getenv("CAMSERVER_MAVLINK_ENDPOINT"); endpoint != "" {
		cfg.MAVLink.UDPEndpoint = endpoint
	}

	if sysID := os.Getenv("CAMSERVER_MAVLINK_SYSTEM_ID"); sysID != "" {
		if v, err := strconv.Atoi(sysID); err == nil {
			cfg.MAVLink.SystemID = uint8(v)
		}
	}

	if compID := os.Getenv("CAMSERVER_MAVLINK_COMPONENT_ID"); compID != "" {
		if v, err := strconv.Atoi(compID); err == nil {
			cfg.MAVLink.ComponentID = uint8(v)
		}
	}

	if logLevel := os.Getenv("CAMSERVER_LOG_LEVEL"); logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	return cfg
}
