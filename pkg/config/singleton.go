package config

import (
	"fmt"
	"sync/atomic"
)

// current is the process-wide configuration, replaced wholesale on reload.
var current atomic.Pointer[Config]

// GetConfig returns the configuration stored by the last successful
// ReloadConfig, or nil before the first one.
func GetConfig() *Config {
	return current.Load()
}

// ReloadConfig loads path (defaults when the file is missing) and makes it
// the current configuration. On error the previous configuration is kept.
func ReloadConfig(path string) error {
	cfg, err := LoadOptional(path)
	if err != nil {
		return fmt.Errorf("failed to reload configuration: %w", err)
	}
	current.Store(cfg)
	return nil
}
