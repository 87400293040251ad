// Package config provides configuration management for Parallax.
//
// This package handles loading, validating, and managing configuration from
// YAML files with environment variable overrides.
//
// # Configuration Loading
//
// Configuration can be loaded in three ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("parallax.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("parallax.yaml")
//
//  3. From an optional file, falling back to defaults when it is absent:
//     cfg, err := config.LoadOptional("parallax.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention PARALLAX_SECTION_FIELD
// and are decoded with github.com/caarlos0/env. For example:
//
//   - PARALLAX_SCENARIO_PATH overrides scenario.path
//   - PARALLAX_INTERPRETATION_PARALLELISM overrides interpretation.parallelism
//   - PARALLAX_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Example Configuration
//
//	scenario:
//	  path: "./scenarios/split-man.yaml"
//	  watch: false
//
//	interpretation:
//	  allow_empty: false
//	  parallelism: 4
//
//	report:
//	  format: "text"
//
//	orchestrator:
//	  session_delay: "500ms"
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "text"
package config
