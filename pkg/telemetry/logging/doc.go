// Package logging provides structured logging for Parallax.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging with JSON, text, and console formats
//   - Context-aware logging with run IDs and scenario names
//   - Configurable log levels (debug, info, warn, error)
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logger.Info("interpretation finished",
//	    "observers", 4,
//	    "entities", 4,
//	)
//
//	// Context-aware logging
//	ctx = logging.WithRunID(ctx, runID)
//	logger.InfoContext(ctx, "run started") // includes run_id
//
// Components that accept a plain *slog.Logger get one from Slog.
package logging
