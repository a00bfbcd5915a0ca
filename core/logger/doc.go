// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance for the command line: console encoding with
// capitalized level names by default, JSON on request.
//
// # Levels
//
// Level names follow the command line contract: DEBUG, INFO, WARNING, ERROR and
// CRITICAL (case-insensitive). DEBUG switches to zap's development configuration.
// The level only affects verbosity, never behaviour.
//
// # Run IDs
//
// WithRunID attaches a run_id field so every entry of one invocation can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "INFO"})
//	log = logger.WithRunID(log, uuid.NewString())
//	log.Info("Configuration updated", zap.String("path", path))
package logger
