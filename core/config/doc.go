// Package config provides configuration management for the config updater.
//
// It utilizes Viper for loading configuration from environment variables,
// an optional .env file and command-line flags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Log: level, format and output (LOG_LEVEL, LOG_FORMAT, LOG_OUTPUT)
//   - Document: indentation of written documents (DOCUMENT_INDENT)
//   - Storage: atomic write toggle (STORAGE_ATOMIC)
//
// Defaults come from the `default` struct tags of each subsection. The --log-level and
// --log-format flags override the environment when they are set explicitly.
//
// Configuration never influences how documents are merged; only diagnostics and
// serialization are configurable.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".", cmd.Flags())
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Log.Level)
package config
