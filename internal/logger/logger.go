// Package logger provides modifications to charmbracelet/log's default
// logger for use across the engine's subsystems.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// Subsystem prefixes used across the engine.
const (
	Dictionary = "dict"
	Model      = "model"
	Restore    = "restore"
	Cache      = "cache"
	CLI        = "cli"
)

// New creates a logger for the given subsystem prefix, honoring the
// process-wide level set via SetLevel.
func New(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stdout, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// NewWithConfig creates a logger for prefix with explicit options, for
// callers that need to deviate from the process default (e.g. -dump-stats
// sidecars that must stay silent).
func NewWithConfig(prefix string, level log.Level, caller bool, showTimestamp bool, fmt log.Formatter) *log.Logger {
	return log.NewWithOptions(os.Stdout, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       fmt,
	})
}

// SetVerbose toggles the process-wide log level between the default Warn
// and Debug, mirroring -v on cmd/diac.
func SetVerbose(verbose bool) {
	if verbose {
		log.SetLevel(log.DebugLevel)
		return
	}
	log.SetLevel(log.WarnLevel)
}
