// Package logging provides structured logging utilities for hostassess.
//
// # Overview
//
// This package wraps the standard library slog package with project defaults so
// every component logs the same way: JSON records on stderr, stamped with the
// module name and version, with source locations added at debug level.
// Stdout is left free for the assessment document.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: per-process resolution details, skipped lines, vanished pids
//   - INFO: domain start/finish (default)
//   - WARN/WARNING: malformed source lines, degraded optional decorations
//   - ERROR: the single failure reason of a failed snapshot
//
// # Usage
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("hostassess", "v1.0.0")
//	    slog.Info("collecting domain", "domain", "users")
//	}
//
// Setting an explicit level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("hostassess", "v1.0.0", "debug")
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls verbosity when no explicit level is given:
//
//	LOG_LEVEL=debug hostassess assess --procs=false
//
// # Output Format
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "domain collected",
//	    "module": "hostassess",
//	    "version": "v1.0.0",
//	    "domain": "users",
//	    "count": 12
//	}
package logging
