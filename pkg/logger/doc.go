// Package logger builds the slog.Logger shared by every role: JSON records
// in production, human-readable text elsewhere, each tagged with the
// environment and the role that emitted it.
package logger
