// Package logging provides structured logging for Gray Logic Intercom.
//
// It wraps log/slog with configuration-driven level, format, and output
// selection, and stamps every record with the service name and version.
// Components receive a *Logger (or a narrow logging interface of their
// own) and add their own default attributes via With.
package logging
