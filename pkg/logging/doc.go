// Package logging provides structured logging setup for plugboard.
//
// It is a thin layer over log/slog: a Config for level/format/output
// selection, a Nop logger for components that require a logger but run
// silently, a MultiHandler for fanning records out to several handlers,
// and a Recorder handler that captures records in memory for assertions.
package logging
