package logger

import (
	"go.uber.org/zap"

	"github.com/duplau/link-fields/internal/sym"
)

// Symbol-aware logging helpers.
// These functions log with the pipeline-stage symbol as a structured field,
// not in the message, so log output stays queryable by stage.
//
// Usage:
//
//	// Instead of:
//	logger.Infow(sym.Lookup + " index built", "terms", n)
//
//	// Use:
//	logger.LookupInfow("index built", "terms", n)

// NormalizeDebugw logs a debug message tagged with the normalizer stage.
func NormalizeDebugw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, sym.Normalize}, keysAndValues...)
		Logger.Debugw(msg, fields...)
	}
}

// AcronymInfow logs an info message tagged with the acronym-model stage.
func AcronymInfow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, sym.Acronym}, keysAndValues...)
		Logger.Infow(msg, fields...)
	}
}

// LookupInfow logs an info message tagged with the lookup stage.
func LookupInfow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, sym.Lookup}, keysAndValues...)
		Logger.Infow(msg, fields...)
	}
}

// ScoreDebugw logs a debug message tagged with the scorer stage.
func ScoreDebugw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, sym.Score}, keysAndValues...)
		Logger.Debugw(msg, fields...)
	}
}

// CandidateInfow logs an info message tagged with the candidate-generator stage.
func CandidateInfow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, sym.Candidate}, keysAndValues...)
		Logger.Infow(msg, fields...)
	}
}

// AssignWarnw logs a warning message tagged with the assignment stage.
func AssignWarnw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, sym.Assign}, keysAndValues...)
		Logger.Warnw(msg, fields...)
	}
}

// WithSymbol returns a logger with the given stage symbol as a field.
func WithSymbol(symbol string) *zap.SugaredLogger {
	return Logger.With(FieldSymbol, symbol)
}

// SymbolInfow logs with any symbol — for dynamic stage tagging.
func SymbolInfow(symbol, msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, symbol}, keysAndValues...)
		Logger.Infow(msg, fields...)
	}
}
