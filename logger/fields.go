package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across genapi.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Components
	FieldComponent = "component"
	FieldOperation = "operation"

	// Symbols
	FieldSymbol    = "symbol"    // Fully qualified display name
	FieldKind      = "kind"      // Symbol kind (type, method, event, ...)
	FieldAssembly  = "assembly"  // Assembly name from the manifest
	FieldVersion   = "version"   // Assembly version
	FieldBaseType  = "base_type" // Base type display name
	FieldNamespace = "namespace"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts and sizes
	FieldCount          = "count"
	FieldSkipped        = "skipped"
	FieldWorkers        = "workers"
	FieldNamespaceCount = "namespaces"

	// Files and paths
	FieldFile   = "file"
	FieldConfig = "config"
)

// ComponentLogger returns a named logger for a specific component.
//
// Example:
//
//	type Generator struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func New() *Generator {
//	    return &Generator{logger: logger.ComponentLogger("surface")}
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
