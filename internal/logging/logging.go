// Package logging wires zap into the harness and provides a small mixin
// that equips a type with a logger named after its concrete type.
package logging

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	rootMu sync.RWMutex
	root   = zap.NewNop()
)

// Init builds the process-wide logger. Verbose lowers the level to debug.
func Init(verbose bool) error {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	SetRoot(logger)
	return nil
}

// SetRoot replaces the process-wide logger. Tests use this to install an
// observed logger.
func SetRoot(logger *zap.Logger) {
	rootMu.Lock()
	root = logger
	rootMu.Unlock()
}

// L returns the process-wide logger. Before Init it is a nop logger.
func L() *zap.Logger {
	rootMu.RLock()
	defer rootMu.RUnlock()
	return root
}

// Named returns a child of the process-wide logger with the given name.
func Named(name string) *zap.Logger {
	return L().Named(name)
}

// TypeName derives a logger name from a value's concrete type, in the form
// "<package>.<Type>". Pointers are dereferenced first.
func TypeName(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "unknown"
	}
	pkg := t.PkgPath()
	if i := strings.LastIndex(pkg, "/"); i >= 0 {
		pkg = pkg[i+1:]
	}
	if pkg == "" {
		return t.Name()
	}
	return pkg + "." + t.Name()
}
