package logging

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Mixin is embedded in a type to give it a logger named after the concrete
// type and a helper that records an error before handing it back to the
// caller. Types embedding Mixin call Bind(self) during construction so the
// logger name reflects the outer type rather than the mixin itself; an
// explicit logger can also be injected with SetLogger.
type Mixin struct {
	mu     sync.Mutex
	name   string
	logger *zap.Logger
}

// Bind records the owning value whose concrete type names the logger.
func (m *Mixin) Bind(owner any) {
	m.mu.Lock()
	m.name = TypeName(owner)
	m.logger = nil
	m.mu.Unlock()
}

// SetLogger injects an explicit logger, bypassing name derivation.
func (m *Mixin) SetLogger(logger *zap.Logger) {
	m.mu.Lock()
	m.logger = logger
	m.mu.Unlock()
}

// Logger returns the mixin's logger, creating it from the process-wide
// logger on first use. Without a prior Bind the mixin's own type names it.
func (m *Mixin) Logger() *zap.Logger {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.logger == nil {
		name := m.name
		if name == "" {
			name = TypeName(m)
		}
		m.logger = Named(name)
	}
	return m.logger
}

// Fail records err at error severity exactly once and returns it, so every
// error surfaced through this path is already in the log. A nil err is
// returned untouched without logging.
func (m *Mixin) Fail(err error) error {
	if err == nil {
		return nil
	}
	m.Logger().Error("an error occurred", zap.Error(err))
	return err
}

// Failf formats a new error, then records and returns it like Fail.
func (m *Mixin) Failf(format string, args ...any) error {
	return m.Fail(fmt.Errorf(format, args...))
}
