package logger

import (
	"log"
	"sync/atomic"
)

// Logger is the printf-style logger used by the registry and catalog packages.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

var enabled atomic.Bool

func init() {
	enabled.Store(true)
}

// SetEnabled turns every DefaultLogger on or off.
func SetEnabled(v bool) {
	enabled.Store(v)
}

// Enabled reports whether DefaultLogger output is on.
func Enabled() bool {
	return enabled.Load()
}

type DefaultLogger struct {
	name string
}

func NewDefaultLogger(name string) *DefaultLogger {
	return &DefaultLogger{name: name}
}

func (d *DefaultLogger) Debug(format string, args ...any) {
	d.print("DEBUG", format, args...)
}

func (d *DefaultLogger) Info(format string, args ...any) {
	d.print("INFO", format, args...)
}

func (d *DefaultLogger) Warn(format string, args ...any) {
	d.print("WARN", format, args...)
}

func (d *DefaultLogger) Error(format string, args ...any) {
	d.print("ERROR", format, args...)
}

func (d *DefaultLogger) print(level, format string, args ...any) {
	if !enabled.Load() {
		return
	}
	log.Printf("[%s] %s | "+format+"\n", append([]any{level, d.name}, args...)...)
}

type nop struct{}

// Nop discards everything.
func Nop() Logger { return nop{} }

func (nop) Debug(string, ...any) {}
func (nop) Info(string, ...any)  {}
func (nop) Warn(string, ...any)  {}
func (nop) Error(string, ...any) {}
