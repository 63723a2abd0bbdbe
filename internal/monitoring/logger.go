// Package monitoring holds the diagnostic logging hook shared by the library
// packages.
package monitoring

import (
	"log"
	"sync/atomic"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// debug gates Debugf output
var debug atomic.Bool

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// SetDebug turns debug level messages on or off
func SetDebug(on bool) {
	debug.Store(on)
}

// DebugEnabled reports whether debug level messages are logged
func DebugEnabled() bool {
	return debug.Load()
}

// Debugf logs through Logf with a [DEBUG] prefix when debug is enabled
func Debugf(format string, v ...interface{}) {
	if !debug.Load() {
		return
	}
	Logf("[DEBUG] "+format, v...)
}
