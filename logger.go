package actiontrack

import (
	"github.com/swdee/go-actiontrack/internal/monitoring"
)

// SetLogger replaces the logger used by the pipeline, tracker and recorder
// diagnostics.  It defaults to log.Printf, passing nil mutes it
func SetLogger(f func(format string, v ...interface{})) {
	monitoring.SetLogger(f)
}

// SetDebug turns debug level diagnostics on or off
func SetDebug(on bool) {
	monitoring.SetDebug(on)
}
