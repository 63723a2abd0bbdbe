package monitoring

import (
	"fmt"
	"testing"
)

func TestSetLogger(t *testing.T) {
	prevLogf := Logf
	defer func() { Logf = prevLogf }()

	called := false
	SetLogger(func(format string, v ...interface{}) {
		called = true
	})
	Logf("test message")

	if !called {
		t.Error("Custom logger was not called")
	}

	// nil installs a no-op logger
	called = false
	SetLogger(nil)
	Logf("test message")

	if called {
		t.Error("No-op logger should not have triggered callback")
	}
}

func TestDebugf(t *testing.T) {
	prevLogf := Logf
	defer func() {
		Logf = prevLogf
		SetDebug(false)
	}()

	var lines []string
	SetLogger(func(format string, v ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, v...))
	})

	SetDebug(false)
	Debugf("hidden %d", 1)

	if len(lines) != 0 {
		t.Fatalf("expected no output with debug off, got %v", lines)
	}

	SetDebug(true)
	Debugf("shown %d", 2)

	if len(lines) != 1 || lines[0] != "[DEBUG] shown 2" {
		t.Errorf("unexpected debug output %v", lines)
	}

	if !DebugEnabled() {
		t.Error("expected debug to be enabled")
	}
}
