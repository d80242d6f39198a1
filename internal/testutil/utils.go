package testutil

import (
	"log"
	"strings"
	"testing"
)

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// TestLogger returns a logger whose output is attached to t, so store
// diagnostics only show up for failing or verbose tests.
func TestLogger(t testing.TB) *log.Logger {
	return log.New(testWriter{t: t}, "[test] ", log.LstdFlags)
}
