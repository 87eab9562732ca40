// Package logging configures the standard library logger for the pipeline
// binaries and adds level-prefixed helpers.
//
// Lines look like:
//
//	2024/05/01 12:00:00.000000 | INFO | loader: table=sales rows=1200
package logging

import (
	"io"
	"log"
	"sync/atomic"
)

var verbose atomic.Bool

// Setup directs the standard logger to w with microsecond timestamps. Debugf
// output is enabled only when debug is true.
func Setup(w io.Writer, debug bool) {
	log.SetOutput(w)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	verbose.Store(debug)
}

// Verbose reports whether debug logging is on.
func Verbose() bool { return verbose.Load() }

// Infof logs at INFO.
func Infof(format string, args ...any) { log.Printf("| INFO | "+format, args...) }

// Errorf logs at ERROR.
func Errorf(format string, args ...any) { log.Printf("| ERROR | "+format, args...) }

// Debugf logs at DEBUG when verbose logging is on.
func Debugf(format string, args ...any) {
	if verbose.Load() {
		log.Printf("| DEBUG | "+format, args...)
	}
}
