package logging

import "github.com/cockroachdb/pebble"

// Logger is the logging surface every arbor component writes through. It is
// pebble's logger, so the journal's store logs through the same sink.
type Logger = pebble.Logger

// DefaultLogger writes through the stdlib log package.
var DefaultLogger Logger = pebble.DefaultLogger

// Discard drops every Infof. Fatalf still exits.
type Discard struct{}

func (Discard) Infof(string, ...interface{}) {}

func (Discard) Fatalf(format string, args ...interface{}) {
	DefaultLogger.Fatalf(format, args...)
}

// Prefixed returns a Logger that tags each line with "[component] ".
func Prefixed(l Logger, component string) Logger {
	if l == nil {
		l = DefaultLogger
	}
	return prefixed{l: l, tag: "[" + component + "] "}
}

type prefixed struct {
	l   Logger
	tag string
}

func (p prefixed) Infof(format string, args ...interface{}) {
	p.l.Infof(p.tag+format, args...)
}

func (p prefixed) Fatalf(format string, args ...interface{}) {
	p.l.Fatalf(p.tag+format, args...)
}
