// Package logging wraps a logrus.Logger for diagnostic-only output —
// evaluator construction, module registration, resource-limit trips —
// strictly separate from script-visible I/O, which always goes through
// the host's stdout callback rather than the logger.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger is the subset of *logrus.Logger this package exposes, so
// callers depend on an interface rather than the concrete type.
type Logger interface {
	WithField(key string, value interface{}) *logrus.Entry
	WithFields(fields logrus.Fields) *logrus.Entry
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// New builds a logrus.Logger writing to w at the given level. A nil w
// discards all output, matching an embedder that never configures
// logging — construction and teardown still call into this package,
// they just produce nothing.
func New(w io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	if w == nil {
		l.SetOutput(io.Discard)
	} else {
		l.SetOutput(w)
	}
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return l
}

// noop discards everything; used as the zero-value default so a
// *Evaluator built without an explicit Logger never needs a nil check
// at every call site.
var noop = New(nil, logrus.PanicLevel)

// Noop returns the shared discard logger.
func Noop() *logrus.Logger { return noop }
