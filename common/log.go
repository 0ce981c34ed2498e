/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package common holds the facilities shared by every pdflayout package:
// today that is just the logger. Mirrors the teacher's common.Log: a single
// package-level logger every stage calls directly instead of threading a
// logger through every constructor.
package common

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger is the leveled logging interface the layout pipeline calls. A
// *logrus.Logger satisfies it directly.
type Logger interface {
	Tracef(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type logfLogger struct {
	*logrus.Logger
}

func (l logfLogger) Tracef(format string, args ...interface{}) { l.Logger.Tracef(format, args...) }
func (l logfLogger) Debugf(format string, args ...interface{}) { l.Logger.Debugf(format, args...) }
func (l logfLogger) Infof(format string, args ...interface{})  { l.Logger.Infof(format, args...) }
func (l logfLogger) Errorf(format string, args ...interface{}) { l.Logger.Errorf(format, args...) }

// Log is the package-level logger every pdflayout package writes to,
// following the teacher's common.Log.Info/common.Log.Error convention.
var Log Logger = newDefaultLogger()

func newDefaultLogger() Logger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	return logfLogger{Logger: l}
}

// SetLevel adjusts the verbosity of the default logger. The layout
// pipeline's per-stage messages are logged at DebugLevel.
func SetLevel(level logrus.Level) {
	if l, ok := Log.(logfLogger); ok {
		l.Logger.SetLevel(level)
	}
}

// SetOutput redirects the default logger, e.g. to silence it in tests.
func SetOutput(w io.Writer) {
	if l, ok := Log.(logfLogger); ok {
		l.Logger.SetOutput(w)
	}
}
