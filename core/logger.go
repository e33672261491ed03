package core

import (
	"io"

	"github.com/sirupsen/logrus"
)

var logger = discardLogger()

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Logger returns the logger used for lifecycle and loader messages
func Logger() *logrus.Logger {
	return logger
}

// SetLogger replaces the package logger. A nil logger silences output.
func SetLogger(l *logrus.Logger) {
	if l == nil {
		l = discardLogger()
	}
	logger = l
}
