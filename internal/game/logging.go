package game

import (
	"os"

	"github.com/sirupsen/logrus"
)

// logger is the package-wide structured logger. The simulation only logs
// operational events (fallback layouts, stuck-guardian teleports); per-tick
// detail goes to SimLog instead.
var logger *logrus.Logger

// simLogger returns the package logger, initialising it on first use.
// Level comes from LOG_LEVEL (default info).
func simLogger() *logrus.Logger {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(os.Stderr)
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
			l.SetLevel(lvl)
		} else {
			l.SetLevel(logrus.InfoLevel)
		}
		logger = l
	}
	return logger
}

// SetLogger replaces the package logger. The headless harness injects a
// quiet logger here so test output stays readable.
func SetLogger(l *logrus.Logger) {
	logger = l
}
