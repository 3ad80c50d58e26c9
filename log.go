package mmatic

import (
	"strings"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.Formatter = &logrus.TextFormatter{DisableTimestamp: true}
}

// Logger returns the package logger. Callers may replace its output,
// formatter or hooks.
func Logger() *logrus.Logger {
	return log
}

// SetLogLevel sets the package logger level by name. Unknown names fall
// back to info.
func SetLogLevel(level string) {
	switch strings.ToLower(level) {
	case "error":
		log.Level = logrus.ErrorLevel
	case "warn":
		log.Level = logrus.WarnLevel
	case "debug":
		log.Level = logrus.DebugLevel
	case "trace":
		log.Level = logrus.TraceLevel
	default:
		log.Level = logrus.InfoLevel
	}
}
