package logging

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Debug controls whether debug logs are printed.
var Debug bool

var std = logrus.New()

// Debugf logs a formatted debug message through the logger built by New
// when Debug is enabled.
func Debugf(format string, v ...any) {
	if Debug {
		std.Debugf(format, v...)
	}
}

// New builds the application logger. JSON in production, text otherwise;
// Debug forces the debug level.
func New(level string, production bool) *logrus.Logger {
	log := logrus.New()
	if production {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	if Debug {
		lvl = logrus.DebugLevel
	}
	log.SetLevel(lvl)
	std = log
	return log
}
