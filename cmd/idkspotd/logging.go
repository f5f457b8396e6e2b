package main

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// initLogging configures logrus for the whole process. Called once at
// startup, before any service logs.
func initLogging(logLevel string) {
	level, err := logrus.ParseLevel(strings.ToLower(logLevel))
	if err != nil {
		level = logrus.InfoLevel
		logrus.WithError(err).Warn("Failed to parse log level, defaulting to info")
	}

	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	logrus.WithField("log_level", level.String()).Info("Logger initialized")
}
