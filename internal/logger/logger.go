package logger

import (
	"github.com/sirupsen/logrus"
)

// New builds the process-wide logger. The level string comes from LOG_LEVEL;
// anything unparseable falls back to info rather than failing startup.
func New(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	return log
}
