package logger

import (
	"io" // Output writer
	"os" // Stdout

	"github.com/sirupsen/logrus" // Logging library
)

// New returns a logrus logger writing to stdout.
// Production uses JSON lines, everything else the timestamped text format.
func New(level string, json bool) *logrus.Logger {
	return NewWithWriter(level, json, os.Stdout)
}

// NewWithWriter is New with a custom output, used by tests.
func NewWithWriter(level string, json bool, w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w) // Where log lines go
	if json {
		log.SetFormatter(&logrus.JSONFormatter{}) // One JSON object per line
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true}) // Human-readable with timestamps
	}
	log.SetLevel(parseLevel(level)) // Minimum level to emit
	return log
}

func parseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel // Unknown levels fall back to info
	}
	return lvl
}
