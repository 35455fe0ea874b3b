// Package logger provides structured logging for wtp-complete.
//
// Completion output goes to stdout and is read by the shell, so everything
// logged here goes to stderr unless a different writer is given.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultLevel is used when the configured level cannot be parsed
const DefaultLevel = logrus.WarnLevel

// New creates a logger writing to output at the given level
func New(level string, output io.Writer) *logrus.Logger {
	if output == nil {
		output = os.Stderr
	}

	log := logrus.New()
	log.SetOutput(output)
	log.SetLevel(ParseLevel(level))
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})
	return log
}

// ParseLevel maps a config value to a logrus level, falling back to
// DefaultLevel
func ParseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return DefaultLevel
	}
	return lvl
}

// Discard returns a logger that drops everything
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
