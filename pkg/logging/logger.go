package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/unifeed/unifeed-cli/pkg/config"
)

// NewLogger creates a logger writing to stderr, for one-shot CLI commands.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{})
	logger.SetLevel(config.GetLogLevel())
	return logger
}

// NewFileLogger creates a logger appending to the given file. The TUI uses
// this so log lines never corrupt the rendered screen; when the file cannot
// be opened the logger is silenced rather than failing the UI.
func NewFileLogger(path string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(config.GetLogLevel())

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		logger.SetOutput(io.Discard)
		return logger
	}
	logger.SetOutput(f)
	return logger
}
