package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

const (
	logDir      = "logs"
	logFileName = "typewall.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging returns a discarding logger unless debug is set
// With debug the log goes to logs/typewall.log, an oversized previous log is rotated aside first
// The terminal owns stdout and stderr, so the logger never writes there
func setupLogging(debug bool) (*log.Logger, *os.File) {
	if !debug {
		return log.New(io.Discard), nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return log.New(io.Discard), nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("typewall-%s.log", time.Now().Format("20060102-150405")))
		_ = os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return log.New(io.Discard), nil
	}

	logger := log.NewWithOptions(f, log.Options{
		Level:           log.DebugLevel,
		ReportTimestamp: true,
		TimeFormat:      time.StampMilli,
		Prefix:          "typewall",
	})
	return logger, f
}
