package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

const (
	logDir      = "logs"
	logFileName = "digital-rain.log"
	maxLogSize  = 10 * 1024 * 1024 // 10MB
)

// logClock stamps rotated log names
var logClock = time.Now

// rotatedLogPath names the file an oversized log is moved to
func rotatedLogPath() string {
	return filepath.Join(logDir, fmt.Sprintf("digital-rain-%s.log", logClock().Format("20060102-150405")))
}

// setupLogging sends the standard logger to logs/digital-rain.log when debug is set
// Without debug all log output is discarded so nothing writes over the animation
// A log file over maxLogSize is renamed with a timestamp before a new one is opened
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		if err := os.Rename(logPath, rotatedLogPath()); err != nil {
			log.SetOutput(io.Discard)
			return nil
		}
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f
}
