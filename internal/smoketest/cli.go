package smoketest

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/okian/mentorpath/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "smoke_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the end-to-end check tool.
func ShowHelp() {
	os.Stdout.WriteString(`MentorPath End-to-End Check
===========================

A concurrent tool that exercises the recommendation, transfer and
progress endpoints of a running mentorpath service.

Usage:
  go run cmd/smoke/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -learners int
        Number of synthetic learners to generate (default 200)
  -domain string
        Skill domain for recommendation requests (default "public_speaking")
  -top int
        Recommendations to request per learner (default 5)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -log string
        Log file for output (default: smoke_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Check with default settings
  go run cmd/smoke/main.go

  # Heavier run against another host
  go run cmd/smoke/main.go -learners 5000 -workers 16 -url http://localhost:8080

  # Verbose output
  go run cmd/smoke/main.go -verbose -learners 100
`)
}
