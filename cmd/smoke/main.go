package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/mentorpath/internal/smoketest"
)

// Default configuration constants.
const (
	defaultNumLearners = 200
	defaultTopN        = 5
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultRunTimeout  = 10 * time.Minute
)

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numLearners = flag.Int("learners", defaultNumLearners, "Number of synthetic learners to generate")
		skillDomain = flag.String("domain", "public_speaking", "Skill domain for recommendation requests")
		topN        = flag.Int("top", defaultTopN, "Recommendations to request per learner")
		workers     = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile     = flag.String("log", "", "Log file for output (default: smoke_log_TIMESTAMP.log)")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		smoketest.ShowHelp()
		return
	}

	// Setup logging
	if err := smoketest.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &smoketest.Config{
		BaseURL:     *baseURL,
		NumLearners: *numLearners,
		SkillDomain: *skillDomain,
		TopN:        *topN,
		Workers:     *workers,
		Timeout:     *timeout,
		LogFile:     *logFile,
		Verbose:     *verbose,
	}

	if err := smoketest.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Check failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
