package smoketest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"github.com/okian/mentorpath/pkg/logger"
)

// Run executes the complete end-to-end check: health, recommendations,
// a transfer plan and progress updates against it.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting mentorpath end-to-end check",
		logger.String("baseURL", config.BaseURL),
		logger.Int("learners", config.NumLearners),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.String("skillDomain", config.SkillDomain),
		logger.Int("topN", config.TopN))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate synthetic learners
	learners, err := generateLearners(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("learner generation failed: %w", err)
	}

	// Step 3: Submit recommendation requests concurrently
	if err := submitRecommendationRequests(ctx, config, learners, stats); err != nil {
		return fmt.Errorf("recommendation submission failed: %w", err)
	}

	// Step 4: Exercise the transfer and progress flow
	if err := runTransferFlow(ctx, config, stats); err != nil {
		return fmt.Errorf("transfer flow failed: %w", err)
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "check completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Any 200 counts as healthy (the endpoint serves Prometheus metrics)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// runTransferFlow requests a cross-domain plan, then drives a progress
// record through every step of it.
func runTransferFlow(ctx context.Context, config *Config, stats *Stats) error {
	client := newHTTPClient(config.Timeout)

	resp, err := client.Get(ctx, config.BaseURL+"/transfer-plan?source=boxing&target=public_speaking")
	if err != nil {
		return fmt.Errorf("transfer plan request failed: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("transfer plan returned status %d: %s", resp.StatusCode, string(body))
	}

	var plan TransferPlanResponse
	if err := json.Unmarshal(body, &plan); err != nil {
		return fmt.Errorf("failed to parse transfer plan: %w", err)
	}
	if plan.PlanID == "" || len(plan.Phases) == 0 {
		return fmt.Errorf("transfer plan is missing an id or phases")
	}
	stats.PlansGenerated++

	logger.Get().Info(ctx, "transfer plan generated",
		logger.String("planID", plan.PlanID),
		logger.Int("phases", len(plan.Phases)),
		logger.Any("generic", plan.Generic))

	learnerID := "smoke-learner"
	for step := 0; step < len(plan.Phases); step++ {
		update := map[string]interface{}{
			"learner_id": learnerID,
			"path_id":    plan.PlanID,
			"step_index": step,
		}
		resp, err := client.Post(ctx, config.BaseURL+"/progress", update)
		if err != nil {
			return fmt.Errorf("progress update failed at step %d: %w", step, err)
		}
		body, err := readResponseBody(resp)
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("progress update at step %d returned status %d: %s", step, resp.StatusCode, string(body))
		}

		var progress ProgressResponse
		if err := json.Unmarshal(body, &progress); err != nil {
			return fmt.Errorf("failed to parse progress response: %w", err)
		}
		stats.ProgressUpdates++

		if step == len(plan.Phases)-1 && progress.Record.CompletionPct != 100 {
			return fmt.Errorf("expected 100%% completion after final step, got %d", progress.Record.CompletionPct)
		}
	}

	logger.Get().Info(ctx, "progress flow verified",
		logger.Int("steps", len(plan.Phases)))
	return nil
}

// displayFinalStats prints the final check statistics.
func displayFinalStats(stats *Stats) {
	var successRate, requestsPerSecond float64

	if stats.RequestsSubmitted > 0 {
		successRate = float64(stats.RequestsSuccessful) / float64(stats.RequestsSubmitted) * 100
	}

	if stats.Duration > 0 {
		requestsPerSecond = float64(stats.RequestsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("learnersGenerated", stats.LearnersGenerated),
		logger.Int("requestsSubmitted", stats.RequestsSubmitted),
		logger.Int("requestsSuccessful", stats.RequestsSuccessful),
		logger.Int("requestsFailed", stats.RequestsFailed),
		logger.Int("plansGenerated", stats.PlansGenerated),
		logger.Int("progressUpdates", stats.ProgressUpdates),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("requestsPerSecond", requestsPerSecond))
}
