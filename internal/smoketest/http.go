package smoketest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client *http.Client
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return data, nil
}

// submitRecommendationRequests posts one recommendation request per
// learner using a worker pool and verifies the responses are ranked.
func submitRecommendationRequests(ctx context.Context, config *Config, learners []Learner, stats *Stats) error {
	log.Printf("submitting %d recommendation requests with %d workers", len(learners), config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/recommendations"

	var (
		successful int64
		failed     int64
		submitted  int64
	)

	learnerChan := make(chan Learner, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for learner := range learnerChan {
				select {
				case <-ctx.Done():
					return
				default:
				}
				atomic.AddInt64(&submitted, 1)
				if err := submitSingleRequest(ctx, client, url, learner, config.Verbose); err != nil {
					atomic.AddInt64(&failed, 1)
					if config.Verbose {
						log.Printf("request for %s failed: %v", learner.LearnerID, err)
					}
					continue
				}
				atomic.AddInt64(&successful, 1)
			}
		}()
	}

	go func() {
		defer close(learnerChan)
		for _, learner := range learners {
			select {
			case <-ctx.Done():
				return
			case learnerChan <- learner:
			}
		}
	}()

	wg.Wait()

	stats.RequestsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.RequestsSuccessful = int(atomic.LoadInt64(&successful))
	stats.RequestsFailed = int(atomic.LoadInt64(&failed))

	log.Printf("recommendation submission completed: successful=%d failed=%d",
		stats.RequestsSuccessful, stats.RequestsFailed)

	if stats.RequestsFailed > 0 && stats.RequestsSuccessful == 0 {
		return fmt.Errorf("all %d recommendation requests failed", stats.RequestsFailed)
	}
	return nil
}

// submitSingleRequest posts one request and checks the ranking invariant.
func submitSingleRequest(ctx context.Context, client *HTTPClient, url string, learner Learner, verbose bool) error {
	resp, err := client.Post(ctx, url, learner)
	if err != nil {
		return err
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var rec RecommendationResponse
	if err := json.Unmarshal(body, &rec); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if len(rec.Recommendations) == 0 {
		return fmt.Errorf("empty recommendation list for %s", learner.LearnerID)
	}
	for i := 1; i < len(rec.Recommendations); i++ {
		if rec.Recommendations[i].Similarity > rec.Recommendations[i-1].Similarity {
			return fmt.Errorf("recommendations not sorted by similarity for %s", learner.LearnerID)
		}
	}
	if verbose {
		log.Printf("learner %s: top match %s (%.3f, %s)",
			learner.LearnerID,
			rec.Recommendations[0].ProfileID,
			rec.Recommendations[0].Similarity,
			rec.Recommendations[0].Strategy)
	}
	return nil
}
