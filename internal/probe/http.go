package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okian/primecheck/pkg/logger"
)

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{client: &http.Client{Timeout: timeout}}
}

// Get performs a GET request carrying requestID.
func (c *HTTPClient) Get(ctx context.Context, url, requestID string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}
	return c.client.Do(req)
}

// Post performs a POST request with a JSON body carrying requestID.
func (c *HTTPClient) Post(ctx context.Context, url, requestID string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	return c.client.Do(req)
}

type job struct {
	number int64
	path   string
}

// submitCandidates checks every candidate through every path using a worker pool.
func submitCandidates(ctx context.Context, config *Config, candidates []int64, stats *Stats) []Observation {
	paths := []string{PathQuery, PathBody, PathCached}
	total := len(candidates) * len(paths)
	logger.Get().Info(ctx, "submitting checks",
		logger.Int("requests", total),
		logger.Int("workers", config.Workers),
	)

	client := newHTTPClient(config.Timeout)
	var (
		mu           sync.Mutex
		observations = make([]Observation, 0, total)
		submitted    atomic.Int64
		failed       atomic.Int64
	)

	jobs := make(chan job, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				obs := checkSingle(ctx, client, config.BaseURL, j)
				submitted.Add(1)
				if obs.Status != StatusOK {
					failed.Add(1)
				}
				if config.Verbose {
					logger.Get().Debug(ctx, "observation",
						logger.String("path", obs.Path),
						logger.Int64("number", obs.Number),
						logger.Int("status", obs.Status),
						logger.Bool("is_prime", obs.IsPrime),
						logger.String("request_id", obs.RequestID),
					)
				}
				mu.Lock()
				observations = append(observations, obs)
				mu.Unlock()
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, n := range candidates {
			for _, p := range paths {
				select {
				case <-ctx.Done():
					return
				case jobs <- job{number: n, path: p}:
				}
			}
		}
	}()

	wg.Wait()

	stats.RequestsSubmitted = int(submitted.Load())
	stats.RequestsFailed = int(failed.Load())
	logger.Get().Info(ctx, "submission completed",
		logger.Int("submitted", stats.RequestsSubmitted),
		logger.Int("failed", stats.RequestsFailed),
	)
	return observations
}

// checkSingle performs one request and records what came back. Transport
// failures are reported with status 0.
func checkSingle(ctx context.Context, client *HTTPClient, baseURL string, j job) Observation {
	obs := Observation{Number: j.number, Path: j.path, RequestID: uuid.New().String()}
	number := strconv.FormatInt(j.number, 10)

	start := time.Now()
	var (
		resp *http.Response
		err  error
	)
	switch j.path {
	case PathBody:
		resp, err = client.Post(ctx, baseURL+"/prime", obs.RequestID, map[string]int64{"number": j.number})
	case PathCached:
		resp, err = client.Get(ctx, baseURL+"/prime/cached?number="+number, obs.RequestID)
	default:
		resp, err = client.Get(ctx, baseURL+"/prime?number="+number, obs.RequestID)
	}
	if err != nil {
		obs.Error = err.Error()
		return obs
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	obs.LatencyMs = float64(time.Since(start).Microseconds()) / 1000
	obs.Status = resp.StatusCode
	obs.CacheHit = resp.Header.Get("X-Cache") == "HIT"
	if err != nil {
		obs.Error = err.Error()
		return obs
	}

	if resp.StatusCode != StatusOK {
		var e errorResponse
		if json.Unmarshal(body, &e) == nil && e.Error != "" {
			obs.Error = e.Error + ": " + e.Message
		} else {
			obs.Error = http.StatusText(resp.StatusCode)
		}
		return obs
	}

	var r checkResponse
	if err := json.Unmarshal(body, &r); err != nil {
		obs.Error = "invalid response body: " + err.Error()
		return obs
	}
	if r.Number != j.number {
		obs.Error = fmt.Sprintf("response echoed number %d", r.Number)
	}
	obs.IsPrime = r.IsPrime
	return obs
}
