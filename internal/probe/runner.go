// Package probe is a concurrent verification client for a running
// primecheck service.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/primecheck/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	filePermission      = 0600
)

// Report is the document written to the output file.
type Report struct {
	BaseURL      string        `json:"base_url"`
	StartedAt    time.Time     `json:"started_at"`
	Duration     string        `json:"duration"`
	Observations []Observation `json:"observations"`
	Mismatches   []Mismatch    `json:"mismatches"`
}

// Run executes a complete probe: health check, generation, submission and
// verification. It returns ErrVerification if any request failed or any
// verdict was wrong.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	if config.Workers <= 0 || config.Count < 0 || config.BaseURL == "" {
		return nil, fmt.Errorf("%w: workers=%d count=%d url=%q",
			ErrInvalidConfig, config.Workers, config.Count, config.BaseURL)
	}

	stats := &Stats{StartTime: time.Now()}
	logger.Get().Info(ctx, "starting primecheck probe",
		logger.String("baseURL", config.BaseURL),
		logger.Int("count", config.Count),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout),
		logger.Bool("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return stats, err
	}

	// Step 2: Generate candidates
	candidates, err := generateCandidates(ctx, config, stats)
	if err != nil {
		return stats, fmt.Errorf("candidate generation failed: %w", err)
	}

	// Step 3: Submit through every path
	observations := submitCandidates(ctx, config, candidates, stats)

	// Step 4: Verify
	mismatches := verifyObservations(ctx, observations, stats)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	// Step 5: Save
	if config.OutputFile != "" {
		report := Report{
			BaseURL:      config.BaseURL,
			StartedAt:    stats.StartTime,
			Duration:     stats.Duration.String(),
			Observations: observations,
			Mismatches:   mismatches,
		}
		if err := saveReport(ctx, config.OutputFile, report); err != nil {
			logger.Get().Warn(ctx, "failed to save report", logger.Error(err))
		}
	}

	displayFinalStats(ctx, stats)

	if stats.Mismatches > 0 || stats.RequestsFailed > 0 {
		return stats, fmt.Errorf("%w: %d mismatches, %d failed requests",
			ErrVerification, stats.Mismatches, stats.RequestsFailed)
	}
	logger.Get().Info(ctx, "probe completed successfully")
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	client := newHTTPClient(config.Timeout)
	resp, err := client.Get(ctx, config.BaseURL+"/healthz", "")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	defer resp.Body.Close()

	// The service answers /healthz with Prometheus metrics.
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveReport writes report as indented JSON to filename.
func saveReport(ctx context.Context, filename string, report Report) error {
	if len(report.Observations) == 0 {
		return ErrNothingToWrite
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(filename, append(data, '\n'), filePermission); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	logger.Get().Info(ctx, "report saved", logger.String("filename", filename))
	return nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var accuracy, requestsPerSecond float64
	if stats.RequestsSubmitted > 0 {
		accuracy = float64(stats.Correct) / float64(stats.RequestsSubmitted) * PercentageMultiplier
	}
	if stats.Duration > 0 {
		requestsPerSecond = float64(stats.RequestsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("candidatesGenerated", stats.CandidatesGenerated),
		logger.Int("requestsSubmitted", stats.RequestsSubmitted),
		logger.Int("requestsFailed", stats.RequestsFailed),
		logger.Int("correct", stats.Correct),
		logger.Int("mismatches", stats.Mismatches),
		logger.Int("cacheHits", stats.CacheHits),
		logger.Duration("duration", stats.Duration),
		logger.Float64("accuracy", accuracy),
		logger.Float64("requestsPerSecond", requestsPerSecond))
}
