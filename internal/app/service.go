// Package service provides the checker service that implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/primecheck/internal/domain/primality"
	"github.com/okian/primecheck/internal/domain/types"
	"github.com/okian/primecheck/internal/domain/validate"
	"github.com/okian/primecheck/pkg/logger"
	"github.com/okian/primecheck/pkg/metrics"
)

// Request is one candidate as received by the HTTP boundary.
type Request struct {
	Source validate.Source
	// Raw is the "number" query parameter, used when Source is SourceQuery.
	Raw string
	// Body is the JSON request body, used when Source is SourceBody.
	Body io.Reader
}

// Outcome is either a response or a categorized error, never both.
type Outcome struct {
	Status   int
	Response *types.PrimeCheckResponse
	Err      *validate.Error
}

// Service validates candidates and answers primality checks.
type Service struct {
	mu sync.RWMutex

	// Configuration
	maxBodyBytes int64
	oracle       func(int64) bool

	// State
	started   bool
	startedAt time.Time

	// Counters
	checks         atomic.Int64
	primes         atomic.Int64
	rejected       atomic.Int64
	internalErrors atomic.Int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxBodyBytes caps the size of JSON request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithOracle replaces the primality test.
func WithOracle(fn func(int64) bool) Option {
	return func(s *Service) {
		if fn != nil {
			s.oracle = fn
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		maxBodyBytes: 1 << 20,
		oracle:       primality.IsPrime,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start marks the service ready.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("checker")
	}

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "checker service started", logger.Int64("maxBodyBytes", s.maxBodyBytes))
	return nil
}

// Stop marks the service stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "checker service stopped",
		logger.Int64("checks", s.checks.Load()),
		logger.Int64("rejected", s.rejected.Load()),
	)
}

// Check validates the candidate in req and returns its verdict.
func (s *Service) Check(ctx context.Context, req Request) Outcome {
	log := s.log()

	var (
		n   int64
		err error
	)
	switch req.Source {
	case validate.SourceQuery:
		n, err = validate.Query(req.Raw)
	case validate.SourceBody:
		body := req.Body
		if body == nil {
			body = http.NoBody
		}
		n, err = validate.Body(body, s.maxBodyBytes)
	default:
		err = errors.New("unknown request source: " + string(req.Source))
	}

	if err != nil {
		var verr *validate.Error
		if !errors.As(err, &verr) {
			s.internalErrors.Add(1)
			log.Error(ctx, "check failed", logger.String("source", string(req.Source)), logger.Error(err))
			verr = validate.Internal()
		} else {
			s.rejected.Add(1)
			log.Debug(ctx, "candidate rejected",
				logger.String("source", string(req.Source)),
				logger.String("category", string(verr.Category)),
			)
		}
		metrics.RecordValidationError(string(req.Source), string(verr.Category))
		return Outcome{Status: verr.Category.Status(), Err: verr}
	}

	start := time.Now()
	isPrime := s.oracle(n)
	elapsed := time.Since(start)

	verdict := "composite"
	s.checks.Add(1)
	if isPrime {
		verdict = "prime"
		s.primes.Add(1)
	}
	metrics.RecordCheck(string(req.Source), verdict, float64(elapsed.Microseconds())/1000)
	log.Debug(ctx, "check completed",
		logger.Int64("number", n),
		logger.Bool("is_prime", isPrime),
		logger.Duration("elapsed", elapsed),
	)

	resp := types.NewPrimeCheckResponse(n, isPrime)
	return Outcome{Status: http.StatusOK, Response: &resp}
}

func (s *Service) log() logger.Logger {
	s.mu.RLock()
	l := s.logger
	s.mu.RUnlock()
	if l == nil {
		return logger.Get()
	}
	return l
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"checks":         s.checks.Load(),
		"primes":         s.primes.Load(),
		"rejected":       s.rejected.Load(),
		"internalErrors": s.internalErrors.Load(),
		"maxBodyBytes":   s.maxBodyBytes,
	}
	if s.started {
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())
	}
	return stats
}
