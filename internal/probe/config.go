package probe

import "time"

// Config holds configuration for a probe run.
type Config struct {
	BaseURL    string        // Base URL of the service
	Count      int           // Number of random candidates to generate
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Output file for observations
	Verbose    bool          // Log every observation
}

// Observation is one request and what the service answered.
type Observation struct {
	Number    int64   `json:"number"`
	Path      string  `json:"path"`
	RequestID string  `json:"request_id"`
	Status    int     `json:"status"`
	IsPrime   bool    `json:"is_prime"`
	Error     string  `json:"error,omitempty"`
	CacheHit  bool    `json:"cache_hit,omitempty"`
	LatencyMs float64 `json:"latency_ms"`
}

// Mismatch describes a verdict that disagrees with the local oracle or
// with another path.
type Mismatch struct {
	Number int64  `json:"number"`
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// checkResponse mirrors the service's success body.
type checkResponse struct {
	Number  int64  `json:"number"`
	IsPrime bool   `json:"is_prime"`
	Message string `json:"message"`
}

// errorResponse mirrors the service's error body.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Stats holds run statistics.
type Stats struct {
	CandidatesGenerated int
	RequestsSubmitted   int
	RequestsFailed      int
	Correct             int
	Mismatches          int
	CacheHits           int
	StartTime           time.Time
	EndTime             time.Time
	Duration            time.Duration
}
