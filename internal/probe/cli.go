package probe

import "os"

// ShowHelp prints usage information for the probe tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`primecheck probe
================

Checks a running primecheck service through GET /prime, POST /prime and
GET /prime/cached, and verifies every verdict against a local trial
division.

Usage:
  go run ./cmd/probe [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -count int
        Number of random candidates in [0, 10^12] (default 200)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Write the observations and mismatches to this JSON file
  -verbose
        Log every observation
  -help
        Show this help message

Examples:
  go run ./cmd/probe -count 1000 -workers 16
  go run ./cmd/probe -url http://localhost:8080 -output probe.json
`)
}
