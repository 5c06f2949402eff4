package probe_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/primecheck/internal/adapters/cache"
	"github.com/okian/primecheck/internal/adapters/http/api"
	service "github.com/okian/primecheck/internal/app"
	"github.com/okian/primecheck/internal/probe"
	"github.com/okian/primecheck/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func newPrimecheckServer() *httptest.Server {
	svc := service.New()
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	c, err := cache.New()
	if err != nil {
		panic(err)
	}
	mux := http.NewServeMux()
	api.NewServer(svc, svc, api.WithCache(c)).Register(context.Background(), mux)
	return httptest.NewServer(api.RequestIDMiddleware(mux))
}

func newConfig(url string) *probe.Config {
	return &probe.Config{
		BaseURL: url,
		Count:   5,
		Workers: 4,
		Timeout: 5 * time.Second,
	}
}

func TestRun(t *testing.T) {
	Convey("Given a running primecheck service", t, func() {
		srv := newPrimecheckServer()
		defer srv.Close()

		Convey("When a probe runs against it", func() {
			cfg := newConfig(srv.URL)
			cfg.OutputFile = filepath.Join(t.TempDir(), "reports", "probe.json")
			stats, err := probe.Run(context.Background(), cfg)

			Convey("Then every verdict should verify", func() {
				So(err, ShouldBeNil)
				So(stats.Mismatches, ShouldEqual, 0)
				So(stats.RequestsFailed, ShouldEqual, 0)
				So(stats.RequestsSubmitted, ShouldEqual, stats.CandidatesGenerated*3)
				So(stats.Correct, ShouldEqual, stats.RequestsSubmitted)
			})

			Convey("Then the report should be written", func() {
				data, readErr := os.ReadFile(cfg.OutputFile)
				So(readErr, ShouldBeNil)
				var report probe.Report
				So(json.Unmarshal(data, &report), ShouldBeNil)
				So(len(report.Observations), ShouldEqual, stats.RequestsSubmitted)
				So(report.Mismatches, ShouldBeEmpty)
				for _, obs := range report.Observations {
					So(obs.RequestID, ShouldNotBeEmpty)
				}
			})
		})
	})

	Convey("Given a service that calls everything prime", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		mux.HandleFunc("/prime", func(w http.ResponseWriter, r *http.Request) {
			var n int64
			if r.Method == http.MethodPost {
				var body struct {
					Number int64 `json:"number"`
				}
				_ = json.NewDecoder(r.Body).Decode(&body)
				n = body.Number
			} else {
				_ = json.Unmarshal([]byte(r.URL.Query().Get("number")), &n)
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"number": n, "is_prime": true, "message": "yes"})
		})
		mux.HandleFunc("/prime/cached", func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "gone", http.StatusGone)
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		stats, err := probe.Run(context.Background(), newConfig(srv.URL))

		Convey("Then the run should fail verification", func() {
			So(errors.Is(err, probe.ErrVerification), ShouldBeTrue)
			So(stats.Mismatches, ShouldBeGreaterThan, 0)
			So(stats.RequestsFailed, ShouldEqual, stats.CandidatesGenerated)
		})
	})

	Convey("Given an unhealthy service", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := probe.Run(context.Background(), newConfig(srv.URL))

		Convey("Then the run should stop at the health check", func() {
			So(errors.Is(err, probe.ErrUnhealthy), ShouldBeTrue)
		})
	})

	Convey("Given an invalid config", t, func() {
		cfg := newConfig("http://localhost:0")
		cfg.Workers = 0
		_, err := probe.Run(context.Background(), cfg)

		Convey("Then Run should reject it", func() {
			So(errors.Is(err, probe.ErrInvalidConfig), ShouldBeTrue)
		})
	})
}
