package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/primecheck/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.CacheEnabled, convey.ShouldBeTrue)
			convey.So(cfg.CacheTTL, convey.ShouldEqual, 15*time.Minute)
			convey.So(cfg.CacheMaxEntries, convey.ShouldEqual, 10_000)
			convey.So(cfg.MaxBodyBytes, convey.ShouldEqual, 1<<20)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with invalid settings", t, func() {
		cases := map[string]func(*config.Config){
			"addr must not be empty":            func(c *config.Config) { c.Addr = "  " },
			"cache_ttl must be positive":         func(c *config.Config) { c.CacheTTL = 0 },
			"cache_max_entries must be positive": func(c *config.Config) { c.CacheMaxEntries = -1 },
			"max_body_bytes must be positive":    func(c *config.Config) { c.MaxBodyBytes = 0 },
			"log_format must be text or json":    func(c *config.Config) { c.LogFormat = "xml" },
		}

		for want, mutate := range cases {
			cfg := config.New()
			mutate(cfg)
			err := cfg.Validate()

			convey.So(err, convey.ShouldNotBeNil)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, want)
		}
	})

	convey.Convey("Given a config with the cache disabled", t, func() {
		cfg := config.New()
		cfg.CacheEnabled = false
		cfg.CacheTTL = 0
		cfg.CacheMaxEntries = 0

		convey.Convey("Then cache settings are not checked", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
