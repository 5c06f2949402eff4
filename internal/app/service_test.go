package service_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	service "github.com/okian/primecheck/internal/app"
	"github.com/okian/primecheck/internal/domain/validate"
	"github.com/okian/primecheck/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func query(raw string) service.Request {
	return service.Request{Source: validate.SourceQuery, Raw: raw}
}

func body(s string) service.Request {
	return service.Request{Source: validate.SourceBody, Body: strings.NewReader(s)}
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New(service.WithMaxBodyBytes(64))
		defer svc.Stop()

		Convey("When starting the service", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			err := svc.Start(ctx)

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["maxBodyBytes"], ShouldEqual, int64(64))
				So(stats, ShouldContainKey, "uptimeSeconds")
			})

			Convey("And starting twice should be a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})

			Convey("And stopping should mark it stopped", func() {
				svc.Stop()
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})
	})
}

func TestService_Check(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := service.New()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When checking a prime through the query", func() {
			out := svc.Check(ctx, query("17"))

			Convey("Then a 200 response should be produced", func() {
				So(out.Status, ShouldEqual, http.StatusOK)
				So(out.Err, ShouldBeNil)
				So(out.Response.Number, ShouldEqual, 17)
				So(out.Response.IsPrime, ShouldBeTrue)
				So(out.Response.Message, ShouldEqual, "17 is a prime number")
			})
		})

		Convey("When checking a composite through the body", func() {
			out := svc.Check(ctx, body(`{"number": 1000000000000}`))

			Convey("Then the verdict should be composite", func() {
				So(out.Status, ShouldEqual, http.StatusOK)
				So(out.Response.IsPrime, ShouldBeFalse)
				So(out.Response.Message, ShouldEqual, "1000000000000 is not a prime number")
			})
		})

		Convey("When the largest prime in range is checked through both sources", func() {
			q := svc.Check(ctx, query("999999999989"))
			b := svc.Check(ctx, body(`{"number": 999999999989}`))

			Convey("Then both verdicts should agree", func() {
				So(q.Response.IsPrime, ShouldBeTrue)
				So(*b.Response, ShouldResemble, *q.Response)
			})
		})

		Convey("When the input is invalid", func() {
			cases := map[string]struct {
				req  service.Request
				want validate.Category
			}{
				"missing":  {query(""), validate.CategoryMissingParameter},
				"format":   {query("abc"), validate.CategoryInvalidFormat},
				"negative": {query("-1"), validate.CategoryNegativeInput},
				"large":    {query("1000000000001"), validate.CategoryTooLarge},
				"body":     {body(`{"number": -1}`), validate.CategoryValidationError},
			}

			Convey("Then each should map to its category and a 400", func() {
				for name, tc := range cases {
					out := svc.Check(ctx, tc.req)
					So(out.Response, ShouldBeNil)
					So(out.Err, ShouldNotBeNil)
					So(string(out.Err.Category)+" "+name, ShouldEqual, string(tc.want)+" "+name)
					So(out.Status, ShouldEqual, http.StatusBadRequest)
				}
				So(svc.GetStats()["rejected"], ShouldEqual, int64(len(cases)))
			})
		})

		Convey("When the body is nil", func() {
			out := svc.Check(ctx, service.Request{Source: validate.SourceBody})

			Convey("Then the number should be reported as required", func() {
				So(out.Err.Category, ShouldEqual, validate.CategoryValidationError)
				So(out.Err.Details["number"], ShouldResemble, []string{"This field is required."})
			})
		})

		Convey("When the body cannot be read", func() {
			out := svc.Check(ctx, service.Request{Source: validate.SourceBody, Body: failingReader{}})

			Convey("Then a generic internal error should be returned", func() {
				So(out.Status, ShouldEqual, http.StatusInternalServerError)
				So(out.Err.Category, ShouldEqual, validate.CategoryInternalError)
				So(out.Err.Message, ShouldNotContainSubstring, "connection reset")
				So(svc.GetStats()["internalErrors"], ShouldEqual, int64(1))
			})
		})

		Convey("When the source is unknown", func() {
			out := svc.Check(ctx, service.Request{Source: "header"})
			So(out.Err.Category, ShouldEqual, validate.CategoryInternalError)
		})
	})
}

func TestService_Counters(t *testing.T) {
	Convey("Given a service with a stub oracle", t, func() {
		ctx := context.Background()
		var calls sync.Map
		svc := service.New(service.WithOracle(func(n int64) bool {
			calls.Store(n, true)
			return n%2 == 1
		}))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When checking concurrently", func() {
			var wg sync.WaitGroup
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					svc.Check(ctx, query(strings.Repeat("1", 1+i%3)))
				}(i)
			}
			wg.Wait()

			Convey("Then every check should be counted", func() {
				stats := svc.GetStats()
				So(stats["checks"], ShouldEqual, int64(20))
				So(stats["primes"], ShouldEqual, int64(20))
				_, ok := calls.Load(int64(111))
				So(ok, ShouldBeTrue)
			})
		})
	})
}
