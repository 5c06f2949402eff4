package api

import (
	"net/http"
	"net/url"

	service "github.com/okian/primecheck/internal/app"
	"github.com/okian/primecheck/internal/domain/validate"
)

// PrimeHandler serves primality checks.
type PrimeHandler struct {
	deps Dependencies
}

// NewPrimeHandler creates a new prime handler.
func NewPrimeHandler(deps Dependencies) *PrimeHandler {
	return &PrimeHandler{deps: deps}
}

// HandleGet handles GET /prime?number=<int> requests. When the parameter is
// repeated the last value wins.
func (h *PrimeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	out := h.deps.Check(r.Context(), service.Request{
		Source: validate.SourceQuery,
		Raw:    lastValue(r.URL.Query(), "number"),
	})
	writeOutcome(w, out)
}

func lastValue(q url.Values, key string) string {
	vs := q[key]
	if len(vs) == 0 {
		return ""
	}
	return vs[len(vs)-1]
}

// HandlePost handles POST /prime and POST /prime/cached requests with a {"number": <int>} body.
func (h *PrimeHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	out := h.deps.Check(r.Context(), service.Request{
		Source: validate.SourceBody,
		Body:   r.Body,
	})
	writeOutcome(w, out)
}

func writeOutcome(w http.ResponseWriter, out service.Outcome) {
	switch {
	case out.Err != nil:
		writeJSON(w, out.Status, out.Err.Response())
	case out.Response != nil:
		writeJSON(w, out.Status, out.Response)
	default:
		internal := validate.Internal()
		writeJSON(w, internal.Category.Status(), internal.Response())
	}
}
