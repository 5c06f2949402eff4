package probe

import "time"

// HTTP status code constants.
const (
	StatusOK = 200
)

// Routes exercised for every candidate, labelled by method and path.
const (
	PathQuery  = "GET /prime"
	PathBody   = "POST /prime"
	PathCached = "GET /prime/cached"
)

// Runner configuration constants.
const (
	WorkerChannelMultiplier = 2
	PercentageMultiplier    = 100
	DefaultRunTimeout       = 10 * time.Minute
)
