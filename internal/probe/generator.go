package probe

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/okian/primecheck/internal/domain/types"
	"github.com/okian/primecheck/pkg/logger"
)

// fixedCandidates are always probed: range edges, small cases and large
// values whose verdicts are known.
var fixedCandidates = []int64{
	0, 1, 2, 3, 4, 17, 91, 97,
	999_983, 1_000_003, 1_000_000_007, 2_147_483_647,
	999_962_000_357, // 999979 * 999983
	999_966_000_289, // 999983^2
	999_999_999_989, // largest prime not exceeding 10^12
	999_999_999_999,
	types.MaxNumber,
}

// generateCandidates returns the fixed candidates followed by count random
// values in [0, MaxNumber].
func generateCandidates(ctx context.Context, config *Config, stats *Stats) ([]int64, error) {
	logger.Get().Info(ctx, "generating candidates", logger.Int("random", config.Count))

	candidates := make([]int64, 0, len(fixedCandidates)+config.Count)
	candidates = append(candidates, fixedCandidates...)

	limit := big.NewInt(types.MaxNumber + 1)
	for i := 0; i < config.Count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled during candidate generation: %w", err)
		}
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to generate candidate %d: %w", i, err)
		}
		candidates = append(candidates, n.Int64())
	}

	stats.CandidatesGenerated = len(candidates)
	logger.Get().Info(ctx, "generated candidates", logger.Int("count", len(candidates)))
	return candidates, nil
}
