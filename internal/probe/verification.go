package probe

import (
	"context"
	"fmt"
	"sort"

	"github.com/okian/primecheck/internal/domain/primality"
	"github.com/okian/primecheck/pkg/logger"
)

// verifyObservations checks every successful verdict against the local
// oracle and checks that all paths agree for each number.
func verifyObservations(ctx context.Context, observations []Observation, stats *Stats) []Mismatch {
	logger.Get().Info(ctx, "verifying observations", logger.Int("count", len(observations)))

	var mismatches []Mismatch
	verdicts := make(map[int64]map[bool][]string)
	expected := make(map[int64]bool)

	for _, obs := range observations {
		if obs.CacheHit {
			stats.CacheHits++
		}
		if obs.Status != StatusOK {
			continue
		}
		if obs.Error != "" {
			mismatches = append(mismatches, Mismatch{Number: obs.Number, Path: obs.Path, Reason: obs.Error})
			continue
		}

		want, ok := expected[obs.Number]
		if !ok {
			want = primality.IsPrime(obs.Number)
			expected[obs.Number] = want
		}
		if obs.IsPrime != want {
			mismatches = append(mismatches, Mismatch{
				Number: obs.Number,
				Path:   obs.Path,
				Reason: fmt.Sprintf("verdict %t, expected %t", obs.IsPrime, want),
			})
		} else {
			stats.Correct++
		}

		if verdicts[obs.Number] == nil {
			verdicts[obs.Number] = make(map[bool][]string)
		}
		verdicts[obs.Number][obs.IsPrime] = append(verdicts[obs.Number][obs.IsPrime], obs.Path)
	}

	for n, byVerdict := range verdicts {
		if len(byVerdict) > 1 {
			mismatches = append(mismatches, Mismatch{
				Number: n,
				Reason: fmt.Sprintf("paths disagree: %v say prime, %v say composite", byVerdict[true], byVerdict[false]),
			})
		}
	}

	sort.Slice(mismatches, func(i, j int) bool {
		if mismatches[i].Number != mismatches[j].Number {
			return mismatches[i].Number < mismatches[j].Number
		}
		return mismatches[i].Path < mismatches[j].Path
	})

	stats.Mismatches = len(mismatches)
	for _, m := range mismatches {
		logger.Get().Warn(ctx, "mismatch",
			logger.Int64("number", m.Number),
			logger.String("path", m.Path),
			logger.String("reason", m.Reason),
		)
	}
	return mismatches
}
