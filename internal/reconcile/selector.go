package reconcile

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultThreshold is the minimum similarity a candidate must reach to be
// accepted as a match.
const DefaultThreshold = 0.7

// Assignment is the resolved best candidate for one source name, with the
// score it was accepted at.
type Assignment struct {
	Candidate string
	Score     float64
}

// Selector chooses at most one reference candidate for each source name.
// Implementations must treat the candidate slice as read-only.
type Selector interface {
	Select(ctx context.Context, sources, candidates []string) (map[string]Assignment, error)
}

// GreedySelector is the default matching strategy: each source name is
// scored independently against every candidate in sequence order, the best
// score is tracked with a strict improvement test (so the first candidate
// at the maximum wins ties), and the best candidate is accepted only when
// its score reaches the threshold. Nothing prevents two sources from
// claiming the same candidate; this is deliberate observed behavior, not a
// bipartite assignment.
type GreedySelector struct {
	scorer    *Scorer
	threshold float64
	workers   int
}

// NewGreedySelector builds a GreedySelector. A non-positive threshold
// falls back to DefaultThreshold; workers <= 1 runs sequentially.
func NewGreedySelector(scorer *Scorer, threshold float64, workers int) *GreedySelector {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if workers < 1 {
		workers = 1
	}
	return &GreedySelector{scorer: scorer, threshold: threshold, workers: workers}
}

// Select scores every source against every candidate and returns the
// accepted assignments keyed by source name. Source names are sharded
// across workers; each source's scan is independent, so results are merged
// by key with no ordering guarantees.
func (s *GreedySelector) Select(ctx context.Context, sources, candidates []string) (map[string]Assignment, error) {
	// Candidate folds are reused across every source scan.
	folded := make([]string, len(candidates))
	for i, c := range candidates {
		folded[i] = s.scorer.fold(c)
	}

	assignments := make(map[string]Assignment, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	var mu sync.Mutex
	for _, src := range sources {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			srcFold := s.scorer.fold(src)

			best := -1
			bestScore := 0.0
			for i, cand := range folded {
				score := Ratio(srcFold, cand)
				if score > bestScore {
					bestScore = score
					best = i
				}
			}

			if best < 0 || bestScore < s.threshold {
				return nil
			}

			mu.Lock()
			assignments[src] = Assignment{Candidate: candidates[best], Score: bestScore}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return assignments, nil
}
