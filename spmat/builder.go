// SPDX-License-Identifier: MIT
// Package spmat: deterministic edge-list generators for drivers and tests.
//
// Canonical models:
//   - Path(n):   directed chain 0→1→…→n-1.
//   - Cycle(n):  directed ring, Path plus the closing edge n-1→0.
//   - RandomSparse(n, p, seed): Erdős–Rényi-like; each ordered pair
//     (i, j), i ≠ j, is included independently with probability p.
//
// Contract:
//   - Stable trial order (i asc, then j asc) ⇒ identical edge lists for
//     the same seed on every rank and every run.
//   - No self-loops and no duplicate (i, j) pairs: the generators feed
//     shortest-path oracles that assume a simple directed graph.
//   - Weight policy: wf(rng) per emitted edge, in emission order; nil wf
//     means DefaultWeightFn.
//   - Returns only sentinel errors; never panics at runtime.
package spmat

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/deltastep/core"
)

const (
	methodRandomSparse = "RandomSparse"
	probMin            = 0.0
	probMax            = 1.0
)

// Path returns the edges of the directed chain 0→1→…→n-1 with weights
// drawn from wf. n < 2 yields an empty (edgeless) list.
// Complexity: O(n) time and space.
func Path(n int, wf WeightFn, rng *rand.Rand) []Edge {
	if wf == nil {
		wf = DefaultWeightFn
	}
	if n < 2 {
		return nil
	}
	edges := make([]Edge, 0, n-1)
	for i := 0; i < n-1; i++ {
		edges = append(edges, Edge{Tail: core.GlobalVertex(i), Head: core.GlobalVertex(i + 1), Weight: wf(rng)})
	}

	return edges
}

// Cycle returns the edges of the directed ring over n vertices: the
// chain of Path plus the closing edge n-1→0. n < 2 yields an empty list.
// Complexity: O(n) time and space.
func Cycle(n int, wf WeightFn, rng *rand.Rand) []Edge {
	if wf == nil {
		wf = DefaultWeightFn
	}
	edges := Path(n, wf, rng)
	if n >= 2 {
		edges = append(edges, Edge{Tail: core.GlobalVertex(n - 1), Head: core.GlobalVertex(0), Weight: wf(rng)})
	}

	return edges
}

// RandomSparse samples an Erdős–Rényi-like simple directed graph over n
// vertices: every ordered pair (i, j) with i ≠ j is an edge with
// independent probability p, weighted by wf.
//
// Determinism:
//   - Fixed trial order (i asc, j asc) and a caller-seeded RNG give
//     identical lists for identical (n, p, seed).
//
// Errors:
//   - ErrBadShape:       n < 0.
//   - ErrBadProbability: p outside [0, 1].
//
// Complexity: O(n²) Bernoulli trials, O(E) space.
func RandomSparse(n int, p float64, wf WeightFn, seed int64) ([]Edge, error) {
	if n < 0 {
		return nil, fmt.Errorf("%s: n=%d: %w", methodRandomSparse, n, ErrBadShape)
	}
	if p < probMin || p > probMax {
		return nil, fmt.Errorf("%s: p=%.6f not in [%.1f,%.1f]: %w", methodRandomSparse, p, probMin, probMax, ErrBadProbability)
	}
	if wf == nil {
		wf = DefaultWeightFn
	}

	rng := rand.New(rand.NewSource(seed))
	var edges []Edge
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if rng.Float64() < p {
				edges = append(edges, Edge{Tail: core.GlobalVertex(i), Head: core.GlobalVertex(j), Weight: wf(rng)})
			}
		}
	}

	return edges, nil
}
