// SPDX-License-Identifier: MIT
// Package deltastep implements bulk-synchronous Δ-stepping: single-source
// shortest paths on a weighted directed graph stored as a partitioned
// sparse matrix.
//
// The algorithm maintains, per rank, an array of buckets of width Δ over
// the tentative distances of the vertices that rank owns. Buckets are
// drained smallest-first; draining bucket i repeatedly relaxes the LIGHT
// edges (weight ≤ Δ) out of its vertices until no rank can refill it,
// then relaxes the HEAVY edges (weight > Δ) out of every vertex the
// bucket ever held. Relaxations of edges whose head lives on another
// rank travel through a convey session and are applied by the owner, so
// no tentative-distance slot is ever touched by two goroutines.
//
// Complexity (per rank, expected for random graphs):
//
//   - Time:  O((V + E)/P) work plus one collective per phase.
//   - Space: O(V/P + K) where K = ⌈maxWeight/Δ⌉ + 1 bucket headers.
//
// Buckets are reused modulo K: at any moment the finite tentative
// distances of enqueued vertices span a window narrower than K·Δ, so a
// ring of K lists suffices regardless of the total distance range.
//
// Options:
//
//   - WithSource(v):      the source vertex (default 0).
//   - WithForcedDelta(d): override the default Δ = 1/maxdeg.
//   - WithTrace(path):    append a per-phase state dump to path.
//   - WithDumpLimit(n):   head/tail window size for trace tables.
//
// Errors (sentinel):
//
//   - ErrNilGraph     if the container is nil.
//   - ErrNilRank      if the rank handle is nil.
//   - ErrNonSquare    if the container is not square.
//   - ErrNoWeights    if the container lacks the edge-weight array.
//   - ErrSourceRange  if the source vertex is outside [0, N).
//   - ErrBadDelta     if a forced Δ is not a positive finite number.
//   - ErrOwnership    if a relaxation arrives at a rank that does not own
//     its target (router bug; fatal on all ranks).
//
// Example usage:
//
//	err := convey.Run(4, func(rk *convey.Rank) error {
//	    g, err := spmat.New(n, edges, rk.ID(), rk.NumRanks())
//	    if err != nil {
//	        return err
//	    }
//	    info, err := deltastep.Run(g, rk, deltastep.WithSource(0))
//	    if err != nil {
//	        return err
//	    }
//	    _, err = info.Check(g, rk, false)
//
//	    return err
//	})
package deltastep
