// SPDX-License-Identifier: MIT
// Package deltastep: the phase controller and result packaging.
//
// The control flow below is driven entirely by collectives, so every
// rank observes the same sequence of outer and middle iterations:
//
//	relax(source, 0)                     // seeds B[0] on the owner
//	while some bucket i is globally nonempty:
//	    R ← ∅
//	    while B[i] is globally nonempty:          // middle loop
//	        reqs ← light requests out of B[i]
//	        R    ← R ∪ newly-active vertices of B[i]
//	        empty B[i] (marks them activated)
//	        exchange & relax reqs                 // may refill B[i]
//	    exchange & relax heavy requests out of R  // cannot refill B[i]
//	    i ← next globally nonempty bucket
//
// Within one exchange, several requests may target the same vertex; the
// strict improvement test in relax makes the smallest win regardless of
// arrival order. R is built by local append: vertices cleared from B[i]
// within one phase are distinct, and the activated flag keeps later
// phases of the same outer iteration from re-adding them.
package deltastep

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/OneOfOne/xxhash"

	"github.com/katalvlaran/deltastep/convey"
	"github.com/katalvlaran/deltastep/core"
	"github.com/katalvlaran/deltastep/spmat"
)

// Run computes single-source shortest path distances over g on the rank
// group rk belongs to. Every rank of the group must call Run with the
// same graph parameters and options; the returned record holds this
// rank's slice of the distance vector.
//
// Preconditions and validation (in order):
//  1. g must be non-nil (ErrNilGraph) and rk non-nil (ErrNilRank).
//  2. g must be square (ErrNonSquare).
//  3. g must carry edge weights (ErrNoWeights).
//  4. The source must lie in [0, N) (ErrSourceRange).
//  5. A forced Δ must be positive and finite (ErrBadDelta).
//
// Complexity:
//   - Time: O((V + E)/P) local work plus one collective per phase.
//   - Space: O(V/P + K).
func Run(g *spmat.SparseMat, rk *convey.Rank, opts ...Option) (*SsspInfo, error) {
	// 1) Build and validate options.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate the configuration before any collective: a rank that
	// bails here fails fast, and convey aborts the rest of the group.
	if g == nil {
		return nil, ErrNilGraph
	}
	if rk == nil {
		return nil, ErrNilRank
	}
	if g.NumRows != g.NumCols {
		return nil, fmt.Errorf("Run: %dx%d: %w", g.NumRows, g.NumCols, ErrNonSquare)
	}
	if !g.Weighted() {
		return nil, ErrNoWeights
	}
	if !g.Part.Contains(cfg.Source) {
		return nil, fmt.Errorf("Run: source %d of %d vertices: %w", cfg.Source, g.NumRows, ErrSourceRange)
	}
	if cfg.ForcedDelta != 0 &&
		(cfg.ForcedDelta < 0 || math.IsNaN(cfg.ForcedDelta) || math.IsInf(cfg.ForcedDelta, 0)) {
		return nil, fmt.Errorf("Run: delta=%v: %w", cfg.ForcedDelta, ErrBadDelta)
	}

	start := time.Now()

	// 3) Fold the local degree sequence and combine the maximum degree
	// group-wide; it drives the default bucket width.
	maxdeg := 0
	for d := range g.RowCounts() {
		if d > maxdeg {
			maxdeg = d
		}
	}
	gmaxdeg, err := rk.ReduceMax(int64(maxdeg))
	if err != nil {
		return nil, err
	}

	// 4) Choose Δ: forced, or 1/maxdeg. An edgeless graph has no degree
	// to derive from; Δ=1 keeps the ring well-formed.
	delta := cfg.ForcedDelta
	if delta == 0 {
		if gmaxdeg > 0 {
			delta = 1.0 / float64(gmaxdeg)
		} else {
			delta = 1.0
		}
	}

	// 5) Size the bucket ring: K = ⌈maxWeight/Δ⌉ + 1. A smaller ring
	// would alias distinct distance windows onto one bucket.
	maxEdge, err := rk.ReduceMaxFloat64(g.MaxValue())
	if err != nil {
		return nil, err
	}
	numBuckets := int(math.Ceil(maxEdge/delta)) + 1

	nedges, err := rk.ReduceSum(uint64(g.NumEdgesThisRank()))
	if err != nil {
		return nil, err
	}
	if rk.ID() == 0 {
		log.Info("delta stepping", "nvtxs", g.NumRows, "nedges", nedges,
			"delta", delta, "buckets", numBuckets, "maxEdge", maxEdge, "ranks", rk.NumRanks())
	}

	// 6) Build the per-rank state and seed the source at distance 0,
	// which also places it in bucket 0 on its owner.
	s := &searcher{
		g:     g,
		rk:    rk,
		store: newBucketStore(g.NumRowsThisRank, delta, numBuckets),
		tr:    newTracer(cfg.TracePath, cfg.DumpLimit, rk.ID(), rk.NumRanks()),
	}
	if g.Part.Owner(cfg.Source) == rk.ID() {
		s.relax(request{head: cfg.Source, dist: 0})
	}
	s.tr.dumpState(s, "after relax source", []int{int(cfg.Source)})

	// 7) Outer loop: process globally nonempty buckets smallest-first.
	outer := 0
	active, more := 0, true
	for more {
		log.Debug("outer iteration", "rank", rk.ID(), "outer", outer, "active", active)

		// R: vertices removed from the active bucket this outer round.
		var removed []core.LocalVertex

		// 8) Middle loop: drain the light edges of the active bucket
		// until no rank can refill it.
		phase := 0
		for {
			gsize, rerr := s.globalBucketSize(active)
			if rerr != nil {
				return nil, rerr
			}
			if gsize == 0 {
				break
			}
			log.Debug("middle iteration", "rank", rk.ID(), "phase", phase,
				"activeSize", s.store.size[active])

			reqs := s.findLightRequests(active)
			removed = append(removed, s.store.newlyActiveVertices(active)...)
			s.store.emptyBucket(active)
			if rerr = s.relaxRequests(reqs); rerr != nil {
				return nil, rerr
			}

			s.tr.dumpState(s, "end of middle iter", []int{outer, phase})
			phase++
		}

		// 9) Heavy phase: relax the heavy edges out of everything the
		// bucket ever held. Heavy weights exceed Δ, so nothing lands
		// back in the bucket just drained.
		if err = s.relaxRequests(s.findHeavyRequests(removed)); err != nil {
			return nil, err
		}
		s.tr.dumpState(s, "end of outer iter", []int{outer})
		outer++

		active, more, err = s.nextNonemptyBucket(active)
		if err != nil {
			return nil, err
		}
	}

	if rk.ID() == 0 {
		log.Info("delta stepping done", "outerIterations", outer, "laptime", time.Since(start))
	}

	// 10) Move the tentative vector out of the store into the result.
	info := &SsspInfo{
		Distance: s.store.tent,
		Source:   cfg.Source,
		Laptime:  time.Since(start),
	}
	s.store.tent = nil

	// Surface a latched trace failure without invalidating the result.
	if s.tr != nil && s.tr.err != nil {
		return info, s.tr.err
	}

	return info, nil
}

// globalBucketSize sums bucket bk's local membership over all ranks.
func (s *searcher) globalBucketSize(bk int) (uint64, error) {
	return s.rk.ReduceSum(uint64(s.store.size[bk]))
}

// nextNonemptyBucket returns the next globally nonempty bucket after
// start on the ring, or more=false when every bucket everywhere is
// empty. Each rank contributes its smallest forward step in [1, K]; the
// group minimum below K names the next bucket.
func (s *searcher) nextNonemptyBucket(start int) (next int, more bool, err error) {
	steps, err := s.rk.ReduceMin(int64(s.store.stepsToNonempty(start)))
	if err != nil {
		return 0, false, err
	}
	if int(steps) < s.store.numBuckets {
		return (start + int(steps)) % s.store.numBuckets, true, nil
	}

	return 0, false, nil
}

// AssembleDistances exchanges every rank's distance slice so each rank
// returns the full N-length vector, indexed by global vertex id. All
// ranks must call it together; the result is identical everywhere.
//
// Complexity: O(N·P) items exchanged; intended for checking, dumping and
// moderate problem sizes, not as part of the engine proper.
func AssembleDistances(g *spmat.SparseMat, rk *convey.Rank, info *SsspInfo) ([]float64, error) {
	type distPair struct {
		V core.GlobalVertex
		D float64
	}

	pairs := make([]distPair, len(info.Distance))
	for l, d := range info.Distance {
		pairs[l] = distPair{V: g.Part.Global(g.Rank, core.LocalVertex(l)), D: d}
	}
	all, err := convey.AllGather(rk, pairs)
	if err != nil {
		return nil, err
	}

	out := make([]float64, g.NumRows)
	for i := range out {
		out[i] = math.Inf(1)
	}
	for _, batch := range all {
		for _, p := range batch {
			out[p.V] = p.D
		}
	}

	return out, nil
}

// Fingerprint hashes a distance vector's canonical text form (the .wts
// body) so runs can be compared across processes and machines without
// shipping the vector around.
func Fingerprint(dist []float64) uint64 {
	h := xxhash.New64()
	for _, d := range dist {
		_, _ = h.WriteString(strconv.FormatFloat(d, 'g', -1, 64))
		_, _ = h.WriteString("\n")
	}

	return h.Sum64()
}

// Check sanity-checks a finished run: it counts unreachable vertices,
// reports the maximum and average finite distance and the vector
// fingerprint, and optionally writes the assembled distances to
// dist.out (rank 0 only). The boolean mirrors the classic checker
// contract; I/O failures are surfaced in the error without invalidating
// the distances.
func (info *SsspInfo) Check(g *spmat.SparseMat, rk *convey.Rank, dumpFiles bool) (bool, error) {
	unreachable := 0
	maxDist := 0.0
	sumDist := 0.0
	for _, d := range info.Distance {
		if math.IsInf(d, 1) {
			unreachable++
			continue
		}
		if d > maxDist {
			maxDist = d
		}
		sumDist += d
	}

	gUnreach, err := rk.ReduceSum(uint64(unreachable))
	if err != nil {
		return false, err
	}
	gMax, err := rk.ReduceMaxFloat64(maxDist)
	if err != nil {
		return false, err
	}
	gSum, err := rk.ReduceSumFloat64(sumDist)
	if err != nil {
		return false, err
	}

	assembled, err := AssembleDistances(g, rk, info)
	if err != nil {
		return false, err
	}

	reached := float64(g.NumRows) - float64(gUnreach)
	avg := 0.0
	if reached > 0 {
		avg = gSum / reached
	}
	if rk.ID() == 0 {
		log.Info("check_result", "source", info.Source, "unreachable", gUnreach,
			"maxFiniteDist", gMax, "avgFiniteDist", avg,
			"fingerprint", fmt.Sprintf("%016x", Fingerprint(assembled)))
	}

	if dumpFiles && rk.ID() == 0 {
		full := &SsspInfo{Distance: assembled, Source: info.Source, Laptime: info.Laptime}
		if derr := full.Dump(DefaultDumpLimit, "dist.out"); derr != nil {
			return true, derr
		}
	}

	return true, nil
}
