// Package deltastep_test runs the engine end to end: fixed scenarios
// with known answers, each across 1, 2 and 4 ranks, plus validation of
// the fatal configuration classes.
package deltastep_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/deltastep/convey"
	"github.com/katalvlaran/deltastep/core"
	"github.com/katalvlaran/deltastep/deltastep"
	"github.com/katalvlaran/deltastep/spmat"
)

// groupSizes are the rank counts every scenario is replayed under.
var groupSizes = []int{1, 2, 4}

// inf mirrors the engine's unreachable marker in expectation tables.
var inf = math.Inf(1)

// runSSSP executes one delta-stepping run on p ranks and returns the
// assembled distance vector.
func runSSSP(t *testing.T, n int, edges []spmat.Edge, p int, opts ...deltastep.Option) []float64 {
	t.Helper()

	var result []float64
	err := convey.Run(p, func(rk *convey.Rank) error {
		g, err := spmat.New(n, edges, rk.ID(), rk.NumRanks())
		if err != nil {
			return err
		}
		info, err := deltastep.Run(g, rk, opts...)
		if err != nil {
			return err
		}
		full, err := deltastep.AssembleDistances(g, rk, info)
		if err != nil {
			return err
		}
		if rk.ID() == 0 {
			result = full
		}

		return nil
	})
	require.NoError(t, err)

	return result
}

func requireDistances(t *testing.T, got, want []float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for v := range want {
		if math.IsInf(want[v], 1) {
			require.Truef(t, math.IsInf(got[v], 1), "dist[%d] = %v; want +Inf", v, got[v])
			continue
		}
		require.InDeltaf(t, want[v], got[v], 1e-12, "dist[%d]", v)
	}
}

// ------------------------------------------------------------------------
// End-to-end scenarios.
// ------------------------------------------------------------------------

func TestRun_EmptyGraph(t *testing.T) {
	for _, p := range groupSizes {
		got := runSSSP(t, 3, nil, p)
		requireDistances(t, got, []float64{0, inf, inf})
	}
}

func TestRun_Chain(t *testing.T) {
	edges := spmat.Path(4, spmat.ConstantWeightFn(1.0), nil)
	for _, p := range groupSizes {
		got := runSSSP(t, 4, edges, p)
		requireDistances(t, got, []float64{0, 1, 2, 3})
	}
}

// parallelPaths: 0→1 (5.0), 0→2 (2.0), 2→1 (1.0).
func parallelPaths() []spmat.Edge {
	return []spmat.Edge{
		{Tail: 0, Head: 1, Weight: 5},
		{Tail: 0, Head: 2, Weight: 2},
		{Tail: 2, Head: 1, Weight: 1},
	}
}

func TestRun_ParallelPaths(t *testing.T) {
	for _, p := range groupSizes {
		got := runSSSP(t, 3, parallelPaths(), p, deltastep.WithForcedDelta(1.0))
		requireDistances(t, got, []float64{0, 3, 2})
	}
}

func TestRun_ForcedDeltaSweep(t *testing.T) {
	// The result must be independent of the bucket width.
	for _, delta := range []float64{0.5, 1.0, 2.0, 10.0} {
		for _, p := range groupSizes {
			got := runSSSP(t, 3, parallelPaths(), p, deltastep.WithForcedDelta(delta))
			requireDistances(t, got, []float64{0, 3, 2})
		}
	}
}

func TestRun_CycleWithTail(t *testing.T) {
	edges := []spmat.Edge{
		{Tail: 0, Head: 1, Weight: 2},
		{Tail: 1, Head: 2, Weight: 2},
		{Tail: 2, Head: 0, Weight: 2},
		{Tail: 1, Head: 3, Weight: 7},
	}
	for _, p := range groupSizes {
		got := runSSSP(t, 4, edges, p)
		requireDistances(t, got, []float64{0, 2, 4, 9})
	}
}

func TestRun_DisconnectedComponent(t *testing.T) {
	edges := []spmat.Edge{
		{Tail: 0, Head: 1, Weight: 1},
		{Tail: 1, Head: 2, Weight: 1},
		{Tail: 3, Head: 4, Weight: 1},
	}
	for _, p := range groupSizes {
		got := runSSSP(t, 5, edges, p)
		requireDistances(t, got, []float64{0, 1, 2, inf, inf})
	}
}

func TestRun_NonZeroSource(t *testing.T) {
	// Source 3 is owned by rank 1 at P=2 and rank 3 at P=4; seeding must
	// happen on that owner.
	edges := spmat.Path(6, spmat.ConstantWeightFn(0.5), nil)
	for _, p := range groupSizes {
		got := runSSSP(t, 6, edges, p, deltastep.WithSource(3))
		requireDistances(t, got, []float64{inf, inf, inf, 0, 0.5, 1.0})
	}
}

func TestRun_CheckReports(t *testing.T) {
	// Scenario 6 through Check: at every rank count the collective
	// checker must complete and report true (dumpFiles=false writes no
	// files).
	edges := []spmat.Edge{
		{Tail: 0, Head: 1, Weight: 1},
		{Tail: 1, Head: 2, Weight: 1},
		{Tail: 3, Head: 4, Weight: 1},
	}
	for _, p := range groupSizes {
		err := convey.Run(p, func(rk *convey.Rank) error {
			g, err := spmat.New(5, edges, rk.ID(), rk.NumRanks())
			if err != nil {
				return err
			}
			info, err := deltastep.Run(g, rk)
			if err != nil {
				return err
			}
			ok, err := info.Check(g, rk, false)
			if err != nil {
				return err
			}
			require.True(t, ok)

			return nil
		})
		require.NoError(t, err)
	}
}

// ------------------------------------------------------------------------
// Fatal configuration classes.
// ------------------------------------------------------------------------

func TestRun_ConfigurationFaults(t *testing.T) {
	edges := parallelPaths()

	runWith := func(p int, body func(rk *convey.Rank, g *spmat.SparseMat) error) error {
		return convey.Run(p, func(rk *convey.Rank) error {
			g, err := spmat.New(3, edges, rk.ID(), rk.NumRanks())
			if err != nil {
				return err
			}

			return body(rk, g)
		})
	}

	err := runWith(2, func(rk *convey.Rank, g *spmat.SparseMat) error {
		_, rerr := deltastep.Run(g, rk, deltastep.WithSource(99))

		return rerr
	})
	require.ErrorIs(t, err, deltastep.ErrSourceRange)

	err = runWith(2, func(rk *convey.Rank, g *spmat.SparseMat) error {
		_, rerr := deltastep.Run(g, rk, deltastep.WithForcedDelta(-0.5))

		return rerr
	})
	require.ErrorIs(t, err, deltastep.ErrBadDelta)

	err = runWith(2, func(rk *convey.Rank, g *spmat.SparseMat) error {
		_, rerr := deltastep.Run(g, rk, deltastep.WithForcedDelta(math.Inf(1)))

		return rerr
	})
	require.ErrorIs(t, err, deltastep.ErrBadDelta)

	err = runWith(1, func(rk *convey.Rank, g *spmat.SparseMat) error {
		_, rerr := deltastep.Run(nil, rk)

		return rerr
	})
	require.ErrorIs(t, err, deltastep.ErrNilGraph)
}

func TestRun_MissingWeightsIsFatal(t *testing.T) {
	for _, p := range groupSizes {
		err := convey.Run(p, func(rk *convey.Rank) error {
			g, err := spmat.New(3, parallelPaths(), rk.ID(), rk.NumRanks(), spmat.WithUnweighted())
			if err != nil {
				return err
			}
			_, err = deltastep.Run(g, rk)

			return err
		})
		require.ErrorIs(t, err, deltastep.ErrNoWeights)
	}
}

func TestRun_NonSquareIsFatal(t *testing.T) {
	err := convey.Run(1, func(rk *convey.Rank) error {
		g, err := spmat.New(3, nil, rk.ID(), rk.NumRanks())
		if err != nil {
			return err
		}
		g.NumCols = 4 // simulate a rectangular container
		_, err = deltastep.Run(g, rk)

		return err
	})
	require.ErrorIs(t, err, deltastep.ErrNonSquare)
}

func TestRun_SourceOnEveryRank(t *testing.T) {
	// Sweep the source over all vertices at P=4; each run must match the
	// chain's closed-form distances from that source.
	edges := spmat.Path(5, spmat.ConstantWeightFn(2.0), nil)
	for src := 0; src < 5; src++ {
		got := runSSSP(t, 5, edges, 4, deltastep.WithSource(core.GlobalVertex(src)))
		for v := 0; v < 5; v++ {
			if v < src {
				require.True(t, math.IsInf(got[v], 1))
			} else {
				require.InDelta(t, 2.0*float64(v-src), got[v], 1e-12)
			}
		}
	}
}
