// Package deltastep_test: property-based checks on seeded random
// graphs. The engine's distances must agree with the serial Dijkstra
// oracle for every rank count and every bucket width, satisfy the
// triangle inequality over all edges on termination, and fingerprint
// identically regardless of how the work was partitioned.
package deltastep_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/deltastep/core"
	"github.com/katalvlaran/deltastep/deltastep"
	"github.com/katalvlaran/deltastep/dijkstra"
	"github.com/katalvlaran/deltastep/spmat"
)

// randomCase builds a seeded sparse graph and its oracle distances.
func randomCase(t *testing.T, n int, prob float64, seed int64, source core.GlobalVertex) ([]spmat.Edge, []float64) {
	t.Helper()

	edges, err := spmat.RandomSparse(n, prob, spmat.UniformWeightFn(0.05, 3.0), seed)
	require.NoError(t, err)

	whole, err := spmat.New(n, edges, 0, 1)
	require.NoError(t, err)
	want, err := dijkstra.Dijkstra(whole, dijkstra.WithSource(source))
	require.NoError(t, err)

	return edges, want
}

func TestRun_MatchesDijkstraOnRandomGraphs(t *testing.T) {
	const n = 48
	rng := rand.New(rand.NewSource(1))
	for seed := int64(0); seed < 6; seed++ {
		source := core.GlobalVertex(rng.Intn(n))
		edges, want := randomCase(t, n, 0.07, seed, source)

		for _, p := range groupSizes {
			got := runSSSP(t, n, edges, p, deltastep.WithSource(source))
			requireDistances(t, got, want)
		}
	}
}

func TestRun_DeltaIndependence(t *testing.T) {
	// P7: any positive Δ yields the oracle's distances. The sweep covers
	// widths below, at, and far above the weight range.
	const n = 32
	edges, want := randomCase(t, n, 0.1, 11, 0)

	for _, delta := range []float64{0.05, 0.5, 1.0, 3.0, 50.0} {
		for _, p := range groupSizes {
			got := runSSSP(t, n, edges, p, deltastep.WithForcedDelta(delta))
			requireDistances(t, got, want)
		}
	}
}

func TestRun_TriangleInequalityOnTermination(t *testing.T) {
	// P4: tent[head] ≤ tent[tail] + w for every edge with finite ends.
	const n = 64
	edges, _ := randomCase(t, n, 0.06, 23, 0)

	for _, p := range groupSizes {
		got := runSSSP(t, n, edges, p)
		for _, e := range edges {
			if math.IsInf(got[e.Tail], 1) {
				continue
			}
			require.LessOrEqualf(t, got[e.Head], got[e.Tail]+e.Weight+1e-9,
				"edge %d→%d (%v) violates relaxation", e.Tail, e.Head, e.Weight)
		}
	}
}

func TestRun_UnreachableIffInfinite(t *testing.T) {
	// P6: +Inf exactly on the vertices the oracle cannot reach.
	const n = 40
	edges, want := randomCase(t, n, 0.04, 37, 0)

	for _, p := range groupSizes {
		got := runSSSP(t, n, edges, p)
		for v := 0; v < n; v++ {
			require.Equal(t, math.IsInf(want[v], 1), math.IsInf(got[v], 1),
				"reachability of %d differs at P=%d", v, p)
		}
	}
}

func TestRun_FingerprintStableAcrossPartitions(t *testing.T) {
	// The assembled vector — and therefore its fingerprint — must not
	// depend on the rank count.
	const n = 36
	edges, _ := randomCase(t, n, 0.09, 5, 0)

	var prints []uint64
	for _, p := range groupSizes {
		got := runSSSP(t, n, edges, p)
		prints = append(prints, deltastep.Fingerprint(got))
	}
	require.Equal(t, prints[0], prints[1])
	require.Equal(t, prints[0], prints[2])

	// And a different graph must not collide with it.
	other, _ := randomCase(t, n, 0.09, 6, 0)
	require.NotEqual(t, prints[0], deltastep.Fingerprint(runSSSP(t, n, other, 1)))
}

func TestRun_MonotoneUnderExtraEdges(t *testing.T) {
	// P1 observed externally: adding edges can only shorten distances.
	const n = 30
	base, err := spmat.RandomSparse(n, 0.05, spmat.UniformWeightFn(0.1, 2.0), 77)
	require.NoError(t, err)
	extra, err := spmat.RandomSparse(n, 0.05, spmat.UniformWeightFn(0.1, 2.0), 78)
	require.NoError(t, err)

	sparse := runSSSP(t, n, base, 2)
	dense := runSSSP(t, n, append(append([]spmat.Edge{}, base...), extra...), 2)
	for v := 0; v < n; v++ {
		if math.IsInf(sparse[v], 1) {
			continue
		}
		require.LessOrEqual(t, dense[v], sparse[v]+1e-9, "vertex %d", v)
	}
}
