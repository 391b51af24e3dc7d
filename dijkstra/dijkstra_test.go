// Package dijkstra_test contains unit tests for the reference
// implementation: validation sentinels, small fixed graphs, and a
// cross-check against an independent gonum oracle on random graphs.
package dijkstra_test

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/katalvlaran/deltastep/dijkstra"
	"github.com/katalvlaran/deltastep/spmat"
)

// ------------------------------------------------------------------------
// 1. Validation tests: ensure sentinels are returned for invalid inputs.
// ------------------------------------------------------------------------

func TestDijkstra_NilGraph(t *testing.T) {
	_, err := dijkstra.Dijkstra(nil)
	if !errors.Is(err, dijkstra.ErrNilGraph) {
		t.Fatalf("Expected ErrNilGraph, got %v", err)
	}
}

func TestDijkstra_Partitioned(t *testing.T) {
	// A rank-0 shard of a 2-rank group is not acceptable oracle input.
	m, err := spmat.New(4, spmat.Path(4, nil, nil), 0, 2)
	if err != nil {
		t.Fatal(err)
	}
	_, err = dijkstra.Dijkstra(m)
	if !errors.Is(err, dijkstra.ErrPartitioned) {
		t.Fatalf("Expected ErrPartitioned, got %v", err)
	}
}

func TestDijkstra_Unweighted(t *testing.T) {
	m, err := spmat.New(4, spmat.Path(4, nil, nil), 0, 1, spmat.WithUnweighted())
	if err != nil {
		t.Fatal(err)
	}
	_, err = dijkstra.Dijkstra(m)
	if !errors.Is(err, dijkstra.ErrUnweighted) {
		t.Fatalf("Expected ErrUnweighted, got %v", err)
	}
}

func TestDijkstra_SourceRange(t *testing.T) {
	m, err := spmat.New(4, spmat.Path(4, nil, nil), 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	_, err = dijkstra.Dijkstra(m, dijkstra.WithSource(4))
	if !errors.Is(err, dijkstra.ErrSourceRange) {
		t.Fatalf("Expected ErrSourceRange, got %v", err)
	}
	_, err = dijkstra.Dijkstra(m, dijkstra.WithSource(-1))
	if !errors.Is(err, dijkstra.ErrSourceRange) {
		t.Fatalf("Expected ErrSourceRange, got %v", err)
	}
}

// ------------------------------------------------------------------------
// 2. Basic functionality: small graphs with known answers.
// ------------------------------------------------------------------------

func TestDijkstra_ParallelPaths(t *testing.T) {
	// 0→1 (5), 0→2 (2), 2→1 (1): the two-hop path wins.
	edges := []spmat.Edge{
		{Tail: 0, Head: 1, Weight: 5},
		{Tail: 0, Head: 2, Weight: 2},
		{Tail: 2, Head: 1, Weight: 1},
	}
	m, err := spmat.New(3, edges, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	dist, err := dijkstra.Dijkstra(m)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0, 3, 2}
	for v, w := range want {
		if dist[v] != w {
			t.Errorf("dist[%d] = %v; want %v", v, dist[v], w)
		}
	}
}

func TestDijkstra_Unreachable(t *testing.T) {
	// 0→1→2 and an island 3→4.
	edges := []spmat.Edge{
		{Tail: 0, Head: 1, Weight: 1},
		{Tail: 1, Head: 2, Weight: 1},
		{Tail: 3, Head: 4, Weight: 1},
	}
	m, err := spmat.New(5, edges, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	dist, err := dijkstra.Dijkstra(m)
	if err != nil {
		t.Fatal(err)
	}
	if dist[2] != 2 {
		t.Errorf("dist[2] = %v; want 2", dist[2])
	}
	if !math.IsInf(dist[3], 1) || !math.IsInf(dist[4], 1) {
		t.Errorf("island vertices should be +Inf, got %v %v", dist[3], dist[4])
	}
}

func TestDijkstra_NonZeroSource(t *testing.T) {
	m, err := spmat.New(4, spmat.Cycle(4, spmat.ConstantWeightFn(2), nil), 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	dist, err := dijkstra.Dijkstra(m, dijkstra.WithSource(2))
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{4, 6, 0, 2}
	for v, w := range want {
		if dist[v] != w {
			t.Errorf("dist[%d] = %v; want %v", v, dist[v], w)
		}
	}
}

// ------------------------------------------------------------------------
// 3. Oracle cross-check: random graphs against gonum's Dijkstra.
// ------------------------------------------------------------------------

func TestDijkstra_MatchesGonum(t *testing.T) {
	const n = 60
	for seed := int64(0); seed < 5; seed++ {
		edges, err := spmat.RandomSparse(n, 0.08, spmat.UniformWeightFn(0.1, 3.0), seed)
		if err != nil {
			t.Fatal(err)
		}
		m, err := spmat.New(n, edges, 0, 1)
		if err != nil {
			t.Fatal(err)
		}
		dist, err := dijkstra.Dijkstra(m)
		if err != nil {
			t.Fatal(err)
		}

		// Independent oracle over the same edge list.
		wg := simple.NewWeightedDirectedGraph(0, math.Inf(1))
		for v := 0; v < n; v++ {
			wg.AddNode(simple.Node(v))
		}
		for _, e := range edges {
			wg.SetWeightedEdge(simple.WeightedEdge{
				F: simple.Node(e.Tail), T: simple.Node(e.Head), W: e.Weight,
			})
		}
		shortest := path.DijkstraFrom(wg.Node(0), wg)

		for v := 0; v < n; v++ {
			want := shortest.WeightTo(int64(v))
			if math.IsInf(want, 1) != math.IsInf(dist[v], 1) {
				t.Fatalf("seed %d: reachability of %d differs: got %v want %v", seed, v, dist[v], want)
			}
			if !math.IsInf(want, 1) && math.Abs(dist[v]-want) > 1e-9 {
				t.Fatalf("seed %d: dist[%d] = %v; want %v", seed, v, dist[v], want)
			}
		}
	}
}
