// SPDX-License-Identifier: MIT
// Package dijkstra: the reference algorithm.
package dijkstra

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/deltastep/core"
	"github.com/katalvlaran/deltastep/spmat"
)

// Dijkstra computes shortest distances from Options.Source to every
// vertex of the single-rank container m. The result vector is indexed
// by global vertex id; unreachable vertices hold +Inf.
//
// Preconditions and validation (in order):
//  1. m must be non-nil (ErrNilGraph).
//  2. m must hold every row, i.e. be built with one rank (ErrPartitioned).
//  3. m must carry edge weights (ErrUnweighted).
//  4. The source must lie in [0, N) (ErrSourceRange).
//
// Negative weights cannot occur: spmat.New rejects them at ingestion.
//
// Complexity:
//   - Time:  O((V + E) log V)
//   - Space: O(V + E)
func Dijkstra(m *spmat.SparseMat, opts ...Option) ([]float64, error) {
	// 1) Build options.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate the container.
	if m == nil {
		return nil, ErrNilGraph
	}
	if m.Part.NumRanks != 1 {
		return nil, fmt.Errorf("Dijkstra: %d ranks: %w", m.Part.NumRanks, ErrPartitioned)
	}
	if !m.Weighted() {
		return nil, ErrUnweighted
	}
	if !m.Part.Contains(cfg.Source) {
		return nil, fmt.Errorf("Dijkstra: source %d of %d vertices: %w", cfg.Source, m.NumRows, ErrSourceRange)
	}

	// 3) Initialize distances to +Inf, the source to 0.
	dist := make([]float64, m.NumRows)
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	dist[cfg.Source] = 0

	visited := make([]bool, m.NumRows)
	pq := make(nodePQ, 0, m.NumRows)
	heap.Init(&pq)
	heap.Push(&pq, &nodeItem{id: cfg.Source, dist: 0})

	// 4) Main loop: settle vertices in increasing distance order.
	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*nodeItem)
		u := item.id
		if visited[u] {
			// Stale heap entry under lazy decrease-key.
			continue
		}
		visited[u] = true

		// Relax every outgoing edge of u. On a single-rank container the
		// local row index equals the global id.
		for adj := m.Offset[u]; adj < m.Offset[u+1]; adj++ {
			v := m.Nonzero[adj]
			newDist := dist[u] + m.Value[adj]
			if newDist < dist[v] {
				dist[v] = newDist
				heap.Push(&pq, &nodeItem{id: v, dist: newDist})
			}
		}
	}

	return dist, nil
}

// nodeItem represents a vertex and its current distance from the source,
// stored in the priority queue.
type nodeItem struct {
	id   core.GlobalVertex
	dist float64
}

// nodePQ is a min-heap of *nodeItem ordered by dist ascending, using the
// lazy-decrease-key approach: improvements push duplicates, stale
// entries are skipped via visited when popped.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int            { return len(pq) }
func (pq nodePQ) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq nodePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
