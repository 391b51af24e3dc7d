// SPDX-License-Identifier: MIT
// Package spmat: construction and row accessors.
//
// Design contract (strict):
//   - One constructor: New(nvtxs, edges, rank, nranks, opts...). Every
//     rank calls it with the SAME edge list and gets its own rows; no
//     communication is needed to build, because the partition is pure
//     arithmetic.
//   - Determinism: per-row adjacency preserves edge-list order; two
//     ranks never disagree about the global graph.
//   - Validation happens here, not in consumers: endpoints in range,
//     weights finite and non-negative.
package spmat

import (
	"fmt"
	"iter"
	"math"

	"github.com/katalvlaran/deltastep/core"
)

// Options configures container construction.
//
// Unweighted - drop the Value side array entirely (Value == nil). The
// delta-stepping engine refuses such containers; the option exists for
// structural consumers and for exercising that refusal.
type Options struct {
	Unweighted bool
}

// Option is a functional option for New.
type Option func(*Options)

// WithUnweighted builds the container without the Value side array.
func WithUnweighted() Option {
	return func(o *Options) { o.Unweighted = true }
}

// New builds rank's share of the N×N adjacency structure from the global
// edge list. All ranks of a group must pass identical (nvtxs, edges);
// each keeps only rows it owns under the round-robin partition.
//
// Inputs:
//   - nvtxs:  global vertex count N (>= 0).
//   - edges:  directed weighted edges, any order; order is preserved
//     within each row.
//   - rank, nranks: this rank's position in the group.
//
// Errors:
//   - ErrBadShape:           nvtxs < 0.
//   - core.ErrBadRankCount:  nranks < 1 (propagated from the partition).
//   - ErrVertexRange:        an endpoint outside [0, N).
//   - ErrInvalidWeight:      a NaN, infinite, or negative weight.
//
// Complexity:
//   - Time O(E + L), Space O(E + L), L = local rows, E = global edges.
func New(nvtxs int, edges []Edge, rank, nranks int, opts ...Option) (*SparseMat, error) {
	var cfg Options
	for _, opt := range opts {
		opt(&cfg)
	}

	if nvtxs < 0 {
		return nil, fmt.Errorf("New: nvtxs=%d: %w", nvtxs, ErrBadShape)
	}
	part, err := core.NewPartition(nvtxs, nranks)
	if err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}

	local := part.OwnedBy(rank)

	// Pass 1: validate every edge and count the owned rows' degrees.
	counts := make([]int, local)
	for i, e := range edges {
		if !part.Contains(e.Tail) || !part.Contains(e.Head) {
			return nil, fmt.Errorf("New: edge %d (%d→%d): %w", i, e.Tail, e.Head, ErrVertexRange)
		}
		if math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) || e.Weight < 0 {
			return nil, fmt.Errorf("New: edge %d (%d→%d) weight=%v: %w", i, e.Tail, e.Head, e.Weight, ErrInvalidWeight)
		}
		if part.Owner(e.Tail) == rank {
			counts[part.Local(e.Tail)]++
		}
	}

	// Prefix-sum the counts into CSR row pointers.
	offset := make([]int, local+1)
	for v := 0; v < local; v++ {
		offset[v+1] = offset[v] + counts[v]
	}
	nnz := offset[local]

	nonzero := make([]core.GlobalVertex, nnz)
	var value []float64
	if !cfg.Unweighted {
		value = make([]float64, nnz)
	}

	// Pass 2: scatter owned edges into their rows, preserving list order.
	next := make([]int, local)
	copy(next, offset[:local])
	for _, e := range edges {
		if part.Owner(e.Tail) != rank {
			continue
		}
		v := part.Local(e.Tail)
		nonzero[next[v]] = e.Head
		if value != nil {
			value[next[v]] = e.Weight
		}
		next[v]++
	}

	return &SparseMat{
		Part:            part,
		Rank:            rank,
		NumRows:         nvtxs,
		NumCols:         nvtxs,
		NumRowsThisRank: local,
		Offset:          offset,
		Nonzero:         nonzero,
		Value:           value,
	}, nil
}

// Weighted reports whether the container carries the Value side array.
func (m *SparseMat) Weighted() bool { return m.Value != nil }

// NumEdgesThisRank returns the number of stored (local) edges.
func (m *SparseMat) NumEdgesThisRank() int { return m.Offset[m.NumRowsThisRank] }

// Degree returns the out-degree of local row v.
func (m *SparseMat) Degree(v core.LocalVertex) int {
	return m.Offset[v+1] - m.Offset[v]
}

// GlobalRow translates local row v back to its global vertex id.
func (m *SparseMat) GlobalRow(v core.LocalVertex) core.GlobalVertex {
	return m.Part.Global(m.Rank, v)
}

// RowCounts iterates the local degree sequence in row order. Its
// maximum, combined across ranks, feeds the default bucket width.
func (m *SparseMat) RowCounts() iter.Seq[int] {
	return func(yield func(int) bool) {
		for v := 0; v < m.NumRowsThisRank; v++ {
			if !yield(m.Offset[v+1] - m.Offset[v]) {
				return
			}
		}
	}
}

// MaxValue returns the largest local edge weight, 0 for an edgeless or
// unweighted container. Combine across ranks with ReduceMaxFloat64.
func (m *SparseMat) MaxValue() float64 {
	maxW := 0.0
	for _, w := range m.Value {
		if w > maxW {
			maxW = w
		}
	}

	return maxW
}
