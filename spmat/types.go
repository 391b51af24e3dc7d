// SPDX-License-Identifier: MIT
// Package spmat: container type and sentinel error set.
// All constructors MUST return these sentinels and tests MUST check them
// via errors.Is. No spmat API panics on user-triggered conditions.
package spmat

import (
	"errors"

	"github.com/katalvlaran/deltastep/core"
)

// Sentinel errors for container construction and I/O.
var (
	// ErrBadShape is returned when the requested vertex count is negative.
	ErrBadShape = errors.New("spmat: invalid shape")

	// ErrVertexRange indicates an edge endpoint outside [0, N).
	ErrVertexRange = errors.New("spmat: edge endpoint out of range")

	// ErrInvalidWeight indicates a NaN, infinite, or negative edge weight
	// at ingestion. Shortest-path semantics require finite non-negative
	// weights, so the container refuses them up front.
	ErrInvalidWeight = errors.New("spmat: invalid edge weight")

	// ErrBadProbability indicates a RandomSparse edge probability outside [0, 1].
	ErrBadProbability = errors.New("spmat: probability must be in [0, 1]")

	// ErrBadWtsFormat indicates a .wts file whose header or body could not
	// be parsed.
	ErrBadWtsFormat = errors.New("spmat: malformed .wts file")
)

// Edge is one directed, weighted edge of the global graph, used as the
// builder currency before CSR compaction.
type Edge struct {
	// Tail is the edge origin (the CSR row).
	Tail core.GlobalVertex

	// Head is the edge destination (the CSR column, global namespace).
	Head core.GlobalVertex

	// Weight is the non-negative traversal cost.
	Weight float64
}

// SparseMat is one rank's share of the global N×N adjacency structure.
// Fields are exported: the relaxation engine iterates Offset/Nonzero/
// Value directly on its hot path, mirroring how the container is a plain
// CSR triple rather than an abstraction boundary.
type SparseMat struct {
	// Part is the round-robin row partition this container was built under.
	Part core.Partition

	// Rank is the id of the rank owning these rows.
	Rank int

	// NumRows and NumCols are the GLOBAL dimensions. Square for graphs.
	NumRows int
	NumCols int

	// NumRowsThisRank is the number of local rows: Part.OwnedBy(Rank).
	NumRowsThisRank int

	// Offset is the CSR row-pointer array, length NumRowsThisRank+1.
	Offset []int

	// Nonzero holds the neighbor vertex ids, GLOBAL namespace, length
	// Offset[NumRowsThisRank].
	Nonzero []core.GlobalVertex

	// Value holds the edge weights aligned with Nonzero, or nil for an
	// unweighted container. Consumers that require weights (the
	// delta-stepping engine) treat nil as fatal.
	Value []float64
}
