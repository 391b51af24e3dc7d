// SPDX-License-Identifier: MIT
// Package spmat provides the partitioned sparse matrix that deltastep
// searches: per-rank CSR rows over the round-robin vertex partition,
// with an optional edge-weight side array.
//
// Storage model:
//
//	Rank r of P holds every row g with g mod P == r, compacted to local
//	indices g div P. Offset is the usual CSR row-pointer array over the
//	local rows; Nonzero holds neighbor ids in the GLOBAL namespace, so a
//	row's edges can point at vertices owned by any rank; Value (when
//	present) is aligned 1:1 with Nonzero.
//
// Construction is deterministic: the same edge list, vertex count and
// rank pair always produce identical containers, with per-row adjacency
// in edge-list order. Builders for standard topologies (path, cycle,
// seeded sparse random) live in builder.go; weight policies in
// weight_fn.go; .wts vector I/O in io.go.
//
// Errors (sentinel):
//
//	ErrBadShape       - negative vertex count at construction.
//	ErrVertexRange    - an edge endpoint outside [0, N).
//	ErrInvalidWeight  - a NaN, infinite, or negative edge weight.
//	ErrBadProbability - RandomSparse probability outside [0, 1].
//	ErrBadWtsFormat   - malformed .wts file on read.
package spmat
