// SPDX-License-Identifier: MIT
// Package core: id types and sentinel errors.
//
// This file declares GlobalVertex, LocalVertex and the sentinel errors
// used by the partition arithmetic. All sentinels are matched via
// errors.Is; no core API panics on user-triggered conditions.
package core

import "errors"

// Sentinel errors for partition construction and range checks.
var (
	// ErrBadRankCount indicates a partition was requested with fewer than one rank.
	ErrBadRankCount = errors.New("core: rank count must be >= 1")

	// ErrBadVertexCount indicates a partition was requested with a negative vertex count.
	ErrBadVertexCount = errors.New("core: vertex count must be >= 0")

	// ErrVertexRange indicates a vertex id outside the partition's [0, N) range.
	ErrVertexRange = errors.New("core: vertex id out of range")
)

// GlobalVertex identifies a vertex in the global namespace [0, N).
// The same id means the same vertex on every rank.
type GlobalVertex int

// LocalVertex identifies a vertex inside one rank's owned slice.
// Local index l on rank r names global vertex l*P + r.
//
// LocalVertex is an integer type, so it indexes the per-rank state
// slices (tentative distances, bucket links) directly.
type LocalVertex int
